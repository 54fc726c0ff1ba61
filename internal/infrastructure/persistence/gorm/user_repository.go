package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipewhirl/backend/internal/domain/account"
	"github.com/recipewhirl/backend/internal/ports/outbound"
)

// UserRepository implements outbound.UserRepository on GORM
type UserRepository struct {
	db *gorm.DB
}

var _ outbound.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates a user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create persists a new user
func (r *UserRepository) Create(ctx context.Context, user *account.User) error {
	model := userToModel(user)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByID returns a user by ID, or nil
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return modelToUser(&model), nil
}

// FindByEmail returns a user by email, or nil
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*account.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return modelToUser(&model), nil
}

// Update persists changed user fields
func (r *UserRepository) Update(ctx context.Context, user *account.User) error {
	model := userToModel(user)
	return r.db.WithContext(ctx).Save(&model).Error
}

func userToModel(u *account.User) UserModel {
	return UserModel{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Bio:          u.Bio,
		AvatarURL:    u.AvatarURL,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func modelToUser(m *UserModel) *account.User {
	return &account.User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		Bio:          m.Bio,
		AvatarURL:    m.AvatarURL,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
