// Package account implements registration, sign-in and token issuance.
package account

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/recipewhirl/backend/internal/application/session"
	"github.com/recipewhirl/backend/internal/domain/account"
	"github.com/recipewhirl/backend/internal/ports/outbound"
	"github.com/recipewhirl/backend/pkg/errors"
)

// Service handles account lifecycle and authentication
type Service struct {
	users    outbound.UserRepository
	sessions *session.Manager
	logger   *zap.Logger

	jwtSecret     []byte
	jwtExpiration time.Duration
}

// NewService creates an account service
func NewService(
	users outbound.UserRepository,
	sessions *session.Manager,
	jwtSecret string,
	jwtExpiration time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		users:         users,
		sessions:      sessions,
		logger:        logger.Named("account-service"),
		jwtSecret:     []byte(jwtSecret),
		jwtExpiration: jwtExpiration,
	}
}

// Claims is the JWT payload issued at sign-in
type Claims struct {
	UserID uuid.UUID `json:"uid"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

// Register creates an account with a bcrypt-hashed password and signs the
// user in, returning the bootstrapped session and an access token.
func (s *Service) Register(ctx context.Context, email, name, password string) (*session.Session, string, error) {
	if len(password) < 8 {
		return nil, "", errors.NewValidationError("password must be at least 8 characters")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", errors.NewDatabaseError("find user", err)
	}
	if existing != nil {
		return nil, "", errors.NewConflictError("email already registered")
	}

	user, err := account.NewUser(email, name)
	if err != nil {
		return nil, "", errors.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", errors.NewInternalError("failed to hash password").WithCause(err)
	}
	user.PasswordHash = string(hash)

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", errors.NewDatabaseError("create user", err)
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)
	return s.signIn(ctx, user)
}

// Login verifies credentials and signs the user in. Wrong email and wrong
// password produce the same error.
func (s *Service) Login(ctx context.Context, email, password string) (*session.Session, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", errors.NewDatabaseError("find user", err)
	}
	if user == nil {
		return nil, "", errors.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", errors.NewInvalidCredentialsError()
	}

	return s.signIn(ctx, user)
}

// Logout tears down the user's session. The token itself stays valid until
// expiry; the next authenticated request rebuilds the session lazily.
func (s *Service) Logout(userID uuid.UUID) {
	s.sessions.Destroy(userID)
}

// Authenticate validates a token and returns the live session for its user,
// bootstrapping one if the server restarted since sign-in.
func (s *Service) Authenticate(ctx context.Context, tokenString string) (*session.Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.NewAuthRequiredError("access the API")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.NewAuthRequiredError("access the API")
	}

	if sess := s.sessions.Get(claims.UserID); sess != nil {
		return sess, nil
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil || user == nil {
		return nil, errors.NewAuthRequiredError("access the API")
	}
	return s.sessions.Bootstrap(ctx, user), nil
}

// UpdateProfile changes the mutable profile fields
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, name, bio, avatarURL string) (*account.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("find user", err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", userID.String())
	}

	if name != "" {
		user.Name = name
	}
	user.Bio = bio
	user.AvatarURL = avatarURL
	user.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, errors.NewDatabaseError("update user", err)
	}
	return user, nil
}

func (s *Service) signIn(ctx context.Context, user *account.User) (*session.Session, string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, "", errors.NewInternalError("failed to sign token").WithCause(err)
	}

	sess := s.sessions.Bootstrap(ctx, user)
	return sess, token, nil
}
