package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/recipewhirl/backend/internal/domain/account"
	"github.com/recipewhirl/backend/internal/ports/outbound"
)

// Manager owns the live sessions. A session is created at sign-in (or lazily
// on the first authenticated request after a restart) by rebuilding the
// relationship sets from the store, and torn down at sign-out.
type Manager struct {
	favorites outbound.FavoriteRepository
	ratings   outbound.RatingRepository
	logger    *zap.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// NewManager creates a session manager
func NewManager(favorites outbound.FavoriteRepository, ratings outbound.RatingRepository, logger *zap.Logger) *Manager {
	return &Manager{
		favorites: favorites,
		ratings:   ratings,
		logger:    logger.Named("session-manager"),
		sessions:  make(map[uuid.UUID]*Session),
	}
}

// Get returns the live session for a user, or nil
func (m *Manager) Get(userID uuid.UUID) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[userID]
}

// Bootstrap builds (or returns) the session for a signed-in user. The
// relationship sets are rebuilt from the authoritative store; a failed read
// degrades to an empty set rather than failing sign-in.
func (m *Manager) Bootstrap(ctx context.Context, user *account.User) *Session {
	m.mu.Lock()
	if existing, ok := m.sessions[user.ID]; ok {
		m.mu.Unlock()
		return existing
	}
	m.mu.Unlock()

	favorites, err := m.favorites.ListByUser(ctx, user.ID)
	if err != nil {
		m.logger.Warn("Failed to load favorites for session",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
	}

	likedIDs, err := m.ratings.ListLikedIDs(ctx, user.ID)
	if err != nil {
		m.logger.Warn("Failed to load likes for session",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
	}

	s := New(user.ID, user.Email, user.Name, favorites, likedIDs)

	m.mu.Lock()
	defer m.mu.Unlock()
	// A racing bootstrap may have won; keep the first one.
	if existing, ok := m.sessions[user.ID]; ok {
		return existing
	}
	m.sessions[user.ID] = s

	m.logger.Info("Session bootstrapped",
		zap.String("user_id", user.ID.String()),
		zap.Int("favorites", len(favorites)),
		zap.Int("likes", len(likedIDs)),
	)
	return s
}

// Destroy tears down a user's session at sign-out
func (m *Manager) Destroy(userID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
