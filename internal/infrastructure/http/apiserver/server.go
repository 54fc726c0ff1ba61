// Package apiserver exposes the discovery engine over HTTP.
package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/recipewhirl/backend/internal/application/account"
	appcookbook "github.com/recipewhirl/backend/internal/application/cookbook"
	"github.com/recipewhirl/backend/internal/application/interaction"
	"github.com/recipewhirl/backend/internal/application/search"
	"github.com/recipewhirl/backend/internal/application/session"
	"github.com/recipewhirl/backend/internal/infrastructure/config"
	"github.com/recipewhirl/backend/internal/infrastructure/monitoring"
	"github.com/recipewhirl/backend/internal/ports/outbound"
)

// Server is the HTTP API server
type Server struct {
	cfg          *config.Config
	logger       *zap.Logger
	validate     *validator.Validate
	metrics      *monitoring.Metrics
	accounts     *account.Service
	interactions *interaction.Controller
	pipeline     *search.Pipeline
	cookbook     *appcookbook.Service
	source       outbound.RecipeSource
	favorites    outbound.FavoriteRepository
	history      outbound.SearchHistoryRepository
	assistant    outbound.AssistantService

	mu         sync.Mutex
	submitters map[uuid.UUID]*search.Submitter

	httpServer *http.Server
}

// NewServer wires the HTTP server
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	metrics *monitoring.Metrics,
	accounts *account.Service,
	interactions *interaction.Controller,
	pipeline *search.Pipeline,
	cookbookSvc *appcookbook.Service,
	source outbound.RecipeSource,
	favorites outbound.FavoriteRepository,
	history outbound.SearchHistoryRepository,
	assistant outbound.AssistantService,
) *Server {
	s := &Server{
		cfg:          cfg,
		logger:       logger.Named("http"),
		validate:     validator.New(),
		metrics:      metrics,
		accounts:     accounts,
		interactions: interactions,
		pipeline:     pipeline,
		cookbook:     cookbookSvc,
		source:       source,
		favorites:    favorites,
		history:      history,
		assistant:    assistant,
		submitters:   make(map[uuid.UUID]*search.Submitter),
	}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		// Discovery is open: anonymous users can search and browse, they
		// just cannot favorite, rate or keep history.
		r.Group(func(r chi.Router) {
			r.Use(s.maybeAuth)
			r.Get("/search", s.handleSearch)
			r.Get("/recipes/{id}", s.handleGetRecipe)
			r.Get("/categories/{category}", s.handleListByCategory)
			r.Post("/assistant/chat", s.handleAssistantChat)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/auth/logout", s.handleLogout)
			r.Put("/profile", s.handleUpdateProfile)

			r.Post("/search/input", s.handleSearchInput)
			r.Get("/search/results", s.handleSearchResults)
			r.Put("/search/filters", s.handleSetFilters)
			r.Get("/search/history", s.handleSearchHistory)

			r.Post("/recipes/{id}/favorite", s.handleToggleFavorite)
			r.Post("/recipes/{id}/like", s.handleToggleLike)
			r.Post("/recipes/{id}/dislike", s.handleDislike)
			r.Get("/favorites", s.handleListFavorites)

			r.Post("/cookbook", s.handleCreateCookbookRecipe)
			r.Get("/cookbook", s.handleListCookbook)
			r.Get("/cookbook/{id}", s.handleGetCookbookRecipe)
			r.Delete("/cookbook/{id}", s.handleDeleteCookbookRecipe)
		})
	})
	return r
}

// Start begins serving requests
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains connections and cancels pending debounced searches
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for _, sub := range s.submitters {
		sub.Close()
	}
	s.submitters = make(map[uuid.UUID]*search.Submitter)
	s.mu.Unlock()

	return s.httpServer.Shutdown(ctx)
}

// submitterFor returns the session's debounced submitter, creating it on
// first use. Submitters live as long as the session does.
func (s *Server) submitterFor(sess *session.Session) *search.Submitter {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub, ok := s.submitters[sess.UserID]; ok {
		return sub
	}
	sub := search.NewSubmitter(s.pipeline, sess, s.cfg.Search.DebounceWindow)
	s.submitters[sess.UserID] = sub
	return sub
}

func (s *Server) dropSubmitter(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub, ok := s.submitters[userID]; ok {
		sub.Close()
		delete(s.submitters, userID)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.cfg.App.Version,
	})
}
