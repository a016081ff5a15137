// Package apiserver provides the JSON API HTTP server
package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/greenplate/greenplate/internal/application/ai"
	"github.com/greenplate/greenplate/internal/application/ingredient"
	"github.com/greenplate/greenplate/internal/application/recipe"
	"github.com/greenplate/greenplate/internal/application/user"
	"github.com/greenplate/greenplate/internal/infrastructure/config"
	"github.com/greenplate/greenplate/internal/infrastructure/http/handlers"
	"github.com/greenplate/greenplate/internal/infrastructure/http/middleware"
	"github.com/greenplate/greenplate/internal/infrastructure/monitoring"
	"github.com/greenplate/greenplate/internal/infrastructure/security"
	"github.com/greenplate/greenplate/internal/infrastructure/storage"
	"go.uber.org/zap"
)

// Server is the HTTP server for the recipe API
type Server struct {
	config  *config.Config
	logger  *zap.Logger
	server  *http.Server
	router  *chi.Mux
	tokens  *security.TokenService
	store   *storage.LocalStore
	metrics *monitoring.Metrics

	userService       *user.Service
	recipeService     *recipe.Service
	ingredientService *ingredient.Service
	aiService         *ai.Service
}

// NewServer creates a new API server instance
func NewServer(
	cfg *config.Config,
	log *zap.Logger,
	tokens *security.TokenService,
	store *storage.LocalStore,
	userService *user.Service,
	recipeService *recipe.Service,
	ingredientService *ingredient.Service,
	aiService *ai.Service,
) *Server {
	s := &Server{
		config:            cfg,
		logger:            log,
		tokens:            tokens,
		store:             store,
		metrics:           monitoring.NewMetrics(),
		userService:       userService,
		recipeService:     recipeService,
		ingredientService: ingredientService,
		aiService:         aiService,
	}

	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

// setupRoutes configures the router and all API endpoints
func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(middleware.CORS())
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(chimiddleware.Compress(5))
	r.Use(s.metrics.Middleware())

	r.Get("/health", s.handleHealthCheck)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	// Uploaded recipe images
	uploads := http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.store.Root())))
	r.Get("/uploads/*", uploads.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		s.setupAPIRoutes(r)
	})

	return r
}

// setupAPIRoutes configures the API endpoints. Catalog reads stay public;
// everything that writes, plus the favorites views and AI generation, sits
// behind the session token.
func (s *Server) setupAPIRoutes(r chi.Router) {
	authH := handlers.NewAuthAPIHandlers(s.userService, s.logger)
	recipeH := handlers.NewRecipeAPIHandlers(s.recipeService, s.store, s.logger)
	ingredientH := handlers.NewIngredientAPIHandlers(s.ingredientService, s.logger)
	aiH := handlers.NewAIAPIHandlers(s.aiService, s.logger)

	r.Post("/login", authH.Login)
	r.Post("/signup", authH.Signup)

	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", recipeH.List)
		r.Get("/{id}", recipeH.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(s.tokens))
			r.Post("/", recipeH.Create)
			r.Put("/{id}", recipeH.Update)
			r.Delete("/{id}", recipeH.Delete)
			r.Post("/{id}/favorite", recipeH.ToggleFavorite)
			r.Post("/generate-ai", aiH.Generate)
		})
	})

	r.Route("/ingredients", func(r chi.Router) {
		r.Get("/", ingredientH.List)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(s.tokens))
			r.Post("/", ingredientH.Create)
			r.Delete("/{id}", ingredientH.Delete)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(middleware.Authenticate(s.tokens))
		r.Get("/favorites", recipeH.ListFavorites)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting API server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)
	return s.server.ListenAndServe()
}

// Router returns the configured router, used by the HTTP test suites
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")
	return s.server.Shutdown(ctx)
}

// handleHealthCheck provides the health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","service":"%s","version":"%s","timestamp":%d}`,
		s.config.App.Name, s.config.App.Version, time.Now().Unix())
}
