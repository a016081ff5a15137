// Package main provides the JSON API server for the recipe platform
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	aiapp "github.com/greenplate/greenplate/internal/application/ai"
	ingredientapp "github.com/greenplate/greenplate/internal/application/ingredient"
	recipeapp "github.com/greenplate/greenplate/internal/application/recipe"
	userapp "github.com/greenplate/greenplate/internal/application/user"
	"github.com/greenplate/greenplate/internal/infrastructure/ai/openai"
	"github.com/greenplate/greenplate/internal/infrastructure/config"
	"github.com/greenplate/greenplate/internal/infrastructure/http/apiserver"
	gormrepo "github.com/greenplate/greenplate/internal/infrastructure/persistence/gorm"
	"github.com/greenplate/greenplate/internal/infrastructure/persistence/postgres"
	"github.com/greenplate/greenplate/internal/infrastructure/security"
	"github.com/greenplate/greenplate/internal/infrastructure/storage"
	"github.com/greenplate/greenplate/pkg/logger"
	"go.uber.org/zap"
)

// devNameCipherKey pads out the cipher when no key is configured. Only
// reachable outside production; config validation requires a real key there.
const devNameCipherKey = "greenplate-dev!!"

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	log.Info("Starting greenplate",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Connect(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := gormrepo.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
		if err := gormrepo.SeedIngredients(ctx, db, log); err != nil {
			return fmt.Errorf("failed to seed ingredients: %w", err)
		}
	}

	cipherKey := cfg.Auth.NameCipherKey
	if cipherKey == "" {
		log.Warn("auth.name_cipher_key not configured, using development key")
		cipherKey = devNameCipherKey
	}
	nameCipher, err := security.NewNameCipher(cipherKey)
	if err != nil {
		return fmt.Errorf("failed to create name cipher: %w", err)
	}

	tokens, err := security.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiration, log)
	if err != nil {
		return fmt.Errorf("failed to create token service: %w", err)
	}

	store, err := storage.NewLocalStore(cfg.Storage.LocalPath, cfg.Storage.MaxFileSize, log)
	if err != nil {
		return fmt.Errorf("failed to create image store: %w", err)
	}

	memberRepo := gormrepo.NewMemberRepository(db)
	recipeRepo := gormrepo.NewRecipeRepository(db)
	ingredientRepo := gormrepo.NewIngredientRepository(db)
	favoriteRepo := gormrepo.NewFavoriteRepository(db)

	openaiClient := openai.NewClient(cfg, log)

	userService := userapp.NewService(memberRepo, tokens, nameCipher, cfg.Auth.EnableTestLogin, log)
	recipeService := recipeapp.NewService(recipeRepo, favoriteRepo, log)
	ingredientService := ingredientapp.NewService(ingredientRepo, log)
	aiService := aiapp.NewService(openaiClient, ingredientRepo, log)

	server := apiserver.NewServer(cfg, log, tokens, store, userService, recipeService, ingredientService, aiService)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
