// Package ai provides the application layer for AI-assisted recipe drafting.
package ai

import (
	"context"

	"github.com/greenplate/greenplate/internal/domain/recipe"
	"github.com/greenplate/greenplate/internal/ports/outbound"
	"go.uber.org/zap"
)

// Service implements the recipe draft generation use case
type Service struct {
	generator   outbound.AIService
	ingredients outbound.IngredientRepository
	logger      *zap.Logger
}

// NewService creates a new AI service
func NewService(
	generator outbound.AIService,
	ingredients outbound.IngredientRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		generator:   generator,
		ingredients: ingredients,
		logger:      logger.Named("ai-service"),
	}
}

// GenerateDraft produces recipe content for a dish title. The current
// ingredient catalog is passed along so the model prefers names the site
// can filter by.
func (s *Service) GenerateDraft(ctx context.Context, title string) (*recipe.Draft, error) {
	catalog, err := s.ingredients.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(catalog))
	for i, ing := range catalog {
		names[i] = ing.Name
	}

	draft, err := s.generator.GenerateDraft(ctx, title, names)
	if err != nil {
		s.logger.Error("draft generation failed",
			zap.String("title", title),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("draft generated", zap.String("title", title))
	return draft, nil
}
