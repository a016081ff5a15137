// Package ingredient provides the application layer for the ingredient catalog.
package ingredient

import (
	"context"

	"github.com/greenplate/greenplate/internal/domain/recipe"
	"github.com/greenplate/greenplate/internal/ports/outbound"
	"go.uber.org/zap"
)

const defaultIcon = "🥗"

// Service implements the ingredient catalog use cases
type Service struct {
	ingredients outbound.IngredientRepository
	logger      *zap.Logger
}

// NewService creates a new ingredient service
func NewService(ingredients outbound.IngredientRepository, logger *zap.Logger) *Service {
	return &Service{
		ingredients: ingredients,
		logger:      logger.Named("ingredient-service"),
	}
}

// List returns every ingredient, newest first
func (s *Service) List(ctx context.Context) ([]recipe.Ingredient, error) {
	return s.ingredients.FindAll(ctx)
}

// Create adds an ingredient, defaulting the icon when none is given
func (s *Service) Create(ctx context.Context, ing recipe.Ingredient) (*recipe.Ingredient, error) {
	if ing.Icon == "" {
		ing.Icon = defaultIcon
	}
	if err := s.ingredients.Create(ctx, ing); err != nil {
		return nil, err
	}
	s.logger.Info("ingredient created", zap.String("ingredient_id", ing.ID))
	return &ing, nil
}

// Delete removes an ingredient
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.ingredients.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("ingredient deleted", zap.String("ingredient_id", id))
	return nil
}
