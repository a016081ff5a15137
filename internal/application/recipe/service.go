// Package recipe provides the application layer for the recipe catalog
// and the favorite relationship.
package recipe

import (
	"context"

	"github.com/greenplate/greenplate/internal/domain/recipe"
	"github.com/greenplate/greenplate/internal/ports/outbound"
	"go.uber.org/zap"
)

// Service implements the recipe catalog use cases
type Service struct {
	recipes   outbound.RecipeRepository
	favorites outbound.FavoriteRepository
	logger    *zap.Logger
}

// NewService creates a new recipe service
func NewService(
	recipes outbound.RecipeRepository,
	favorites outbound.FavoriteRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		recipes:   recipes,
		favorites: favorites,
		logger:    logger.Named("recipe-service"),
	}
}

// List returns the full catalog, newest first
func (s *Service) List(ctx context.Context) ([]recipe.Recipe, error) {
	return s.recipes.FindAll(ctx)
}

// Get returns one recipe with its ingredient list
func (s *Service) Get(ctx context.Context, id int64) (*recipe.Recipe, error) {
	return s.recipes.FindByID(ctx, id)
}

// Create adds a recipe with its ingredient associations
func (s *Service) Create(ctx context.Context, in outbound.RecipeInput) (*recipe.Recipe, error) {
	created, err := s.recipes.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info("recipe created",
		zap.Int64("recipe_id", created.ID),
		zap.String("title", created.Title),
	)
	return created, nil
}

// Update rewrites a recipe and replaces its ingredient associations with
// the submitted set. An empty Image keeps the stored one.
func (s *Service) Update(ctx context.Context, id int64, in outbound.RecipeInput) (*recipe.Recipe, error) {
	if in.Image == "" {
		existing, err := s.recipes.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		in.Image = existing.Image
	}

	updated, err := s.recipes.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info("recipe updated", zap.Int64("recipe_id", id))
	return updated, nil
}

// Delete removes a recipe; favorites and associations cascade away
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.recipes.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("recipe deleted", zap.Int64("recipe_id", id))
	return nil
}

// ToggleFavorite flips the caller's favorite relationship to the recipe
// and reports the resulting state
func (s *Service) ToggleFavorite(ctx context.Context, memberID string, recipeID int64) (bool, error) {
	isFavorite, err := s.favorites.Toggle(ctx, memberID, recipeID)
	if err != nil {
		return false, err
	}
	s.logger.Debug("favorite toggled",
		zap.String("member_id", memberID),
		zap.Int64("recipe_id", recipeID),
		zap.Bool("is_favorite", isFavorite),
	)
	return isFavorite, nil
}

// ListFavorites returns the recipe ids the member has favorited
func (s *Service) ListFavorites(ctx context.Context, memberID string) ([]int64, error) {
	return s.favorites.ListRecipeIDs(ctx, memberID)
}
