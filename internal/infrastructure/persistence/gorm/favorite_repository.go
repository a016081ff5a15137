package gorm

import (
	"context"
	"errors"

	"github.com/greenplate/greenplate/internal/domain/recipe"
	"github.com/greenplate/greenplate/internal/ports/outbound"
	apperrors "github.com/greenplate/greenplate/pkg/errors"
	"gorm.io/gorm"
)

// FavoriteRepository implements the favorite repository interface using GORM
type FavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *gorm.DB) outbound.FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Toggle flips the favorite relationship for (memberID, recipeID). The
// check and the write run in one transaction; together with the composite
// primary key this keeps concurrent duplicate requests from double-inserting
// or double-deleting.
func (r *FavoriteRepository) Toggle(ctx context.Context, memberID string, recipeID int64) (bool, error) {
	var isFavorite bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing FavoriteModel
		result := tx.First(&existing, "user_id = ? AND recipe_id = ?", memberID, recipeID)

		switch {
		case result.Error == nil:
			if err := tx.Delete(&FavoriteModel{}, "user_id = ? AND recipe_id = ?", memberID, recipeID).Error; err != nil {
				return err
			}
			isFavorite = false
			return nil
		case errors.Is(result.Error, gorm.ErrRecordNotFound):
			fav := recipe.Favorite{MemberID: memberID, RecipeID: recipeID}
			if err := tx.Create(FavoriteToModel(fav)).Error; err != nil {
				return err
			}
			isFavorite = true
			return nil
		default:
			return result.Error
		}
	})
	if err != nil {
		return false, apperrors.NewDatabase("failed to toggle favorite", "toggle favorite", err)
	}
	return isFavorite, nil
}

// ListRecipeIDs returns the recipe ids the member has favorited, in no
// particular order
func (r *FavoriteRepository) ListRecipeIDs(ctx context.Context, memberID string) ([]int64, error) {
	ids := []int64{}

	result := r.db.WithContext(ctx).
		Model(&FavoriteModel{}).
		Where("user_id = ?", memberID).
		Pluck("recipe_id", &ids)
	if result.Error != nil {
		return nil, apperrors.NewDatabase("failed to list favorites", "select favorites", result.Error)
	}
	return ids, nil
}
