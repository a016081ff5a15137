package gorm

import (
	"context"

	"github.com/greenplate/greenplate/internal/domain/recipe"
	"github.com/greenplate/greenplate/internal/ports/outbound"
	apperrors "github.com/greenplate/greenplate/pkg/errors"
	"gorm.io/gorm"
)

// IngredientRepository implements the ingredient repository interface using GORM
type IngredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new ingredient repository
func NewIngredientRepository(db *gorm.DB) outbound.IngredientRepository {
	return &IngredientRepository{db: db}
}

// Create inserts an ingredient; a taken id is a conflict
func (r *IngredientRepository) Create(ctx context.Context, ing recipe.Ingredient) error {
	model := &IngredientModel{
		ID:   ing.ID,
		Name: ing.Name,
		Icon: ing.Icon,
	}

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return apperrors.NewConflict("ingredient id already exists").WithCause(result.Error)
		}
		return apperrors.NewDatabase("failed to create ingredient", "insert ingredient", result.Error)
	}
	return nil
}

// Delete removes an ingredient; recipe associations cascade away. Deleting
// an unknown id is not an error, matching the endpoint's contract.
func (r *IngredientRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&IngredientModel{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.NewDatabase("failed to delete ingredient", "delete ingredient", result.Error)
	}
	return nil
}

// FindAll returns every ingredient, newest first
func (r *IngredientRepository) FindAll(ctx context.Context) ([]recipe.Ingredient, error) {
	var models []IngredientModel

	result := r.db.WithContext(ctx).Order("created_at DESC").Find(&models)
	if result.Error != nil {
		return nil, apperrors.NewDatabase("failed to list ingredients", "select ingredients", result.Error)
	}

	ingredients := make([]recipe.Ingredient, len(models))
	for i := range models {
		ingredients[i] = ModelToIngredient(&models[i])
	}
	return ingredients, nil
}
