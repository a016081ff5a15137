package gorm

import (
	"context"
	"errors"

	"github.com/greenplate/greenplate/internal/domain/recipe"
	"github.com/greenplate/greenplate/internal/ports/outbound"
	apperrors "github.com/greenplate/greenplate/pkg/errors"
	"gorm.io/gorm"
)

// RecipeRepository implements the recipe repository interface using GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) outbound.RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create inserts a recipe and its ingredient associations in one transaction
func (r *RecipeRepository) Create(ctx context.Context, in outbound.RecipeInput) (*recipe.Recipe, error) {
	model := &RecipeModel{
		Title:            in.Title,
		ShortDescription: in.ShortDescription,
		Recipe:           in.Body,
		Time:             in.Time,
		Difficulty:       in.Difficulty,
		Image:            in.Image,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		return insertAssociations(tx, model.ID, in.IngredientIDs)
	})
	if err != nil {
		return nil, apperrors.NewDatabase("failed to create recipe", "insert recipe", err)
	}

	return r.FindByID(ctx, model.ID)
}

// Update rewrites a recipe's attributes and replaces its full association
// set from the submitted list. The row update, the association delete and
// the reinsert commit together or not at all.
func (r *RecipeRepository) Update(ctx context.Context, id int64, in outbound.RecipeInput) (*recipe.Recipe, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing RecipeModel
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"title":             in.Title,
			"short_description": in.ShortDescription,
			"recipe":            in.Body,
			"time":              in.Time,
			"difficulty":        in.Difficulty,
			"image":             in.Image,
		}
		if err := tx.Model(&RecipeModel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Delete(&RecipeIngredientModel{}, "recipe_id = ?", id).Error; err != nil {
			return err
		}
		return insertAssociations(tx, id, in.IngredientIDs)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("recipe not found")
		}
		return nil, apperrors.NewDatabase("failed to update recipe", "update recipe", err)
	}

	return r.FindByID(ctx, id)
}

// Delete removes a recipe; associations and favorites cascade away
func (r *RecipeRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&RecipeModel{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.NewDatabase("failed to delete recipe", "delete recipe", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("recipe not found")
	}
	return nil
}

// FindByID loads a single recipe with its ingredient list
func (r *RecipeRepository) FindByID(ctx context.Context, id int64) (*recipe.Recipe, error) {
	var model RecipeModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("recipe not found")
		}
		return nil, apperrors.NewDatabase("failed to load recipe", "select recipe", result.Error)
	}

	byRecipe, err := r.loadIngredients(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	return ModelToRecipe(&model, byRecipe[id]), nil
}

// FindAll returns every recipe, newest first, each with its ingredient list
func (r *RecipeRepository) FindAll(ctx context.Context) ([]recipe.Recipe, error) {
	var models []RecipeModel

	result := r.db.WithContext(ctx).Order("created_at DESC").Find(&models)
	if result.Error != nil {
		return nil, apperrors.NewDatabase("failed to list recipes", "select recipes", result.Error)
	}

	ids := make([]int64, len(models))
	for i, m := range models {
		ids[i] = m.ID
	}
	byRecipe, err := r.loadIngredients(ctx, ids)
	if err != nil {
		return nil, err
	}

	recipes := make([]recipe.Recipe, len(models))
	for i := range models {
		recipes[i] = *ModelToRecipe(&models[i], byRecipe[models[i].ID])
	}
	return recipes, nil
}

// loadIngredients hydrates ingredient lists for a set of recipes in one
// joined query, bucketed by recipe id
func (r *RecipeRepository) loadIngredients(ctx context.Context, recipeIDs []int64) (map[int64][]recipe.Ingredient, error) {
	byRecipe := make(map[int64][]recipe.Ingredient, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return byRecipe, nil
	}

	var rows []struct {
		IngredientModel
		RecipeID int64
	}
	result := r.db.WithContext(ctx).
		Table("t_ingredient").
		Select("t_ingredient.*, t_recipe_ingredient.recipe_id").
		Joins("JOIN t_recipe_ingredient ON t_recipe_ingredient.ingredient_id = t_ingredient.id").
		Where("t_recipe_ingredient.recipe_id IN ?", recipeIDs).
		Scan(&rows)
	if result.Error != nil {
		return nil, apperrors.NewDatabase("failed to load ingredients", "select recipe ingredients", result.Error)
	}

	for _, row := range rows {
		byRecipe[row.RecipeID] = append(byRecipe[row.RecipeID], ModelToIngredient(&row.IngredientModel))
	}
	return byRecipe, nil
}

func insertAssociations(tx *gorm.DB, recipeID int64, ingredientIDs []string) error {
	if len(ingredientIDs) == 0 {
		return nil
	}
	rows := make([]RecipeIngredientModel, len(ingredientIDs))
	for i, ingID := range ingredientIDs {
		rows[i] = RecipeIngredientModel{RecipeID: recipeID, IngredientID: ingID}
	}
	return tx.Create(&rows).Error
}
