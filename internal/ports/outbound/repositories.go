// Package outbound defines the interfaces for external dependencies
// following the ports and adapters pattern.
package outbound

import (
	"context"

	"github.com/greenplate/greenplate/internal/domain/member"
	"github.com/greenplate/greenplate/internal/domain/recipe"
)

// MemberRepository handles member account persistence
type MemberRepository interface {
	Create(ctx context.Context, m *member.Member) error
	FindByID(ctx context.Context, id string) (*member.Member, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// RecipeInput carries the mutable recipe attributes for create and update.
// IngredientIDs is the full association set; updates replace the stored set
// with it wholesale.
type RecipeInput struct {
	Title            string
	ShortDescription string
	Body             string
	Time             string
	Difficulty       string
	Image            string
	IngredientIDs    []string
}

// RecipeRepository handles recipe persistence
type RecipeRepository interface {
	Create(ctx context.Context, in RecipeInput) (*recipe.Recipe, error)
	Update(ctx context.Context, id int64, in RecipeInput) (*recipe.Recipe, error)
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*recipe.Recipe, error)
	FindAll(ctx context.Context) ([]recipe.Recipe, error)
}

// IngredientRepository handles ingredient persistence
type IngredientRepository interface {
	Create(ctx context.Context, ing recipe.Ingredient) error
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]recipe.Ingredient, error)
}

// FavoriteRepository handles the favorite relationship. Toggle runs its
// check-then-act inside a single transaction so duplicate requests cannot
// corrupt the one-row-per-pair invariant.
type FavoriteRepository interface {
	Toggle(ctx context.Context, memberID string, recipeID int64) (isFavorite bool, err error)
	ListRecipeIDs(ctx context.Context, memberID string) ([]int64, error)
}

// AIService generates recipe content from a dish title
type AIService interface {
	GenerateDraft(ctx context.Context, title string, availableIngredients []string) (*recipe.Draft, error)
}
