package gorm

import (
	"github.com/greenplate/greenplate/internal/domain/member"
	"github.com/greenplate/greenplate/internal/domain/recipe"
)

// MemberToModel converts a member entity to its GORM model
func MemberToModel(m *member.Member) *MemberModel {
	deleted := "F"
	if m.IsDeleted() {
		deleted = "T"
	}
	return &MemberModel{
		MemberID:  m.ID(),
		Password:  m.Credential(),
		Name:      m.EncryptedName(),
		Tel:       m.Tel(),
		IsAdmin:   flag(m.IsAdmin()),
		IsDelete:  deleted,
		CreatedAt: m.CreatedAt(),
	}
}

// ModelToMember converts a GORM model to a member entity
func ModelToMember(m *MemberModel) *member.Member {
	return member.Reconstruct(
		m.MemberID,
		m.Password,
		m.Name,
		m.Tel,
		truthy(m.IsAdmin),
		m.IsDelete == "T",
		m.CreatedAt,
	)
}

// FavoriteToModel converts a favorite relationship to its GORM model
func FavoriteToModel(f recipe.Favorite) *FavoriteModel {
	return &FavoriteModel{
		MemberID:  f.MemberID,
		RecipeID:  f.RecipeID,
		CreatedAt: f.CreatedAt,
	}
}

// ModelToIngredient converts a GORM model to an ingredient
func ModelToIngredient(m *IngredientModel) recipe.Ingredient {
	return recipe.Ingredient{
		ID:        m.ID,
		Name:      m.Name,
		Icon:      m.Icon,
		CreatedAt: m.CreatedAt,
	}
}

// ModelToRecipe converts a GORM model plus its hydrated ingredient list
func ModelToRecipe(m *RecipeModel, ingredients []recipe.Ingredient) *recipe.Recipe {
	if ingredients == nil {
		ingredients = []recipe.Ingredient{}
	}
	return &recipe.Recipe{
		ID:               m.ID,
		Title:            m.Title,
		ShortDescription: m.ShortDescription,
		Body:             m.Recipe,
		Time:             m.Time,
		Difficulty:       m.Difficulty,
		Image:            m.Image,
		Ingredients:      ingredients,
		CreatedAt:        m.CreatedAt,
	}
}
