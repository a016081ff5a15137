// Package gorm provides GORM model definitions and repository
// implementations for the application.
package gorm

import (
	"strings"
	"time"
)

// MemberModel represents the GORM model for member accounts. Password holds
// the client-computed digest in whichever encoding the row was written with
// (raw digest bytes or hex text); Name holds the encrypted display name.
// IsAdmin and IsDelete are text columns for compatibility with the legacy
// data ("1"/"0", "T"/"F").
type MemberModel struct {
	MemberID  string `gorm:"column:member_id;type:varchar(50);primaryKey"`
	Password  []byte `gorm:"type:bytes;not null"`
	Name      string `gorm:"type:varchar(255);not null"`
	Tel       string `gorm:"type:varchar(20)"`
	IsAdmin   string `gorm:"column:is_admin;type:varchar(5);default:'0'"`
	IsDelete  string `gorm:"column:is_delete;type:varchar(1);default:'F'"`
	CreatedAt time.Time
}

// IngredientModel represents the GORM model for catalog ingredients
type IngredientModel struct {
	ID        string    `gorm:"type:varchar(50);primaryKey"`
	Name      string    `gorm:"type:varchar(50);not null"`
	Icon      string    `gorm:"type:varchar(10)"`
	CreatedAt time.Time `gorm:"index"`
}

// RecipeModel represents the GORM model for recipes
type RecipeModel struct {
	ID               int64     `gorm:"primaryKey;autoIncrement"`
	Title            string    `gorm:"type:varchar(100);not null"`
	ShortDescription string    `gorm:"column:short_description;type:varchar(255)"`
	Recipe           string    `gorm:"column:recipe;type:text"`
	Time             string    `gorm:"type:varchar(50)"`
	Difficulty       string    `gorm:"type:varchar(20)"`
	Image            string    `gorm:"type:varchar(255)"`
	CreatedAt        time.Time `gorm:"index"`
}

// RecipeIngredientModel is the association row between a recipe and an
// ingredient. Updates replace the full set for a recipe.
type RecipeIngredientModel struct {
	RecipeID     int64  `gorm:"primaryKey"`
	IngredientID string `gorm:"type:varchar(50);primaryKey"`

	Recipe     RecipeModel     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Ingredient IngredientModel `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
}

// FavoriteModel represents the favorite relationship. The composite primary
// key is the storage-level guarantee behind the one-row-per-pair invariant:
// a racing duplicate insert fails loudly instead of corrupting state.
type FavoriteModel struct {
	MemberID  string `gorm:"column:user_id;type:varchar(50);primaryKey"`
	RecipeID  int64  `gorm:"primaryKey"`
	CreatedAt time.Time

	Member MemberModel `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE"`
	Recipe RecipeModel `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// TableName methods keep the legacy table names
func (MemberModel) TableName() string           { return "t_member" }
func (IngredientModel) TableName() string       { return "t_ingredient" }
func (RecipeModel) TableName() string           { return "t_recipe" }
func (RecipeIngredientModel) TableName() string { return "t_recipe_ingredient" }
func (FavoriteModel) TableName() string         { return "t_favorite" }

// truthy interprets the legacy admin flag encodings
func truthy(v string) bool {
	return v == "1" || strings.EqualFold(v, "true") || strings.EqualFold(v, "t")
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
