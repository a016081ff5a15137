package gorm

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&MemberModel{},
		&IngredientModel{},
		&RecipeModel{},
		&RecipeIngredientModel{},
		&FavoriteModel{},
	)
}

// defaultIngredients seeds the catalog on first boot
var defaultIngredients = []IngredientModel{
	{ID: "carrot", Name: "당근", Icon: "🥕"},
	{ID: "kale", Name: "케일", Icon: "🥬"},
	{ID: "tomato", Name: "토마토", Icon: "🍅"},
	{ID: "potato", Name: "감자", Icon: "🥔"},
	{ID: "onion", Name: "양파", Icon: "🧅"},
}

// SeedIngredients inserts the default ingredient set when the table is
// empty. Safe to call on every startup.
func SeedIngredients(ctx context.Context, db *gorm.DB, logger *zap.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&IngredientModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if err := db.WithContext(ctx).Create(&defaultIngredients).Error; err != nil {
		return err
	}
	logger.Info("seeded default ingredients", zap.Int("count", len(defaultIngredients)))
	return nil
}
