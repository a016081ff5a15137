package gorm

import (
	"context"
	"testing"
	"time"

	"github.com/greenplate/greenplate/internal/domain/member"
	"github.com/greenplate/greenplate/internal/domain/recipe"
	"github.com/greenplate/greenplate/internal/ports/outbound"
	apperrors "github.com/greenplate/greenplate/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB opens an isolated in-memory database per test. The pool is
// pinned to one connection: every ":memory:" connection is its own database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, AutoMigrate(db))
	return db
}

func seedMember(t *testing.T, db *gorm.DB, id string) {
	t.Helper()
	m := member.New(id, "0123abcd", "encrypted", "010-0000-0000")
	require.NoError(t, NewMemberRepository(db).Create(context.Background(), m))
}

func seedRecipe(t *testing.T, db *gorm.DB, title string, ingredientIDs ...string) *recipe.Recipe {
	t.Helper()
	created, err := NewRecipeRepository(db).Create(context.Background(), outbound.RecipeInput{
		Title:            title,
		ShortDescription: "short",
		Body:             "body",
		Time:             "30분",
		Difficulty:       "보통",
		IngredientIDs:    ingredientIDs,
	})
	require.NoError(t, err)
	return created
}

func seedIngredient(t *testing.T, db *gorm.DB, id, name string) {
	t.Helper()
	err := NewIngredientRepository(db).Create(context.Background(), recipe.Ingredient{
		ID:   id,
		Name: name,
		Icon: "🥗",
	})
	require.NoError(t, err)
}

func TestMemberRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	t.Run("CreateAndFind", func(t *testing.T) {
		m := member.New("alice", "abcd1234", "encrypted-name", "010-1234-5678")
		require.NoError(t, repo.Create(ctx, m))

		found, err := repo.FindByID(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", found.ID())
		assert.Equal(t, []byte("abcd1234"), found.Credential())
		assert.Equal(t, "encrypted-name", found.EncryptedName())
		assert.False(t, found.IsAdmin())
		assert.False(t, found.IsDeleted())
	})

	t.Run("DuplicateHandleConflicts", func(t *testing.T) {
		err := repo.Create(ctx, member.New("alice", "ffff", "other", "010"))
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
	})

	t.Run("Exists", func(t *testing.T) {
		taken, err := repo.Exists(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, taken)

		taken, err = repo.Exists(ctx, "nobody")
		require.NoError(t, err)
		assert.False(t, taken)
	})

	t.Run("FindUnknownIsNotFound", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "nobody")
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
	})

	t.Run("AdminFlagRoundTrip", func(t *testing.T) {
		require.NoError(t, db.Create(&MemberModel{
			MemberID: "boss",
			Password: []byte("abcd"),
			Name:     "enc",
			IsAdmin:  "1",
			IsDelete: "F",
		}).Error)

		found, err := repo.FindByID(ctx, "boss")
		require.NoError(t, err)
		assert.True(t, found.IsAdmin())
	})
}

func TestFavoriteToModel(t *testing.T) {
	now := time.Now()
	m := FavoriteToModel(recipe.Favorite{MemberID: "alice", RecipeID: 7, CreatedAt: now})

	assert.Equal(t, "alice", m.MemberID)
	assert.Equal(t, int64(7), m.RecipeID)
	assert.Equal(t, now, m.CreatedAt)
}

func TestFavoriteRepositoryToggle(t *testing.T) {
	db := openTestDB(t)
	repo := NewFavoriteRepository(db)
	ctx := context.Background()

	seedMember(t, db, "alice")
	rec := seedRecipe(t, db, "kimchi stew")

	isFavorite, err := repo.Toggle(ctx, "alice", rec.ID)
	require.NoError(t, err)
	assert.True(t, isFavorite, "first toggle adds the favorite")

	ids, err := repo.ListRecipeIDs(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []int64{rec.ID}, ids)

	isFavorite, err = repo.Toggle(ctx, "alice", rec.ID)
	require.NoError(t, err)
	assert.False(t, isFavorite, "second toggle removes it")

	ids, err = repo.ListRecipeIDs(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, ids)

	// A third toggle starts a fresh cycle, not an error.
	isFavorite, err = repo.Toggle(ctx, "alice", rec.ID)
	require.NoError(t, err)
	assert.True(t, isFavorite)
}

func TestFavoriteRepositoryPerMember(t *testing.T) {
	db := openTestDB(t)
	repo := NewFavoriteRepository(db)
	ctx := context.Background()

	seedMember(t, db, "alice")
	seedMember(t, db, "bob")
	rec := seedRecipe(t, db, "bibimbap")

	_, err := repo.Toggle(ctx, "alice", rec.ID)
	require.NoError(t, err)

	ids, err := repo.ListRecipeIDs(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, ids, "favorites do not leak between members")
}

func TestRecipeRepositoryCreateAndFind(t *testing.T) {
	db := openTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	seedIngredient(t, db, "carrot", "당근")
	seedIngredient(t, db, "onion", "양파")

	created := seedRecipe(t, db, "kimchi stew", "carrot", "onion")
	assert.NotZero(t, created.ID)
	assert.Len(t, created.Ingredients, 2)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "kimchi stew", found.Title)
	assert.Equal(t, "body", found.Body)

	gotIDs := make([]string, len(found.Ingredients))
	for i, ing := range found.Ingredients {
		gotIDs[i] = ing.ID
	}
	assert.ElementsMatch(t, []string{"carrot", "onion"}, gotIDs)
}

func TestRecipeRepositoryUpdateReplacesAssociations(t *testing.T) {
	db := openTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	seedIngredient(t, db, "carrot", "당근")
	seedIngredient(t, db, "onion", "양파")
	seedIngredient(t, db, "potato", "감자")

	created := seedRecipe(t, db, "soup", "carrot", "onion")

	updated, err := repo.Update(ctx, created.ID, outbound.RecipeInput{
		Title:            "hearty soup",
		ShortDescription: "new short",
		Body:             "new body",
		Time:             "45분",
		Difficulty:       "어려움",
		Image:            "/uploads/new.png",
		IngredientIDs:    []string{"potato"},
	})
	require.NoError(t, err)

	assert.Equal(t, "hearty soup", updated.Title)
	assert.Equal(t, "/uploads/new.png", updated.Image)
	require.Len(t, updated.Ingredients, 1, "the old association set is fully replaced")
	assert.Equal(t, "potato", updated.Ingredients[0].ID)

	var count int64
	require.NoError(t, db.Model(&RecipeIngredientModel{}).Where("recipe_id = ?", created.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRecipeRepositoryUpdateUnknownIsNotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewRecipeRepository(db)

	_, err := repo.Update(context.Background(), 9999, outbound.RecipeInput{
		Title:            "x",
		ShortDescription: "x",
		Body:             "x",
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}

func TestRecipeRepositoryDelete(t *testing.T) {
	db := openTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	seedIngredient(t, db, "carrot", "당근")
	created := seedRecipe(t, db, "salad", "carrot")

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err := repo.FindByID(ctx, created.ID)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))

	err = repo.Delete(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}

func TestRecipeRepositoryFindAll(t *testing.T) {
	db := openTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	seedRecipe(t, db, "first")
	seedRecipe(t, db, "second")

	recipes, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	for _, rec := range recipes {
		assert.NotNil(t, rec.Ingredients, "ingredient list is hydrated, possibly empty")
	}
}

func TestIngredientRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewIngredientRepository(db)
	ctx := context.Background()

	t.Run("CreateAndList", func(t *testing.T) {
		seedIngredient(t, db, "carrot", "당근")

		ingredients, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, ingredients, 1)
		assert.Equal(t, "carrot", ingredients[0].ID)
		assert.Equal(t, "당근", ingredients[0].Name)
	})

	t.Run("DuplicateIDConflicts", func(t *testing.T) {
		err := repo.Create(ctx, recipe.Ingredient{ID: "carrot", Name: "다른당근"})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
	})

	t.Run("DeleteUnknownIsNoError", func(t *testing.T) {
		assert.NoError(t, repo.Delete(ctx, "never-existed"))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "carrot"))

		ingredients, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, ingredients)
	})
}

func TestSeedIngredients(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, SeedIngredients(ctx, db, zap.NewNop()))

	var count int64
	require.NoError(t, db.Model(&IngredientModel{}).Count(&count).Error)
	assert.EqualValues(t, 5, count)

	// Seeding is idempotent: a non-empty table is left alone.
	require.NoError(t, SeedIngredients(ctx, db, zap.NewNop()))
	require.NoError(t, db.Model(&IngredientModel{}).Count(&count).Error)
	assert.EqualValues(t, 5, count)
}
