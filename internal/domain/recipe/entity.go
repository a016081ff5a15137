// Package recipe contains the catalog domain types: recipes, the
// ingredients they reference, and the favorite relationship.
package recipe

import "time"

// Recipe is a catalog entry. Ingredients carries the hydrated association
// list; mutation of that list is full-replace, not incremental.
type Recipe struct {
	ID               int64
	Title            string
	ShortDescription string
	Body             string
	Time             string
	Difficulty       string
	Image            string
	Ingredients      []Ingredient
	CreatedAt        time.Time
}

// Ingredient is a filterable catalog ingredient with a caller-chosen
// identifier (e.g. "carrot") and a display icon.
type Ingredient struct {
	ID        string
	Name      string
	Icon      string
	CreatedAt time.Time
}

// Favorite marks a recipe as favorited by a member. Existence alone carries
// the meaning; at most one row exists per (member, recipe) pair.
type Favorite struct {
	MemberID  string
	RecipeID  int64
	CreatedAt time.Time
}

// Draft is AI-generated recipe content offered to an admin as a starting
// point for a new catalog entry. Ingredient names reference the catalog by
// name, not id, since the model is free to suggest anything.
type Draft struct {
	ShortDescription string   `json:"shortDescription"`
	Body             string   `json:"recipe"`
	Time             string   `json:"time"`
	Difficulty       string   `json:"difficulty"`
	Ingredients      []string `json:"ingredients"`
}
