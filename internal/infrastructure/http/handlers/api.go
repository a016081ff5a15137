// Package handlers provides the HTTP handlers for the JSON API.
//
// Responses follow a single envelope convention: failures are always
// {"success": false, "message": "..."} with a localized message, successes
// carry "success": true plus endpoint-specific payload fields. Catalog
// reads (recipe and ingredient listings) return bare JSON values without
// the envelope.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/greenplate/greenplate/internal/domain/recipe"
	apperrors "github.com/greenplate/greenplate/pkg/errors"
	"go.uber.org/zap"
)

// APIResponse is the common response envelope
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// IngredientResponse represents an ingredient in API responses
type IngredientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"created_at"`
}

// RecipeIngredientResponse is the trimmed ingredient shape embedded in recipes
type RecipeIngredientResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// RecipeResponse represents a recipe in API responses. Recipe is the body
// text; the field name is historical and clients depend on it.
type RecipeResponse struct {
	ID               int64                      `json:"id"`
	Title            string                     `json:"title"`
	ShortDescription string                     `json:"shortDescription"`
	Recipe           string                     `json:"recipe"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	Time             string                     `json:"time"`
	Difficulty       string                     `json:"difficulty"`
	Image            string                     `json:"image"`
}

func toRecipeResponse(r *recipe.Recipe) RecipeResponse {
	ingredients := make([]RecipeIngredientResponse, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		ingredients[i] = RecipeIngredientResponse{ID: ing.ID, Name: ing.Name, Icon: ing.Icon}
	}
	return RecipeResponse{
		ID:               r.ID,
		Title:            r.Title,
		ShortDescription: r.ShortDescription,
		Recipe:           r.Body,
		Ingredients:      ingredients,
		Time:             r.Time,
		Difficulty:       r.Difficulty,
		Image:            r.Image,
	}
}

func toIngredientResponse(ing recipe.Ingredient) IngredientResponse {
	return IngredientResponse{ID: ing.ID, Name: ing.Name, Icon: ing.Icon, CreatedAt: ing.CreatedAt}
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, logger *zap.Logger, status int, message string) {
	writeJSON(w, logger, status, APIResponse{Success: false, Message: message})
}

// writeAppError maps an application error onto the envelope. The fallback
// message covers internal and database failures; not-found and conflict get
// the endpoint's localized message via the messages map, keyed by code.
func writeAppError(w http.ResponseWriter, logger *zap.Logger, err error, messages map[apperrors.ErrorCode]string, fallback string) {
	appErr := apperrors.Wrap(err, "unexpected error")

	message, ok := messages[appErr.Code]
	if !ok {
		message = fallback
	}

	status := appErr.StatusCode()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("code", string(appErr.Code)),
			zap.Error(appErr),
		)
	}
	writeError(w, logger, status, message)
}
