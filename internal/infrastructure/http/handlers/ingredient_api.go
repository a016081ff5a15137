package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/greenplate/greenplate/internal/application/ingredient"
	domainrecipe "github.com/greenplate/greenplate/internal/domain/recipe"
	"github.com/greenplate/greenplate/internal/infrastructure/http/middleware"
	apperrors "github.com/greenplate/greenplate/pkg/errors"
	"go.uber.org/zap"
)

// IngredientAPIHandlers handles ingredient catalog requests
type IngredientAPIHandlers struct {
	ingredientService *ingredient.Service
	logger            *zap.Logger
}

// NewIngredientAPIHandlers creates a new ingredient API handlers instance
func NewIngredientAPIHandlers(ingredientService *ingredient.Service, logger *zap.Logger) *IngredientAPIHandlers {
	return &IngredientAPIHandlers{
		ingredientService: ingredientService,
		logger:            logger,
	}
}

// IngredientRequest represents an ingredient creation request
type IngredientRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// IngredientEnvelope wraps a single ingredient in the success envelope
type IngredientEnvelope struct {
	Success    bool                     `json:"success"`
	Ingredient RecipeIngredientResponse `json:"ingredient"`
}

// List handles GET /api/ingredients
func (h *IngredientAPIHandlers) List(w http.ResponseWriter, r *http.Request) {
	ingredients, err := h.ingredientService.List(r.Context())
	if err != nil {
		writeAppError(w, h.logger, err, nil, "식재료를 불러오는 중 오류가 발생했습니다.")
		return
	}

	responses := make([]IngredientResponse, len(ingredients))
	for i, ing := range ingredients {
		responses[i] = toIngredientResponse(ing)
	}
	writeJSON(w, h.logger, http.StatusOK, responses)
}

// Create handles POST /api/ingredients
func (h *IngredientAPIHandlers) Create(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r, "관리자만 식재료를 추가할 수 있습니다.") {
		return
	}

	var req IngredientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "필수 항목을 입력해주세요.")
		return
	}
	if req.ID == "" || req.Name == "" {
		writeError(w, h.logger, http.StatusBadRequest, "필수 항목을 입력해주세요.")
		return
	}

	created, err := h.ingredientService.Create(r.Context(), domainrecipe.Ingredient{
		ID:   req.ID,
		Name: req.Name,
		Icon: req.Icon,
	})
	if err != nil {
		writeAppError(w, h.logger, err, map[apperrors.ErrorCode]string{
			apperrors.CodeConflict: "이미 존재하는 식재료 ID입니다.",
		}, "식재료 추가 중 오류가 발생했습니다.")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, IngredientEnvelope{
		Success:    true,
		Ingredient: RecipeIngredientResponse{ID: created.ID, Name: created.Name, Icon: created.Icon},
	})
}

// Delete handles DELETE /api/ingredients/{id}
func (h *IngredientAPIHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r, "관리자만 식재료를 삭제할 수 있습니다.") {
		return
	}

	if err := h.ingredientService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeAppError(w, h.logger, err, nil, "식재료 삭제 중 오류가 발생했습니다.")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, APIResponse{Success: true})
}

func (h *IngredientAPIHandlers) requireAdmin(w http.ResponseWriter, r *http.Request, message string) bool {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, "인증이 필요합니다.")
		return false
	}
	if !claims.IsAdmin {
		writeError(w, h.logger, http.StatusForbidden, message)
		return false
	}
	return true
}
