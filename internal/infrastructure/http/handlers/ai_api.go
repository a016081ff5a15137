package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/greenplate/greenplate/internal/application/ai"
	"github.com/greenplate/greenplate/internal/domain/recipe"
	"github.com/greenplate/greenplate/internal/infrastructure/ai/openai"
	"go.uber.org/zap"
)

// AIAPIHandlers handles AI recipe draft requests
type AIAPIHandlers struct {
	aiService *ai.Service
	logger    *zap.Logger
}

// NewAIAPIHandlers creates a new AI API handlers instance
func NewAIAPIHandlers(aiService *ai.Service, logger *zap.Logger) *AIAPIHandlers {
	return &AIAPIHandlers{
		aiService: aiService,
		logger:    logger,
	}
}

// GenerateRequest carries the dish title to draft a recipe for
type GenerateRequest struct {
	Title string `json:"title"`
}

// GenerateResponse wraps the generated draft in the success envelope
type GenerateResponse struct {
	Success bool          `json:"success"`
	Recipe  *recipe.Draft `json:"recipe"`
}

// Generate handles POST /api/recipes/generate-ai
func (h *AIAPIHandlers) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "레시피 제목을 입력해주세요.")
		return
	}
	if req.Title == "" {
		writeError(w, h.logger, http.StatusBadRequest, "레시피 제목을 입력해주세요.")
		return
	}

	draft, err := h.aiService.GenerateDraft(r.Context(), req.Title)
	if err != nil {
		if errors.Is(err, openai.ErrNoAPIKey) {
			writeError(w, h.logger, http.StatusInternalServerError, "OpenAI API 키가 설정되지 않았습니다.")
			return
		}
		writeAppError(w, h.logger, err, nil, "AI 레시피 생성 중 오류가 발생했습니다.")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, GenerateResponse{Success: true, Recipe: draft})
}
