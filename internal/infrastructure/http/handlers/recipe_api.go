package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/greenplate/greenplate/internal/application/recipe"
	"github.com/greenplate/greenplate/internal/infrastructure/http/middleware"
	"github.com/greenplate/greenplate/internal/infrastructure/storage"
	"github.com/greenplate/greenplate/internal/ports/outbound"
	apperrors "github.com/greenplate/greenplate/pkg/errors"
	"go.uber.org/zap"
)

// multipartMaxMemory bounds the in-memory portion of form parsing; larger
// files spill to temp storage before the size limit check rejects them.
const multipartMaxMemory = 10 << 20

// RecipeAPIHandlers handles recipe catalog and favorite requests
type RecipeAPIHandlers struct {
	recipeService *recipe.Service
	store         *storage.LocalStore
	logger        *zap.Logger
}

// NewRecipeAPIHandlers creates a new recipe API handlers instance
func NewRecipeAPIHandlers(recipeService *recipe.Service, store *storage.LocalStore, logger *zap.Logger) *RecipeAPIHandlers {
	return &RecipeAPIHandlers{
		recipeService: recipeService,
		store:         store,
		logger:        logger,
	}
}

// FavoriteToggleResponse reports the favorite state after a toggle
type FavoriteToggleResponse struct {
	Success    bool `json:"success"`
	IsFavorite bool `json:"isFavorite"`
}

// FavoriteListResponse carries the caller's favorited recipe ids
type FavoriteListResponse struct {
	Success   bool    `json:"success"`
	Favorites []int64 `json:"favorites"`
}

// RecipeEnvelope wraps a single recipe in the success envelope
type RecipeEnvelope struct {
	Success bool           `json:"success"`
	Recipe  RecipeResponse `json:"recipe"`
}

// List handles GET /api/recipes
func (h *RecipeAPIHandlers) List(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.recipeService.List(r.Context())
	if err != nil {
		writeAppError(w, h.logger, err, nil, "레시피를 불러오는 중 오류가 발생했습니다.")
		return
	}

	responses := make([]RecipeResponse, len(recipes))
	for i := range recipes {
		responses[i] = toRecipeResponse(&recipes[i])
	}
	writeJSON(w, h.logger, http.StatusOK, responses)
}

// Get handles GET /api/recipes/{id}
func (h *RecipeAPIHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, err := recipeID(r)
	if err != nil {
		writeError(w, h.logger, http.StatusNotFound, "레시피를 찾을 수 없습니다.")
		return
	}

	rec, err := h.recipeService.Get(r.Context(), id)
	if err != nil {
		writeAppError(w, h.logger, err, map[apperrors.ErrorCode]string{
			apperrors.CodeNotFound: "레시피를 찾을 수 없습니다.",
		}, "레시피를 불러오는 중 오류가 발생했습니다.")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toRecipeResponse(rec))
}

// Create handles POST /api/recipes
func (h *RecipeAPIHandlers) Create(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r, "관리자만 레시피를 등록할 수 있습니다.") {
		return
	}

	input, ok := h.parseRecipeForm(w, r)
	if !ok {
		return
	}

	created, err := h.recipeService.Create(r.Context(), input)
	if err != nil {
		writeAppError(w, h.logger, err, nil, "레시피 등록 중 오류가 발생했습니다.")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, RecipeEnvelope{Success: true, Recipe: toRecipeResponse(created)})
}

// Update handles PUT /api/recipes/{id}
func (h *RecipeAPIHandlers) Update(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r, "관리자만 레시피를 수정할 수 있습니다.") {
		return
	}

	id, err := recipeID(r)
	if err != nil {
		writeError(w, h.logger, http.StatusNotFound, "레시피를 찾을 수 없습니다.")
		return
	}

	input, ok := h.parseRecipeForm(w, r)
	if !ok {
		return
	}

	updated, err := h.recipeService.Update(r.Context(), id, input)
	if err != nil {
		writeAppError(w, h.logger, err, map[apperrors.ErrorCode]string{
			apperrors.CodeNotFound: "레시피를 찾을 수 없습니다.",
		}, "레시피 수정 중 오류가 발생했습니다.")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, RecipeEnvelope{Success: true, Recipe: toRecipeResponse(updated)})
}

// Delete handles DELETE /api/recipes/{id}
func (h *RecipeAPIHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r, "관리자만 레시피를 삭제할 수 있습니다.") {
		return
	}

	id, err := recipeID(r)
	if err != nil {
		writeError(w, h.logger, http.StatusNotFound, "레시피를 찾을 수 없습니다.")
		return
	}

	if err := h.recipeService.Delete(r.Context(), id); err != nil {
		writeAppError(w, h.logger, err, map[apperrors.ErrorCode]string{
			apperrors.CodeNotFound: "레시피를 찾을 수 없습니다.",
		}, "레시피 삭제 중 오류가 발생했습니다.")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, APIResponse{Success: true})
}

// ToggleFavorite handles POST /api/recipes/{id}/favorite
func (h *RecipeAPIHandlers) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, "인증이 필요합니다.")
		return
	}

	id, err := recipeID(r)
	if err != nil {
		writeError(w, h.logger, http.StatusNotFound, "레시피를 찾을 수 없습니다.")
		return
	}

	isFavorite, err := h.recipeService.ToggleFavorite(r.Context(), claims.MemberID, id)
	if err != nil {
		writeAppError(w, h.logger, err, nil, "찜하기 처리 중 오류가 발생했습니다.")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, FavoriteToggleResponse{Success: true, IsFavorite: isFavorite})
}

// ListFavorites handles GET /api/users/favorites
func (h *RecipeAPIHandlers) ListFavorites(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, "인증이 필요합니다.")
		return
	}

	favorites, err := h.recipeService.ListFavorites(r.Context(), claims.MemberID)
	if err != nil {
		writeAppError(w, h.logger, err, nil, "찜한 목록을 불러오는 중 오류가 발생했습니다.")
		return
	}
	if favorites == nil {
		favorites = []int64{}
	}
	writeJSON(w, h.logger, http.StatusOK, FavoriteListResponse{Success: true, Favorites: favorites})
}

// requireAdmin enforces the admin flag on mutation endpoints. The failure
// message names the attempted operation.
func (h *RecipeAPIHandlers) requireAdmin(w http.ResponseWriter, r *http.Request, message string) bool {
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

// parseRecipeForm reads the multipart recipe form, storing an uploaded
// image when one is attached. It writes the error response itself and
// reports success through the second return value.
func (h *RecipeAPIHandlers) parseRecipeForm(w http.ResponseWriter, r *http.Request) (outbound.RecipeInput, bool) {
	var input outbound.RecipeInput

	if err := r.ParseMultipartForm(multipartMaxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		writeError(w, h.logger, http.StatusBadRequest, "필수 항목을 입력해주세요.")
		return input, false
	}

	input.Title = r.FormValue("title")
	input.ShortDescription = r.FormValue("shortDescription")
	input.Body = r.FormValue("recipe")
	input.Time = r.FormValue("time")
	input.Difficulty = r.FormValue("difficulty")

	if input.Title == "" || input.ShortDescription == "" || input.Body == "" {
		writeError(w, h.logger, http.StatusBadRequest, "필수 항목을 입력해주세요.")
		return input, false
	}

	if raw := r.FormValue("ingredientIds"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &input.IngredientIDs); err != nil {
			writeError(w, h.logger, http.StatusBadRequest, "필수 항목을 입력해주세요.")
			return input, false
		}
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			writeError(w, h.logger, http.StatusBadRequest, "필수 항목을 입력해주세요.")
			return input, false
		}
		return input, true
	}
	defer file.Close()

	path, err := h.store.SaveImage(file, header)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrFileTooLarge):
			writeError(w, h.logger, http.StatusBadRequest, "파일 크기가 너무 큽니다. (최대 10MB)")
		case errors.Is(err, storage.ErrNotAnImage):
			writeError(w, h.logger, http.StatusBadRequest, "이미지 파일만 업로드 가능합니다.")
		default:
			h.logger.Error("image upload failed", zap.Error(err))
			writeError(w, h.logger, http.StatusInternalServerError, "서버 내부 오류가 발생했습니다.")
		}
		return input, false
	}
	input.Image = path

	return input, true
}

func recipeID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
