package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/greenplate/greenplate/internal/application/user"
	apperrors "github.com/greenplate/greenplate/pkg/errors"
	"go.uber.org/zap"
)

// AuthAPIHandlers handles login and signup requests
type AuthAPIHandlers struct {
	userService *user.Service
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewAuthAPIHandlers creates a new authentication API handlers instance
func NewAuthAPIHandlers(userService *user.Service, logger *zap.Logger) *AuthAPIHandlers {
	return &AuthAPIHandlers{
		userService: userService,
		validate:    validator.New(),
		logger:      logger,
	}
}

// LoginResponse carries the session token and the logged-in identity
type LoginResponse struct {
	Success bool          `json:"success"`
	Token   string        `json:"token,omitempty"`
	User    *UserResponse `json:"user,omitempty"`
}

// UserResponse represents the member identity in API responses
type UserResponse struct {
	MemberID string `json:"member_id"`
	Name     string `json:"name"`
	IsAdmin  bool   `json:"is_admin"`
}

// Login handles POST /api/login
func (h *AuthAPIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var cmd user.LoginCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "아이디와 비밀번호를 입력해주세요.")
		return
	}
	if err := h.validate.Struct(cmd); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "아이디와 비밀번호를 입력해주세요.")
		return
	}

	result, err := h.userService.Login(r.Context(), cmd)
	if err != nil {
		// An unknown handle reports 401 here, not 404: the login form
		// treats both failure modes as credential errors.
		if apperrors.Is(err, apperrors.CodeNotFound) {
			writeError(w, h.logger, http.StatusUnauthorized, "존재하지 않는 아이디입니다.")
			return
		}
		writeAppError(w, h.logger, err, map[apperrors.ErrorCode]string{
			apperrors.CodeUnauthorized: "비밀번호가 일치하지 않습니다.",
		}, "서버 오류가 발생했습니다.")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, LoginResponse{
		Success: true,
		Token:   result.Token,
		User: &UserResponse{
			MemberID: result.MemberID,
			Name:     result.Name,
			IsAdmin:  result.IsAdmin,
		},
	})
}

// Signup handles POST /api/signup
func (h *AuthAPIHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	var cmd user.SignupCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "모든 필드를 입력해주세요.")
		return
	}
	if err := h.validate.Struct(cmd); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "모든 필드를 입력해주세요.")
		return
	}

	if err := h.userService.Signup(r.Context(), cmd); err != nil {
		writeAppError(w, h.logger, err, map[apperrors.ErrorCode]string{
			apperrors.CodeConflict: "이미 존재하는 아이디입니다.",
		}, "회원가입 중 오류가 발생했습니다.")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{Success: true})
}
