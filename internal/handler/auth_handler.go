package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/ShareBnB/internal/auth"
	"github.com/GoArmGo/ShareBnB/internal/usecase"
)

// AuthHandler — обработчик HTTP-запросов регистрации и входа.
type AuthHandler struct {
	userUseCase usecase.UserUseCase
	tokens      *auth.TokenService
	logger      *slog.Logger
}

func NewAuthHandler(uc usecase.UserUseCase, tokens *auth.TokenService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		userUseCase: uc,
		tokens:      tokens,
		logger:      logger,
	}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register — POST /auth/register: создает пользователя и возвращает токен.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input usecase.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed JSON body", h.logger)
		return
	}
	if input.Username == "" || input.Password == "" {
		respondWithError(w, http.StatusBadRequest, "username and password are required", h.logger)
		return
	}

	user, err := h.userUseCase.Register(r.Context(), input)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	token, err := h.tokens.Issue(user.Username)
	if err != nil {
		h.logger.Error("failed to issue token", "username", user.Username, "error", err)
		respondWithError(w, http.StatusInternalServerError, "internal server error", h.logger)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{"token": token, "user": user}, h.logger)
}

// Token — POST /auth/token: проверяет учетные данные и возвращает токен.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed JSON body", h.logger)
		return
	}

	user, err := h.userUseCase.Authenticate(r.Context(), creds.Username, creds.Password)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	token, err := h.tokens.Issue(user.Username)
	if err != nil {
		h.logger.Error("failed to issue token", "username", user.Username, "error", err)
		respondWithError(w, http.StatusInternalServerError, "internal server error", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"token": token, "user": user}, h.logger)
}
