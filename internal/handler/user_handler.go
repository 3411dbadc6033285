package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/GoArmGo/ShareBnB/internal/domain"
	"github.com/GoArmGo/ShareBnB/internal/usecase"
	"github.com/go-chi/chi/v5"
)

// UserHandler — обработчик HTTP-запросов для работы с пользователями,
// бронированиями и сообщениями.
type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      *slog.Logger
}

func NewUserHandler(uc usecase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: uc,
		logger:      logger,
	}
}

// Search — GET /users?username=: поиск пользователей по части имени.
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUseCase.Search(r.Context(), r.URL.Query().Get("username"))
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"users": users}, h.logger)
}

// Get — GET /users/{username}: профиль с объявлениями и бронированиями.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.userUseCase.Get(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"user": user}, h.logger)
}

// Update — PATCH /users/{username}: частичное обновление профиля.
// Текущий пароль обязателен для повторной проверки.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd domain.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed JSON body", h.logger)
		return
	}
	if upd.Password == "" {
		respondWithError(w, http.StatusBadRequest, "current password is required", h.logger)
		return
	}

	user, err := h.userUseCase.Update(r.Context(), chi.URLParam(r, "username"), upd)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"user": user}, h.logger)
}

// Delete — DELETE /users/{username}: удаление после повторной проверки пароля.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed JSON body", h.logger)
		return
	}

	username := chi.URLParam(r, "username")
	if err := h.userUseCase.Remove(r.Context(), username, body.Password); err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"deleted": username}, h.logger)
}

// Bookings — GET /users/{username}/bookings: забронированные объявления.
func (h *UserHandler) Bookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.userUseCase.Bookings(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"bookings": bookings}, h.logger)
}

// Book — POST /users/{username}/bookings/{id}: бронирует объявление.
func (h *UserHandler) Book(w http.ResponseWriter, r *http.Request) {
	listingID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "listing id must be an integer", h.logger)
		return
	}

	title, err := h.userUseCase.BookListing(r.Context(), chi.URLParam(r, "username"), listingID)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{"booked": title}, h.logger)
}

// Unbook — DELETE /users/{username}/bookings/{id}: снимает бронь.
func (h *UserHandler) Unbook(w http.ResponseWriter, r *http.Request) {
	listingID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "listing id must be an integer", h.logger)
		return
	}

	title, err := h.userUseCase.UnbookListing(r.Context(), chi.URLParam(r, "username"), listingID)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"canceled": title}, h.logger)
}

// SendMessage — POST /users/{username}/messages/{otherUser}.
func (h *UserHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed JSON body", h.logger)
		return
	}
	if body.Text == "" {
		respondWithError(w, http.StatusBadRequest, "message text is required", h.logger)
		return
	}

	message, err := h.userUseCase.SendMessage(r.Context(),
		chi.URLParam(r, "username"), chi.URLParam(r, "otherUser"), body.Text)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{"message": message}, h.logger)
}

// Conversation — GET /users/{username}/messages/{otherUser}: переписка
// двух пользователей по возрастанию времени отправки.
func (h *UserHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	messages, err := h.userUseCase.Messages(r.Context(),
		chi.URLParam(r, "username"), chi.URLParam(r, "otherUser"))
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"messages": messages}, h.logger)
}

// Inbox — GET /users/{username}/messages: собеседники, сначала свежие.
func (h *UserHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUseCase.InboxUsers(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"users": users}, h.logger)
}
