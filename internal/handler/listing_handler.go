package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/GoArmGo/ShareBnB/internal/domain"
	"github.com/GoArmGo/ShareBnB/internal/usecase"
	"github.com/go-chi/chi/v5"
)

const maxUploadBytes = 10 << 20 // 10 MiB per listing photo

// ListingHandler — обработчик HTTP-запросов для работы с объявлениями.
type ListingHandler struct {
	listingUseCase usecase.ListingUseCase
	logger         *slog.Logger
}

func NewListingHandler(uc usecase.ListingUseCase, logger *slog.Logger) *ListingHandler {
	return &ListingHandler{
		listingUseCase: uc,
		logger:         logger,
	}
}

// Create — POST /listings: multipart-форма с полями объявления и
// необязательным файлом image. Владельцем становится текущий пользователь.
func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := UsernameFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "missing authentication token", h.logger)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed multipart form", h.logger)
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "price must be a number", h.logger)
		return
	}

	input := usecase.ListingInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Location:    r.FormValue("location"),
		Price:       price,
	}
	if input.Title == "" {
		respondWithError(w, http.StatusBadRequest, "title is required", h.logger)
		return
	}

	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		input.Image = file
		input.ImageContentType = header.Header.Get("Content-Type")
	case errors.Is(err, http.ErrMissingFile):
		// no photo, the placeholder image will be used
	default:
		respondWithError(w, http.StatusBadRequest, "malformed image upload", h.logger)
		return
	}

	listing, err := h.listingUseCase.Create(r.Context(), input, owner)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{"listing": listing}, h.logger)
}

// List — GET /listings: поиск с фильтрами minPrice, maxPrice, location.
func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.ListingFilter

	if raw := r.URL.Query().Get("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "minPrice must be a number", h.logger)
			return
		}
		filter.MinPrice = &v
	}

	if raw := r.URL.Query().Get("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "maxPrice must be a number", h.logger)
			return
		}
		filter.MaxPrice = &v
	}

	filter.Location = r.URL.Query().Get("location")

	listings, err := h.listingUseCase.FindAll(r.Context(), filter)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"listings": listings}, h.logger)
}

// Get — GET /listings/{id}.
func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "listing id must be an integer", h.logger)
		return
	}

	listing, err := h.listingUseCase.Get(r.Context(), id)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"listing": listing}, h.logger)
}

// Update — PATCH /listings/{id}: частичное обновление, только владельцем.
func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := UsernameFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "missing authentication token", h.logger)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "listing id must be an integer", h.logger)
		return
	}

	var upd domain.ListingUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed JSON body", h.logger)
		return
	}

	listing, err := h.listingUseCase.Update(r.Context(), id, actor, upd)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"listing": listing}, h.logger)
}

// Delete — DELETE /listings/{id}: удаление, только владельцем.
func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := UsernameFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "missing authentication token", h.logger)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "listing id must be an integer", h.logger)
		return
	}

	if err := h.listingUseCase.Remove(r.Context(), id, actor); err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int64{"deleted": id}, h.logger)
}
