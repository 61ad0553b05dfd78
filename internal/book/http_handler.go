package book

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bookmanager/internal/httpx"
	"bookmanager/internal/user"

	"github.com/google/uuid"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type addBookRequest struct {
	ISBN string `json:"isbn" validate:"required"`
}

type ratingUpdateRequest struct {
	Rating *int `json:"rating" validate:"required"`
}

type detailsUpdateRequest struct {
	Title       *string  `json:"title" validate:"omitempty,max=255"`
	Authors     []string `json:"authors"`
	Description *string  `json:"description" validate:"omitempty,max=5000"`
	CoverURL    *string  `json:"cover_url" validate:"omitempty,max=2048"`
}

// Add handles POST /users/{userId}/books
func (h *HTTPHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	var req addBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	created, err := h.service.AddByISBN(r.Context(), userID, req.ISBN)
	if err != nil {
		writeBookError(w, err)
		return
	}
	httpx.JSONSuccessCreated(w, created)
}

// Get handles GET /users/{userId}/books/{isbn}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	b, err := h.service.GetByISBN(r.Context(), userID, r.PathValue("isbn"))
	if err != nil {
		writeBookError(w, err)
		return
	}
	httpx.JSONSuccess(w, b, nil)
}

// UpdateRating handles PUT /users/{userId}/books/{isbn}
func (h *HTTPHandler) UpdateRating(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	var req ratingUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	updated, err := h.service.UpdateRating(r.Context(), userID, r.PathValue("isbn"), *req.Rating)
	if err != nil {
		writeBookError(w, err)
		return
	}
	httpx.JSONSuccess(w, updated, nil)
}

// UpdateDetails handles PATCH /users/{userId}/books/{isbn}
func (h *HTTPHandler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	var req detailsUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	updated, err := h.service.UpdateDetails(r.Context(), userID, r.PathValue("isbn"), DetailsUpdate{
		Title:       req.Title,
		Authors:     req.Authors,
		Description: req.Description,
		CoverURL:    req.CoverURL,
	})
	if err != nil {
		writeBookError(w, err)
		return
	}
	httpx.JSONSuccess(w, updated, nil)
}

// Delete handles DELETE /users/{userId}/books/{isbn}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, r.PathValue("isbn")); err != nil {
		writeBookError(w, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

// List handles GET /users/{userId}/books with an optional rating filter.
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	var rating *int
	if raw := r.URL.Query().Get("rating"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "rating must be an integer", nil)
			return
		}
		rating = &val
	}

	books, err := h.service.List(r.Context(), userID, rating)
	if err != nil {
		writeBookError(w, err)
		return
	}
	httpx.JSONSuccess(w, books, map[string]any{"total": len(books)})
}

// Search handles GET /users/{userId}/books/search
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	q := SearchQuery{
		Title:  query.Get("title"),
		Author: query.Get("author"),
	}
	if raw := query.Get("year"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "year must be an integer", nil)
			return
		}
		q.Year = &val
	}

	books, err := h.service.Search(r.Context(), userID, q)
	if err != nil {
		writeBookError(w, err)
		return
	}
	httpx.JSONSuccess(w, books, map[string]any{"total": len(books)})
}

func pathUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := r.PathValue("userId")
	if _, err := uuid.Parse(raw); err != nil {
		httpx.JSONError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found", nil)
		return "", false
	}
	return raw, true
}

func writeBookError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found", nil)
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "BOOK_NOT_FOUND", "Book not found", nil)
	case errors.Is(err, ErrInvalidRating):
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_RATING", "Rating must be between 1 and 5", nil)
	case errors.Is(err, ErrInvalidBook):
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_BOOK", err.Error(), nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
