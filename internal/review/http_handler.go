package review

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"bookmanager/internal/book"
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

type reviewRequest struct {
	Rating     *int   `json:"rating" validate:"required,gte=1,lte=5"`
	ReviewText string `json:"review_text" validate:"required"`
}

// Create handles POST /users/{userId}/books/{isbn}/reviews
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	req, ok := decodeReviewRequest(w, r)
	if !ok {
		return
	}

	created, err := h.service.Add(r.Context(), userID, r.PathValue("isbn"), *req.Rating, req.ReviewText)
	if err != nil {
		writeReviewError(w, err)
		return
	}
	httpx.JSONSuccessCreated(w, created)
}

// List handles GET /users/{userId}/books/{isbn}/reviews
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	reviews, err := h.service.List(r.Context(), userID, r.PathValue("isbn"))
	if err != nil {
		writeReviewError(w, err)
		return
	}
	httpx.JSONSuccess(w, reviews, nil)
}

// Update handles PUT /users/{userId}/books/{isbn}/reviews/{reviewId}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}
	reviewID, ok := pathReviewID(w, r)
	if !ok {
		return
	}

	req, ok := decodeReviewRequest(w, r)
	if !ok {
		return
	}

	updated, err := h.service.Update(r.Context(), userID, r.PathValue("isbn"), reviewID, *req.Rating, req.ReviewText)
	if err != nil {
		writeReviewError(w, err)
		return
	}
	httpx.JSONSuccess(w, updated, nil)
}

// Delete handles DELETE /users/{userId}/books/{isbn}/reviews/{reviewId}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}
	reviewID, ok := pathReviewID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, r.PathValue("isbn"), reviewID); err != nil {
		writeReviewError(w, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

func decodeReviewRequest(w http.ResponseWriter, r *http.Request) (reviewRequest, bool) {
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", nil)
		return req, false
	}
	// required alone lets whitespace-only text through
	req.ReviewText = strings.TrimSpace(req.ReviewText)
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return req, false
	}
	return req, true
}

func pathUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := r.PathValue("userId")
	if _, err := uuid.Parse(raw); err != nil {
		httpx.JSONError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found", nil)
		return "", false
	}
	return raw, true
}

func pathReviewID(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := r.PathValue("reviewId")
	if _, err := uuid.Parse(raw); err != nil {
		httpx.JSONError(w, http.StatusNotFound, "REVIEW_NOT_FOUND", "Review not found", nil)
		return "", false
	}
	return raw, true
}

func writeReviewError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found", nil)
	case errors.Is(err, book.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "BOOK_NOT_FOUND", "Book not found", nil)
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "REVIEW_NOT_FOUND", "Review not found", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
