package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"bookmanager/internal/httpx"

	"github.com/google/uuid"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type createUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// Create handles POST /users
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	created, err := h.service.Create(r.Context(), req.Name, req.Email)
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			httpx.JSONError(w, http.StatusConflict, "USER_ALREADY_EXISTS", "A user with this email already exists", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccessCreated(w, created)
}

// List handles GET /users
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, users, nil)
}

// Get handles GET /users/{userId}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	u, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		writeUserError(w, err)
		return
	}
	httpx.JSONSuccess(w, u, nil)
}

// Update handles PUT /users/{userId}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	updated, err := h.service.Update(r.Context(), userID, req.Name, req.Email)
	if err != nil {
		writeUserError(w, err)
		return
	}
	httpx.JSONSuccess(w, updated, nil)
}

// Delete handles DELETE /users/{userId}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID); err != nil {
		writeUserError(w, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

// pathUserID reads the {userId} path segment. A malformed UUID can never
// name an existing user, so it reports not-found rather than leaking a
// storage error.
func pathUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := r.PathValue("userId")
	if _, err := uuid.Parse(raw); err != nil {
		httpx.JSONError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found", nil)
		return "", false
	}
	return raw, true
}

func writeUserError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found", nil)
		return
	}
	httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}
