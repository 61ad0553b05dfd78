package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandlerWithMock(t *testing.T) (*HTTPHandler, *MockRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	repo := NewMockRepository(ctrl)
	return NewHTTPHandler(NewService(repo)), repo
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestHTTPHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		handler, repo := newHandlerWithMock(t)
		repo.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").Return(User{}, ErrNotFound)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"Alice","email":"alice@example.com"}`))

		handler.Create(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		handler, repo := newHandlerWithMock(t)
		repo.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").Return(User{ID: testUserID}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"Alice","email":"alice@example.com"}`))

		handler.Create(w, r)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "USER_ALREADY_EXISTS", errorCode(t, w))
	})

	t.Run("invalid email", func(t *testing.T) {
		handler, _ := newHandlerWithMock(t)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"Alice","email":"not-an-email"}`))

		handler.Create(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
	})

	t.Run("missing fields", func(t *testing.T) {
		handler, _ := newHandlerWithMock(t)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{}`))

		handler.Create(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHTTPHandler_Get(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler, repo := newHandlerWithMock(t)
		repo.EXPECT().GetByID(gomock.Any(), testUserID).Return(User{ID: testUserID, Name: "Alice"}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/users/"+testUserID, nil)
		r.SetPathValue("userId", testUserID)

		handler.Get(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		handler, repo := newHandlerWithMock(t)
		repo.EXPECT().GetByID(gomock.Any(), testUserID).Return(User{}, ErrNotFound)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/users/"+testUserID, nil)
		r.SetPathValue("userId", testUserID)

		handler.Get(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "USER_NOT_FOUND", errorCode(t, w))
	})

	t.Run("malformed id", func(t *testing.T) {
		handler, _ := newHandlerWithMock(t)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/users/nope", nil)
		r.SetPathValue("userId", "nope")

		handler.Get(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHTTPHandler_List(t *testing.T) {
	handler, repo := newHandlerWithMock(t)
	repo.EXPECT().List(gomock.Any()).Return([]User{{ID: testUserID}}, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/users", nil)

	handler.List(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHTTPHandler_Update(t *testing.T) {
	handler, repo := newHandlerWithMock(t)
	repo.EXPECT().GetByID(gomock.Any(), testUserID).Return(User{ID: testUserID}, nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPut, "/users/"+testUserID, strings.NewReader(`{"name":"Alice B","email":"alice.b@example.com"}`))
	r.SetPathValue("userId", testUserID)

	handler.Update(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHTTPHandler_Delete(t *testing.T) {
	handler, repo := newHandlerWithMock(t)
	repo.EXPECT().GetByID(gomock.Any(), testUserID).Return(User{ID: testUserID}, nil)
	repo.EXPECT().Delete(gomock.Any(), testUserID).Return(nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/users/"+testUserID, nil)
	r.SetPathValue("userId", testUserID)

	handler.Delete(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
