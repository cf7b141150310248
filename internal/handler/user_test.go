package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/subtrack/subtrack/internal/handler/dto"
)

func createUser(t *testing.T, router http.Handler, username string) dto.UserResponse {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/users", dto.CreateUserRequest{Username: username})
	require.Equal(t, http.StatusOK, rec.Code)

	var user dto.UserResponse
	decodeBody(t, rec, &user)
	return user
}

func TestUserCreate(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/users", dto.CreateUserRequest{Username: "alice"})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var user dto.UserResponse
	decodeBody(t, rec, &user)
	require.NotZero(t, user.ID)
	require.Equal(t, "alice", user.Username)
}

func TestUserCreate_BlankUsername(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/users", dto.CreateUserRequest{Username: ""})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	message, status := errorBody(t, rec)
	require.Equal(t, []any{"Field User.username cannot by blank"}, message)
	require.Equal(t, float64(http.StatusBadRequest), status)
}

func TestUserCreate_MalformedBody(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	message, _ := errorBody(t, rec)
	require.Equal(t, "Invalid request body", message)
}

func TestUserCreate_Duplicate(t *testing.T) {
	router, _ := newTestRouter(t)
	createUser(t, router, "alice")

	rec := doJSON(t, router, http.MethodPost, "/users", dto.CreateUserRequest{Username: "alice"})

	require.Equal(t, http.StatusConflict, rec.Code)

	message, status := errorBody(t, rec)
	require.Equal(t, "User with this username already exists", message)
	require.Equal(t, float64(http.StatusConflict), status)
}

func TestUserGet(t *testing.T) {
	router, _ := newTestRouter(t)
	created := createUser(t, router, "alice")

	rec := doJSON(t, router, http.MethodGet, "/users/1", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var user dto.UserResponse
	decodeBody(t, rec, &user)
	require.Equal(t, created.ID, user.ID)
	require.Equal(t, "alice", user.Username)
}

func TestUserGet_NotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/users/42", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)

	message, status := errorBody(t, rec)
	require.Equal(t, "User not found with id: 42", message)
	require.Equal(t, float64(http.StatusNotFound), status)
}

func TestUserGet_MalformedID(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/users/abc", nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	message, _ := errorBody(t, rec)
	require.Equal(t, "Invalid user id", message)
}

func TestUserUpdate(t *testing.T) {
	router, _ := newTestRouter(t)
	createUser(t, router, "alice")

	rec := doJSON(t, router, http.MethodPut, "/users/1", dto.UpdateUserRequest{Username: "alice2"})

	require.Equal(t, http.StatusOK, rec.Code)

	var user dto.UserResponse
	decodeBody(t, rec, &user)
	require.Equal(t, "alice2", user.Username)
}

func TestUserUpdate_UsernameTaken(t *testing.T) {
	router, _ := newTestRouter(t)
	createUser(t, router, "alice")
	createUser(t, router, "bob")

	rec := doJSON(t, router, http.MethodPut, "/users/1", dto.UpdateUserRequest{Username: "bob"})

	require.Equal(t, http.StatusConflict, rec.Code)

	message, _ := errorBody(t, rec)
	require.Equal(t, "User with this username already exists", message)
}

func TestUserUpdate_NotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/users/42", dto.UpdateUserRequest{Username: "alice"})

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserDelete(t *testing.T) {
	router, _ := newTestRouter(t)
	createUser(t, router, "alice")

	rec := doJSON(t, router, http.MethodDelete, "/users/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/users/1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserDelete_CascadesSubscriptions(t *testing.T) {
	router, _ := newTestRouter(t)
	createUser(t, router, "alice")

	rec := doJSON(t, router, http.MethodPost, "/users/1/subscriptions", dto.CreateSubscriptionRequest{Name: "news"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/users/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// The cascade removed the subscription together with its owner: the
	// popularity ranking no longer sees it.
	rec = doJSON(t, router, http.MethodGet, "/subscriptions/top", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var top []string
	decodeBody(t, rec, &top)
	require.Empty(t, top)
}

func TestUserDelete_NotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodDelete, "/users/42", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
