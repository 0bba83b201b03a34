package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterSetsSessionAndHidesPassword(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/register", map[string]string{
		"username": "alice",
		"password": "pw1",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Equal(t, "alice", body["username"])
	assert.NotContains(t, body, "password")

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)
}

func TestRegisterDuplicateUsernameConflicts(t *testing.T) {
	router, store := newTestRouter(t)
	register(t, router, "alice", "pw1")

	rec := doJSON(t, router, http.MethodPost, "/api/register", map[string]string{
		"username": "alice",
		"password": "pw2",
	}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// the existing row is untouched and no new one was created
	user, err := store.GetUserByUsername(t.Context(), "alice")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, 1, user.ID)

	relogin := doJSON(t, router, http.MethodPost, "/api/login", map[string]string{
		"username": "alice",
		"password": "pw1",
	}, nil)
	assert.Equal(t, http.StatusOK, relogin.Code)
}

func TestRegisterValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/register", map[string]string{
		"username": "alice",
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body ErrorResponse
	decodeBody(t, rec, &body)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "password", body.Errors[0].Field)
}

func TestLoginSuccessAndUniformFailure(t *testing.T) {
	router, _ := newTestRouter(t)
	register(t, router, "alice", "pw1")

	rec := doJSON(t, router, http.MethodPost, "/api/login", map[string]string{
		"username": "alice",
		"password": "pw1",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, sessionCookie(t, rec))

	wrongPassword := doJSON(t, router, http.MethodPost, "/api/login", map[string]string{
		"username": "alice",
		"password": "nope",
	}, nil)
	unknownUser := doJSON(t, router, http.MethodPost, "/api/login", map[string]string{
		"username": "mallory",
		"password": "nope",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	// identical bodies so the response cannot reveal whether the username exists
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

func TestCurrentUser(t *testing.T) {
	router, _ := newTestRouter(t)
	cookie := register(t, router, "alice", "pw1")

	rec := doJSON(t, router, http.MethodGet, "/api/user", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Equal(t, "alice", body["username"])
	assert.NotContains(t, body, "password")

	anonymous := doJSON(t, router, http.MethodGet, "/api/user", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	router, _ := newTestRouter(t)
	cookie := register(t, router, "alice", "pw1")

	rec := doJSON(t, router, http.MethodPost, "/api/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	after := doJSON(t, router, http.MethodGet, "/api/user", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, after.Code)
}
