package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/housebill/backend/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthLogin(t *testing.T) {
	s := newTestServer(t)
	s.seedUser(t, "Alice", "alice@example.com", identity.RoleResident)

	rec := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "password123",
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := dataOf(t, rec)

	user, ok := data["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", user["email"])
	assert.Equal(t, "resident", user["role"])

	tokens, ok := data["tokens"].(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, tokens["access_token"])
	assert.NotEmpty(t, tokens["refresh_token"])
	assert.Equal(t, "Bearer", tokens["token_type"])
}

func TestAuthLoginWrongPassword(t *testing.T) {
	s := newTestServer(t)
	s.seedUser(t, "Alice", "alice@example.com", identity.RoleResident)

	rec := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", errorOf(t, rec)["code"])
}

func TestAuthLoginValidation(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "not-an-email",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	errInfo := errorOf(t, rec)
	assert.Equal(t, "ERR_VALIDATION", errInfo["code"])
	assert.NotEmpty(t, errInfo["details"])
}

func TestAuthRefresh(t *testing.T) {
	s := newTestServer(t)
	s.seedUser(t, "Alice", "alice@example.com", identity.RoleResident)

	login := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, login.Code)
	tokens := dataOf(t, login)["tokens"].(map[string]interface{})

	rec := s.do(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{
		"refresh_token": tokens["refresh_token"].(string),
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	refreshed := dataOf(t, rec)["tokens"].(map[string]interface{})
	assert.NotEmpty(t, refreshed["access_token"])
}

func TestAuthMe(t *testing.T) {
	s := newTestServer(t)
	alice := s.seedUser(t, "Alice", "alice@example.com", identity.RoleResident)

	rec := s.do(t, http.MethodGet, "/api/v1/auth/me", s.tokenFor(t, alice), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	data := dataOf(t, rec)
	assert.Equal(t, alice.ID.String(), data["id"])
	assert.Equal(t, "Alice", data["name"])
}

func TestAuthMeRequiresToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/auth/me", "", nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsDeletedUser(t *testing.T) {
	s := newTestServer(t)
	alice := s.seedUser(t, "Alice", "alice@example.com", identity.RoleResident)
	token := s.tokenFor(t, alice)

	require.NoError(t, s.users.Delete(context.Background(), alice.ID))

	rec := s.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
