package handler

import (
	"net/http"
	"testing"

	"github.com/housebill/backend/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateAndGet(t *testing.T) {
	s := newTestServer(t)
	super := s.seedUser(t, "Root", "root@example.com", identity.RoleSuperAdmin)
	superToken := s.tokenFor(t, super)

	rec := s.do(t, http.MethodPost, "/api/v1/users", superToken, map[string]interface{}{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "password123",
		"role":     "resident",
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := dataOf(t, rec)
	assert.Equal(t, "Alice", created["name"])
	assert.Equal(t, "resident", created["role"])
	assert.NotContains(t, created, "password_hash")

	get := s.do(t, http.MethodGet, "/api/v1/users/"+created["id"].(string), superToken, nil)
	require.Equal(t, http.StatusOK, get.Code)
	assert.Equal(t, "alice@example.com", dataOf(t, get)["email"])
}

func TestUserCreateRequiresSuperAdmin(t *testing.T) {
	s := newTestServer(t)
	admin := s.seedUser(t, "Admin", "admin@example.com", identity.RoleAdmin)

	rec := s.do(t, http.MethodPost, "/api/v1/users", s.tokenFor(t, admin), map[string]interface{}{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "password123",
		"role":     "resident",
	})

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", errorOf(t, rec)["code"])
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	s := newTestServer(t)
	super := s.seedUser(t, "Root", "root@example.com", identity.RoleSuperAdmin)
	s.seedUser(t, "Alice", "alice@example.com", identity.RoleResident)

	rec := s.do(t, http.MethodPost, "/api/v1/users", s.tokenFor(t, super), map[string]interface{}{
		"name":     "Alice Again",
		"email":    "alice@example.com",
		"password": "password123",
		"role":     "resident",
	})

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "EMAIL_TAKEN", errorOf(t, rec)["code"])
}

func TestUserListSorting(t *testing.T) {
	s := newTestServer(t)
	admin := s.seedUser(t, "Admin", "admin@example.com", identity.RoleAdmin)
	s.seedUser(t, "Zara", "zara@example.com", identity.RoleResident)
	s.seedUser(t, "Bob", "bob@example.com", identity.RoleResident)
	token := s.tokenFor(t, admin)

	rec := s.do(t, http.MethodGet, "/api/v1/users?order_by=email&order_dir=desc", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	users := decode(t, rec)["data"].([]interface{})
	require.Len(t, users, 3)
	assert.Equal(t, "zara@example.com", users[0].(map[string]interface{})["email"])
	assert.Equal(t, "admin@example.com", users[2].(map[string]interface{})["email"])

	// unknown sort columns fall back to the name default
	fallback := s.do(t, http.MethodGet, "/api/v1/users?order_by=password_hash", token, nil)
	require.Equal(t, http.StatusOK, fallback.Code)
	byName := decode(t, fallback)["data"].([]interface{})
	assert.Equal(t, "Admin", byName[0].(map[string]interface{})["name"])
}

func TestUserListFiltersByRole(t *testing.T) {
	s := newTestServer(t)
	admin := s.seedUser(t, "Admin", "admin@example.com", identity.RoleAdmin)
	s.seedUser(t, "Alice", "alice@example.com", identity.RoleResident)
	token := s.tokenFor(t, admin)

	rec := s.do(t, http.MethodGet, "/api/v1/users?role=resident", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	users := decode(t, rec)["data"].([]interface{})
	require.Len(t, users, 1)
	assert.Equal(t, "Alice", users[0].(map[string]interface{})["name"])
}

func TestUserGetScopedToSelf(t *testing.T) {
	s := newTestServer(t)
	alice := s.seedUser(t, "Alice", "alice@example.com", identity.RoleResident)
	bob := s.seedUser(t, "Bob", "bob@example.com", identity.RoleResident)
	aliceToken := s.tokenFor(t, alice)

	own := s.do(t, http.MethodGet, "/api/v1/users/"+alice.ID.String(), aliceToken, nil)
	require.Equal(t, http.StatusOK, own.Code)

	other := s.do(t, http.MethodGet, "/api/v1/users/"+bob.ID.String(), aliceToken, nil)
	require.Equal(t, http.StatusForbidden, other.Code)
}

func TestUserUpdateRole(t *testing.T) {
	s := newTestServer(t)
	super := s.seedUser(t, "Root", "root@example.com", identity.RoleSuperAdmin)
	alice := s.seedUser(t, "Alice", "alice@example.com", identity.RoleResident)

	rec := s.do(t, http.MethodPut, "/api/v1/users/"+alice.ID.String(), s.tokenFor(t, super), map[string]interface{}{
		"role": "admin",
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "admin", dataOf(t, rec)["role"])
}

func TestUserDeleteSelfForbidden(t *testing.T) {
	s := newTestServer(t)
	super := s.seedUser(t, "Root", "root@example.com", identity.RoleSuperAdmin)

	rec := s.do(t, http.MethodDelete, "/api/v1/users/"+super.ID.String(), s.tokenFor(t, super), nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "INVALID_TARGET", errorOf(t, rec)["code"])
}

func TestTelegramChatLinkLifecycle(t *testing.T) {
	s := newTestServer(t)
	alice := s.seedUser(t, "Alice", "alice@example.com", identity.RoleResident)
	token := s.tokenFor(t, alice)

	initial := s.do(t, http.MethodGet, "/api/v1/users/my-chat-id", token, nil)
	require.Equal(t, http.StatusOK, initial.Code)
	assert.Equal(t, false, dataOf(t, initial)["has_telegram"])

	linked := s.do(t, http.MethodPut, "/api/v1/users/my-chat-id", token, map[string]interface{}{
		"chat_id": "123456789",
	})
	require.Equal(t, http.StatusOK, linked.Code, linked.Body.String())
	assert.Equal(t, "123456789", dataOf(t, linked)["telegram_chat_id"])
	assert.Equal(t, true, dataOf(t, linked)["has_telegram"])

	unlinked := s.do(t, http.MethodDelete, "/api/v1/users/my-chat-id", token, nil)
	require.Equal(t, http.StatusOK, unlinked.Code)
	assert.Equal(t, false, dataOf(t, unlinked)["has_telegram"])
}
