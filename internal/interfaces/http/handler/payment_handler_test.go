package handler

import (
	"net/http"
	"testing"

	"github.com/housebill/backend/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBill(t *testing.T, s *testServer, adminToken string, shares []map[string]interface{}) map[string]interface{} {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/v1/bills", adminToken, map[string]interface{}{
		"for_month":  "January 2026",
		"line_items": []map[string]interface{}{{"key": "water", "label": "Water", "amount": "400"}},
		"shares":     shares,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return dataOf(t, rec)
}

func TestPaymentRecordSettlesShare(t *testing.T) {
	s := newTestServer(t)
	admin := s.seedUser(t, "Admin", "admin@example.com", identity.RoleAdmin)
	alice := s.seedUser(t, "Alice", "alice@example.com", identity.RoleResident)
	adminToken := s.tokenFor(t, admin)

	bill := seedBill(t, s, adminToken, []map[string]interface{}{
		{"user_id": alice.ID.String(), "amount_due": "400"},
	})
	share := bill["shares"].([]interface{})[0].(map[string]interface{})

	rec := s.do(t, http.MethodPost, "/api/v1/payments", s.tokenFor(t, alice), map[string]interface{}{
		"bill_share_id": share["id"],
		"amount":        "400",
		"method":        "bkash",
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	payment := dataOf(t, rec)
	assert.Equal(t, "400", payment["amount"])
	assert.Equal(t, "bkash", payment["method"])

	get := s.do(t, http.MethodGet, "/api/v1/bills/"+bill["id"].(string), adminToken, nil)
	require.Equal(t, http.StatusOK, get.Code)
	updated := dataOf(t, get)
	assert.Equal(t, "paid", updated["status"])
	assert.Equal(t, "paid", updated["shares"].([]interface{})[0].(map[string]interface{})["status"])
}

func TestPaymentForeignShareForbidden(t *testing.T) {
	s := newTestServer(t)
	admin := s.seedUser(t, "Admin", "admin@example.com", identity.RoleAdmin)
	alice := s.seedUser(t, "Alice", "alice@example.com", identity.RoleResident)
	bob := s.seedUser(t, "Bob", "bob@example.com", identity.RoleResident)

	bill := seedBill(t, s, s.tokenFor(t, admin), []map[string]interface{}{
		{"user_id": alice.ID.String(), "amount_due": "400"},
	})
	share := bill["shares"].([]interface{})[0].(map[string]interface{})

	rec := s.do(t, http.MethodPost, "/api/v1/payments", s.tokenFor(t, bob), map[string]interface{}{
		"bill_share_id": share["id"],
		"amount":        "100",
	})

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPaymentDeleteRequiresAdmin(t *testing.T) {
	s := newTestServer(t)
	admin := s.seedUser(t, "Admin", "admin@example.com", identity.RoleAdmin)
	alice := s.seedUser(t, "Alice", "alice@example.com", identity.RoleResident)
	aliceToken := s.tokenFor(t, alice)

	bill := seedBill(t, s, s.tokenFor(t, admin), []map[string]interface{}{
		{"user_id": alice.ID.String(), "amount_due": "400"},
	})
	share := bill["shares"].([]interface{})[0].(map[string]interface{})

	created := s.do(t, http.MethodPost, "/api/v1/payments", aliceToken, map[string]interface{}{
		"bill_share_id": share["id"],
		"amount":        "100",
	})
	require.Equal(t, http.StatusCreated, created.Code)
	paymentID := dataOf(t, created)["id"].(string)

	rec := s.do(t, http.MethodDelete, "/api/v1/payments/"+paymentID, aliceToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/v1/payments/"+paymentID, s.tokenFor(t, admin), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestPaymentListScopedToResident(t *testing.T) {
	s := newTestServer(t)
	admin := s.seedUser(t, "Admin", "admin@example.com", identity.RoleAdmin)
	alice := s.seedUser(t, "Alice", "alice@example.com", identity.RoleResident)
	bob := s.seedUser(t, "Bob", "bob@example.com", identity.RoleResident)
	adminToken := s.tokenFor(t, admin)

	bill := seedBill(t, s, adminToken, []map[string]interface{}{
		{"user_id": alice.ID.String(), "amount_due": "200"},
		{"user_id": bob.ID.String(), "amount_due": "200"},
	})
	shares := bill["shares"].([]interface{})

	for _, raw := range shares {
		share := raw.(map[string]interface{})
		rec := s.do(t, http.MethodPost, "/api/v1/payments", adminToken, map[string]interface{}{
			"bill_share_id": share["id"],
			"amount":        "50",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	adminList := s.do(t, http.MethodGet, "/api/v1/payments", adminToken, nil)
	require.Equal(t, http.StatusOK, adminList.Code)
	assert.Len(t, decode(t, adminList)["data"].([]interface{}), 2)

	aliceList := s.do(t, http.MethodGet, "/api/v1/payments", s.tokenFor(t, alice), nil)
	require.Equal(t, http.StatusOK, aliceList.Code)
	assert.Len(t, decode(t, aliceList)["data"].([]interface{}), 1)
}
