package handler

import (
	"net/http"
	"testing"

	"github.com/housebill/backend/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsBulkUpsert(t *testing.T) {
	s := newTestServer(t)
	super := s.seedUser(t, "Root", "root@example.com", identity.RoleSuperAdmin)
	token := s.tokenFor(t, super)

	rec := s.do(t, http.MethodPut, "/api/v1/billing-settings", token, map[string]interface{}{
		"settings": []map[string]interface{}{
			{"key": "water_bill", "amount": "500"},
			{"key": "service_charge", "amount": "150", "metadata": map[string]interface{}{"label": "Service"}},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	settings := decode(t, rec)["data"].([]interface{})
	require.Len(t, settings, 2)

	list := s.do(t, http.MethodGet, "/api/v1/billing-settings", token, nil)
	require.Equal(t, http.StatusOK, list.Code)
	listed := decode(t, list)["data"].([]interface{})
	require.Len(t, listed, 2)
	first := listed[0].(map[string]interface{})
	assert.NotEmpty(t, first["label"])
}

func TestSettingsBulkUpsertRequiresSuperAdmin(t *testing.T) {
	s := newTestServer(t)
	admin := s.seedUser(t, "Admin", "admin@example.com", identity.RoleAdmin)

	rec := s.do(t, http.MethodPut, "/api/v1/billing-settings", s.tokenFor(t, admin), map[string]interface{}{
		"settings": []map[string]interface{}{{"key": "water_bill", "amount": "500"}},
	})

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestReadingCreateAndByMonthYear(t *testing.T) {
	s := newTestServer(t)
	admin := s.seedUser(t, "Admin", "admin@example.com", identity.RoleAdmin)
	token := s.tokenFor(t, admin)

	end := int64(160)
	rec := s.do(t, http.MethodPost, "/api/v1/electricity-readings", token, map[string]interface{}{
		"month":      "January",
		"year":       2026,
		"start_unit": 100,
		"end_unit":   end,
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	data := dataOf(t, rec)
	assert.Equal(t, float64(60), data["units"])

	bySlot := s.do(t, http.MethodGet, "/api/v1/electricity-readings/by-month-year?month=January&year=2026", token, nil)
	require.Equal(t, http.StatusOK, bySlot.Code)
	assert.Equal(t, data["id"], dataOf(t, bySlot)["id"])

	missing := s.do(t, http.MethodGet, "/api/v1/electricity-readings/by-month-year?month=March&year=2026", token, nil)
	require.Equal(t, http.StatusOK, missing.Code)
	assert.Nil(t, decode(t, missing)["data"])
}

func TestReadingDuplicateSlotConflicts(t *testing.T) {
	s := newTestServer(t)
	admin := s.seedUser(t, "Admin", "admin@example.com", identity.RoleAdmin)
	token := s.tokenFor(t, admin)

	payload := map[string]interface{}{"month": "January", "year": 2026, "start_unit": 100}
	first := s.do(t, http.MethodPost, "/api/v1/electricity-readings", token, payload)
	require.Equal(t, http.StatusCreated, first.Code)

	second := s.do(t, http.MethodPost, "/api/v1/electricity-readings", token, payload)
	require.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, "READING_EXISTS", errorOf(t, second)["code"])
}

func TestDashboardLoads(t *testing.T) {
	s := newTestServer(t)
	admin := s.seedUser(t, "Admin", "admin@example.com", identity.RoleAdmin)
	alice := s.seedUser(t, "Alice", "alice@example.com", identity.RoleResident)
	adminToken := s.tokenFor(t, admin)

	seedBill(t, s, adminToken, []map[string]interface{}{
		{"user_id": alice.ID.String(), "amount_due": "400"},
	})

	rec := s.do(t, http.MethodGet, "/api/v1/dashboard", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := dataOf(t, rec)

	totals := data["totals"].(map[string]interface{})
	assert.Equal(t, "400", totals["total_due"])
	assert.Equal(t, "400", totals["total_outstanding"])
	assert.Len(t, data["latest_bills"].([]interface{}), 1)

	currency := data["currency"].(map[string]interface{})
	assert.Equal(t, "BDT", currency["code"])
	assert.Equal(t, "৳", currency["symbol"])
}
