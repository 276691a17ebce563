package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
		role     Role
		wantErr  bool
		errMsg   string
	}{
		{
			name:     "valid resident",
			userName: "Rahim Uddin",
			email:    "rahim@example.com",
			password: "secret123",
			role:     RoleResident,
			wantErr:  false,
		},
		{
			name:     "valid admin",
			userName: "Karim",
			email:    "karim@example.com",
			password: "secret123",
			role:     RoleAdmin,
			wantErr:  false,
		},
		{
			name:     "empty name",
			userName: "",
			email:    "a@example.com",
			password: "secret123",
			role:     RoleResident,
			wantErr:  true,
			errMsg:   "Name cannot be empty",
		},
		{
			name:     "invalid email",
			userName: "Rahim",
			email:    "not-an-email",
			password: "secret123",
			role:     RoleResident,
			wantErr:  true,
			errMsg:   "Invalid email format",
		},
		{
			name:     "short password",
			userName: "Rahim",
			email:    "rahim@example.com",
			password: "short",
			role:     RoleResident,
			wantErr:  true,
			errMsg:   "at least 8 characters",
		},
		{
			name:     "invalid role",
			userName: "Rahim",
			email:    "rahim@example.com",
			password: "secret123",
			role:     Role("landlord"),
			wantErr:  true,
			errMsg:   "Role must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := NewUser(tt.userName, tt.email, tt.password, tt.role)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, "", user.ID.String())
			assert.Equal(t, tt.role, user.Role)
			assert.NotEqual(t, tt.password, user.PasswordHash)
			assert.True(t, user.VerifyPassword(tt.password))
			assert.False(t, user.VerifyPassword("wrong-password"))
		})
	}
}

func TestNewUserNormalizesEmail(t *testing.T) {
	user, err := NewUser("Rahim", "  Rahim@Example.COM ", "secret123", RoleResident)
	require.NoError(t, err)
	assert.Equal(t, "rahim@example.com", user.Email)
}

func TestUserSetRole(t *testing.T) {
	user, err := NewUser("Rahim", "rahim@example.com", "secret123", RoleResident)
	require.NoError(t, err)

	require.NoError(t, user.SetRole(RoleAdmin))
	assert.True(t, user.IsAdmin())

	err = user.SetRole(Role("tenant"))
	require.Error(t, err)
	assert.Equal(t, RoleAdmin, user.Role)
}

func TestUserTelegramChat(t *testing.T) {
	user, err := NewUser("Rahim", "rahim@example.com", "secret123", RoleResident)
	require.NoError(t, err)
	assert.False(t, user.HasTelegramChat())

	require.NoError(t, user.LinkTelegramChat(" 123456789 "))
	assert.True(t, user.HasTelegramChat())
	assert.Equal(t, "123456789", user.TelegramChatID)

	err = user.LinkTelegramChat(strings.Repeat("9", 65))
	require.Error(t, err)

	user.UnlinkTelegramChat()
	assert.False(t, user.HasTelegramChat())
}

func TestUserRecordLoginSuccess(t *testing.T) {
	user, err := NewUser("Rahim", "rahim@example.com", "secret123", RoleResident)
	require.NoError(t, err)
	require.Nil(t, user.LastLoginAt)

	user.RecordLoginSuccess()
	require.NotNil(t, user.LastLoginAt)
}

func TestRoleHelpers(t *testing.T) {
	assert.True(t, RoleSuperAdmin.IsAdmin())
	assert.True(t, RoleAdmin.IsAdmin())
	assert.False(t, RoleResident.IsAdmin())

	assert.True(t, RoleSuperAdmin.IsSuperAdmin())
	assert.False(t, RoleAdmin.IsSuperAdmin())

	assert.Equal(t, "Super Admin", RoleSuperAdmin.Label())
	assert.Equal(t, "Resident", RoleResident.Label())

	assert.Equal(t, RoleAdmin, RoleFromString("admin"))
	assert.Equal(t, RoleResident, RoleFromString("landlord"))
	assert.False(t, Role("landlord").IsValid())
}
