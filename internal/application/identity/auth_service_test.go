package identity

import (
	"context"
	"testing"
	"time"

	"github.com/housebill/backend/internal/domain/identity"
	"github.com/housebill/backend/internal/domain/shared"
	"github.com/housebill/backend/internal/infrastructure/auth"
	"github.com/housebill/backend/internal/infrastructure/config"
	"github.com/housebill/backend/internal/infrastructure/persistence"
	"github.com/housebill/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUserRepo(t *testing.T) identity.UserRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.UserModel{}))

	return persistence.NewGormUserRepository(db)
}

func newTestJWTService(t *testing.T) *auth.JWTService {
	t.Helper()

	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret",
		RefreshSecret:          "test-refresh-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "housebill-test",
	})
}

func seedUser(t *testing.T, repo identity.UserRepository, name, email, password string, role identity.Role) *identity.User {
	t.Helper()

	user, err := identity.NewUser(name, email, password, role)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestAuthServiceLogin(t *testing.T) {
	repo := setupUserRepo(t)
	service := NewAuthService(repo, newTestJWTService(t), zap.NewNop())
	user := seedUser(t, repo, "Alice", "alice@example.com", "password123", identity.RoleAdmin)

	result, err := service.Login(context.Background(), LoginInput{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.Equal(t, user.ID, result.User.ID)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)

	// successful login stamps last_login_at
	reloaded, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotNil(t, reloaded.LastLoginAt)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	repo := setupUserRepo(t)
	service := NewAuthService(repo, newTestJWTService(t), zap.NewNop())
	seedUser(t, repo, "Alice", "alice@example.com", "password123", identity.RoleResident)

	_, err := service.Login(context.Background(), LoginInput{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	repo := setupUserRepo(t)
	service := NewAuthService(repo, newTestJWTService(t), zap.NewNop())
	seedUser(t, repo, "Alice", "alice@example.com", "password123", identity.RoleResident)

	_, err := service.Login(context.Background(), LoginInput{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	require.Error(t, err)

	// same error code as a wrong password, so responses do not leak
	// which accounts exist
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthServiceRefresh(t *testing.T) {
	repo := setupUserRepo(t)
	service := NewAuthService(repo, newTestJWTService(t), zap.NewNop())
	user := seedUser(t, repo, "Alice", "alice@example.com", "password123", identity.RoleResident)

	result, err := service.Login(context.Background(), LoginInput{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	refreshed, err := service.Refresh(context.Background(), result.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.Tokens.AccessToken)
}

func TestAuthServiceRefreshInvalidToken(t *testing.T) {
	repo := setupUserRepo(t)
	service := NewAuthService(repo, newTestJWTService(t), zap.NewNop())

	_, err := service.Refresh(context.Background(), "not-a-token")
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_TOKEN", domainErr.Code)
}

func TestAuthServiceRefreshRejectsAccessToken(t *testing.T) {
	repo := setupUserRepo(t)
	service := NewAuthService(repo, newTestJWTService(t), zap.NewNop())
	seedUser(t, repo, "Alice", "alice@example.com", "password123", identity.RoleResident)

	login, err := service.Login(context.Background(), LoginInput{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = service.Refresh(context.Background(), login.Tokens.AccessToken)
	require.Error(t, err)
}

func TestAuthServiceMe(t *testing.T) {
	repo := setupUserRepo(t)
	service := NewAuthService(repo, newTestJWTService(t), zap.NewNop())
	user := seedUser(t, repo, "Alice", "alice@example.com", "password123", identity.RoleResident)

	me, err := service.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", me.Email)
}
