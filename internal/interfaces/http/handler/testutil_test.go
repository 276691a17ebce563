package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	appbilling "github.com/housebill/backend/internal/application/billing"
	appidentity "github.com/housebill/backend/internal/application/identity"
	"github.com/housebill/backend/internal/domain/identity"
	"github.com/housebill/backend/internal/infrastructure/auth"
	"github.com/housebill/backend/internal/infrastructure/config"
	"github.com/housebill/backend/internal/infrastructure/persistence"
	"github.com/housebill/backend/internal/infrastructure/persistence/models"
	"github.com/housebill/backend/internal/interfaces/http/middleware"
	"github.com/housebill/backend/internal/interfaces/http/router"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testServer wires the full HTTP stack against an in-memory database
type testServer struct {
	engine     *gin.Engine
	users      identity.UserRepository
	jwtService *auth.JWTService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.BillModel{},
		&models.BillShareModel{},
		&models.PaymentModel{},
		&models.BillingSettingModel{},
		&models.ElectricityReadingModel{},
	))

	repos := persistence.NewRepositories(db)
	uow := persistence.NewGormUnitOfWork(db)
	logger := zap.NewNop()
	notifier := appbilling.NopNotifier{}

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret",
		RefreshSecret:          "test-refresh-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "housebill-test",
	})

	authService := appidentity.NewAuthService(repos.Users, jwtService, logger)
	userService := appidentity.NewUserService(repos.Users, logger)
	billService := appbilling.NewBillService(uow, repos, notifier, logger)
	shareService := appbilling.NewShareService(uow, repos, logger)
	paymentService := appbilling.NewPaymentService(uow, repos, notifier, logger)
	settingService := appbilling.NewSettingService(uow, repos, logger)
	readingService := appbilling.NewReadingService(repos, logger)
	dashboardService := appbilling.NewDashboardService(repos)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.JWTAuthMiddleware(jwtService, repos.Users))

	r := router.NewRouter(engine)
	r.Register(NewAuthHandler(authService, logger)).
		Register(NewUserHandler(userService, logger)).
		Register(NewBillHandler(billService, logger)).
		Register(NewShareHandler(shareService, logger)).
		Register(NewPaymentHandler(paymentService, logger)).
		Register(NewSettingHandler(settingService, logger)).
		Register(NewReadingHandler(readingService, logger)).
		Register(NewDashboardHandler(dashboardService, config.CurrencyConfig{Code: "BDT", Symbol: "৳"}, logger)).
		Register(NewSystemHandler(db, "test"))
	r.Setup()

	return &testServer{
		engine:     engine,
		users:      repos.Users,
		jwtService: jwtService,
	}
}

func (s *testServer) seedUser(t *testing.T, name, email string, role identity.Role) *identity.User {
	t.Helper()

	user, err := identity.NewUser(name, email, "password123", role)
	require.NoError(t, err)
	require.NoError(t, s.users.Create(context.Background(), user))
	return user
}

// tokenFor issues a valid access token for the user
func (s *testServer) tokenFor(t *testing.T, user *identity.User) string {
	t.Helper()

	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role.String(),
	})
	require.NoError(t, err)
	return tokens.AccessToken
}

// do performs a request and returns the recorder
func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals the response body into a map envelope
func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func dataOf(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	envelope := decode(t, rec)
	data, ok := envelope["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %s", rec.Body.String())
	return data
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	envelope := decode(t, rec)
	errInfo, ok := envelope["error"].(map[string]interface{})
	require.True(t, ok, "response has no error object: %s", rec.Body.String())
	return errInfo
}
