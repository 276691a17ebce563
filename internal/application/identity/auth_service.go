package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/housebill/backend/internal/domain/identity"
	"github.com/housebill/backend/internal/domain/shared"
	"github.com/housebill/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo identity.UserRepository, jwtService *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// LoginInput contains the login credentials
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains the authenticated user and their tokens
type LoginResult struct {
	User   *identity.User
	Tokens *auth.TokenPair
}

// Login authenticates by email and password and issues a token pair.
// Lookup and password failures return the same error so the response
// never reveals which part was wrong.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Warn("Login attempt for unknown email", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	user.RecordLoginSuccess()
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to record login time", zap.Error(err))
	}

	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role.String(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role.String()))

	return &LoginResult{User: user, Tokens: tokens}, nil
}

// Refresh exchanges a valid refresh token for a fresh token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid or expired")
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid or expired")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid or expired")
	}

	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role.String(),
	})
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, Tokens: tokens}, nil
}

// Me loads the authenticated user's profile
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*identity.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}
