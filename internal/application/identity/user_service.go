package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/housebill/backend/internal/domain/identity"
	"github.com/housebill/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UserService manages household member accounts
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreateUserInput carries a user creation payload
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     identity.Role
}

// UpdateUserInput carries a user patch; nil fields are left alone
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *identity.Role
}

// Create adds a household member. Super admin only.
func (s *UserService) Create(ctx context.Context, actor *identity.User, input CreateUserInput) (*identity.User, error) {
	if d := identity.Decide(actor, identity.ActionManageUsers, uuid.Nil); !d.Allowed {
		return nil, shared.NewDomainError("FORBIDDEN", d.Reason)
	}

	if !input.Role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be one of super_admin, admin, resident")
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "A user with this email already exists")
	}

	user, err := identity.NewUser(input.Name, input.Email, input.Password, input.Role)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role.String()))

	return user, nil
}

// Update patches a household member. Super admin only.
func (s *UserService) Update(ctx context.Context, actor *identity.User, userID uuid.UUID, input UpdateUserInput) (*identity.User, error) {
	if d := identity.Decide(actor, identity.ActionManageUsers, uuid.Nil); !d.Allowed {
		return nil, shared.NewDomainError("FORBIDDEN", d.Reason)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := user.SetName(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Email != nil && *input.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if exists {
			return nil, shared.NewDomainError("EMAIL_TAKEN", "A user with this email already exists")
		}
		if err := user.SetEmail(*input.Email); err != nil {
			return nil, err
		}
	}
	if input.Password != nil {
		if err := user.SetPassword(*input.Password); err != nil {
			return nil, err
		}
	}
	if input.Role != nil {
		if err := user.SetRole(*input.Role); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", userID, err)
	}

	return user, nil
}

// Delete removes a household member. Super admin only; self-deletion
// is rejected so the household cannot lock itself out.
func (s *UserService) Delete(ctx context.Context, actor *identity.User, userID uuid.UUID) error {
	if d := identity.Decide(actor, identity.ActionManageUsers, uuid.Nil); !d.Allowed {
		return shared.NewDomainError("FORBIDDEN", d.Reason)
	}
	if actor.ID == userID {
		return shared.NewDomainError("INVALID_TARGET", "You cannot delete your own account")
	}

	return s.userRepo.Delete(ctx, userID)
}

// List returns users matching the filter, ordered by name. Admin only.
func (s *UserService) List(ctx context.Context, actor *identity.User, filter identity.UserFilter) ([]*identity.User, int64, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, 0, shared.NewDomainError("FORBIDDEN", "administrator role required")
	}
	return s.userRepo.FindAll(ctx, filter)
}

// Residents returns every resident, for share assignment pickers
func (s *UserService) Residents(ctx context.Context) ([]*identity.User, error) {
	return s.userRepo.FindResidents(ctx)
}

// Get loads one user. Admins may load anyone; others only themselves.
func (s *UserService) Get(ctx context.Context, actor *identity.User, userID uuid.UUID) (*identity.User, error) {
	if actor == nil {
		return nil, shared.ErrUnauthorized
	}
	if !actor.IsAdmin() && actor.ID != userID {
		return nil, shared.NewDomainError("FORBIDDEN", "You may only view your own profile")
	}
	return s.userRepo.FindByID(ctx, userID)
}

// LinkTelegramChat stores the caller's own Telegram chat id
func (s *UserService) LinkTelegramChat(ctx context.Context, actor *identity.User, chatID string) (*identity.User, error) {
	if actor == nil {
		return nil, shared.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if err := user.LinkTelegramChat(chatID); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to link telegram chat: %w", err)
	}

	s.logger.Info("Telegram chat linked", zap.String("user_id", user.ID.String()))
	return user, nil
}

// UnlinkTelegramChat clears the caller's own Telegram chat id
func (s *UserService) UnlinkTelegramChat(ctx context.Context, actor *identity.User) (*identity.User, error) {
	if actor == nil {
		return nil, shared.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	user.UnlinkTelegramChat()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to unlink telegram chat: %w", err)
	}

	return user, nil
}
