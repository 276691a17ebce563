package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/housebill/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

// User represents a household member account
// It is the aggregate root for user-related operations
type User struct {
	shared.BaseAggregateRoot
	Name           string
	Email          string
	PasswordHash   string
	Role           Role
	TelegramChatID string
	LastLoginAt    *time.Time
}

// NewUser creates a new user with required fields
func NewUser(name, email, password string, role Role) (*User, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be one of super_admin, admin, resident")
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:      passwordHash,
		Role:              role,
	}, nil
}

// SetName updates the user's display name
func (u *User) SetName(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	u.Name = strings.TrimSpace(name)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// SetEmail updates the user's email
func (u *User) SetEmail(email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	u.Email = strings.ToLower(strings.TrimSpace(email))
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// SetRole changes the user's role
func (u *User) SetRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Role must be one of super_admin, admin, resident")
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// SetPassword sets a new password
func (u *User) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	passwordHash, err := hashPassword(password)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// LinkTelegramChat stores the user's Telegram chat ID for notifications
func (u *User) LinkTelegramChat(chatID string) error {
	chatID = strings.TrimSpace(chatID)
	if len(chatID) > 64 {
		return shared.NewDomainError("INVALID_CHAT_ID", "Telegram chat ID cannot exceed 64 characters")
	}
	u.TelegramChatID = chatID
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// UnlinkTelegramChat clears the stored Telegram chat ID
func (u *User) UnlinkTelegramChat() {
	u.TelegramChatID = ""
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// HasTelegramChat returns true when a Telegram chat is linked
func (u *User) HasTelegramChat() bool {
	return u.TelegramChatID != ""
}

// RecordLoginSuccess records a successful login
func (u *User) RecordLoginSuccess() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
	u.IncrementVersion()
}

// IsAdmin returns true for admin and super admin users
func (u *User) IsAdmin() bool {
	return u.Role.IsAdmin()
}

// IsResident returns true for resident users
func (u *User) IsResident() bool {
	return u.Role == RoleResident
}

// Validation functions

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
