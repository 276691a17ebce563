package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/housebill/backend/internal/domain/shared"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// Update updates an existing user
	Update(ctx context.Context, user *User) error

	// Delete deletes a user by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindAll returns users matching the filter
	FindAll(ctx context.Context, filter UserFilter) ([]*User, int64, error)

	// FindByRole finds all users with a specific role
	FindByRole(ctx context.Context, role Role) ([]*User, error)

	// FindResidents returns all resident users
	FindResidents(ctx context.Context) ([]*User, error)

	// ExistsByEmail checks if an email already exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Count returns the total number of users
	Count(ctx context.Context) (int64, error)
}

// UserFilter contains filter options for querying users
type UserFilter struct {
	// Search keyword for name or email
	Keyword string

	// Filter by role
	Role *Role

	// Pagination
	Page     int
	PageSize int

	// Ordering
	Sort shared.Sort
}
