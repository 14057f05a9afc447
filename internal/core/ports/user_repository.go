package ports

import (
	"context"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
)

// UserUpdate carries a partial user mutation. Nil fields are left untouched.
type UserUpdate struct {
	Username         *string
	Email            *string
	Role             *string
	PasswordHash     *string
	Preferences      map[string]any
	Avatar           *string
	TwoFactorSecret  *string
	TwoFactorEnabled *bool
}

// Empty reports whether the update carries no mutation at all.
func (u UserUpdate) Empty() bool {
	return u.Username == nil && u.Email == nil && u.Role == nil &&
		u.PasswordHash == nil && u.Preferences == nil && u.Avatar == nil &&
		u.TwoFactorSecret == nil && u.TwoFactorEnabled == nil
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrEmailTaken when the email
	// is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Update applies a partial mutation. Returns domain.ErrEmailTaken when the
	// new email collides with another account and domain.ErrUserNotFound when
	// the id does not exist.
	Update(ctx context.Context, id string, upd UserUpdate) error
	Delete(ctx context.Context, id string) error
}
