package ports

import (
	"context"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
)

// ProfileUpdate carries a self-service profile mutation. Nil fields are left
// untouched.
type ProfileUpdate struct {
	Username    *string
	Email       *string
	Preferences map[string]any
	Avatar      *string
}

// AdminUserUpdate carries an admin-initiated mutation of another account.
type AdminUserUpdate struct {
	Username *string
	Email    *string
	Role     *string
	Password *string
}

// UserService implements profile and user-management use cases.
type UserService interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	// AdminUpdateUser mutates a non-admin account. Fails with
	// domain.ErrAdminProtected when the target is an admin or the update
	// attempts to grant the admin role.
	AdminUpdateUser(ctx context.Context, targetID string, upd AdminUserUpdate) error
	// DeleteUser removes a non-admin account and cascades to its bookmarks.
	DeleteUser(ctx context.Context, targetID string) error
}
