package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
	"github.com/eventsphere/eventsphere-api/internal/core/ports"
)

// UserService implements profile self-service and admin user management.
type UserService struct {
	users     ports.UserRepository
	bookmarks ports.BookmarkRepository
	log       zerolog.Logger
}

func NewUserService(users ports.UserRepository, bookmarks ports.BookmarkRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, bookmarks: bookmarks, log: log}
}

func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd ports.ProfileUpdate) (*domain.User, error) {
	mutation := ports.UserUpdate{
		Username:    upd.Username,
		Email:       upd.Email,
		Preferences: upd.Preferences,
		Avatar:      upd.Avatar,
	}
	if mutation.Empty() {
		return nil, domain.ErrNoChanges
	}

	if err := s.users.Update(ctx, userID, mutation); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Msg("profile updated")
	return s.users.FindByID(ctx, userID)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// AdminUpdateUser mutates a non-admin account. Admin rows are immutable
// through the API, and no update may grant the admin role.
func (s *UserService) AdminUpdateUser(ctx context.Context, targetID string, upd ports.AdminUserUpdate) error {
	if upd.Role != nil && *upd.Role == domain.RoleAdmin {
		return domain.ErrAdminProtected
	}

	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target.Role == domain.RoleAdmin {
		return domain.ErrAdminProtected
	}

	mutation := ports.UserUpdate{
		Username: upd.Username,
		Email:    upd.Email,
		Role:     upd.Role,
	}
	if upd.Password != nil && *upd.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcryptCost)
		if err != nil {
			return err
		}
		h := string(hash)
		mutation.PasswordHash = &h
	}
	if mutation.Empty() {
		return domain.ErrNoChanges
	}

	if err := s.users.Update(ctx, targetID, mutation); err != nil {
		return err
	}

	s.log.Info().Str("target_id", targetID).Msg("user updated by admin")
	return nil
}

// DeleteUser removes a non-admin account and cascades to its bookmarks.
func (s *UserService) DeleteUser(ctx context.Context, targetID string) error {
	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target.Role == domain.RoleAdmin {
		return domain.ErrAdminProtected
	}

	if err := s.bookmarks.DeleteAllForUser(ctx, targetID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, targetID); err != nil {
		return err
	}

	s.log.Info().Str("target_id", targetID).Msg("user deleted")
	return nil
}
