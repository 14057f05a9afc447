package ports

import (
	"context"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
)

// BookmarkRepository defines persistence operations for saved events.
type BookmarkRepository interface {
	// Upsert inserts the bookmark or, when a row for (user, event id) already
	// exists, replaces its payload and tags. The stored row's creation time is
	// preserved on replace.
	Upsert(ctx context.Context, b *domain.Bookmark) error
	// ListByUser returns the user's bookmarks, most recent first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Bookmark, error)
	// Remove deletes the user's bookmark matching the database row id, falling
	// back to the event id. Returns domain.ErrBookmarkNotFound when neither
	// matches a row owned by the user.
	Remove(ctx context.Context, userID, idOrEventID string) error
	// DeleteAllForUser removes every bookmark owned by the user.
	DeleteAllForUser(ctx context.Context, userID string) error
	// ListAll returns bookmarks across all users (admin view).
	ListAll(ctx context.Context) ([]*domain.Bookmark, error)
	// DeleteRow removes a bookmark by database row id regardless of owner.
	DeleteRow(ctx context.Context, rowID string) error
}
