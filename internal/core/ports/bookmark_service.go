package ports

import (
	"context"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
)

// SaveBookmarkInput is the payload of a bookmark action. EventID is optional;
// when empty, an id is synthesized from the event name and the current time.
type SaveBookmarkInput struct {
	EventID string
	Data    domain.EventData
	Tags    string
}

// BookmarkSearch carries the saved-events search filters. All are optional;
// empty filters match everything.
type BookmarkSearch struct {
	Query string // case-insensitive substring on name, location, address
	Date  string // prefix match on the stored date
	Tags  string // comma-separated; every tag must appear in the stored tags
}

// BookmarkService implements the saved-events use cases.
type BookmarkService interface {
	Save(ctx context.Context, userID string, in SaveBookmarkInput) (*domain.Bookmark, error)
	List(ctx context.Context, userID string) ([]*domain.Bookmark, error)
	Search(ctx context.Context, userID string, q BookmarkSearch) ([]*domain.Bookmark, error)
	Remove(ctx context.Context, userID, idOrEventID string) error
	ListAll(ctx context.Context) ([]*domain.Bookmark, error)
	DeleteRow(ctx context.Context, rowID string) error
}
