package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
	"github.com/eventsphere/eventsphere-api/internal/core/ports"
)

// BookmarkService implements saving, listing, searching, and removing a
// user's bookmarked events.
type BookmarkService struct {
	repo ports.BookmarkRepository
	log  zerolog.Logger
}

func NewBookmarkService(repo ports.BookmarkRepository, log zerolog.Logger) *BookmarkService {
	return &BookmarkService{repo: repo, log: log}
}

// Save upserts a bookmark keyed by (user, event id). The payload is
// normalised once here; reads return it verbatim.
func (s *BookmarkService) Save(ctx context.Context, userID string, in ports.SaveBookmarkInput) (*domain.Bookmark, error) {
	data := in.Data
	data.Normalize()

	eventID := in.EventID
	if eventID == "" {
		eventID = synthesizeEventID(data.Name)
	}

	b := &domain.Bookmark{
		UserID:    userID,
		EventID:   eventID,
		Data:      data,
		Tags:      strings.TrimSpace(in.Tags),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Upsert(ctx, b); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Str("event_id", eventID).Msg("event bookmarked")
	return b, nil
}

func (s *BookmarkService) List(ctx context.Context, userID string) ([]*domain.Bookmark, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Search loads the user's bookmarks and filters them in memory. The text
// query matches a case-insensitive substring of name, location, or address;
// the date filter is a prefix match; every requested tag must appear as a
// substring of the stored tag string.
func (s *BookmarkService) Search(ctx context.Context, userID string, q ports.BookmarkSearch) ([]*domain.Bookmark, error) {
	all, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(q.Query))
	tags := splitTags(q.Tags)

	matched := make([]*domain.Bookmark, 0, len(all))
	for _, b := range all {
		if matchesText(b, query) && matchesDate(b, q.Date) && matchesTags(b, tags) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

func (s *BookmarkService) Remove(ctx context.Context, userID, idOrEventID string) error {
	return s.repo.Remove(ctx, userID, idOrEventID)
}

func (s *BookmarkService) ListAll(ctx context.Context) ([]*domain.Bookmark, error) {
	return s.repo.ListAll(ctx)
}

func (s *BookmarkService) DeleteRow(ctx context.Context, rowID string) error {
	return s.repo.DeleteRow(ctx, rowID)
}

// synthesizeEventID builds a stable-looking identifier from the event name
// and the current time, for events the provider gave no id.
func synthesizeEventID(name string) string {
	slug := strings.ToLower(strings.Join(strings.Fields(name), "-"))
	return fmt.Sprintf("%s-%d", slug, time.Now().UnixMilli())
}

func matchesText(b *domain.Bookmark, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(b.Data.Name), query) ||
		strings.Contains(strings.ToLower(b.Data.Location), query) ||
		strings.Contains(strings.ToLower(b.Data.Address), query)
}

func matchesDate(b *domain.Bookmark, date string) bool {
	if date == "" {
		return true
	}
	return strings.HasPrefix(b.Data.Date, date)
}

func matchesTags(b *domain.Bookmark, tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	stored := strings.ToLower(b.Tags)
	if stored == "" {
		return false
	}
	for _, tag := range tags {
		if !strings.Contains(stored, tag) {
			return false
		}
	}
	return true
}

func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.ToLower(strings.TrimSpace(p)); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
