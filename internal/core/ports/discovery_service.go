package ports

import (
	"context"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
)

// DiscoverySearch carries the client-facing search parameters for the
// pass-through endpoints.
type DiscoverySearch struct {
	Location      string
	Keyword       string
	Sort          string
	CountryCode   string
	StartDateTime string
	EndDateTime   string
}

// AllEventsResult is the admin listing of upcoming provider events.
type AllEventsResult struct {
	Events     []domain.EventSummary `json:"events"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	TotalPages int                   `json:"totalPages"`
}

// DiscoveryService proxies the external ticketing provider.
type DiscoveryService interface {
	// Search is the general-purpose pass-through search.
	Search(ctx context.Context, in DiscoverySearch) (*domain.EventPage, error)
	// Upcoming returns events starting from now, optionally filtered by
	// location and keyword.
	Upcoming(ctx context.Context, location, keyword string) (*domain.EventPage, error)
	// Trending returns events in [start, end], defaulting to the next 7 days.
	Trending(ctx context.Context, in DiscoverySearch) (*domain.EventPage, error)
	Details(ctx context.Context, id string) (*domain.ProviderEvent, error)
	AllEvents(ctx context.Context) (*AllEventsResult, error)
	EventsCount(ctx context.Context) (int64, error)
	TrendingCount(ctx context.Context) (int, error)
}
