package ports

import (
	"context"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
)

// EventQuery carries search parameters for the external events provider.
// Zero-valued fields are omitted from the outbound request.
type EventQuery struct {
	City          string
	Keyword       string
	Sort          string
	CountryCode   string
	StartDateTime string // ISO 8601, second precision
	EndDateTime   string
	Size          int
}

// EventProvider is the outbound port to the third-party ticketing API.
type EventProvider interface {
	// Search queries the provider's event search endpoint. Provider failures
	// surface as errors wrapping domain.ErrUpstream.
	Search(ctx context.Context, q EventQuery) (*domain.EventPage, error)
	// Details fetches a single event by provider id.
	Details(ctx context.Context, id string) (*domain.ProviderEvent, error)
}
