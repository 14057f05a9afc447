package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
	"github.com/eventsphere/eventsphere-api/internal/core/ports"
)

const (
	// Second-precision ISO 8601, the only timestamp shape the provider accepts.
	providerTimeLayout = "2006-01-02T15:04:05Z"

	trendingWindow   = 7 * 24 * time.Hour
	allEventsSize    = 200
	dashboardPerPage = 7
)

// DiscoveryService proxies event search to the external ticketing provider
// and serves the admin dashboard's aggregate views.
type DiscoveryService struct {
	provider ports.EventProvider
	country  string
	log      zerolog.Logger
}

func NewDiscoveryService(provider ports.EventProvider, defaultCountry string, log zerolog.Logger) *DiscoveryService {
	if defaultCountry == "" {
		defaultCountry = "AU"
	}
	return &DiscoveryService{provider: provider, country: defaultCountry, log: log}
}

// Search is the general-purpose pass-through search.
func (s *DiscoveryService) Search(ctx context.Context, in ports.DiscoverySearch) (*domain.EventPage, error) {
	return s.provider.Search(ctx, ports.EventQuery{
		City:          in.Location,
		Keyword:       in.Keyword,
		Sort:          in.Sort,
		CountryCode:   s.countryOrDefault(in.CountryCode),
		StartDateTime: in.StartDateTime,
		EndDateTime:   in.EndDateTime,
	})
}

// Upcoming returns events starting from now.
func (s *DiscoveryService) Upcoming(ctx context.Context, location, keyword string) (*domain.EventPage, error) {
	return s.provider.Search(ctx, ports.EventQuery{
		City:          location,
		Keyword:       keyword,
		CountryCode:   s.country,
		StartDateTime: time.Now().UTC().Format(providerTimeLayout),
	})
}

// Trending returns events in the requested window, defaulting to the next
// seven days.
func (s *DiscoveryService) Trending(ctx context.Context, in ports.DiscoverySearch) (*domain.EventPage, error) {
	start := in.StartDateTime
	if start == "" {
		start = time.Now().UTC().Format(providerTimeLayout)
	}
	end := in.EndDateTime
	if end == "" {
		end = time.Now().UTC().Add(trendingWindow).Format(providerTimeLayout)
	}
	return s.provider.Search(ctx, ports.EventQuery{
		Sort:          in.Sort,
		CountryCode:   s.countryOrDefault(in.CountryCode),
		StartDateTime: start,
		EndDateTime:   end,
	})
}

func (s *DiscoveryService) Details(ctx context.Context, id string) (*domain.ProviderEvent, error) {
	return s.provider.Details(ctx, id)
}

// AllEvents returns the provider's upcoming events flattened for the admin
// dashboard, capped at one provider page.
func (s *DiscoveryService) AllEvents(ctx context.Context) (*ports.AllEventsResult, error) {
	page, err := s.provider.Search(ctx, ports.EventQuery{
		Sort:        "date,asc",
		CountryCode: s.country,
		Size:        allEventsSize,
	})
	if err != nil {
		return nil, err
	}

	var summaries []domain.EventSummary
	if page.Embedded != nil {
		summaries = make([]domain.EventSummary, 0, len(page.Embedded.Events))
		for _, e := range page.Embedded.Events {
			summaries = append(summaries, e.Summarize(s.country))
		}
	}

	totalPages := (len(summaries) + dashboardPerPage - 1) / dashboardPerPage
	return &ports.AllEventsResult{
		Events:     summaries,
		Total:      len(summaries),
		Page:       1,
		TotalPages: totalPages,
	}, nil
}

// EventsCount returns the provider's total number of available events, read
// from the page metadata of a single-element query.
func (s *DiscoveryService) EventsCount(ctx context.Context) (int64, error) {
	page, err := s.provider.Search(ctx, ports.EventQuery{
		Sort:        "date,asc",
		CountryCode: s.country,
		Size:        1,
	})
	if err != nil {
		return 0, err
	}
	if page.Page.TotalElements > 0 {
		return page.Page.TotalElements, nil
	}
	if page.Embedded != nil {
		return int64(len(page.Embedded.Events)), nil
	}
	return 0, nil
}

// TrendingCount returns the number of events starting within the next seven
// days.
func (s *DiscoveryService) TrendingCount(ctx context.Context) (int, error) {
	now := time.Now().UTC()
	page, err := s.provider.Search(ctx, ports.EventQuery{
		Sort:          "date,asc",
		CountryCode:   s.country,
		StartDateTime: now.Format(providerTimeLayout),
		EndDateTime:   now.Add(trendingWindow).Format(providerTimeLayout),
	})
	if err != nil {
		return 0, err
	}
	if page.Embedded == nil {
		return 0, nil
	}
	return len(page.Embedded.Events), nil
}

func (s *DiscoveryService) countryOrDefault(code string) string {
	if code == "" {
		return s.country
	}
	return code
}
