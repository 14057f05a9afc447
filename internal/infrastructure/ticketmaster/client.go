// Package ticketmaster implements the outbound client for the Ticketmaster
// Discovery v2 API. Provider failures collapse into domain.ErrUpstream so no
// provider-internal payload ever reaches a client of this service.
package ticketmaster

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
	"github.com/eventsphere/eventsphere-api/internal/core/ports"
)

const defaultRequestTimeout = 10 * time.Second

// Config captures the settings for the Discovery API client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Search queries the event search endpoint.
func (c *Client) Search(ctx context.Context, q ports.EventQuery) (*domain.EventPage, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	if q.City != "" {
		params.Set("city", q.City)
	}
	if q.Keyword != "" {
		params.Set("keyword", q.Keyword)
	}
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}
	if q.CountryCode != "" {
		params.Set("countryCode", q.CountryCode)
	}
	if q.StartDateTime != "" {
		params.Set("startDateTime", q.StartDateTime)
	}
	if q.EndDateTime != "" {
		params.Set("endDateTime", q.EndDateTime)
	}
	if q.Size > 0 {
		params.Set("size", strconv.Itoa(q.Size))
	}

	var page domain.EventPage
	if err := c.get(ctx, c.baseURL+"/events.json?"+params.Encode(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Details fetches a single event by provider id.
func (c *Client) Details(ctx context.Context, id string) (*domain.ProviderEvent, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)

	var event domain.ProviderEvent
	endpoint := fmt.Sprintf("%s/events/%s.json?%s", c.baseURL, url.PathEscape(id), params.Encode())
	if err := c.get(ctx, endpoint, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrUpstream, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Msg("ticketmaster request failed")
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error().Int("status", resp.StatusCode).Msg("ticketmaster returned non-200")
		return fmt.Errorf("%w: status %d", domain.ErrUpstream, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.Error().Err(err).Msg("ticketmaster response decode failed")
		return fmt.Errorf("%w: decode response: %v", domain.ErrUpstream, err)
	}
	return nil
}
