package handler

import (
	"time"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
)

type saveBookmarkRequest struct {
	EventID   string `json:"event_id"`
	Name      string `json:"name"`
	Location  string `json:"location"`
	Address   string `json:"address"`
	Date      string `json:"date"`
	Image     string `json:"image"`
	TicketURL string `json:"ticketUrl"`
	Platform  string `json:"platform"`
	Tags      string `json:"tags"`
}

type saveBookmarkResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	EventID string `json:"event_id"`
}

// savedEventItem is the flattened view of a bookmark served to clients: the
// event snapshot merged with the bookmark row's own fields.
type savedEventItem struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Address   string    `json:"address,omitempty"`
	Date      string    `json:"date"`
	Image     string    `json:"image"`
	TicketURL string    `json:"ticketUrl"`
	Platform  string    `json:"platform"`
	Tags      string    `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

type savedEventsResponse struct {
	Events []savedEventItem `json:"events"`
}

func toSavedEventItem(b *domain.Bookmark) savedEventItem {
	return savedEventItem{
		ID:        b.ID,
		EventID:   b.EventID,
		Name:      b.Data.Name,
		Location:  b.Data.Location,
		Address:   b.Data.Address,
		Date:      b.Data.Date,
		Image:     b.Data.Image,
		TicketURL: b.Data.TicketURL,
		Platform:  b.Data.Platform,
		Tags:      b.Tags,
		CreatedAt: b.CreatedAt,
	}
}

func toSavedEventItems(bs []*domain.Bookmark) []savedEventItem {
	items := make([]savedEventItem, 0, len(bs))
	for _, b := range bs {
		items = append(items, toSavedEventItem(b))
	}
	return items
}
