package domain

import "time"

// Defaults applied when the upstream payload omits a field. The provider's
// event shape is inconsistent, so the payload is normalised once at ingestion
// and read back without further interpretation.
const (
	DefaultEventName     = "Unknown Event"
	DefaultEventLocation = "Unknown Location"
	DefaultEventDate     = "Date TBA"
	DefaultEventImage    = "/public/homepage/assets/images/event.png"
	DefaultTicketURL     = "#"
	DefaultPlatform      = "Unknown Platform"
)

// EventData is the normalised snapshot of an external event stored with a
// bookmark.
type EventData struct {
	Name      string `json:"name" bson:"name"`
	Location  string `json:"location" bson:"location"`
	Address   string `json:"address,omitempty" bson:"address,omitempty"`
	Date      string `json:"date" bson:"date"`
	Image     string `json:"image" bson:"image"`
	TicketURL string `json:"ticketUrl" bson:"ticket_url"`
	Platform  string `json:"platform" bson:"platform"`
}

// Normalize fills in defaults for any field the caller left empty.
func (d *EventData) Normalize() {
	if d.Name == "" {
		d.Name = DefaultEventName
	}
	if d.Location == "" {
		d.Location = DefaultEventLocation
	}
	if d.Date == "" {
		d.Date = DefaultEventDate
	}
	if d.Image == "" {
		d.Image = DefaultEventImage
	}
	if d.TicketURL == "" {
		d.TicketURL = DefaultTicketURL
	}
	if d.Platform == "" {
		d.Platform = DefaultPlatform
	}
}

// Bookmark is an event a user saved. Exactly one bookmark exists per
// (user, event id) pair; re-saving the same event replaces the snapshot.
type Bookmark struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	EventID   string    `json:"event_id"`
	Data      EventData `json:"data"`
	Tags      string    `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
