package domain

// Typed envelope for the Ticketmaster Discovery v2 event search response.
// Only the fields this service reads are declared; everything else the
// provider sends is dropped at the boundary.

type EventPage struct {
	Embedded *EventPageEmbedded `json:"_embedded,omitempty"`
	Page     PageInfo           `json:"page"`
}

type EventPageEmbedded struct {
	Events []ProviderEvent `json:"events"`
}

type PageInfo struct {
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
}

type ProviderEvent struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	URL      string         `json:"url,omitempty"`
	Images   []EventImage   `json:"images,omitempty"`
	Dates    EventDates     `json:"dates"`
	Embedded *EventEmbedded `json:"_embedded,omitempty"`
}

type EventImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

type EventDates struct {
	Start EventStart `json:"start"`
}

type EventStart struct {
	LocalDate string `json:"localDate,omitempty"`
	DateTime  string `json:"dateTime,omitempty"`
}

type EventEmbedded struct {
	Venues []Venue `json:"venues,omitempty"`
}

type Venue struct {
	Name string    `json:"name,omitempty"`
	City VenueCity `json:"city"`
}

type VenueCity struct {
	Name string `json:"name,omitempty"`
}

// EventSummary is the flattened view served to the admin dashboard.
type EventSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Image    string `json:"image"`
	Date     string `json:"date"`
	Source   string `json:"source"`
	Link     string `json:"link"`
}

// Summarize flattens a provider event, defaulting every field the provider
// left out.
func (e ProviderEvent) Summarize(fallbackLocation string) EventSummary {
	s := EventSummary{
		ID:       e.ID,
		Name:     e.Name,
		Location: fallbackLocation,
		Image:    "https://via.placeholder.com/60",
		Date:     "TBD",
		Source:   "TicketMaster",
		Link:     "#",
	}
	if e.Embedded != nil && len(e.Embedded.Venues) > 0 {
		v := e.Embedded.Venues[0]
		switch {
		case v.Name != "":
			s.Location = v.Name
		case v.City.Name != "":
			s.Location = v.City.Name
		}
	}
	if len(e.Images) > 0 && e.Images[0].URL != "" {
		s.Image = e.Images[0].URL
	}
	if e.Dates.Start.LocalDate != "" {
		s.Date = e.Dates.Start.LocalDate
	}
	if e.URL != "" {
		s.Link = e.URL
	}
	return s
}
