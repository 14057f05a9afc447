package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
	"github.com/eventsphere/eventsphere-api/internal/core/ports"
)

type stubBookmarkService struct {
	saved     []ports.SaveBookmarkInput
	bookmarks []*domain.Bookmark
	searches  []ports.BookmarkSearch
	removeErr error
	removed   []string
}

func (s *stubBookmarkService) Save(_ context.Context, _ string, in ports.SaveBookmarkInput) (*domain.Bookmark, error) {
	s.saved = append(s.saved, in)
	eventID := in.EventID
	if eventID == "" {
		eventID = "synth-1"
	}
	return &domain.Bookmark{ID: "bm-1", EventID: eventID, Data: in.Data, Tags: in.Tags}, nil
}

func (s *stubBookmarkService) List(_ context.Context, _ string) ([]*domain.Bookmark, error) {
	return s.bookmarks, nil
}

func (s *stubBookmarkService) Search(_ context.Context, _ string, q ports.BookmarkSearch) ([]*domain.Bookmark, error) {
	s.searches = append(s.searches, q)
	return s.bookmarks, nil
}

func (s *stubBookmarkService) Remove(_ context.Context, _, idOrEventID string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	s.removed = append(s.removed, idOrEventID)
	return nil
}

func (s *stubBookmarkService) ListAll(_ context.Context) ([]*domain.Bookmark, error) {
	return s.bookmarks, nil
}

func (s *stubBookmarkService) DeleteRow(_ context.Context, rowID string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	s.removed = append(s.removed, rowID)
	return nil
}

func TestBookmarkHandler_Save(t *testing.T) {
	svc := &stubBookmarkService{}
	h := NewBookmarkHandler(svc)

	c, rec := newJSONContext(http.MethodPost, "/api/events/bookmark",
		`{"event_id":"evt-1","name":"Jazz Night","ticketUrl":"https://t.example.com","tags":"jazz"}`, true)
	if err := h.Save(c); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp saveBookmarkResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.EventID != "evt-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	if len(svc.saved) != 1 {
		t.Fatalf("expected one save, got %d", len(svc.saved))
	}
	in := svc.saved[0]
	if in.Data.Name != "Jazz Night" || in.Data.TicketURL != "https://t.example.com" || in.Tags != "jazz" {
		t.Fatalf("payload not forwarded: %+v", in)
	}
}

func TestBookmarkHandler_Save_Unauthenticated(t *testing.T) {
	h := NewBookmarkHandler(&stubBookmarkService{})

	c, _ := newJSONContext(http.MethodPost, "/api/events/bookmark", `{"name":"x"}`, false)
	if err := h.Save(c); err == nil {
		t.Fatalf("expected error without auth context")
	}
}

func TestBookmarkHandler_List_FlattensSnapshot(t *testing.T) {
	now := time.Now().UTC()
	svc := &stubBookmarkService{bookmarks: []*domain.Bookmark{
		{
			ID:      "bm-1",
			UserID:  "user-1",
			EventID: "evt-1",
			Data: domain.EventData{
				Name:      "Jazz Night",
				Location:  "Opera House",
				Date:      "2026-09-12",
				Image:     "https://img.example.com/1.jpg",
				TicketURL: "https://t.example.com",
				Platform:  "TicketMaster",
			},
			Tags:      "jazz",
			CreatedAt: now,
		},
	}}
	h := NewBookmarkHandler(svc)

	c, rec := newJSONContext(http.MethodGet, "/api/events/bookmarks", "", true)
	if err := h.List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	var resp savedEventsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Events) != 1 {
		t.Fatalf("expected one event, got %d", len(resp.Events))
	}
	item := resp.Events[0]
	if item.Name != "Jazz Night" || item.Location != "Opera House" || item.TicketURL != "https://t.example.com" {
		t.Fatalf("snapshot not flattened: %+v", item)
	}
	if item.ID != "bm-1" || item.EventID != "evt-1" || item.Tags != "jazz" {
		t.Fatalf("row fields missing: %+v", item)
	}
}

func TestBookmarkHandler_Search_ForwardsFilters(t *testing.T) {
	svc := &stubBookmarkService{}
	h := NewBookmarkHandler(svc)

	c, rec := newJSONContext(http.MethodGet,
		"/api/events/saved/search?q=jazz&date=2026-09&tags=music,live", "", true)
	if err := h.Search(c); err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if len(svc.searches) != 1 {
		t.Fatalf("expected one search, got %d", len(svc.searches))
	}
	q := svc.searches[0]
	if q.Query != "jazz" || q.Date != "2026-09" || q.Tags != "music,live" {
		t.Fatalf("filters not forwarded: %+v", q)
	}
}

func TestBookmarkHandler_Remove_NotFound(t *testing.T) {
	svc := &stubBookmarkService{removeErr: domain.ErrBookmarkNotFound}
	h := NewBookmarkHandler(svc)

	c, _ := newJSONContext(http.MethodDelete, "/api/events/bookmark/evt-404", "", true)
	c.SetParamNames("id")
	c.SetParamValues("evt-404")

	if err := h.Remove(c); !errors.Is(err, domain.ErrBookmarkNotFound) {
		t.Fatalf("expected ErrBookmarkNotFound, got %v", err)
	}
}
