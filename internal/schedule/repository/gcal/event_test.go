package gcal_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"calboss/internal/model"
	"calboss/internal/schedule/repository"
	"calboss/internal/schedule/repository/gcal"
	"calboss/pkg/datemath"
	"calboss/pkg/gcalendar"
	"calboss/pkg/log"
)

type mockClient struct {
	listReq   gcalendar.ListEventsRequest
	listResp  []gcalendar.Event
	createReq gcalendar.CreateEventRequest
	deleted   []string
	err       error
}

func (m *mockClient) ListEvents(_ context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error) {
	m.listReq = req
	return m.listResp, m.err
}

func (m *mockClient) GetEvent(_ context.Context, _, eventID string) (*gcalendar.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &gcalendar.Event{ID: eventID, Summary: "Lunch"}, nil
}

func (m *mockClient) CreateEvent(_ context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error) {
	m.createReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &gcalendar.Event{ID: "new", Summary: req.Summary, StartDate: req.StartDate, EndDate: req.EndDate, StartTime: req.StartTime, EndTime: req.EndTime}, nil
}

func (m *mockClient) UpdateDescription(_ context.Context, _, eventID, description string) (*gcalendar.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &gcalendar.Event{ID: eventID, Description: description}, nil
}

func (m *mockClient) DeleteEvent(_ context.Context, _, eventID string) error {
	m.deleted = append(m.deleted, eventID)
	return m.err
}

func newRepo(t *testing.T, client *mockClient) (repository.CalendarStore, *time.Location) {
	t.Helper()
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return gcal.New(log.NewNop(), client, "primary", ny), ny
}

func TestListEventsMapsMarkers(t *testing.T) {
	client := &mockClient{listResp: []gcalendar.Event{
		{ID: "bday_20250314", Summary: "🎂 Lisa's Birthday", StartDate: "2025-03-14", EndDate: "2025-03-15", RecurringEventID: "bday"},
		{ID: "t", Summary: "Dentist", StartTime: time.Date(2025, 3, 15, 2, 0, 0, 0, time.UTC), EndTime: time.Date(2025, 3, 15, 3, 0, 0, 0, time.UTC)},
		{ID: "broken", Summary: "No start"},
	}}
	repo, ny := newRepo(t, client)

	window := datemath.Window{Start: time.Date(2025, 3, 1, 0, 0, 0, 0, ny), End: time.Date(2025, 4, 1, 0, 0, 0, 0, ny)}
	events, err := repo.ListEvents(context.Background(), repository.ListEventsOptions{Window: window, Query: "Birthday", MaxResults: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !client.listReq.TimeMin.Equal(window.Start) || client.listReq.Query != "Birthday" || client.listReq.MaxResults != 50 || client.listReq.CalendarID != "primary" {
		t.Errorf("request not forwarded: %+v", client.listReq)
	}
	if len(events) != 2 {
		t.Fatalf("expected malformed event to be skipped, got %d events", len(events))
	}

	bday := events[0]
	if !bday.AllDay() || bday.Start.Time.Day() != 14 || bday.Start.Time.Location() != ny || bday.SeriesKey() != "bday" {
		t.Errorf("unexpected birthday mapping: %+v", bday)
	}

	timed := events[1]
	if timed.AllDay() || timed.Start.Time.Day() != 14 || timed.Start.Time.Hour() != 22 {
		t.Errorf("expected Mar 14 22:00 local, got %v", timed.Start.Time)
	}

	for _, ev := range events {
		if ev.ID == "broken" {
			t.Errorf("event without a start leaked into results: %+v", ev)
		}
	}
}

func TestInsertEvent(t *testing.T) {
	t.Run("all-day defaults end to next day", func(t *testing.T) {
		client := &mockClient{}
		repo, ny := newRepo(t, client)

		ev, err := repo.InsertEvent(context.Background(), repository.InsertEventOptions{
			Title:      "🎂 Lisa's Birthday",
			Start:      model.DateOf(2025, time.December, 31, ny),
			Recurrence: []string{"RRULE:FREQ=YEARLY"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		req := client.createReq
		if !req.AllDay || req.StartDate != "2025-12-31" || req.EndDate != "2026-01-01" || req.Timezone != "America/New_York" {
			t.Errorf("unexpected request: %+v", req)
		}
		if !ev.AllDay() || ev.ID != "new" {
			t.Errorf("unexpected event: %+v", ev)
		}
	})

	t.Run("timed", func(t *testing.T) {
		client := &mockClient{}
		repo, ny := newRepo(t, client)

		start := time.Date(2025, 6, 10, 14, 0, 0, 0, ny)
		_, err := repo.InsertEvent(context.Background(), repository.InsertEventOptions{
			Title:           "Call",
			Start:           model.InstantOf(start),
			End:             model.InstantOf(start.Add(time.Hour)),
			ReminderMinutes: []int64{15},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		req := client.createReq
		if req.AllDay || !req.StartTime.Equal(start) || len(req.ReminderMinutes) != 1 {
			t.Errorf("unexpected request: %+v", req)
		}
	})
}

func TestErrorsMapToNotFound(t *testing.T) {
	client := &mockClient{err: fmt.Errorf("failed to get calendar event: %w", gcalendar.ErrNotFound)}
	repo, _ := newRepo(t, client)
	ctx := context.Background()

	if _, err := repo.GetEvent(ctx, "x"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("GetEvent: expected ErrNotFound, got %v", err)
	}
	if err := repo.DeleteEvent(ctx, "x"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("DeleteEvent: expected ErrNotFound, got %v", err)
	}
	if _, err := repo.UpdateEvent(ctx, repository.UpdateEventOptions{ID: "x"}); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("UpdateEvent: expected ErrNotFound, got %v", err)
	}

	client.err = errors.New("boom")
	if _, err := repo.ListEvents(ctx, repository.ListEventsOptions{}); err == nil || errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected plain failure, got %v", err)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	client := &mockClient{}
	repo, _ := newRepo(t, client)

	ev, err := repo.UpdateEvent(context.Background(), repository.UpdateEventOptions{ID: "e1", Description: "bring cake"})
	if err != nil || ev.Description != "bring cake" {
		t.Fatalf("UpdateEvent = %+v, %v", ev, err)
	}
	if err := repo.DeleteEvent(context.Background(), "e1"); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	if len(client.deleted) != 1 || client.deleted[0] != "e1" {
		t.Errorf("unexpected deletes: %v", client.deleted)
	}
}
