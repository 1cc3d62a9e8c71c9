package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"calboss/internal/model"
	"calboss/internal/schedule"
)

func TestSuggestCatchUps(t *testing.T) {
	store := &mockStore{}
	uc, loc := setup(t, store)
	store.events = []model.CalendarEvent{
		{ID: "1", Title: "[Catch-Up] Lisa", Start: at(loc, 2023, 3, 1, 18)},
		{ID: "2", Title: "[Catch-Up] Lisa", Description: "Frequency: 12 months", Start: at(loc, 2024, 1, 10, 18)},
		{ID: "3", Title: "[Catch-Up] Lisa", Start: at(loc, 2025, 9, 1, 18)}, // future, outside history
		{ID: "4", Title: "[Catch-Up] Omar", Start: model.DateOf(2024, 11, 30, loc)},
		{ID: "5", Title: "[Catch-Up] Broken"},
	}

	t.Run("named", func(t *testing.T) {
		out, err := uc.SuggestCatchUps(context.Background(), schedule.SuggestCatchUpsInput{Names: []string{"Lisa", " ", "Bob"}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Suggestions) != 2 {
			t.Fatalf("expected 2 suggestions, got %+v", out.Suggestions)
		}

		lisa := out.Suggestions[0]
		if !lisa.HasHistory || lisa.CadenceMonths != 12 || lisa.JitterDays != 0 {
			t.Errorf("unexpected Lisa suggestion: %+v", lisa)
		}
		if got := lisa.SuggestedDate.Format("2006-01-02"); got != "2025-01-10" {
			t.Errorf("Lisa suggested %s, want 2025-01-10", got)
		}

		bob := out.Suggestions[1]
		if bob.HasHistory || bob.SuggestedDate.Format("2006-01-02") != "2025-12-10" {
			t.Errorf("unexpected Bob suggestion: %+v", bob)
		}

		if out.Skipped != 1 {
			t.Errorf("skipped = %d, want 1", out.Skipped)
		}
		if store.lastList.Query != "[Catch-Up]" || !store.lastList.Window.End.Equal(time.Date(2025, 6, 10, 10, 0, 0, 0, loc)) {
			t.Errorf("unexpected history query: %+v", store.lastList)
		}
	})

	t.Run("everyone with history", func(t *testing.T) {
		out, err := uc.SuggestCatchUps(context.Background(), schedule.SuggestCatchUpsInput{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Suggestions) != 2 {
			t.Fatalf("expected Lisa and Omar, got %+v", out.Suggestions)
		}
		for _, s := range out.Suggestions {
			if s.Name == "Omar" && (s.CadenceMonths != 18 || s.SuggestedDate.Format("2006-01-02") != "2026-05-30") {
				t.Errorf("unexpected Omar suggestion: %+v", s)
			}
		}
	})
}

func TestAddCatchUp(t *testing.T) {
	tests := []struct {
		name    string
		input   schedule.AddCatchUpInput
		wantErr error
		check   func(t *testing.T, title, description string, allDay bool)
	}{
		{
			name:    "missing name",
			input:   schedule.AddCatchUpInput{Date: "2025-07-01"},
			wantErr: schedule.ErrEmptyName,
		},
		{
			name:    "negative cadence",
			input:   schedule.AddCatchUpInput{Name: "Lisa", Date: "2025-07-01", CadenceMonths: -1},
			wantErr: schedule.ErrInvalidCadence,
		},
		{
			name:  "all-day with cadence and note",
			input: schedule.AddCatchUpInput{Name: "Lisa", Date: "2025-07-01", CadenceMonths: 6, Note: "coffee"},
			check: func(t *testing.T, title, description string, allDay bool) {
				if title != "[Catch-Up] Lisa" || !allDay {
					t.Errorf("unexpected title/all-day: %q %v", title, allDay)
				}
				if description != "coffee\nFrequency: 6 months" {
					t.Errorf("unexpected description %q", description)
				}
			},
		},
		{
			name:  "timed without cadence",
			input: schedule.AddCatchUpInput{Name: "Omar", Date: "next friday", StartTime: "18:00", EndTime: "20:00"},
			check: func(t *testing.T, title, description string, allDay bool) {
				if allDay || description != "" || strings.Contains(description, "Frequency") {
					t.Errorf("unexpected: all-day=%v description=%q", allDay, description)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStore{}
			uc, _ := setup(t, store)

			_, err := uc.AddCatchUp(context.Background(), tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			opt := store.inserted[0]
			tt.check(t, opt.Title, opt.Description, opt.Start.DateOnly)
		})
	}
}

func TestListAndClearCatchUps(t *testing.T) {
	store := &mockStore{}
	uc, loc := setup(t, store)
	store.events = []model.CalendarEvent{
		{ID: "1", Title: "[Catch-Up] Lisa", Start: at(loc, 2025, 6, 11, 18)},
		{ID: "2", Title: "[Catch-Up] Lisa Ray", Start: at(loc, 2025, 7, 2, 18)},
		{ID: "3", Title: "Lisa's party", Start: at(loc, 2025, 7, 3, 18)},
		{ID: "4", Title: "[Catch-Up] Lisa", Start: at(loc, 2025, 8, 1, 18)},
	}

	list, err := uc.ListCatchUps(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list.Count != 3 || list.Days[0].Label != "Tomorrow (Jun 11)" {
		t.Errorf("unexpected list: %+v", list)
	}

	out, err := uc.ClearCatchUps(context.Background(), "Lisa")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Results) != 2 || store.deleted[0] != "1" || store.deleted[1] != "4" {
		t.Errorf("unexpected deletes: %v", store.deleted)
	}

	if _, err := uc.ClearCatchUps(context.Background(), "Zed"); !errors.Is(err, schedule.ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
}
