package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"calboss/internal/catchup"
	"calboss/internal/model"
	"calboss/internal/schedule"
	scheduleHTTP "calboss/internal/schedule/delivery/http"
	"calboss/pkg/log"
	"calboss/pkg/response"
)

type mockUseCase struct {
	schedule.UseCase // unimplemented methods panic

	addEventInput schedule.AddEventInput
	addEventErr   error
	removedIDs    []string
	suggestInput  schedule.SuggestCatchUpsInput
	birthdayScope schedule.BirthdayScope
	weekErr       error
	clearErr      error
}

func (m *mockUseCase) Week(ctx context.Context) (schedule.WeekOutput, error) {
	return schedule.WeekOutput{}, m.weekErr
}

func (m *mockUseCase) AddEvent(ctx context.Context, input schedule.AddEventInput) (schedule.AddEventOutput, error) {
	m.addEventInput = input
	if m.addEventErr != nil {
		return schedule.AddEventOutput{}, m.addEventErr
	}
	loc := time.FixedZone("EST", -5*3600)
	return schedule.AddEventOutput{
		Event: model.CalendarEvent{
			ID:    "ev1",
			Title: input.Title,
			Start: model.InstantOf(time.Date(2025, 6, 11, 13, 0, 0, 0, loc)),
			End:   model.InstantOf(time.Date(2025, 6, 11, 14, 0, 0, 0, loc)),
		},
		Warnings: []string{"invalid reminder"},
	}, nil
}

func (m *mockUseCase) RemoveEvents(ctx context.Context, ids []string) (schedule.BatchOutput, error) {
	m.removedIDs = ids
	return schedule.BatchOutput{Results: []schedule.ItemResult{
		{ID: ids[0], OK: true},
		{ID: "x", OK: false, Error: schedule.ErrEventNotFound.Error()},
	}}, nil
}

func (m *mockUseCase) ShowBirthdays(ctx context.Context, scope schedule.BirthdayScope) (schedule.ShowBirthdaysOutput, error) {
	m.birthdayScope = scope
	if scope == "decade" {
		return schedule.ShowBirthdaysOutput{}, schedule.ErrInvalidScope
	}
	return schedule.ShowBirthdaysOutput{Scope: scope}, nil
}

func (m *mockUseCase) SuggestCatchUps(ctx context.Context, input schedule.SuggestCatchUpsInput) (schedule.SuggestCatchUpsOutput, error) {
	m.suggestInput = input
	return schedule.SuggestCatchUpsOutput{Suggestions: []catchup.Suggestion{
		{Name: "Bob", SuggestedDate: time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC)},
	}}, nil
}

func (m *mockUseCase) ClearCatchUps(ctx context.Context, name string) (schedule.BatchOutput, error) {
	return schedule.BatchOutput{}, m.clearErr
}

func setupRouter(uc schedule.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := scheduleHTTP.New(log.NewNop(), uc)
	scheduleHTTP.RegisterRoutes(r.Group("/api/v1"), h)
	return r
}

func do(r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, response.Resp) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp response.Resp
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestAddEvent(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		ucErr      error
		wantStatus int
	}{
		{
			name:       "created",
			body:       map[string]any{"title": "Lunch", "date": "tomorrow", "start_time": "1PM", "end_time": "2PM", "reminder": "soon"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing title fails binding",
			body:       map[string]any{"date": "tomorrow"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown repeat fails binding",
			body:       map[string]any{"title": "x", "date": "tomorrow", "all_day": true, "repeat": "hourly"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "validation error",
			body:       map[string]any{"title": "x", "date": "someday", "all_day": true},
			ucErr:      fmt.Errorf("%w: someday", schedule.ErrInvalidDate),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "backend down",
			body:       map[string]any{"title": "x", "date": "today", "all_day": true},
			ucErr:      fmt.Errorf("%w: dial tcp", schedule.ErrStoreUnavailable),
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{addEventErr: tt.ucErr}
			w, resp := do(setupRouter(uc), http.MethodPost, "/api/v1/events", tt.body)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			data, _ := resp.Data.(map[string]any)
			event, _ := data["event"].(map[string]any)
			if event["start"] != "2025-06-11T13:00:00-05:00" || event["all_day"] != false {
				t.Errorf("unexpected event: %v", event)
			}
			if warnings, _ := data["warnings"].([]any); len(warnings) != 1 {
				t.Errorf("expected one warning, got %v", data["warnings"])
			}
			if uc.addEventInput.StartTime != "1PM" || uc.addEventInput.Reminder != "soon" {
				t.Errorf("input not forwarded: %+v", uc.addEventInput)
			}
		})
	}
}

func TestRemoveEvents(t *testing.T) {
	uc := &mockUseCase{}
	r := setupRouter(uc)

	w, resp := do(r, http.MethodDelete, "/api/v1/events", map[string]any{"ids": []string{"a", "x"}})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	data, _ := resp.Data.(map[string]any)
	if data["removed"] != float64(1) || data["failed"] != float64(1) {
		t.Errorf("unexpected counts: %v", data)
	}

	w, _ = do(r, http.MethodDelete, "/api/v1/events", map[string]any{"ids": []string{}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty ids: status = %d", w.Code)
	}
}

func TestShowBirthdaysScope(t *testing.T) {
	uc := &mockUseCase{}
	r := setupRouter(uc)

	w, _ := do(r, http.MethodGet, "/api/v1/birthdays?scope=Week", nil)
	if w.Code != http.StatusOK || uc.birthdayScope != schedule.BirthdayScopeWeek {
		t.Errorf("status = %d scope = %q", w.Code, uc.birthdayScope)
	}

	w, _ = do(r, http.MethodGet, "/api/v1/birthdays?scope=decade", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid scope: status = %d", w.Code)
	}
}

func TestSuggestCatchUpsNames(t *testing.T) {
	uc := &mockUseCase{}
	r := setupRouter(uc)

	w, resp := do(r, http.MethodGet, "/api/v1/catchups/suggest?names=Lisa,%20Omar&names=Bob", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	want := []string{"Lisa", "Omar", "Bob"}
	if fmt.Sprint(uc.suggestInput.Names) != fmt.Sprint(want) {
		t.Errorf("names = %v, want %v", uc.suggestInput.Names, want)
	}

	data, _ := resp.Data.(map[string]any)
	suggestions, _ := data["suggestions"].([]any)
	first, _ := suggestions[0].(map[string]any)
	if first["suggested_date"] != "2025-12-10" || first["has_history"] != false {
		t.Errorf("unexpected suggestion: %v", first)
	}
	if _, ok := first["last_contact"]; ok {
		t.Errorf("last_contact must be omitted without history")
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		uc         *mockUseCase
		method     string
		path       string
		wantStatus int
	}{
		{
			name:       "not found",
			uc:         &mockUseCase{clearErr: schedule.ErrEventNotFound},
			method:     http.MethodDelete,
			path:       "/api/v1/catchups/Zed",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "store unavailable",
			uc:         &mockUseCase{weekErr: fmt.Errorf("%w: timeout", schedule.ErrStoreUnavailable)},
			method:     http.MethodGet,
			path:       "/api/v1/schedule/week",
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "unexpected error is hidden",
			uc:         &mockUseCase{weekErr: fmt.Errorf("boom")},
			method:     http.MethodGet,
			path:       "/api/v1/schedule/week",
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "search needs a query",
			uc:         &mockUseCase{},
			method:     http.MethodGet,
			path:       "/api/v1/events/search?q=%20",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := do(setupRouter(tt.uc), tt.method, tt.path, nil)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusInternalServerError && resp.Message != response.DefaultErrorMessage {
				t.Errorf("internal error leaked: %q", resp.Message)
			}
		})
	}
}
