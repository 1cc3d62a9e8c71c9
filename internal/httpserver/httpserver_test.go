package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"calboss/internal/httpserver"
	"calboss/internal/middleware"
	"calboss/internal/model"
	"calboss/internal/schedule/repository"
	"calboss/pkg/log"
	"calboss/pkg/response"
)

type stubSchedule struct{}

func (stubSchedule) Today(c *gin.Context)           { c.Status(http.StatusNoContent) }
func (stubSchedule) Week(c *gin.Context)            { c.Status(http.StatusNoContent) }
func (stubSchedule) Search(c *gin.Context)          {}
func (stubSchedule) AddEvent(c *gin.Context)        {}
func (stubSchedule) RemoveEvents(c *gin.Context)    {}
func (stubSchedule) AddNote(c *gin.Context)         {}
func (stubSchedule) ShowBirthdays(c *gin.Context)   {}
func (stubSchedule) AddBirthday(c *gin.Context)     {}
func (stubSchedule) RemoveBirthday(c *gin.Context)  {}
func (stubSchedule) SuggestCatchUps(c *gin.Context) {}
func (stubSchedule) ListCatchUps(c *gin.Context)    {}
func (stubSchedule) AddCatchUp(c *gin.Context)      {}
func (stubSchedule) ClearCatchUps(c *gin.Context)   {}

type stubStore struct {
	repository.CalendarStore
	err      error
	lastList repository.ListEventsOptions
}

func (s *stubStore) ListEvents(_ context.Context, opt repository.ListEventsOptions) ([]model.CalendarEvent, error) {
	s.lastList = opt
	return nil, s.err
}

func newServer(t *testing.T, rpm int) *httpserver.HTTPServer {
	t.Helper()
	return newServerWithStore(t, rpm, &stubStore{})
}

func newServerWithStore(t *testing.T, rpm int, store repository.CalendarStore) *httpserver.HTTPServer {
	t.Helper()
	l := log.NewNop()
	srv, err := httpserver.New(l, httpserver.Config{
		Port:            8080,
		Mode:            gin.TestMode,
		Environment:     "test",
		Middleware:      middleware.New(l, rpm),
		ScheduleHandler: stubSchedule{},
		CalendarStore:   store,
		Backend:         "caldav",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv
}

func TestHealthRoutes(t *testing.T) {
	srv := newServer(t, 0)

	for _, path := range []string{"/health", "/ready", "/live"} {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("%s = %d", path, w.Code)
		}
		var resp response.Resp
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Message != response.MessageSuccess {
			t.Errorf("%s: unexpected body %s", path, w.Body.String())
		}
	}
}

func TestReadyChecksCalendarStore(t *testing.T) {
	tests := []struct {
		name     string
		storeErr error
		code     int
		status   string
	}{
		{name: "backend answers", code: http.StatusOK, status: "ready"},
		{name: "backend down", storeErr: errors.New("dial tcp: connection refused"), code: http.StatusServiceUnavailable, status: "not_ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &stubStore{err: tt.storeErr}
			srv := newServerWithStore(t, 0, store)

			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
			if w.Code != tt.code {
				t.Fatalf("/ready = %d, want %d", w.Code, tt.code)
			}

			var resp response.Resp
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			data, _ := resp.Data.(map[string]interface{})
			if data["status"] != tt.status || data["backend"] != "caldav" {
				t.Errorf("unexpected body %s", w.Body.String())
			}
			if store.lastList.MaxResults != 1 || store.lastList.Window.End.Sub(store.lastList.Window.Start) != time.Minute {
				t.Errorf("unexpected list options %+v", store.lastList)
			}
		})
	}
}

func TestHealthReportsBackend(t *testing.T) {
	srv := newServer(t, 0)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp response.Resp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	data, _ := resp.Data.(map[string]interface{})
	if data["service"] != httpserver.ServiceName || data["backend"] != "caldav" || data["environment"] != "test" {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestAPIIsRateLimitedButHealthIsNot(t *testing.T) {
	srv := newServer(t, 10)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/schedule/today", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusNoContent || codes[1] != http.StatusTooManyRequests {
		t.Errorf("unexpected codes %v", codes)
	}

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		if w.Code != http.StatusOK {
			t.Errorf("health call %d = %d", i, w.Code)
		}
	}
}

func TestNewValidates(t *testing.T) {
	_, err := httpserver.New(log.NewNop(), httpserver.Config{Port: 8080, Mode: gin.TestMode})
	if err == nil {
		t.Error("expected error without a schedule handler")
	}

	_, err = httpserver.New(log.NewNop(), httpserver.Config{
		Port:            8080,
		Mode:            gin.TestMode,
		Middleware:      middleware.New(log.NewNop(), 0),
		ScheduleHandler: stubSchedule{},
	})
	if err == nil {
		t.Error("expected error without a calendar store")
	}
}
