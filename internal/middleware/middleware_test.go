package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"calboss/internal/middleware"
	"calboss/pkg/log"
)

func newEngine(mw middleware.Middleware, seen *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw.Trace(), mw.RateLimit())
	r.GET("/ping", func(c *gin.Context) {
		if seen != nil {
			*seen = log.TraceIDFromContext(c.Request.Context())
		}
		c.String(http.StatusOK, "pong")
	})
	return r
}

func TestTrace(t *testing.T) {
	var seen string
	r := newEngine(middleware.New(log.NewNop(), 0), &seen)

	t.Run("echoes incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(middleware.HeaderRequestID, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if seen != "abc-123" || w.Header().Get(middleware.HeaderRequestID) != "abc-123" {
			t.Errorf("trace id = %q, header = %q", seen, w.Header().Get(middleware.HeaderRequestID))
		}
	})

	t.Run("mints an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		if len(seen) != 36 || w.Header().Get(middleware.HeaderRequestID) != seen {
			t.Errorf("unexpected minted id %q", seen)
		}
	})
}

func TestRateLimit(t *testing.T) {
	// 10 per minute gives a burst of one.
	r := newEngine(middleware.New(log.NewNop(), 10), nil)

	call := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = ip + ":5555"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := call("10.0.0.1"); code != http.StatusOK {
		t.Fatalf("first call = %d", code)
	}
	if code := call("10.0.0.1"); code != http.StatusTooManyRequests {
		t.Errorf("second call = %d, want 429", code)
	}
	if code := call("10.0.0.2"); code != http.StatusOK {
		t.Errorf("other client = %d, want 200", code)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	r := newEngine(middleware.New(log.NewNop(), 0), nil)
	for i := 0; i < 50; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("call %d = %d", i, w.Code)
		}
	}
}
