package telegram_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"calboss/pkg/telegram"
)

func TestSendMessage(t *testing.T) {
	var texts []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/sendMessage") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var req telegram.SendMessageRequest
		json.NewDecoder(r.Body).Decode(&req)
		texts = append(texts, req.Text)

		switch req.Text {
		case "cause_error":
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"ok": false, "description": "chat not found"}`))
		case "cause_500":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.Write([]byte(`{"ok": true}`))
		}
	}))
	defer ts.Close()

	bot := telegram.NewBot("test-token")
	bot.SetAPIURL(ts.URL)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		texts = nil
		if err := bot.SendMessage(ctx, 12345, "Hello"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(texts) != 1 || texts[0] != "Hello" {
			t.Errorf("unexpected texts %v", texts)
		}
	})

	t.Run("api failure", func(t *testing.T) {
		err := bot.SendMessage(ctx, 12345, "cause_error")
		if err == nil || !strings.Contains(err.Error(), "chat not found") {
			t.Fatalf("expected api failure, got %v", err)
		}
	})

	t.Run("http failure", func(t *testing.T) {
		if err := bot.SendMessage(ctx, 12345, "cause_500"); err == nil {
			t.Fatal("expected decode error")
		}
	})

	t.Run("long text is split on lines", func(t *testing.T) {
		texts = nil
		line := strings.Repeat("a", 99) + "\n"
		long := strings.Repeat(line, 50) // 5000 bytes
		if err := bot.SendMessage(ctx, 1, long); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(texts) != 2 || strings.Join(texts, "") != long {
			t.Fatalf("expected 2 parts rejoining to the input, got %d", len(texts))
		}
		if len(texts[0]) != 4000 {
			t.Errorf("first part = %d bytes, want 4000", len(texts[0]))
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if err := bot.SendMessage(cctx, 1, "Hello"); err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}
