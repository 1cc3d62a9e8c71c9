package log_test

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"calboss/pkg/log"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name string
		cfg  log.ZapConfig
	}{
		{name: "development console", cfg: log.ZapConfig{Level: "debug", Mode: "development", Encoding: "console", ColorEnabled: true}},
		{name: "production json", cfg: log.ZapConfig{Level: "warn", Mode: "production", Encoding: "json"}},
		{name: "unknown level", cfg: log.ZapConfig{Level: "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if l := log.Init(tt.cfg); l == nil {
				t.Fatal("expected logger, got nil")
			}
		})
	}
}

func TestTraceIDIsAttached(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := log.NewWithZap(zap.New(core))

	ctx := log.WithTraceID(context.Background(), "req-42")
	l.Infof(ctx, "fetched %d events", 3)
	l.Warn(context.Background(), "no trace")

	entries := logs.AllUntimed()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Message != "fetched 3 events" {
		t.Errorf("unexpected message: %q", entries[0].Message)
	}
	if got := entries[0].ContextMap()["trace_id"]; got != "req-42" {
		t.Errorf("expected trace_id req-42, got %v", got)
	}
	if _, ok := entries[1].ContextMap()["trace_id"]; ok {
		t.Errorf("did not expect trace_id on second entry")
	}
}

func TestTraceIDFromContext(t *testing.T) {
	if got := log.TraceIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty trace id, got %q", got)
	}
}
