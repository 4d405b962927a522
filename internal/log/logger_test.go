package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newJSONLogger(buf *bytes.Buffer) *Logger {
	return New(Config{Level: slog.LevelDebug, Format: "json", Output: buf})
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerStampsComponent(t *testing.T) {
	var buf bytes.Buffer
	newJSONLogger(&buf).WithComponent(ComponentProxy).Info("hello", FieldBytes, 3)

	lines := decodeLines(t, &buf)
	if len(lines) != 1 || lines[0][FieldComponent] != ComponentProxy || lines[0][FieldBytes] != float64(3) {
		t.Fatalf("lines = %v", lines)
	}
}

func TestMiddlewareAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := newJSONLogger(&buf)

	h := Middleware(logger, func(*http.Request) string { return "req-1" })(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).InfoContext(r.Context(), "inside")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	lines := decodeLines(t, &buf)
	if len(lines) != 1 || lines[0][FieldRequestID] != "req-1" {
		t.Fatalf("lines = %v", lines)
	}
}

func TestLogDatasetLoaded(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(newJSONLogger(&buf))
	sl.LogDatasetLoaded(context.Background(), "memory", 10, 0)
	sl.LogDatasetLoaded(context.Background(), "memory", 10, 2)

	lines := decodeLines(t, &buf)
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	if lines[0]["level"] != "INFO" || lines[1]["level"] != "WARN" {
		t.Fatalf("levels = %v, %v", lines[0]["level"], lines[1]["level"])
	}
	if lines[1][FieldSkipped] != float64(2) {
		t.Fatalf("skipped = %v", lines[1][FieldSkipped])
	}
}

func TestLogHTTPEndLevels(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(newJSONLogger(&buf))
	r := httptest.NewRequest(http.MethodGet, "/api/salaries", nil)
	sl.LogHTTPEnd(context.Background(), r, 200, 5, "10.0.0.1")
	sl.LogHTTPEnd(context.Background(), r, 429, 1, "10.0.0.1")
	sl.LogHTTPEnd(context.Background(), r, 500, 9, "10.0.0.1")

	lines := decodeLines(t, &buf)
	want := []string{"INFO", "WARN", "ERROR"}
	for i, l := range lines {
		if l["level"] != want[i] {
			t.Errorf("line %d level = %v, want %s", i, l["level"], want[i])
		}
	}
}

func TestLogErrorWithNilFields(t *testing.T) {
	var buf bytes.Buffer
	NewStructuredLogger(newJSONLogger(&buf)).LogError(context.Background(), "boom", context.Canceled, ComponentHTTP, OpFetch, nil)

	lines := decodeLines(t, &buf)
	if lines[0][FieldError] != "context canceled" || lines[0][FieldOperation] != OpFetch {
		t.Fatalf("line = %v", lines[0])
	}
}
