package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	sonic "github.com/bytedance/sonic"
)

func TestLogger_WritesKeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(LevelInfo, &buf)

	logger.With("component", "cache").Warn("upstream fetch failed", "path", "status", "error", errors.New("boom"))
	logger.Debug("dropped below level")

	var line map[string]any
	if err := sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if line["msg"] != "upstream fetch failed" {
		t.Fatalf("unexpected msg: %v", line["msg"])
	}
	if line["level"] != "WARN" {
		t.Fatalf("unexpected level: %v", line["level"])
	}
	if line["component"] != "cache" || line["path"] != "status" || line["error"] != "boom" {
		t.Fatalf("unexpected fields: %v", line)
	}
}

func TestLogger_NilUsesDefault(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(NewJSONWriter(LevelInfo, &buf))
	t.Cleanup(func() { SetDefault(nil) })

	var logger *Logger
	logger.Info("hello", "odd")

	if buf.Len() == 0 {
		t.Fatalf("expected nil logger to write through default")
	}
}

func TestLogger_ContextFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(LevelInfo, &buf)

	ctx := ContextWith(context.Background(), "request_id", "req-42")
	ctx = ContextWith(ctx, "season", "2023")
	logger.InfoContext(ctx, "event lookup", "event", "casj")

	var line map[string]any
	if err := sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if line["request_id"] != "req-42" || line["season"] != "2023" || line["event"] != "casj" {
		t.Fatalf("unexpected fields: %v", line)
	}
	if _, ok := line["trace_id"]; ok {
		t.Fatalf("expected no trace id without a span: %v", line)
	}
}
