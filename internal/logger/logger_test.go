package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/config"
	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/ctxmeta"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, &config.Logger{Level: "warn"})

	log.Info("should be dropped")
	log.Warn("should be written")

	out := buf.String()
	if strings.Contains(out, "should be dropped") {
		t.Fatalf("info record leaked through warn level: %s", out)
	}
	if !strings.Contains(out, "should be written") {
		t.Fatalf("warn record missing: %s", out)
	}
}

func TestLogger_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, &config.Logger{Level: "nonsense"})

	log.Debug("debug dropped")
	log.Info("info written")

	out := buf.String()
	if strings.Contains(out, "debug dropped") {
		t.Fatalf("debug record leaked: %s", out)
	}
	if !strings.Contains(out, "info written") {
		t.Fatalf("info record missing: %s", out)
	}
}

func TestLogger_CycleIDFromContext(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, &config.Logger{Level: "debug"})

	ctx := ctxmeta.WithCycleID(context.Background(), "cycle-123")
	log.InfoContext(ctx, "with cycle")
	log.Info("without cycle")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 records, got %d", len(lines))
	}
	if !strings.Contains(lines[0], `"cycle_id":"cycle-123"`) {
		t.Fatalf("cycle_id missing: %s", lines[0])
	}
	if strings.Contains(lines[1], "cycle_id") {
		t.Fatalf("cycle_id must not appear without context value: %s", lines[1])
	}
}
