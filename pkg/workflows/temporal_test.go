package workflows

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ghuser/smartfridge/pkg/logger"
)

func TestTemporalLogger_ForwardsKeyvals(t *testing.T) {
	var buf bytes.Buffer
	l := newTemporalLogger(logger.NewWithWriter(&buf, "debug"))
	l.Info("started", "workflow_id", "wf-1")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if rec["level"] != "INFO" || rec["msg"] != "started" || rec["workflow_id"] != "wf-1" {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestTemporalLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newTemporalLogger(logger.NewWithWriter(&buf, "warn"))

	l.Debug("poll")
	l.Info("poll")
	if buf.Len() != 0 {
		t.Fatalf("expected debug and info dropped at warn level, got %s", buf.String())
	}

	l.Warn("slow activity", "activity", "ListLowItems")
	l.Error("activity failed", "attempt", 3)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 records, got %d: %s", len(lines), buf.String())
	}
}
