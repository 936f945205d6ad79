package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesFileSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	if err := Init(Options{Dir: dir, File: "advisor.log", MaxSizeMB: 1, MaxAgeDays: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	Infow("zone cache pruned", "removed", 3)
	Sync()

	data, err := os.ReadFile(filepath.Join(dir, "advisor.log"))
	if err != nil {
		t.Fatalf("expected log file: %v", err)
	}
	if !strings.Contains(string(data), "zone cache pruned") || !strings.Contains(string(data), `"removed":3`) {
		t.Errorf("unexpected log contents %q", data)
	}
}

func TestFallbackLogger(t *testing.T) {
	log, baseLogger = nil, nil
	if GetSugaredLogger() == nil || GetZapLogger() == nil {
		t.Fatal("expected fallback logger")
	}
	Debugf("debug suppressed in production mode: %d", 1)
}
