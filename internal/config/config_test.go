package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsZeroValue(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c != (Config{}) {
		t.Errorf("expected zero-value Config, got %+v", c)
	}
}

func TestLoadParsesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logseek.yaml")
	content := "block_size: 131072\ntimezone: UTC\nverbose: true\ndebug_assert: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.BlockSize != 131072 {
		t.Errorf("BlockSize = %d, want 131072", c.BlockSize)
	}
	if c.Timezone != "UTC" {
		t.Errorf("Timezone = %q, want %q", c.Timezone, "UTC")
	}
	if !c.Verbose || !c.DebugAssert {
		t.Errorf("Verbose/DebugAssert = %v/%v, want true/true", c.Verbose, c.DebugAssert)
	}
}

func TestLocationDefaultsToUTC(t *testing.T) {
	c := Config{}
	loc, err := c.Location()
	if err != nil {
		t.Fatalf("Location: %v", err)
	}
	if loc != time.UTC {
		t.Errorf("Location() = %v, want UTC", loc)
	}
}

func TestLocationRejectsUnknownTimezone(t *testing.T) {
	c := Config{Timezone: "Not/A_Real_Zone"}
	loc, err := c.Location()
	if err == nil {
		t.Errorf("expected an error for an unknown timezone")
	}
	if loc != time.UTC {
		t.Errorf("expected the UTC fallback even on error, got %v", loc)
	}
}
