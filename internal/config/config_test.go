package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Music.Port != 6600 {
		t.Errorf("Expected MPD port 6600, got %d", cfg.Music.Port)
	}
	if cfg.Music.Interval() != 2*time.Second {
		t.Errorf("Expected 2s music poll interval, got %v", cfg.Music.Interval())
	}
	if cfg.Printer.Port != 7125 {
		t.Errorf("Expected Moonraker port 7125, got %d", cfg.Printer.Port)
	}
	if cfg.Printer.Interval() != 5*time.Second {
		t.Errorf("Expected 5s printer poll interval, got %v", cfg.Printer.Interval())
	}
	if cfg.Skyblock.Tick() != 500*time.Millisecond {
		t.Errorf("Expected 500ms sidebar tick, got %v", cfg.Skyblock.Tick())
	}
	if cfg.Skyblock.EpochUnix != 1560275700 {
		t.Errorf("Expected stock epoch, got %d", cfg.Skyblock.EpochUnix)
	}
	if cfg.Skyblock.FreeWillCycleHours != 96 {
		t.Errorf("Expected 96h cycle, got %d", cfg.Skyblock.FreeWillCycleHours)
	}
}

func TestBackendEnabled(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Music.Enabled() {
		t.Error("Default music backend should be enabled")
	}

	cfg.Music.Host = ""
	if cfg.Music.Enabled() {
		t.Error("Empty host should disable the backend")
	}
}

func TestPrinterBaseURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Printer.Host = "10.0.0.5"

	if got, want := cfg.Printer.BaseURL(), "http://10.0.0.5:7125"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
