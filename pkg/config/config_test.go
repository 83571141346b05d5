package config

import (
	"testing"
	"time"
)

func TestLoadKnownPresets(t *testing.T) {
	for _, name := range []string{UK, USA} {
		settings, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		if settings.BaseSpeedMPH <= 0 {
			t.Errorf("Load(%q).BaseSpeedMPH = %v, want > 0", name, settings.BaseSpeedMPH)
		}
		if !settings.ObeyCrossings {
			t.Errorf("Load(%q).ObeyCrossings = false, want true", name)
		}
	}
}

func TestLoadUSADelaysInSeconds(t *testing.T) {
	settings, err := Load(USA)
	if err != nil {
		t.Fatalf("Load(USA): %v", err)
	}
	if settings.DelaySignalized != 20*time.Second {
		t.Errorf("DelaySignalized = %v, want 20s", settings.DelaySignalized)
	}
	if settings.DelayZebra != 5*time.Second {
		t.Errorf("DelayZebra = %v, want 5s", settings.DelayZebra)
	}
}

func TestLoadUnknownPreset(t *testing.T) {
	if _, err := Load("bogus"); err == nil {
		t.Error("Load(\"bogus\") succeeded, want an error")
	}
}

func TestNamesIncludesBothPresets(t *testing.T) {
	names := Names()
	seen := map[string]bool{}
	for _, n := range names {
		seen[n] = true
	}
	if !seen[UK] || !seen[USA] {
		t.Errorf("Names() = %v, want to include %q and %q", names, UK, USA)
	}
}
