package gesture

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDecodeConfigOverDefaults(t *testing.T) {
	f, err := DecodeConfig(`
[touch]
tap_max_duration = "250ms"
enable_rotation = true
min_zoom = 0.5

[canvas]
double_tap_zoom = 3.0
pan_limits = { x = -100.0, y = -50.0, width = 200.0, height = 100.0 }
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Touch.TapMaxDuration.D() != 250*time.Millisecond {
		t.Errorf("TapMaxDuration = %v", f.Touch.TapMaxDuration.D())
	}
	if !f.Touch.EnableRotation || f.Touch.MinZoom != 0.5 {
		t.Errorf("touch = %+v", f.Touch)
	}
	// Untouched keys keep their defaults.
	if f.Touch.LongPressDuration.D() != 500*time.Millisecond || f.Touch.MaxZoom != 4 {
		t.Errorf("defaults lost: %+v", f.Touch)
	}
	if f.Canvas.DoubleTapZoom != 3 || !f.Canvas.SmoothZoom {
		t.Errorf("canvas = %+v", f.Canvas)
	}
	if f.Canvas.PanLimits != (Rect{X: -100, Y: -50, Width: 200, Height: 100}) {
		t.Errorf("PanLimits = %+v", f.Canvas.PanLimits)
	}
}

func TestDecodeConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"unknown key", "[touch]\ntap_speed = 3\n", "unknown keys: touch.tap_speed"},
		{"bad duration", "[touch]\ntap_max_duration = \"soon\"\n", "decode config"},
		{"bad syntax", "[touch\n", "decode config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeConfig(tt.data)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gesture.toml")
	want := DefaultConfigFile()
	want.Touch.EmitDrag = true
	want.Touch.DoubleTapMaxDelay = Duration(450 * time.Millisecond)
	want.Canvas.ZoomSmoothing = 0.35

	if err := WriteConfigFile(path, want); err != nil {
		t.Fatalf("WriteConfigFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `double_tap_max_delay = "450ms"`) {
		t.Errorf("durations not written as strings:\n%s", data)
	}

	got, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if got != want {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Errorf("expected load error, got %v", err)
	}
}

func TestDurationText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("1.5s")); err != nil {
		t.Fatal(err)
	}
	if d.D() != 1500*time.Millisecond {
		t.Errorf("D() = %v", d.D())
	}
	text, _ := d.MarshalText()
	if string(text) != "1.5s" {
		t.Errorf("MarshalText = %q", text)
	}
	if err := d.UnmarshalText([]byte("x")); err == nil {
		t.Error("expected error for invalid duration")
	}
}
