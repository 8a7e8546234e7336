package gesture

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// MaxTouchPoints is the number of contacts tracked at once. Further contacts
// are ignored until a slot frees up.
const MaxTouchPoints = 10

// Duration is a time.Duration that reads and writes as a string such as
// "300ms" in config files.
type Duration time.Duration

// D returns d as a time.Duration.
func (d Duration) D() time.Duration { return time.Duration(d) }

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Config holds the recognition thresholds for an [Engine].
// Values are not validated; callers supply a coherent configuration.
type Config struct {
	// TapMaxDuration is the longest a contact may last and still count as a tap.
	TapMaxDuration Duration `toml:"tap_max_duration"`
	// TapMaxMovement is the largest distance in pixels a contact may travel
	// from its start and still count as a tap or long-press.
	TapMaxMovement float64 `toml:"tap_max_movement"`
	// DoubleTapMaxDelay is the longest gap between the end of one tap and the
	// start of the next for the pair to count as a double-tap.
	DoubleTapMaxDelay Duration `toml:"double_tap_max_delay"`
	// LongPressDuration is how long a stationary contact must be held.
	LongPressDuration Duration `toml:"long_press_duration"`

	// PanThreshold is the center movement in pixels that starts a pan.
	PanThreshold float64 `toml:"pan_threshold"`
	// PinchThreshold is the |distance ratio - 1| that starts a pinch.
	PinchThreshold float64 `toml:"pinch_threshold"`
	// RotationThreshold is the angle change in radians that starts a rotation.
	RotationThreshold float64 `toml:"rotation_threshold"`

	EnablePanZoom  bool `toml:"enable_pan_zoom"`
	EnableRotation bool `toml:"enable_rotation"`
	EnableInertia  bool `toml:"enable_inertia"`
	// EmitDrag reports single-finger movement past TapMaxMovement as
	// GestureDrag. When false such movement is left unclassified.
	EmitDrag bool `toml:"emit_drag"`

	// InertiaDeceleration multiplies the inertia velocity every frame.
	InertiaDeceleration float64 `toml:"inertia_deceleration"`
	// InertiaMinVelocity is the speed in pixels per frame below which inertia
	// stops, and which a pan must exceed on release to start it.
	InertiaMinVelocity float64 `toml:"inertia_min_velocity"`
	// VelocitySmoothing blends each new pan velocity sample into the tracked
	// velocity. 1 uses the latest frame's movement as-is.
	VelocitySmoothing float64 `toml:"velocity_smoothing"`

	MinZoom float64 `toml:"min_zoom"`
	MaxZoom float64 `toml:"max_zoom"`
}

// DefaultConfig returns the default thresholds.
func DefaultConfig() Config {
	return Config{
		TapMaxDuration:      Duration(300 * time.Millisecond),
		TapMaxMovement:      20,
		DoubleTapMaxDelay:   Duration(300 * time.Millisecond),
		LongPressDuration:   Duration(500 * time.Millisecond),
		PanThreshold:        15,
		PinchThreshold:      0.08,
		RotationThreshold:   0.15,
		EnablePanZoom:       true,
		EnableRotation:      false,
		EnableInertia:       true,
		InertiaDeceleration: 0.92,
		InertiaMinVelocity:  1.0,
		VelocitySmoothing:   1.0,
		MinZoom:             0.25,
		MaxZoom:             4.0,
	}
}

// ConfigFile is the on-disk layout: engine thresholds under [touch] and
// canvas defaults under [canvas].
type ConfigFile struct {
	Touch  Config       `toml:"touch"`
	Canvas CanvasConfig `toml:"canvas"`
}

// DefaultConfigFile returns a ConfigFile holding the default configs.
func DefaultConfigFile() ConfigFile {
	return ConfigFile{Touch: DefaultConfig(), Canvas: DefaultCanvasConfig()}
}

// DecodeConfig parses TOML data over the defaults. Keys absent from data keep
// their default value; unknown keys are an error.
func DecodeConfig(data string) (ConfigFile, error) {
	f := DefaultConfigFile()
	md, err := toml.Decode(data, &f)
	if err != nil {
		return ConfigFile{}, fmt.Errorf("decode config: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return ConfigFile{}, fmt.Errorf("decode config: %w", err)
	}
	return f, nil
}

// LoadConfigFile reads a TOML config file over the defaults.
func LoadConfigFile(path string) (ConfigFile, error) {
	f := DefaultConfigFile()
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return ConfigFile{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return ConfigFile{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return f, nil
}

// WriteConfigFile writes f to path as TOML.
func WriteConfigFile(path string, f ConfigFile) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(f); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return fmt.Errorf("unknown keys: %s", strings.Join(names, ", "))
}
