package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/edward-ap/marqueeview/internal/marquee"
)

func TestLoadDefaultConfig(t *testing.T) {
	tempDir := t.TempDir()
	restore := overrideConfigEnv(tempDir)
	defer restore()

	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath error: %v", err)
	}
	_ = os.Remove(path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.Text != DefaultText {
		t.Errorf("Text = %q, want %q", cfg.Text, DefaultText)
	}
	if cfg.Speed != marquee.DefaultSpeed {
		t.Errorf("Speed = %d, want %d", cfg.Speed, marquee.DefaultSpeed)
	}
	if cfg.Mode != "forever" {
		t.Errorf("Mode = %q, want forever", cfg.Mode)
	}
	if cfg.FirstDelayMs != 1000 {
		t.Errorf("FirstDelayMs = %d, want 1000", cfg.FirstDelayMs)
	}
	if cfg.WindowW != DefaultWidth {
		t.Errorf("WindowW = %d, want %d", cfg.WindowW, DefaultWidth)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file at %s, got error: %v", path, err)
	}
}

func TestLoadFileClampsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	body := `{"text":"  ","speed":-3,"mode":"sideways","firstDelayMs":-50,"interpolator":"bouncy","frameRateHz":1000,"windowW":10}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Text != DefaultText || cfg.Speed != marquee.DefaultSpeed || cfg.Mode != "forever" {
		t.Errorf("text/speed/mode not clamped: %+v", cfg)
	}
	if cfg.FirstDelayMs != 0 {
		t.Errorf("FirstDelayMs = %d, want 0", cfg.FirstDelayMs)
	}
	if cfg.Interpolator != InterpolatorLinear {
		t.Errorf("Interpolator = %q, want linear", cfg.Interpolator)
	}
	if cfg.FrameRateHz != MaxFrameRate {
		t.Errorf("FrameRateHz = %d, want %d", cfg.FrameRateHz, MaxFrameRate)
	}
	if cfg.WindowW != MinWindowWidth {
		t.Errorf("WindowW = %d, want %d", cfg.WindowW, MinWindowWidth)
	}
	if err := cfg.Marquee().Validate(); err != nil {
		t.Fatalf("clamped config does not validate: %v", err)
	}
}

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marquee.yaml")
	body := "text: Breaking news\nspeed: 12\nmode: once\nfirstDelayMs: 0\ninterpolator: decelerate\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	mc := cfg.Marquee()
	if cfg.Text != "Breaking news" || mc.Speed != 12 || mc.Mode != marquee.ModeOnce || mc.FirstDelay != 0 {
		t.Fatalf("unexpected config: %+v / %+v", cfg, mc)
	}
	if mc.Interpolator == nil || mc.Interpolator(0.5) != 0.75 {
		t.Fatal("decelerate interpolator not selected")
	}
	if cfg.FrameRateHz != DefaultFrameRate {
		t.Fatalf("FrameRateHz = %d, want default", cfg.FrameRateHz)
	}
}

func TestSaveFileRoundTripYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "marquee.yml")
	cfg := Default()
	cfg.Text = "round trip"
	cfg.Mode = "once"
	if err := cfg.SaveFile(path); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if *got != *cfg {
		t.Fatalf("got %+v, want %+v", got, cfg)
	}
}

func TestLoadFileParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFrameInterval(t *testing.T) {
	cfg := &Config{FrameRateHz: 50}
	if got := cfg.FrameInterval(); got != 20*time.Millisecond {
		t.Fatalf("FrameInterval = %v, want 20ms", got)
	}
}

func overrideConfigEnv(tempDir string) func() {
	originals := map[string]string{
		"APPDATA":         os.Getenv("APPDATA"),
		"LOCALAPPDATA":    os.Getenv("LOCALAPPDATA"),
		"USERPROFILE":     os.Getenv("USERPROFILE"),
		"XDG_CONFIG_HOME": os.Getenv("XDG_CONFIG_HOME"),
		"HOME":            os.Getenv("HOME"),
	}

	if runtime.GOOS == "windows" {
		os.Setenv("APPDATA", tempDir)
		os.Setenv("LOCALAPPDATA", tempDir)
		os.Setenv("USERPROFILE", tempDir)
	} else {
		xdg := filepath.Join(tempDir, "xdg")
		_ = os.MkdirAll(xdg, 0o755)
		os.Setenv("XDG_CONFIG_HOME", xdg)
		os.Setenv("HOME", tempDir)
	}

	return func() {
		for k, v := range originals {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}
}
