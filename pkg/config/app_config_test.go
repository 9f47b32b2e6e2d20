package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/gonewx/backdrop/internal/effect"
)

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	v, ok, err := cfg.InitialVariant()
	if err != nil || !ok || v != effect.Snow {
		t.Errorf("InitialVariant() = %v, %v, %v, want snow", v, ok, err)
	}
	if !cfg.AutoDispose {
		t.Error("autoDispose should default to true")
	}
}

func TestParseAppConfig(t *testing.T) {
	data := []byte(`
window:
  width: 320
  height: 480
  title: Test
background: "#ff000080"
initialEffect: Bubble
autoDispose: false
tps: 30
seed: 7
profiles:
  bubble:
    birthRate: 8
    velocity: 60
`)
	cfg, err := ParseAppConfig(data)
	if err != nil {
		t.Fatalf("ParseAppConfig() error: %v", err)
	}

	if cfg.Window.Width != 320 || cfg.Window.Height != 480 || cfg.Window.Title != "Test" {
		t.Errorf("Window = %+v", cfg.Window)
	}
	if cfg.BackgroundColor() != (color.RGBA{R: 0xff, A: 0x80}) {
		t.Errorf("BackgroundColor() = %v", cfg.BackgroundColor())
	}
	if v, ok, _ := cfg.InitialVariant(); !ok || v != effect.Bubble {
		t.Errorf("InitialVariant() = %v, %v", v, ok)
	}
	if cfg.AutoDispose || cfg.TPS != 30 || cfg.Seed != 7 {
		t.Errorf("autoDispose/tps/seed = %v/%d/%d", cfg.AutoDispose, cfg.TPS, cfg.Seed)
	}

	tuning := cfg.TuningFor(effect.Bubble)
	if tuning.BirthRate == nil || *tuning.BirthRate != 8 {
		t.Errorf("bubble birthRate override = %v", tuning.BirthRate)
	}
	if !cfg.TuningFor(effect.Snow).IsZero() {
		t.Error("snow should have no overrides")
	}
}

func TestParseAppConfig_KeepsDefaults(t *testing.T) {
	cfg, err := ParseAppConfig([]byte("initialEffect: none\n"))
	if err != nil {
		t.Fatalf("ParseAppConfig() error: %v", err)
	}
	def := DefaultAppConfig()
	if cfg.Window != def.Window || cfg.TPS != def.TPS || cfg.Background != def.Background {
		t.Errorf("missing fields should keep defaults, got %+v", cfg)
	}
	if _, ok, err := cfg.InitialVariant(); ok || err != nil {
		t.Errorf("none should start no effect, got ok=%v err=%v", ok, err)
	}
}

func TestAppConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{"合法配置", "tps: 120\n", false},
		{"窗口宽度为 0", "window:\n  width: 0\n", true},
		{"负的窗口高度", "window:\n  height: -1\n", true},
		{"tps 为 0", "tps: 0\n", true},
		{"非法背景色", "background: blue\n", true},
		{"未知效果", "initialEffect: rain\n", true},
		{"未知 profile", "profiles:\n  rain:\n    birthRate: 1\n", true},
		{"负的 birthRate", "profiles:\n  snow:\n    birthRate: -1\n", true},
		{"YAML 语法错误", "window: [\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAppConfig([]byte(tt.yaml))
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseAppConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAppConfig_UnknownEffectError(t *testing.T) {
	_, err := ParseAppConfig([]byte("initialEffect: fog\n"))
	if !errors.Is(err, effect.ErrUnknownVariant) {
		t.Errorf("error = %v, want ErrUnknownVariant", err)
	}
}

func TestLoadAppConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backdrop.yaml")
	if err := os.WriteFile(path, []byte("initialEffect: bubble\ntps: 50\n"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig() error: %v", err)
	}
	if cfg.TPS != 50 {
		t.Errorf("TPS = %d, want 50", cfg.TPS)
	}

	if _, err := LoadAppConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input   string
		want    color.RGBA
		wantErr bool
	}{
		{"#1b2436", color.RGBA{R: 0x1b, G: 0x24, B: 0x36, A: 0xff}, false},
		{"ffffff", color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, false},
		{"#00000000", color.RGBA{}, false},
		{" #FF8000 ", color.RGBA{R: 0xff, G: 0x80, A: 0xff}, false},
		{"#fff", color.RGBA{}, true},
		{"#gggggg", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHexColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
