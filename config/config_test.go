package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def := DefaultConfig()
	if cfg.VideoDevice != def.VideoDevice || cfg.Threshold != def.Threshold || cfg.DistanceROI != def.DistanceROI {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestSaveLoad_RoundTripsCalibration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	cfg := DefaultConfig()
	cfg.DistanceROI = Rect{X1: 10, Y1: 20, X2: 90, Y2: 40}
	cfg.ExtractsDir = "x"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.DistanceROI != cfg.DistanceROI || got.ExtractsDir != "x" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	if err := os.WriteFile(path, []byte(`{"video_device":"/dev/video3","threshold":120}`), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DC_VIDEO_DEVICE", "/dev/video7")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.VideoDevice != "/dev/video7" {
		t.Fatalf("env override not applied: %q", cfg.VideoDevice)
	}
	if cfg.Threshold != 120 {
		t.Fatalf("file value lost: %d", cfg.Threshold)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		check   func(*Config) bool
		wantErr bool
	}{
		{"zero scale restored", func(c *Config) { c.PreviewScale = 0 }, func(c *Config) bool { return c.PreviewScale == 10 }, false},
		{"digits capped", func(c *Config) { c.MaxLabelDigits = 42 }, func(c *Config) bool { return c.MaxLabelDigits == 5 }, false},
		{"empty dirs restored", func(c *Config) { c.ExtractsDir, c.LabeledDir = "", "" }, func(c *Config) bool {
			return c.ExtractsDir == "assets/extracts" && c.LabeledDir == "assets/labeled"
		}, false},
		{"unknown source", func(c *Config) { c.Source = "rtsp" }, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(c) {
				t.Fatalf("unexpected config after validate: %+v", c)
			}
		})
	}
}

func TestRectImage_KeepsInvertedBounds(t *testing.T) {
	r := Rect{X1: 50, Y1: 50, X2: 40, Y2: 40}.Image()
	if r.Min.X != 50 || r.Max.X != 40 {
		t.Fatalf("rect was canonicalised: %v", r)
	}
}
