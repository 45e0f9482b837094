package config

import (
	"encoding/json"
	"fmt"
	"image"
	"os"

	"github.com/caarlos0/env/v11"
)

// Source names accepted by Config.Source.
const (
	SourceV4L2   = "v4l2"
	SourceScreen = "screen"
)

// Rect is a calibration rectangle in frame pixel coordinates (x2/y2 exclusive).
type Rect struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Image returns r as an image.Rectangle without canonicalising it, so an
// inverted rectangle stays inverted and is rejected downstream.
func (r Rect) Image() image.Rectangle {
	return image.Rectangle{Min: image.Pt(r.X1, r.Y1), Max: image.Pt(r.X2, r.Y2)}
}

// Gesture is a swipe sent to the controlled device.
type Gesture struct {
	X1         int `json:"x1"`
	Y1         int `json:"y1"`
	X2         int `json:"x2"`
	Y2         int `json:"y2"`
	DurationMS int `json:"duration_ms"`
}

// Config holds runtime configuration for capture, labeling and device control.
// Fields are loaded from a JSON file, then overridden by DC_* environment
// variables and finally by command-line flags.
type Config struct {
	Debug bool `json:"debug" env:"DC_DEBUG"`

	// Frame acquisition
	Source              string `json:"source" env:"DC_SOURCE"`
	VideoDevice         string `json:"video_device" env:"DC_VIDEO_DEVICE"`
	FrameTimeoutSeconds int    `json:"frame_timeout_seconds" env:"DC_FRAME_TIMEOUT_SECONDS"`

	// Region extraction
	DistanceROI Rect  `json:"distance_roi"`
	OCRROI      Rect  `json:"ocr_roi"`
	OCREnabled  bool  `json:"ocr_enabled" env:"DC_OCR_ENABLED"`
	Threshold   uint8 `json:"threshold" env:"DC_THRESHOLD"`

	// Stores
	ExtractsDir    string `json:"extracts_dir" env:"DC_EXTRACTS_DIR"`
	LabeledDir     string `json:"labeled_dir" env:"DC_LABELED_DIR"`
	KnownCacheSize int    `json:"known_cache_size" env:"DC_KNOWN_CACHE_SIZE"`

	// Preview and labeling
	Preview        bool `json:"preview" env:"DC_PREVIEW"`
	PreviewScale   int  `json:"preview_scale" env:"DC_PREVIEW_SCALE"`
	MaxLabelDigits int  `json:"max_label_digits" env:"DC_MAX_LABEL_DIGITS"`
	ResumeCounters bool `json:"resume_counters" env:"DC_RESUME_COUNTERS"`

	MetricsAddr string `json:"metrics_addr" env:"DC_METRICS_ADDR"`

	// Device control
	ADBPath      string  `json:"adb_path" env:"DC_ADB_PATH"`
	ADBSerial    string  `json:"adb_serial" env:"DC_ADB_SERIAL"`
	AccelGesture Gesture `json:"accel_gesture"`
	BrakeGesture Gesture `json:"brake_gesture"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:               false,
		Source:              SourceV4L2,
		VideoDevice:         "/dev/video10",
		FrameTimeoutSeconds: 5,
		DistanceROI:         Rect{X1: 240, Y1: 24, X2: 310, Y2: 43},
		OCRROI:              Rect{X1: 1800, Y1: 20, X2: 2200, Y2: 60},
		OCREnabled:          false,
		Threshold:           150,
		ExtractsDir:         "assets/extracts",
		LabeledDir:          "assets/labeled",
		KnownCacheSize:      4096,
		Preview:             true,
		PreviewScale:        10,
		MaxLabelDigits:      5,
		ResumeCounters:      true,
		MetricsAddr:         "",
		ADBPath:             "adb",
		AccelGesture:        Gesture{X1: 200, Y1: 850, X2: 240, Y2: 850, DurationMS: 150},
		BrakeGesture:        Gesture{X1: 2115, Y1: 850, X2: 2200, Y2: 850, DurationMS: 150},
	}
}

// Validate clamps/normalizes values to safe ranges. Only an unknown source is
// reported as an error; everything else falls back to its default.
func (c *Config) Validate() error {
	def := DefaultConfig()
	if c.Source == "" {
		c.Source = def.Source
	}
	if c.Source != SourceV4L2 && c.Source != SourceScreen {
		return fmt.Errorf("config: unknown source %q", c.Source)
	}
	if c.VideoDevice == "" {
		c.VideoDevice = def.VideoDevice
	}
	if c.FrameTimeoutSeconds <= 0 {
		c.FrameTimeoutSeconds = def.FrameTimeoutSeconds
	}
	if c.ExtractsDir == "" {
		c.ExtractsDir = def.ExtractsDir
	}
	if c.LabeledDir == "" {
		c.LabeledDir = def.LabeledDir
	}
	if c.KnownCacheSize <= 0 {
		c.KnownCacheSize = def.KnownCacheSize
	}
	if c.PreviewScale < 1 {
		c.PreviewScale = def.PreviewScale
	}
	if c.MaxLabelDigits < 1 || c.MaxLabelDigits > 9 {
		c.MaxLabelDigits = def.MaxLabelDigits
	}
	if c.ADBPath == "" {
		c.ADBPath = def.ADBPath
	}
	if c.AccelGesture.DurationMS <= 0 {
		c.AccelGesture.DurationMS = def.AccelGesture.DurationMS
	}
	if c.BrakeGesture.DurationMS <= 0 {
		c.BrakeGesture.DurationMS = def.BrakeGesture.DurationMS
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it starts from DefaultConfig(). DC_* environment variables are applied on top.
// On error the returned config still holds usable defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		f, err := os.Open(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return cfg, err
		default:
			defer f.Close()
			if err := json.NewDecoder(f).Decode(cfg); err != nil {
				return cfg, fmt.Errorf("config: decode %s: %w", path, err)
			}
		}
	}
	if err := env.Parse(cfg); err != nil {
		return cfg, fmt.Errorf("config: env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
