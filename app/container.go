package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/soocke/distance-collector/config"
	"github.com/soocke/distance-collector/domain/action"
	"github.com/soocke/distance-collector/domain/capture"
	"github.com/soocke/distance-collector/domain/labeling"
	"github.com/soocke/distance-collector/domain/store"
)

// Container assembles stores, sources and sessions from the configuration.
type AppContainer struct {
	Config   *config.Config
	Logger   *slog.Logger
	Extracts *store.Extracts
}

// BuildContainer opens the extraction store. Everything else is created on
// demand by the subcommand that needs it.
func BuildContainer(cfg *config.Config, logger *slog.Logger) (*AppContainer, error) {
	ex, err := store.NewExtracts(cfg.ExtractsDir, cfg.KnownCacheSize)
	if err != nil {
		return nil, err
	}
	return &AppContainer{Config: cfg, Logger: logger, Extracts: ex}, nil
}

// OpenSource opens the configured frame source.
func (c *AppContainer) OpenSource() (capture.FrameSource, error) {
	switch c.Config.Source {
	case config.SourceScreen:
		return capture.NewScreenSource(), nil
	case config.SourceV4L2:
		timeout := time.Duration(c.Config.FrameTimeoutSeconds) * time.Second
		return capture.OpenV4L2(c.Config.VideoDevice, timeout, c.Logger)
	default:
		return nil, fmt.Errorf("app: unknown source %q", c.Config.Source)
	}
}

// CaptureSession builds the capture loop over src.
func (c *AppContainer) CaptureSession(src capture.FrameSource) *capture.Session {
	return capture.NewSession(src, c.Extracts, capture.Options{
		DistanceROI: c.Config.DistanceROI.Image(),
		OCRROI:      c.Config.OCRROI.Image(),
		OCREnabled:  c.Config.OCREnabled,
		Threshold:   c.Config.Threshold,
	}, c.Logger)
}

// LabelSession builds a labeling session reading keys from keys and showing
// samples through p.
func (c *AppContainer) LabelSession(keys labeling.KeySource, p labeling.Presenter) (*labeling.Session, error) {
	labeled, err := store.NewLabeled(c.Config.LabeledDir, c.Config.ResumeCounters)
	if err != nil {
		return nil, err
	}
	return labeling.NewSession(c.Extracts, labeled, keys, p, labeling.Options{
		MaxDigits: c.Config.MaxLabelDigits,
		Scale:     c.Config.PreviewScale,
	}, c.Logger), nil
}

// ADB returns the device used by the control surface.
func (c *AppContainer) ADB() *action.ADB {
	return action.NewADB(c.Config.ADBPath, c.Config.ADBSerial)
}

// Gestures converts the configured accelerate and brake swipes.
func (c *AppContainer) Gestures() (accelerate, brake action.Gesture) {
	return gesture(c.Config.AccelGesture), gesture(c.Config.BrakeGesture)
}

func gesture(g config.Gesture) action.Gesture {
	return action.Gesture{X1: g.X1, Y1: g.Y1, X2: g.X2, Y2: g.Y2, Duration: time.Duration(g.DurationMS) * time.Millisecond}
}
