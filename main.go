// Command distance-collector builds a labeled dataset of distance readouts
// mirrored from a phone: capture stores each distinct readout once, label
// asks a human for its value, control drives the device from the keyboard.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/soocke/distance-collector/app"
	"github.com/soocke/distance-collector/config"
	"github.com/soocke/distance-collector/debug"
)

const usage = `usage: distance-collector <command> [flags]

commands:
  capture   store every distinct distance readout from the video source
  label     label stored readouts interactively
  control   send accelerate/brake swipes with the arrow keys
`

var errUsage = errors.New("usage")

// command is a parsed command line.
type command struct {
	name       string
	configPath string
	debug      bool

	// overrides, applied only when set on the command line
	source      string
	device      string
	noPreview   bool
	metricsAddr string
	tty         bool
	previewFile string
	fresh       bool
}

func parseCommand(args []string, stderr io.Writer) (*command, error) {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return nil, errUsage
	}
	cmd := &command{name: args[0]}
	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cmd.configPath, "config", "config.json", "path to the JSON config file")
	fs.BoolVar(&cmd.debug, "debug", false, "debug logging and runtime stats")

	switch cmd.name {
	case "capture":
		fs.StringVar(&cmd.source, "source", "", "frame source: v4l2 or screen")
		fs.StringVar(&cmd.device, "device", "", "V4L2 device path")
		fs.BoolVar(&cmd.noPreview, "no-preview", false, "run without the preview window")
		fs.StringVar(&cmd.metricsAddr, "metrics", "", "serve Prometheus metrics on this address")
	case "label":
		fs.BoolVar(&cmd.tty, "tty", false, "read keys from the terminal instead of a window")
		fs.StringVar(&cmd.previewFile, "preview-file", "", "with -tty, write the magnified sample to this PNG")
		fs.BoolVar(&cmd.fresh, "fresh", false, "start label counters at 0 instead of resuming from disk")
	case "control":
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stderr, usage)
		return nil, flag.ErrHelp
	default:
		fmt.Fprintf(stderr, "unknown command %q\n%s", cmd.name, usage)
		return nil, errUsage
	}
	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return cmd, nil
}

// apply copies command-line overrides onto cfg.
func (c *command) apply(cfg *config.Config) error {
	if c.debug {
		cfg.Debug = true
	}
	if c.source != "" {
		cfg.Source = c.source
	}
	if c.device != "" {
		cfg.VideoDevice = c.device
	}
	if c.noPreview {
		cfg.Preview = false
	}
	if c.metricsAddr != "" {
		cfg.MetricsAddr = c.metricsAddr
	}
	if c.fresh {
		cfg.ResumeCounters = false
	}
	return cfg.Validate()
}

func run(ctx context.Context, args []string) error {
	cmd, err := parseCommand(args, os.Stderr)
	if err != nil {
		return err
	}
	cfg, err := config.Load(cmd.configPath)
	if err != nil {
		return err
	}
	if err := cmd.apply(cfg); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(os.Stderr, level).With("cmd", cmd.name)
	if cfg.Debug {
		debug.StartGoroutineLogger(ctx, 10*time.Second, logger)
		debug.StartMemLogger(ctx, 10*time.Second, logger)
	}

	c, err := app.BuildContainer(cfg, logger)
	if err != nil {
		return err
	}
	switch cmd.name {
	case "capture":
		return app.RunCapture(ctx, c)
	case "label":
		sum, err := app.RunLabel(ctx, c, app.LabelOptions{TTY: cmd.tty, PreviewPath: cmd.previewFile})
		logger.Info("labeling summary", "labeled", sum.Labeled, "skipped", sum.Skipped, "remaining", sum.Remaining, "quit", sum.Quit)
		return err
	default:
		return app.RunControl(ctx, c, os.Stdin, os.Stdout)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:])
	stop()
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
	case errors.Is(err, errUsage):
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
