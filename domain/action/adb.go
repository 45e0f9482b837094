// Package action injects input into the controlled Android device.
package action

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Gesture is a straight-line swipe in device screen coordinates.
type Gesture struct {
	X1, Y1, X2, Y2 int
	Duration       time.Duration
}

// Runner executes a command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// ADB sends gestures through the adb command-line tool.
type ADB struct {
	Path   string
	Serial string
	run    Runner
}

// NewADB returns an ADB using the adb binary at path (looked up on PATH when
// it has no separator). serial selects a device when several are attached.
func NewADB(path, serial string) *ADB {
	if path == "" {
		path = "adb"
	}
	return &ADB{Path: path, Serial: serial, run: execRunner}
}

// WithRunner replaces the command runner.
func (a *ADB) WithRunner(r Runner) *ADB {
	a.run = r
	return a
}

// Args returns the adb arguments for g.
func (a *ADB) Args(g Gesture) []string {
	var args []string
	if a.Serial != "" {
		args = append(args, "-s", a.Serial)
	}
	ms := g.Duration.Milliseconds()
	if ms < 1 {
		ms = 1
	}
	return append(args, "shell", "input", "swipe",
		strconv.Itoa(g.X1), strconv.Itoa(g.Y1),
		strconv.Itoa(g.X2), strconv.Itoa(g.Y2),
		strconv.FormatInt(ms, 10))
}

// Swipe performs g on the device and waits for adb to return.
func (a *ADB) Swipe(ctx context.Context, g Gesture) error {
	args := a.Args(g)
	out, err := a.run(ctx, a.Path, args...)
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("action: %s %s: %w: %s", a.Path, strings.Join(args, " "), err, msg)
		}
		return fmt.Errorf("action: %s %s: %w", a.Path, strings.Join(args, " "), err)
	}
	return nil
}
