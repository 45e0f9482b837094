package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/soocke/distance-collector/domain/control"
	"github.com/soocke/distance-collector/terminal"
)

// RunControl maps arrow keys on in to device gestures until 'q' or ctx is
// done. A terminal on in is switched to raw mode for the duration.
func RunControl(ctx context.Context, c *AppContainer, in *os.File, out io.Writer) error {
	fd := int(in.Fd())
	if terminal.IsTerminal(fd) {
		restore, err := terminal.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("app: raw mode: %w", err)
		}
		defer restore()
	}
	accel, brake := c.Gestures()
	d := control.NewDispatcher(c.ADB(), accel, brake, out, c.Logger)
	return d.Run(ctx, in)
}
