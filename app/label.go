package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/soocke/distance-collector/domain/labeling"
	"github.com/soocke/distance-collector/terminal"
	"github.com/soocke/distance-collector/ui/presenter"
	"github.com/soocke/distance-collector/ui/view"
)

// LabelOptions selects how the labeler talks to the user.
type LabelOptions struct {
	// TTY reads keys from a raw-mode stdin instead of a Tk window.
	TTY bool
	// PreviewPath, in TTY mode, receives the magnified sample as PNG.
	PreviewPath string
}

// RunLabel runs one labeling session. An interrupt ends it without error.
func RunLabel(ctx context.Context, c *AppContainer, opts LabelOptions) (labeling.Summary, error) {
	if opts.TTY {
		return runLabelTTY(ctx, c, opts)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rv := view.NewRootView("Label Image - type digits, press ENTER", 0, 0)
	win := newWindow(cancel)
	lp := presenter.NewLabelPresenter(rv, win.exit)
	rv.BuildLabel(lp.OnKey, win.exit)

	sess, err := c.LabelSession(lp, lp)
	if err != nil {
		return labeling.Summary{}, err
	}

	type result struct {
		sum labeling.Summary
		err error
	}
	resCh := make(chan result, 1)
	go func() {
		defer lp.Finish()
		sum, err := sess.Run(ctx)
		resCh <- result{sum, err}
	}()

	win.run(presenter.NewLoop(nil, nil, lp, nil), nil)

	cancel()
	res := <-resCh
	return res.sum, interrupted(ctx, res.err)
}

func runLabelTTY(ctx context.Context, c *AppContainer, opts LabelOptions) (labeling.Summary, error) {
	fd := int(os.Stdin.Fd())
	if !terminal.IsTerminal(fd) {
		return labeling.Summary{}, fmt.Errorf("app: stdin is not a terminal")
	}
	restore, err := terminal.MakeRaw(fd)
	if err != nil {
		return labeling.Summary{}, fmt.Errorf("app: raw mode: %w", err)
	}
	defer restore()

	sess, err := c.LabelSession(terminal.NewKeys(os.Stdin), terminal.NewPresenter(os.Stdout, opts.PreviewPath))
	if err != nil {
		return labeling.Summary{}, err
	}
	sum, err := sess.Run(ctx)
	return sum, interrupted(ctx, err)
}

// interrupted drops the error caused by ctx being cancelled.
func interrupted(ctx context.Context, err error) error {
	if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return nil
	}
	return err
}
