package app

import (
	"context"
	"sync/atomic"

	"github.com/soocke/distance-collector/domain/capture"
	"github.com/soocke/distance-collector/ui/model"
	"github.com/soocke/distance-collector/ui/presenter"
	"github.com/soocke/distance-collector/ui/view"
)

// RunCapture runs the capture-and-dedup loop until ctx is cancelled or the
// source fails. With preview enabled the loop runs on its own goroutine and
// the Tk window owns the calling goroutine; closing the window stops capture.
func RunCapture(ctx context.Context, c *AppContainer) error {
	src, err := c.OpenSource()
	if err != nil {
		return err
	}
	defer src.Close()

	if c.Config.MetricsAddr != "" {
		capture.StartMetricsServer(ctx, c.Config.MetricsAddr, c.Logger)
	}
	sess := c.CaptureSession(src)
	if !c.Config.Preview {
		return sess.Run(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rv := view.NewRootView("Distance Collector - capture", 0, 0)
	win := newWindow(cancel)
	rv.BuildCapture(win.exit)

	capPresenter := presenter.NewCapturePresenter(&model.PreviewModel{}, rv, c.Config.PreviewScale)
	sess.SetPreview(capPresenter)

	var stopped atomic.Bool
	errCh := make(chan error, 1)
	go func() {
		defer stopped.Store(true)
		errCh <- sess.Run(ctx)
	}()

	running := func() bool { return !stopped.Load() }
	sessPresenter := presenter.NewSessionPresenter(model.NewSessionModel(), sess, running, rv)
	loop := presenter.NewLoop(sessPresenter, capPresenter, nil, nil)
	win.run(loop, stopped.Load)

	cancel()
	return <-errCh
}
