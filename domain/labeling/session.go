package labeling

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/soocke/distance-collector/domain/sample"
	"github.com/soocke/distance-collector/domain/store"
)

// DefaultScale is the magnification applied to samples before presenting.
const DefaultScale = 10

// Session walks the extraction store once, asking for a label per sample.
// It owns the label counters through its Labeled store.
type Session struct {
	extracts  *store.Extracts
	labeled   *store.Labeled
	keys      KeySource
	presenter Presenter
	logger    *slog.Logger
	fsm       *FSM
	scale     int
}

// Options tunes a Session.
type Options struct {
	MaxDigits int
	Scale     int
}

// NewSession builds a labeling session over the two stores.
func NewSession(extracts *store.Extracts, labeled *store.Labeled, keys KeySource, presenter Presenter, opts Options, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Scale < 1 {
		opts.Scale = DefaultScale
	}
	return &Session{
		extracts:  extracts,
		labeled:   labeled,
		keys:      keys,
		presenter: presenter,
		logger:    logger.With("run", uuid.NewString()),
		fsm:       NewFSM(opts.MaxDigits),
		scale:     opts.Scale,
	}
}

// Run labels samples in lexicographic order until the store is exhausted or
// the user quits. An empty store is not an error. Key source and filesystem
// failures end the session and are returned with the partial summary.
func (s *Session) Run(ctx context.Context) (Summary, error) {
	var sum Summary
	paths, err := s.extracts.List()
	if err != nil {
		return sum, fmt.Errorf("labeling: list %s: %w", s.extracts.Dir(), err)
	}
	if len(paths) == 0 {
		s.logger.Info("no images found", "dir", s.extracts.Dir())
		s.presenter.Message("No images found in " + s.extracts.Dir())
		return sum, nil
	}

	for i, path := range paths {
		img, err := imaging.Open(path)
		if err != nil {
			s.logger.Warn("unreadable sample, skipping", "path", path, "error", err)
			continue
		}
		name := filepath.Base(path)
		s.logger.Info("labeling", "sample", name, "index", i+1, "total", len(paths))
		s.presenter.Present(name, sample.Magnify(img, s.scale))
		s.presenter.Message(fmt.Sprintf("Labeling: %s. Type 1-%d digits, then Enter. 's' skips, 'q' quits.", name, s.fsm.maxDigits))

		step, err := s.collect(ctx)
		if err != nil {
			sum.Remaining = len(paths) - i
			return sum, err
		}
		switch step.State {
		case StateConfirmed:
			out, err := s.labeled.Commit(path, img, step.Label)
			if err != nil {
				sum.Remaining = len(paths) - i
				return sum, fmt.Errorf("labeling: commit %s: %w", name, err)
			}
			sum.Labeled++
			LabeledTotal.WithLabelValues("confirmed").Inc()
			s.logger.Info("sample labeled", "sample", name, "saved_as", out)
			s.presenter.Message("Saved as: " + out)
		case StateSkipped:
			sum.Skipped++
			LabeledTotal.WithLabelValues("skipped").Inc()
			s.logger.Info("sample skipped", "sample", name)
		case StateQuitRequested:
			sum.Quit = true
			sum.Remaining = len(paths) - i
			s.logger.Info("labeling quit", "labeled", sum.Labeled, "remaining", sum.Remaining)
			return sum, nil
		}
	}
	s.logger.Info("labeling complete", "labeled", sum.Labeled, "skipped", sum.Skipped, "dir", s.labeled.Dir())
	s.presenter.Message("Labeling complete. Labeled images in " + s.labeled.Dir())
	return sum, nil
}

// collect feeds keys to the FSM until it reaches a terminal state.
func (s *Session) collect(ctx context.Context) (Step, error) {
	s.fsm.Reset()
	for {
		k, err := s.keys.NextKey(ctx)
		if err != nil {
			return Step{}, err
		}
		step := s.fsm.Feed(k)
		s.logger.Debug("key", "key", k.String(), "state", step.State.String(), "pending", step.Pending)
		if step.Message != "" {
			s.presenter.Message(step.Message)
		}
		if step.State.Terminal() {
			return step, nil
		}
	}
}
