package capture

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/corona10/goimagehash"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/soocke/distance-collector/domain/sample"
)

const captureStatsLogInterval = 5 * time.Second

// SampleStore persists preprocessed samples keyed by content.
type SampleStore interface {
	StoreIfNovel(s *image.Gray) (saved bool, digest string, n int64, err error)
	Path(digest string) string
}

// Options selects the regions and threshold a Session works with.
type Options struct {
	DistanceROI image.Rectangle
	OCRROI      image.Rectangle
	OCREnabled  bool
	Threshold   uint8
}

// Session runs the capture-and-dedup loop: every frame from the source is
// cropped to the distance readout, binarised and stored once per distinct
// content. Use NewSession to construct an instance.
type Session struct {
	source  FrameSource
	store   SampleStore
	opts    Options
	logger  *slog.Logger
	preview Preview

	cycles     atomic.Uint64
	saved      atomic.Uint64
	duplicates atomic.Uint64
	skipped    atomic.Uint64
	bytes      atomic.Uint64
	cycleNanos atomic.Uint64
	lastCycle  atomic.Int64

	lastHash *goimagehash.ImageHash
}

// NewSession wires a source to a store. Each session tags its log records
// with a fresh run id.
func NewSession(source FrameSource, store SampleStore, opts Options, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Threshold == 0 {
		opts.Threshold = sample.DefaultThreshold
	}
	return &Session{
		source: source,
		store:  store,
		opts:   opts,
		logger: logger.With("run", uuid.NewString()),
	}
}

// SetPreview attaches an optional live preview.
func (s *Session) SetPreview(p Preview) { s.preview = p }

// Stats returns a snapshot of the session counters.
func (s *Session) Stats() CaptureStats {
	cycles := s.cycles.Load()
	var avg time.Duration
	if cycles > 0 {
		avg = time.Duration(s.cycleNanos.Load() / cycles)
	}
	var last time.Time
	if ns := s.lastCycle.Load(); ns > 0 {
		last = time.Unix(0, ns)
	}
	return CaptureStats{
		Cycles:       cycles,
		Saved:        s.saved.Load(),
		Duplicates:   s.duplicates.Load(),
		Skipped:      s.skipped.Load(),
		BytesWritten: s.bytes.Load(),
		AvgCycle:     avg,
		LastCycle:    last,
	}
}

// Run repeats Step until ctx is cancelled or a cycle fails. Cancellation is
// a clean stop and returns nil; acquisition and write failures are returned.
func (s *Session) Run(ctx context.Context) error {
	logTicker := time.NewTicker(captureStatsLogInterval)
	defer logTicker.Stop()
	s.logger.Info("capture started")
	defer func() {
		s.logStats()
		s.logger.Info("capture stopped")
	}()
	for {
		if ctx.Err() != nil {
			return nil
		}
		if _, err := s.Step(ctx); err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				return nil
			}
			s.logger.Error("capture cycle failed", "error", err)
			return err
		}
		select {
		case <-logTicker.C:
			s.logStats()
		default:
		}
	}
}

// Step performs one acquire, extract, preprocess and store cycle.
func (s *Session) Step(ctx context.Context) (CycleResult, error) {
	seq := s.cycles.Load() + 1
	s.logger.Debug("capturing frame", "frame", seq)
	frame, err := s.source.NextFrame(ctx)
	if err != nil {
		return CycleResult{Sequence: seq}, err
	}
	defer RecycleFrame(frame)
	start := time.Now()

	var ocrROI image.Image
	if s.opts.OCREnabled {
		var d float64
		d, ocrROI = sample.OCRDistance(frame, s.opts.OCRROI)
		s.logger.Debug("ocr distance", "frame", seq, "distance", d)
	}

	roi, rect, ok := sample.ExtractROI(frame, s.opts.DistanceROI)
	if !ok {
		s.logger.Warn("distance region invalid, skipping",
			"frame", seq, "roi", s.opts.DistanceROI, "bounds", frame.Bounds())
		s.show(frame, nil, ocrROI)
		return s.finish(CycleResult{Outcome: OutcomeSkipped, Sequence: seq}, start), nil
	}

	processed := sample.Preprocess(roi, s.opts.Threshold)
	saved, digest, n, err := s.store.StoreIfNovel(processed)
	if err != nil {
		return CycleResult{Sequence: seq, Digest: digest}, &WriteError{Path: s.store.Path(digest), Err: err}
	}

	res := CycleResult{Outcome: OutcomeDuplicate, Digest: digest, Sequence: seq}
	if saved {
		res.Outcome = OutcomeSaved
		res.Bytes = n
		s.trackDistance(processed, digest)
	}
	s.show(frame, processed, ocrROI)
	res = s.finish(res, start)

	status := "duplicate (skipped)"
	if saved {
		status = "saved new!"
	}
	s.logger.Info("cycle",
		"frame", seq,
		"took_ms", float64(res.Took)/float64(time.Millisecond),
		"status", status,
		"digest", digest,
		"roi", rect,
	)
	return res, nil
}

func (s *Session) finish(res CycleResult, start time.Time) CycleResult {
	res.Took = time.Since(start)
	s.cycles.Add(1)
	s.cycleNanos.Add(uint64(res.Took.Nanoseconds()))
	s.lastCycle.Store(time.Now().UnixNano())
	switch res.Outcome {
	case OutcomeSaved:
		s.saved.Add(1)
		s.bytes.Add(uint64(res.Bytes))
		BytesWrittenTotal.Add(float64(res.Bytes))
	case OutcomeDuplicate:
		s.duplicates.Add(1)
	case OutcomeSkipped:
		s.skipped.Add(1)
	}
	CyclesTotal.WithLabelValues(res.Outcome.String()).Inc()
	CycleDuration.Observe(res.Took.Seconds())
	return res
}

// trackDistance logs how far a newly saved sample is from the previous one.
func (s *Session) trackDistance(img *image.Gray, digest string) {
	h, err := goimagehash.PerceptionHash(img)
	if err != nil {
		s.logger.Debug("phash", "digest", digest, "error", err)
		return
	}
	if s.lastHash != nil {
		if d, err := s.lastHash.Distance(h); err == nil {
			SampleDistance.Observe(float64(d))
			s.logger.Debug("sample distance", "digest", digest, "phash_distance", d)
		}
	}
	s.lastHash = h
}

func (s *Session) show(frame *image.RGBA, roi, ocr image.Image) {
	if s.preview != nil {
		s.preview.ShowFrame(frame, roi, ocr)
	}
}

func (s *Session) logStats() {
	stats := s.Stats()
	s.logger.Info("capture.stats",
		"cycles", stats.Cycles,
		"saved", stats.Saved,
		"duplicates", stats.Duplicates,
		"skipped", stats.Skipped,
		"written", humanize.Bytes(stats.BytesWritten),
		"avg_cycle", stats.AvgCycle,
	)
}
