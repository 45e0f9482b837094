package capture

import (
	"context"
	"errors"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/distance-collector/domain/store"
)

var distanceROI = image.Rect(240, 24, 310, 43)

// readout returns a frame with a bright bar inside the distance region whose
// width encodes v.
func readout(v int) *image.RGBA {
	frame := image.NewRGBA(image.Rect(0, 0, 400, 100))
	for i := 0; i < len(frame.Pix); i += 4 {
		frame.Pix[i], frame.Pix[i+1], frame.Pix[i+2], frame.Pix[i+3] = 30, 40, 50, 255
	}
	for y := 28; y < 38; y++ {
		for x := 245; x < 245+v; x++ {
			frame.SetRGBA(x, y, color.RGBA{240, 240, 240, 255})
		}
	}
	return frame
}

// fakeSource replays frames, then fails with err (or blocks until ctx is
// done when err is nil).
type fakeSource struct {
	frames []*image.RGBA
	err    error
}

func (f *fakeSource) NextFrame(ctx context.Context) (*image.RGBA, error) {
	if len(f.frames) > 0 {
		fr := f.frames[0]
		f.frames = f.frames[1:]
		return fr, nil
	}
	if f.err != nil {
		return nil, f.err
	}
	<-ctx.Done()
	return nil, ctx.Err()
}

func (f *fakeSource) Close() error { return nil }

type recordingPreview struct {
	calls int
	rois  int
}

func (p *recordingPreview) ShowFrame(_ *image.RGBA, roi, _ image.Image) {
	p.calls++
	if roi != nil {
		p.rois++
	}
}

func discardLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

func newTestSession(t *testing.T, src FrameSource) (*Session, *store.Extracts) {
	t.Helper()
	ex, err := store.NewExtracts(filepath.Join(t.TempDir(), "extracts"), 64)
	require.NoError(t, err)
	s := NewSession(src, ex, Options{DistanceROI: distanceROI, Threshold: 150}, discardLogger())
	return s, ex
}

func TestSession_DeduplicatesIdenticalReadouts(t *testing.T) {
	src := &fakeSource{frames: []*image.RGBA{readout(10), readout(10), readout(20)}}
	s, ex := newTestSession(t, src)
	prev := &recordingPreview{}
	s.SetPreview(prev)

	var outcomes []Outcome
	for i := 0; i < 3; i++ {
		res, err := s.Step(context.Background())
		require.NoError(t, err)
		outcomes = append(outcomes, res.Outcome)
	}
	assert.Equal(t, []Outcome{OutcomeSaved, OutcomeDuplicate, OutcomeSaved}, outcomes)

	paths, err := ex.List()
	require.NoError(t, err)
	assert.Len(t, paths, 2)

	stats := s.Stats()
	assert.EqualValues(t, 3, stats.Cycles)
	assert.EqualValues(t, 2, stats.Saved)
	assert.EqualValues(t, 1, stats.Duplicates)
	assert.Positive(t, stats.BytesWritten)
	assert.False(t, stats.LastCycle.IsZero())
	assert.Equal(t, 3, prev.calls)
	assert.Equal(t, 3, prev.rois)
}

func TestSession_SecondPassOverSameFramesWritesNothing(t *testing.T) {
	root := t.TempDir()
	for pass := 0; pass < 2; pass++ {
		ex, err := store.NewExtracts(root, 0)
		require.NoError(t, err)
		src := &fakeSource{frames: []*image.RGBA{readout(5), readout(15)}}
		s := NewSession(src, ex, Options{DistanceROI: distanceROI}, discardLogger())
		for i := 0; i < 2; i++ {
			_, err := s.Step(context.Background())
			require.NoError(t, err)
		}
		if pass == 1 {
			assert.Zero(t, s.Stats().Saved)
			assert.EqualValues(t, 2, s.Stats().Duplicates)
		}
	}
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSession_InvalidRegionIsSkipped(t *testing.T) {
	small := image.NewRGBA(image.Rect(0, 0, 100, 20))
	src := &fakeSource{frames: []*image.RGBA{small}}
	s, ex := newTestSession(t, src)

	res, err := s.Step(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, res.Outcome)
	assert.EqualValues(t, 1, s.Stats().Skipped)
	paths, err := ex.List()
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestSession_RunStopsOnAcquisitionError(t *testing.T) {
	boom := &AcquisitionError{Device: "/dev/video10", Err: errors.New("device gone")}
	src := &fakeSource{frames: []*image.RGBA{readout(3)}, err: boom}
	s, _ := newTestSession(t, src)

	err := s.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAcquisition)
	assert.EqualValues(t, 1, s.Stats().Saved)
}

func TestSession_RunReturnsNilOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := &fakeSource{frames: []*image.RGBA{readout(7)}}
	s, _ := newTestSession(t, src)

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()
	assert.NoError(t, <-done)
}

type failingStore struct{}

func (failingStore) StoreIfNovel(*image.Gray) (bool, string, int64, error) {
	return false, "abc", 0, errors.New("disk full")
}

func (failingStore) Path(digest string) string { return "/tmp/" + digest + ".png" }

func TestSession_WriteErrorIsFatal(t *testing.T) {
	src := &fakeSource{frames: []*image.RGBA{readout(4), readout(5)}}
	s := NewSession(src, failingStore{}, Options{DistanceROI: distanceROI}, discardLogger())

	err := s.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWrite)
	var we *WriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, "/tmp/abc.png", we.Path)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "saved", OutcomeSaved.String())
	assert.Equal(t, "duplicate", OutcomeDuplicate.String())
	assert.Equal(t, "skipped", OutcomeSkipped.String())
	assert.Equal(t, "unknown", Outcome(9).String())
}
