package presenter

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/soocke/distance-collector/domain/capture"
	"github.com/soocke/distance-collector/domain/labeling"
	"github.com/soocke/distance-collector/ui/model"
)

var _ capture.Preview = (*CapturePresenter)(nil)
var _ labeling.KeySource = (*LabelPresenter)(nil)
var _ labeling.Presenter = (*LabelPresenter)(nil)

type mockCaptureView struct {
	captures, rois, ocrs int
	lastROI              image.Image
}

func (v *mockCaptureView) UpdateCapture(image.Image) { v.captures++ }
func (v *mockCaptureView) UpdateROI(img image.Image) { v.rois++; v.lastROI = img }
func (v *mockCaptureView) UpdateOCR(image.Image)     { v.ocrs++ }

func TestCapturePresenter_CopiesAndRendersLatest(t *testing.T) {
	view := &mockCaptureView{}
	p := NewCapturePresenter(&model.PreviewModel{}, view, 10)

	frame := image.NewRGBA(image.Rect(0, 0, 1920, 1080))
	roi := image.NewGray(image.Rect(0, 0, 70, 19))
	p.ShowFrame(frame, roi, nil)
	p.ShowFrame(frame, roi, nil)

	// recycled frame contents must not reach the view
	frame.Pix[0] = 0xff
	roi.Pix[0] = 0xff

	p.Tick(time.Now())
	if view.captures != 1 || view.rois != 1 || view.ocrs != 0 {
		t.Fatalf("unexpected view calls: %+v", view)
	}
	if b := view.lastROI.Bounds(); b.Dx() != 700 || b.Dy() != 190 {
		t.Fatalf("roi not magnified: %v", b)
	}
	if r, _, _, _ := view.lastROI.At(0, 0).RGBA(); r != 0 {
		t.Fatal("view received shared pixels")
	}

	p.Tick(time.Now())
	if view.captures != 1 || p.Shown() != 1 {
		t.Fatalf("empty mailbox rendered again: captures=%d shown=%d", view.captures, p.Shown())
	}
}

func TestCapturePresenter_NilSafe(t *testing.T) {
	var p *CapturePresenter
	p.ShowFrame(nil, nil, nil)
	p.Tick(time.Now())
	if p.Shown() != 0 {
		t.Fatal("nil presenter reported frames")
	}
}

type mockSessionView struct {
	elapsed time.Duration
	saved   uint64
	calls   int
}

func (v *mockSessionView) SetElapsed(d time.Duration) { v.elapsed = d }
func (v *mockSessionView) SetCounts(saved, _, _, _ uint64) {
	v.saved = saved
	v.calls++
}

type fixedStats capture.CaptureStats

func (s fixedStats) Stats() capture.CaptureStats { return capture.CaptureStats(s) }

func TestSessionPresenter_Tick(t *testing.T) {
	view := &mockSessionView{}
	running := true
	p := NewSessionPresenter(model.NewSessionModel(), fixedStats{Saved: 7}, func() bool { return running }, view)

	base := time.Unix(100, 0)
	p.Tick(base)
	p.Tick(base.Add(3 * time.Second))
	if view.elapsed != 3*time.Second || view.saved != 7 || view.calls != 2 {
		t.Fatalf("unexpected view state: %+v", view)
	}
	running = false
	p.Tick(base.Add(4 * time.Second))
	p.Tick(base.Add(10 * time.Second))
	if view.elapsed != 4*time.Second {
		t.Fatalf("elapsed should freeze after stop, got %v", view.elapsed)
	}
}

type mockLabelView struct {
	names []string
	msg   string
}

func (v *mockLabelView) ShowSample(name string, _ image.Image) { v.names = append(v.names, name) }
func (v *mockLabelView) SetMessage(msg string)                 { v.msg = msg }

func TestLabelPresenter_KeysAndOutput(t *testing.T) {
	view := &mockLabelView{}
	done := 0
	p := NewLabelPresenter(view, func() { done++ })

	p.OnKey(labeling.KeyDigit(4))
	k, err := p.NextKey(context.Background())
	if err != nil || k != labeling.KeyDigit(4) {
		t.Fatalf("unexpected key %v err %v", k, err)
	}

	p.Present("a.png", image.NewGray(image.Rect(0, 0, 1, 1)))
	p.Message("Digits so far: 4")
	p.Message("Saved as: 4m-00.png")
	p.Tick(time.Now())
	if len(view.names) != 1 || view.msg != "Saved as: 4m-00.png" {
		t.Fatalf("unexpected view state: %+v", view)
	}

	p.Finish()
	p.Tick(time.Now())
	p.Tick(time.Now())
	if done != 1 {
		t.Fatalf("onDone ran %d times", done)
	}
}

func TestLabelPresenter_NextKeyCancelled(t *testing.T) {
	p := NewLabelPresenter(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.NextKey(ctx); err == nil {
		t.Fatal("expected context error")
	}
}

func TestLabelPresenter_DropsKeysWhenFull(t *testing.T) {
	p := NewLabelPresenter(nil, nil)
	for i := 0; i < keyBuffer+5; i++ {
		p.OnKey(labeling.KeyEnter)
	}
	if len(p.keys) != keyBuffer {
		t.Fatalf("expected %d buffered keys, got %d", keyBuffer, len(p.keys))
	}
}

func TestLoop_TicksAndReschedules(t *testing.T) {
	scheduled := 0
	view := &mockLabelView{}
	label := NewLabelPresenter(view, nil)
	label.Message("hello")
	l := NewLoop(nil, nil, label, func() { scheduled++ })
	l.Tick()
	if scheduled != 1 || view.msg != "hello" {
		t.Fatalf("loop did not tick: scheduled=%d msg=%q", scheduled, view.msg)
	}
	var nilLoop *Loop
	nilLoop.Tick()
}
