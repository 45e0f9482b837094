package view

import (
	"fmt"
	"image"
	"time"

	"github.com/soocke/distance-collector/domain/labeling"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the top-level window for either the capture preview or
// the labeler. It exposes minimal methods for presenters.
type RootView struct {
	// Subviews
	Session     SessionStats
	CapturePrev CapturePreview
	LabelWin    LabelWindow

	StatusLabel *LabelWidget
}

// UI abstracts the subset of view operations needed by presenters, enabling decoupling
// from the concrete RootView implementation.
type UI interface {
	SetStatus(text string)
	UpdateCapture(img image.Image)
	UpdateROI(img image.Image)
	UpdateOCR(img image.Image)
	SetElapsed(d time.Duration)
	SetCounts(saved, duplicates, skipped, written uint64)
	ShowSample(name string, img image.Image)
	SetMessage(msg string)
}

// NewRootView titles the main window and optionally fixes its size.
func NewRootView(title string, width, height int) *RootView {
	App.WmTitle(title)
	if width > 0 && height > 0 {
		WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	}
	return &RootView{}
}

// BuildCapture lays out the capture preview: stats row, status, preview and
// an exit button.
func (rv *RootView) BuildCapture(onExit func()) {
	if rv == nil {
		return
	}
	rv.Session = NewSessionStats(0, 0)
	rv.buildStatus(1, "Capturing")
	rv.CapturePrev = NewCapturePreview(2)
	Grid(Button(Txt("Exit"), Command(onExit)), Row(3), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.4m"))
}

// BuildLabel lays out the labeler and routes key presses to onKey.
func (rv *RootView) BuildLabel(onKey func(labeling.Key), onExit func()) {
	if rv == nil {
		return
	}
	rv.buildStatus(0, "Labeling")
	rv.LabelWin = NewLabelWindow(1, onKey)
	Grid(Button(Txt("Exit"), Command(onExit)), Row(4), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.4m"))
}

func (rv *RootView) buildStatus(row int, text string) {
	rv.StatusLabel = Label(Txt(text), Borderwidth(1), Relief("ridge"))
	Grid(rv.StatusLabel, Row(row), Column(0), Columnspan(4), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
}

// SetStatus updates the status label text.
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.StatusLabel != nil {
		rv.StatusLabel.Configure(Txt(text))
	}
}

func (rv *RootView) UpdateCapture(img image.Image) {
	if rv != nil && rv.CapturePrev != nil {
		rv.CapturePrev.UpdateCapture(img)
	}
}

func (rv *RootView) UpdateROI(img image.Image) {
	if rv != nil && rv.CapturePrev != nil {
		rv.CapturePrev.UpdateROI(img)
	}
}

func (rv *RootView) UpdateOCR(img image.Image) {
	if rv != nil && rv.CapturePrev != nil {
		rv.CapturePrev.UpdateOCR(img)
	}
}

func (rv *RootView) SetElapsed(d time.Duration) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetElapsed(d)
	}
}

func (rv *RootView) SetCounts(saved, duplicates, skipped, written uint64) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetCounts(saved, duplicates, skipped, written)
	}
}

func (rv *RootView) ShowSample(name string, img image.Image) {
	if rv != nil && rv.LabelWin != nil {
		rv.LabelWin.ShowSample(name, img)
	}
}

func (rv *RootView) SetMessage(msg string) {
	if rv != nil && rv.LabelWin != nil {
		rv.LabelWin.SetMessage(msg)
	}
}
