package view

import (
	"fmt"
	"image"

	"github.com/soocke/distance-collector/domain/labeling"
	"github.com/soocke/distance-collector/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// LabelWindow shows the sample being labeled with its name and the latest
// feedback line, and turns key presses into labeler keys.
type LabelWindow interface {
	ShowSample(name string, img image.Image)
	SetMessage(msg string)
}

type labelWindow struct {
	nameLabel   *LabelWidget
	sampleLabel *LabelWidget
	msgLabel    *LabelWidget
	photo       *Img
}

// keyBindings maps Tk event patterns to labeler keys.
func keyBindings() map[string]labeling.Key {
	m := map[string]labeling.Key{
		"<Return>":    labeling.KeyEnter,
		"<KP_Enter>":  labeling.KeyEnter,
		"<BackSpace>": labeling.KeyBackspace,
		"<Key-s>":     labeling.KeySkip,
		"<Key-q>":     labeling.KeyQuit,
	}
	for d := 0; d <= 9; d++ {
		m[fmt.Sprintf("<Key-%d>", d)] = labeling.KeyDigit(d)
		m[fmt.Sprintf("<KP_%d>", d)] = labeling.KeyDigit(d)
	}
	return m
}

// NewLabelWindow builds the labeling layout starting at row and binds keys
// on the root window to onKey.
func NewLabelWindow(row int, onKey func(labeling.Key)) LabelWindow {
	w := &labelWindow{}
	w.photo = NewPhoto(Data(placeholderPNG()))
	w.nameLabel = Label(Txt("Sample: <none>"), Borderwidth(1), Relief("ridge"))
	w.sampleLabel = Label(Image(w.photo), Borderwidth(1), Relief("sunken"))
	w.msgLabel = Label(Txt("Type 1-5 digits (0-9), then press Enter. 's' skips, 'q' quits."), Width(60))
	Grid(w.nameLabel, Row(row), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	Grid(w.sampleLabel, Row(row+1), Column(0), Padx("0.4m"), Pady("0.4m"))
	Grid(w.msgLabel, Row(row+2), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	for pattern, key := range keyBindings() {
		k := key
		Bind(App, pattern, Command(func() { onKey(k) }))
	}
	return w
}

// ShowSample expects img already magnified.
func (w *labelWindow) ShowSample(name string, img image.Image) {
	if w == nil || w.sampleLabel == nil || img == nil {
		return
	}
	if w.photo != nil {
		w.photo.Delete()
	}
	w.photo = NewPhoto(Data(images.EncodePNG(img)))
	w.sampleLabel.Configure(Image(w.photo))
	w.nameLabel.Configure(Txt("Sample: " + name))
}

func (w *labelWindow) SetMessage(msg string) {
	if w == nil || w.msgLabel == nil {
		return
	}
	w.msgLabel.Configure(Txt(msg))
}
