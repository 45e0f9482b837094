package terminal

import (
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

// Presenter shows labeler output on a terminal. When previewPath is set the
// magnified sample is also written there as PNG for an external viewer.
type Presenter struct {
	out         io.Writer
	previewPath string
}

// NewPresenter returns a Presenter writing to out.
func NewPresenter(out io.Writer, previewPath string) *Presenter {
	return &Presenter{out: out, previewPath: previewPath}
}

func (p *Presenter) Present(name string, img image.Image) {
	fmt.Fprintf(p.out, "\r\n[INFO] Labeling: %s\r\n", name)
	if p.previewPath == "" || img == nil {
		return
	}
	if err := imaging.Save(img, p.previewPath); err != nil {
		fmt.Fprintf(p.out, "[WARN] preview %s: %v\r\n", p.previewPath, err)
	}
}

func (p *Presenter) Message(msg string) {
	fmt.Fprintf(p.out, "%s\r\n", msg)
}
