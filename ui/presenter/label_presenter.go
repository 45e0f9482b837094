package presenter

import (
	"context"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soocke/distance-collector/domain/labeling"
)

const keyBuffer = 16

// LabelView shows the sample under review. Called on the Tk thread only.
type LabelView interface {
	ShowSample(name string, img image.Image)
	SetMessage(msg string)
}

type pendingSample struct {
	name string
	img  image.Image
}

// LabelPresenter bridges the labeling session goroutine and the Tk thread.
// It implements labeling.KeySource and labeling.Presenter for the session;
// OnKey and Tick are called from Tk.
type LabelPresenter struct {
	view   LabelView
	keys   chan labeling.Key
	onDone func()

	mu       sync.Mutex
	sample   *pendingSample
	messages []string

	done     atomic.Bool
	doneOnce sync.Once
}

// NewLabelPresenter calls onDone on the Tk thread after Finish.
func NewLabelPresenter(view LabelView, onDone func()) *LabelPresenter {
	return &LabelPresenter{view: view, keys: make(chan labeling.Key, keyBuffer), onDone: onDone}
}

// OnKey queues a key press. Keys beyond the buffer are dropped.
func (p *LabelPresenter) OnKey(k labeling.Key) {
	select {
	case p.keys <- k:
	default:
	}
}

// NextKey implements labeling.KeySource.
func (p *LabelPresenter) NextKey(ctx context.Context) (labeling.Key, error) {
	select {
	case <-ctx.Done():
		return labeling.KeyOther, ctx.Err()
	case k := <-p.keys:
		return k, nil
	}
}

// Present implements labeling.Presenter. Only the newest sample is kept.
func (p *LabelPresenter) Present(name string, img image.Image) {
	p.mu.Lock()
	p.sample = &pendingSample{name: name, img: img}
	p.mu.Unlock()
}

// Message implements labeling.Presenter.
func (p *LabelPresenter) Message(msg string) {
	p.mu.Lock()
	p.messages = append(p.messages, msg)
	p.mu.Unlock()
}

// Finish marks the session as over; the next Tick runs onDone.
func (p *LabelPresenter) Finish() { p.done.Store(true) }

// Tick flushes queued output to the view.
func (p *LabelPresenter) Tick(now time.Time) {
	if p == nil {
		return
	}
	p.mu.Lock()
	s := p.sample
	msgs := p.messages
	p.sample, p.messages = nil, nil
	p.mu.Unlock()

	if p.view != nil {
		if s != nil {
			p.view.ShowSample(s.name, s.img)
		}
		if len(msgs) > 0 {
			p.view.SetMessage(msgs[len(msgs)-1])
		}
	}
	if p.done.Load() && p.onDone != nil {
		p.doneOnce.Do(p.onDone)
	}
}
