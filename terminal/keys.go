package terminal

import (
	"bufio"
	"context"
	"io"
	"sync"

	"github.com/soocke/distance-collector/domain/labeling"
)

const (
	byteCtrlC     = 0x03
	byteBackspace = 0x08
	byteDelete    = 0x7f
)

// KeyFromByte maps a raw-mode byte to a labeler key.
func KeyFromByte(b byte) labeling.Key {
	switch {
	case b >= '0' && b <= '9':
		return labeling.Key(b)
	case b == '\r' || b == '\n':
		return labeling.KeyEnter
	case b == byteBackspace || b == byteDelete:
		return labeling.KeyBackspace
	case b == 's':
		return labeling.KeySkip
	case b == 'q' || b == byteCtrlC:
		return labeling.KeyQuit
	default:
		return labeling.KeyOther
	}
}

type readResult struct {
	b   byte
	err error
}

// Keys reads labeler keys from a byte stream, usually a raw-mode stdin.
type Keys struct {
	r     *bufio.Reader
	once  sync.Once
	bytes chan readResult
}

// NewKeys wraps r.
func NewKeys(r io.Reader) *Keys {
	return &Keys{r: bufio.NewReader(r), bytes: make(chan readResult)}
}

// NextKey blocks for the next keystroke or until ctx is done. The reader
// goroutine outlives a cancelled call and hands its byte to the next one.
func (k *Keys) NextKey(ctx context.Context) (labeling.Key, error) {
	k.once.Do(func() { go k.pump() })
	select {
	case <-ctx.Done():
		return labeling.KeyOther, ctx.Err()
	case res := <-k.bytes:
		if res.err != nil {
			return labeling.KeyOther, res.err
		}
		return KeyFromByte(res.b), nil
	}
}

func (k *Keys) pump() {
	for {
		b, err := k.r.ReadByte()
		k.bytes <- readResult{b, err}
		if err != nil {
			return
		}
	}
}
