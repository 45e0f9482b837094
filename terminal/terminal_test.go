package terminal

import (
	"bytes"
	"context"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/distance-collector/domain/labeling"
)

func TestKeyFromByte(t *testing.T) {
	tests := []struct {
		in   byte
		want labeling.Key
	}{
		{'0', labeling.KeyDigit(0)},
		{'9', labeling.KeyDigit(9)},
		{'\r', labeling.KeyEnter},
		{'\n', labeling.KeyEnter},
		{0x7f, labeling.KeyBackspace},
		{0x08, labeling.KeyBackspace},
		{'s', labeling.KeySkip},
		{'q', labeling.KeyQuit},
		{0x03, labeling.KeyQuit},
		{'x', labeling.KeyOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KeyFromByte(tt.in), "byte %#x", tt.in)
	}
}

func TestKeys_NextKey(t *testing.T) {
	k := NewKeys(strings.NewReader("4\x7f\r"))
	ctx := context.Background()
	for _, want := range []labeling.Key{labeling.KeyDigit(4), labeling.KeyBackspace, labeling.KeyEnter} {
		got, err := k.NextKey(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := k.NextKey(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestKeys_Cancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewKeys(pr).NextKey(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPresenter_WritesPreview(t *testing.T) {
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "preview.png")
	p := NewPresenter(&out, path)
	p.Present("abc.png", imaging.New(20, 10, color.White))
	p.Message("Digits so far: 1")

	assert.Contains(t, out.String(), "Labeling: abc.png")
	assert.Contains(t, out.String(), "Digits so far: 1\r\n")
	_, err := os.Stat(path)
	assert.NoError(t, err)
}
