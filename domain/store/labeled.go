package store

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/disintegration/imaging"
)

// labelSuffix is appended to every entered digit string (metres).
const labelSuffix = "m"

var labeledNameRe = regexp.MustCompile(`^(\d+` + labelSuffix + `)-(\d+)\.png$`)

// ParseLabeledName splits "<digits>m-<seq>.png" into its label ("<digits>m")
// and sequence number.
func ParseLabeledName(name string) (label string, seq int, ok bool) {
	m := labeledNameRe.FindStringSubmatch(name)
	if m == nil {
		return "", 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return m[1], n, true
}

// LabeledName formats the file name for a label and its sequence number.
func LabeledName(label string, seq int) string {
	return fmt.Sprintf("%s-%02d.png", label, seq)
}

// Labeled is a directory of <digits>m-<seq>.png files. Sequence counters are
// per label and owned by the Labeled value.
type Labeled struct {
	dir      string
	counters map[string]int
}

// NewLabeled creates dir if needed. With resume set, counters continue after
// the highest sequence already present for each label; otherwise every label
// starts at 0 for this session.
func NewLabeled(dir string, resume bool) (*Labeled, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create %s: %w", dir, err)
	}
	l := &Labeled{dir: dir, counters: make(map[string]int)}
	if !resume {
		return l, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		label, seq, ok := ParseLabeledName(e.Name())
		if !ok {
			continue
		}
		if seq+1 > l.counters[label] {
			l.counters[label] = seq + 1
		}
	}
	return l, nil
}

// Dir returns the store directory.
func (l *Labeled) Dir() string { return l.dir }

// Next reports the sequence number the next commit for digits would use.
func (l *Labeled) Next(digits string) int { return l.counters[digits+labelSuffix] }

// Commit writes img as the next labeled sample for digits and then deletes
// src. Existing files are never overwritten: a taken name advances the
// counter. The two filesystem steps are not atomic; if the delete fails the
// labeled file is kept and the error returned.
func (l *Labeled) Commit(src string, img image.Image, digits string) (string, error) {
	label := digits + labelSuffix
	for {
		seq := l.counters[label]
		name := LabeledName(label, seq)
		path := filepath.Join(l.dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			l.counters[label] = seq + 1
			continue
		}
		if err != nil {
			return "", err
		}
		err = imaging.Encode(f, img, imaging.PNG)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
			return "", err
		}
		l.counters[label] = seq + 1
		if err := os.Remove(src); err != nil {
			return name, fmt.Errorf("store: remove %s: %w", src, err)
		}
		return name, nil
	}
}
