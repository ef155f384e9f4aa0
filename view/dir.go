package view

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.viam.com/rdk/rimage"
)

// DirWindow is a headless Window that writes every displayed frame to a
// directory as a PNG. It never reports a dismissal, and AwaitDismiss
// returns as soon as the frame is on disk, so pipelines using it run
// without an operator.
type DirWindow struct {
	dir string

	mu   sync.Mutex
	seq  map[string]int
	last map[string]string
}

// NewDirWindow creates the output directory if needed.
func NewDirWindow(dir string) (*DirWindow, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "cannot create display directory %s", dir)
	}
	return &DirWindow{dir: dir, seq: map[string]int{}, last: map[string]string{}}, nil
}

// Display writes the frame as <name>-<seq>.png.
func (w *DirWindow) Display(name string, img image.Image) error {
	w.mu.Lock()
	n := w.seq[name]
	w.seq[name] = n + 1
	w.mu.Unlock()

	fn := filepath.Join(w.dir, fmt.Sprintf("%s-%06d.png", sanitize(name), n))
	if err := rimage.WriteImageToFile(fn, img); err != nil {
		return err
	}

	w.mu.Lock()
	w.last[name] = fn
	w.mu.Unlock()
	return nil
}

// AwaitDismiss returns immediately; a directory has no operator.
func (w *DirWindow) AwaitDismiss(ctx context.Context) error {
	return ctx.Err()
}

// Dismissed is always false for a directory sink.
func (w *DirWindow) Dismissed() bool {
	return false
}

// LastFrame returns the path of the most recent frame written for the
// given viewport name.
func (w *DirWindow) LastFrame(name string) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last[name]
}

func (w *DirWindow) Close() error {
	return nil
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
