// Package replay plays back logged multi-camera frame sequences for
// visual inspection. It performs no calibration.
package replay

import (
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.viam.com/rdk/rimage"
	"gopkg.in/yaml.v3"
)

// IndexName is the file listing a log's frame sets inside the log
// directory.
const IndexName = "index.yaml"

// Capture is one camera's entry in a frame set: an image file relative
// to the log directory and a capture timestamp in seconds.
type Capture struct {
	Camera    string  `yaml:"camera"`
	Image     string  `yaml:"image"`
	Timestamp float64 `yaml:"timestamp"`
}

// FrameSet holds one synchronized capture per camera.
type FrameSet struct {
	Captures []Capture `yaml:"captures"`
}

// Log is a recorded sequence of frame sets. Cameras within a frame set
// are assumed synchronized within the recorder's tolerance; camera 0 of
// each set is the reference clock.
type Log struct {
	Cameras []string   `yaml:"cameras,flow"`
	Frames  []FrameSet `yaml:"frames"`

	dir string
}

// OpenLog reads the index of a log directory.
func OpenLog(dir string) (*Log, error) {
	data, err := os.ReadFile(filepath.Join(dir, IndexName))
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read log %s", dir)
	}
	l := &Log{}
	if err := yaml.Unmarshal(data, l); err != nil {
		return nil, errors.Wrapf(err, "malformed log index in %s", dir)
	}
	if len(l.Frames) == 0 {
		return nil, errors.Errorf("log %s has no frames", dir)
	}
	known := map[string]bool{}
	for _, c := range l.Cameras {
		known[c] = true
	}
	for i, fs := range l.Frames {
		if len(fs.Captures) == 0 {
			return nil, errors.Errorf("log %s frame set %d has no captures", dir, i)
		}
		for _, c := range fs.Captures {
			if len(known) > 0 && !known[c.Camera] {
				return nil, errors.Errorf("log %s frame set %d has a capture from undeclared camera %q", dir, i, c.Camera)
			}
		}
	}
	l.dir = dir
	return l, nil
}

// Interval is the nominal playback pause between frame sets, inferred
// from the reference clock: (last - first) / count.
func (l *Log) Interval() time.Duration {
	first := l.Frames[0].Captures[0].Timestamp
	last := l.Frames[len(l.Frames)-1].Captures[0].Timestamp
	seconds := (last - first) / float64(len(l.Frames))
	if seconds <= 0 {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}

// LoadImage decodes a capture's image file.
func (l *Log) LoadImage(c Capture) (image.Image, error) {
	return rimage.ReadImageFromFile(filepath.Join(l.dir, c.Image))
}
