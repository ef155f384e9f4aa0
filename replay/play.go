package replay

import (
	"context"

	"go.viam.com/rdk/logging"
	goutils "go.viam.com/utils"

	"github.com/erh/camcal/view"
)

// Play shows every frame set in order, one labeled viewport per camera,
// pacing playback to the log's inferred interval. It stops early when
// the window reports a dismissal or the context is cancelled, and
// returns how many frame sets were shown.
func Play(ctx context.Context, l *Log, window view.Window, logger logging.Logger) (int, error) {
	interval := l.Interval()
	fps := 0.0
	if interval > 0 {
		fps = 1 / interval.Seconds()
	}
	logger.Infof("loaded %d frame sets at an average interval of %v (%.1f fps)", len(l.Frames), interval, fps)

	shown := 0
	for i, fs := range l.Frames {
		if window.Dismissed() || ctx.Err() != nil {
			break
		}
		for _, c := range fs.Captures {
			img, err := l.LoadImage(c)
			if err != nil {
				return shown, err
			}
			if err := window.Display("Image Stream "+c.Camera, img); err != nil {
				return shown, err
			}
		}
		shown++
		// no pause after the final frame set
		if i == len(l.Frames)-1 {
			break
		}
		if interval > 0 && !goutils.SelectContextOrWait(ctx, interval) {
			break
		}
	}
	return shown, nil
}
