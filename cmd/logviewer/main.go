// Command logviewer plays back a recorded multi-camera log for visual
// inspection.
//
//	logviewer [-out DIR] LOGDIR
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.viam.com/rdk/logging"

	"github.com/erh/camcal/replay"
	"github.com/erh/camcal/view"
)

func main() {
	err := realMain()
	if err != nil {
		panic(err)
	}
}

func realMain() error {
	logger := logging.NewLogger("logviewer")

	out := flag.String("out", "replay", "directory for replayed frames")
	flag.Parse()

	path := flag.Arg(0)
	if path == "" {
		return fmt.Errorf("need a log path")
	}

	// interrupt stops playback early
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	l, err := replay.OpenLog(path)
	if err != nil {
		return err
	}

	window, err := view.NewDirWindow(*out)
	if err != nil {
		return err
	}
	defer window.Close()

	shown, err := replay.Play(ctx, l, window, logger)
	if err != nil {
		return err
	}
	logger.Infof("displayed %d of %d frame sets", shown, len(l.Frames))
	return nil
}
