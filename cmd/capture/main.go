// Command capture grabs board images from a live machine camera into a
// directory usable as intrinsic calibration data.
//
//	capture -host H -camera NAME -out DIR [-count N] [-interval-ms MS]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.viam.com/rdk/components/camera"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/rimage"
	"go.viam.com/rdk/robot"
	goutils "go.viam.com/utils"

	"github.com/erh/camcal"
	"github.com/erh/camcal/imgutils"
)

func main() {
	err := realMain()
	if err != nil {
		panic(err)
	}
}

func realMain() error {
	logger := logging.NewLogger("capture")
	ctx := context.Background()

	host := flag.String("host", "", "hostname; leave empty to use machine credentials from the environment")
	cameraName := flag.String("camera", "", "camera to use")
	out := flag.String("out", "", "output directory")
	count := flag.Int("count", 20, "number of frames to capture")
	intervalMs := flag.Int("interval-ms", 2000, "pause between captures, to reposition the board")

	flag.Parse()

	if *cameraName == "" {
		return fmt.Errorf("need a camera")
	}
	if *out == "" {
		return fmt.Errorf("need an 'out'")
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		return err
	}

	var machine robot.Robot
	var err error
	if *host == "" {
		machine, err = camcal.ConnectToMachineFromEnv(ctx, logger)
	} else {
		machine, err = camcal.ConnectToHostFromCLIToken(ctx, *host, logger)
	}
	if err != nil {
		return err
	}
	defer machine.Close(ctx)

	myCamera, err := camera.FromRobot(machine, *cameraName)
	if err != nil {
		return err
	}

	saved := 0
	for i := 0; i < *count; i++ {
		imgs, _, err := myCamera.Images(ctx, nil, nil)
		if err != nil {
			return err
		}

		for _, ni := range imgs {
			theImage, err := ni.Image(ctx)
			if err != nil {
				return err
			}
			if !imgutils.WellExposed(theImage) {
				logger.Warnf("skipping frame %d from %s: bad exposure", i, ni.SourceName)
				continue
			}
			fn := filepath.Join(*out, fmt.Sprintf("%s-%04d.png", ni.SourceName, i))
			if err := rimage.WriteImageToFile(fn, theImage); err != nil {
				return fmt.Errorf("cannot write (%s): %w", fn, err)
			}
			logger.Infof("wrote %s", fn)
			saved++
		}

		if !goutils.SelectContextOrWait(ctx, time.Duration(*intervalMs)*time.Millisecond) {
			break
		}
	}

	logger.Infof("saved %d frames to %s", saved, *out)
	return nil
}
