// Command calibrate computes intrinsic or extrinsic calibration
// parameters for one rig camera from Charuco board images.
//
// Usage (flags come before the action):
//
//	calibrate -calibration_data DIR -intrinsic_calibration_filename F intrinsic_calibration
//	calibrate -intrinsic_calibration_filename F -extrinsic_calibration_filename G -image_view_filename IMG extrinsic_calibration
package main

import (
	"context"
	"flag"
	"fmt"

	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/rimage"
	"go.viam.com/rdk/rimage/transform"
	"gonum.org/v1/gonum/mat"

	"github.com/erh/camcal/board"
	"github.com/erh/camcal/calib"
	"github.com/erh/camcal/overlay"
	"github.com/erh/camcal/view"
)

func main() {
	err := realMain()
	if err != nil {
		panic(err)
	}
}

func realMain() error {
	logger := logging.NewLogger("calibrate")
	ctx := context.Background()

	intrinsicFile := flag.String("intrinsic_calibration_filename", "", "file for saving or loading intrinsic calibration data")
	calibrationData := flag.String("calibration_data", "", "directory of board images (intrinsic_calibration only)")
	extrinsicFile := flag.String("extrinsic_calibration_filename", "", "file for saving extrinsic calibration data")
	imageView := flag.String("image_view_filename", "", "image of the board centered at (0, 0, 0)")
	detector := flag.String("detector", "charuco-detector", "board detector binary")
	visualize := flag.Bool("visualize", false, "ask the detector to show its detections")
	imposeShape := flag.Bool("impose_shape", true, "overlay the verification cube after extrinsic calibration")
	squareSize := flag.Float64("square_size", 0.04, "board square edge length in meters")
	out := flag.String("out", "verify", "directory for verification frames")

	flag.Parse()

	handler := &board.ExternalHandler{Detector: *detector}

	switch flag.Arg(0) {
	case "intrinsic_calibration":
		if *intrinsicFile == "" {
			return fmt.Errorf("intrinsic_calibration_filename not specified")
		}
		if *calibrationData == "" {
			return fmt.Errorf("calibration_data not specified")
		}
		_, err := calib.CalibrateIntrinsics(ctx, handler, *calibrationData, *intrinsicFile, *visualize, logger)
		return err

	case "extrinsic_calibration":
		if *intrinsicFile == "" {
			return fmt.Errorf("intrinsic_calibration_filename not specified")
		}
		if *extrinsicFile == "" {
			return fmt.Errorf("extrinsic_calibration_filename not specified")
		}
		if *imageView == "" {
			return fmt.Errorf("image_view_filename not specified")
		}

		var verify calib.VerifyFunc
		if *imposeShape {
			window, err := view.NewDirWindow(*out)
			if err != nil {
				return err
			}
			defer window.Close()

			verify = func(ctx context.Context, pose calib.BoardPose, camera *mat.Dense, dist *transform.BrownConrady) error {
				img, err := rimage.ReadImageFromFile(*imageView)
				if err != nil {
					return err
				}
				annotated := overlay.Render(img, overlay.Cube(*squareSize), pose, camera, dist)
				if err := window.Display("Imposed Cube", annotated); err != nil {
					return err
				}
				logger.Infof("verification frame written to %s", window.LastFrame("Imposed Cube"))
				return window.AwaitDismiss(ctx)
			}
		}

		_, err := calib.CalibrateExtrinsics(ctx, handler, *intrinsicFile, *imageView, *extrinsicFile, verify, logger)
		return err
	}

	return fmt.Errorf("invalid action [%s], expected intrinsic_calibration or extrinsic_calibration", flag.Arg(0))
}
