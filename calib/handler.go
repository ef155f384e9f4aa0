package calib

import (
	"context"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrBoardNotDetected means the board handler could not locate the
// fiducial board in an image.
var ErrBoardNotDetected = errors.New("fiducial board not detected")

// ErrInsufficientViews means the board handler found zero usable board
// detections across an image directory.
var ErrInsufficientViews = errors.New("no usable board detections")

// BoardCalibration is what a board handler's multi-view solve returns.
type BoardCalibration struct {
	CameraMatrix *mat.Dense
	// DistortionCoefficients in solver order (k1, k2, p1, p2, k3).
	DistortionCoefficients []float64
	// ReprojectionError is the mean residual in pixels, the primary
	// calibration quality signal.
	ReprojectionError float64
	// UsableViews is how many images produced board detections.
	UsableViews int
}

// BoardHandler detects the fiducial board and solves calibration
// systems from the resulting 2D-3D correspondences. The detection and
// solving are treated as a black box here.
type BoardHandler interface {
	// Calibrate runs a multi-view intrinsic solve over all usable
	// images in imageDir.
	Calibrate(ctx context.Context, imageDir string, visualize bool) (BoardCalibration, error)

	// DetectBoardInImage finds the board in a single image and returns
	// its pose relative to the camera, using the given intrinsics.
	DetectBoardInImage(ctx context.Context, imagePath string, camera *mat.Dense, dist []float64, visualize bool) (BoardPose, error)
}
