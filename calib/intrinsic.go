package calib

import (
	"context"

	"github.com/pkg/errors"
	"go.viam.com/rdk/logging"
)

// CalibrateIntrinsics drives the board handler's multi-view solve over
// a directory of board images and persists the resulting camera matrix
// and distortion coefficients to outPath. The reprojection error is not
// persisted, only reported through the logger.
func CalibrateIntrinsics(
	ctx context.Context,
	handler BoardHandler,
	imageDir, outPath string,
	visualize bool,
	logger logging.Logger,
) (*Record, error) {
	res, err := handler.Calibrate(ctx, imageDir, visualize)
	if err != nil {
		return nil, err
	}
	if res.UsableViews == 0 {
		return nil, errors.Wrapf(ErrInsufficientViews, "directory %s", imageDir)
	}
	if len(res.DistortionCoefficients) != 5 {
		return nil, errors.Errorf("expected 5 distortion coefficients, got %d", len(res.DistortionCoefficients))
	}

	rec := &Record{
		CameraMatrix: EncodeMatrix(res.CameraMatrix),
		DistortionCoefficients: MatrixBlock{
			Rows: 1,
			Cols: 5,
			Data: res.DistortionCoefficients,
		},
	}
	if err := rec.Write(outPath); err != nil {
		return nil, err
	}

	logger.Infof("intrinsic calibration from %d views, reprojection error %.4f px, wrote %s",
		res.UsableViews, res.ReprojectionError, outPath)
	return rec, nil
}
