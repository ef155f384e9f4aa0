package calib

import (
	"context"

	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/rimage/transform"
	"gonum.org/v1/gonum/mat"
)

// VerifyFunc is invoked after a successful extrinsic solve with the
// pose and intrinsics that were used, e.g. to render a verification
// overlay for the operator. It may block on operator input.
type VerifyFunc func(ctx context.Context, pose BoardPose, camera *mat.Dense, dist *transform.BrownConrady) error

// CalibrateExtrinsics loads the intrinsic record at intrinsicPath,
// obtains a single board pose from imagePath, composes the 4x4
// board-to-camera transform, and persists the augmented record to
// outPath. The board in the image is assumed centered at the world
// origin; that is a precondition on the input, not validated here.
func CalibrateExtrinsics(
	ctx context.Context,
	handler BoardHandler,
	intrinsicPath, imagePath, outPath string,
	verify VerifyFunc,
	logger logging.Logger,
) (*Record, error) {
	rec, err := ReadRecord(intrinsicPath)
	if err != nil {
		return nil, err
	}
	camera, err := rec.CameraMat()
	if err != nil {
		return nil, err
	}
	distVec, err := rec.DistortionVec()
	if err != nil {
		return nil, err
	}

	pose, err := handler.DetectBoardInImage(ctx, imagePath, camera, distVec, false)
	if err != nil {
		return nil, err
	}

	rot := RotationMatrixFromVector(pose.Rotation)
	proj := EncodeMatrix(ComposeProjection(rot, pose.Translation))
	rec.ProjectionMatrix = &proj

	if err := rec.Write(outPath); err != nil {
		return nil, err
	}
	logger.Infof("extrinsic calibration from %s, translation (%.4f, %.4f, %.4f), wrote %s",
		imagePath, pose.Translation.X, pose.Translation.Y, pose.Translation.Z, outPath)

	if verify != nil {
		dist, err := rec.Distortion()
		if err != nil {
			return nil, err
		}
		if err := verify(ctx, pose, camera, dist); err != nil {
			return rec, err
		}
	}
	return rec, nil
}
