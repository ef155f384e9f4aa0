package calib

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"go.viam.com/rdk/rimage/transform"
	"gonum.org/v1/gonum/mat"
)

// BoardPose is a single board observation relative to the camera:
// an axis-angle rotation vector and a translation vector, both in the
// camera frame.
type BoardPose struct {
	Rotation    r3.Vector
	Translation r3.Vector
}

// ProjectPoints maps 3D points in the board frame into image pixel
// coordinates using the same forward model the calibration solver
// assumes: rigid transform into the camera frame, perspective divide,
// lens distortion on the normalized plane, then the camera matrix.
// Points with no depth project to (-1, -1).
func ProjectPoints(pts []r3.Vector, pose BoardPose, camera *mat.Dense, dist *transform.BrownConrady) []r2.Point {
	rot := RotationMatrixFromVector(pose.Rotation)

	out := make([]r2.Point, 0, len(pts))
	for _, p := range pts {
		x := rot.At(0, 0)*p.X + rot.At(0, 1)*p.Y + rot.At(0, 2)*p.Z + pose.Translation.X
		y := rot.At(1, 0)*p.X + rot.At(1, 1)*p.Y + rot.At(1, 2)*p.Z + pose.Translation.Y
		z := rot.At(2, 0)*p.X + rot.At(2, 1)*p.Y + rot.At(2, 2)*p.Z + pose.Translation.Z

		if z == 0 {
			out = append(out, r2.Point{X: -1, Y: -1})
			continue
		}

		xn := x / z
		yn := y / z
		if dist != nil {
			xn, yn = dist.Transform(xn, yn)
		}

		u := camera.At(0, 0)*xn + camera.At(0, 1)*yn + camera.At(0, 2)
		v := camera.At(1, 0)*xn + camera.At(1, 1)*yn + camera.At(1, 2)
		out = append(out, r2.Point{X: u, Y: v})
	}
	return out
}
