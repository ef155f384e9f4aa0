package calib

import (
	"github.com/golang/geo/r3"
	"go.viam.com/rdk/spatialmath"
	"gonum.org/v1/gonum/mat"
)

// rotations smaller than this are treated as zero
const minRotationAngle = 1e-12

// RotationMatrixFromVector converts an axis-angle rotation vector
// (direction is the axis, magnitude the angle in radians) into a 3x3
// rotation matrix. A zero vector yields the identity.
func RotationMatrixFromVector(rvec r3.Vector) *mat.Dense {
	out := mat.NewDense(3, 3, nil)

	theta := rvec.Norm()
	if theta < minRotationAngle {
		out.Set(0, 0, 1)
		out.Set(1, 1, 1)
		out.Set(2, 2, 1)
		return out
	}

	axis := rvec.Mul(1 / theta)
	rm := (&spatialmath.R4AA{Theta: theta, RX: axis.X, RY: axis.Y, RZ: axis.Z}).RotationMatrix()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.Set(i, j, rm.At(i, j))
		}
	}
	return out
}

// ComposeProjection assembles the homogeneous board-to-camera transform
// from a 3x3 rotation matrix and a translation vector. The bottom row
// is always [0 0 0 1].
func ComposeProjection(rot *mat.Dense, t r3.Vector) *mat.Dense {
	out := mat.NewDense(4, 4, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.Set(i, j, rot.At(i, j))
		}
	}
	out.Set(0, 3, t.X)
	out.Set(1, 3, t.Y)
	out.Set(2, 3, t.Z)
	out.Set(3, 3, 1)
	return out
}
