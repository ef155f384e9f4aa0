package calib

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"
)

func testRecord() *Record {
	return &Record{
		CameraMatrix:           EncodeMatrix(testCameraMatrix()),
		DistortionCoefficients: MatrixBlock{Rows: 1, Cols: 5, Data: []float64{0.1, -0.05, 0.001, -0.002, 0.03}},
	}
}

func TestRecordRoundTrip(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "camera60.yaml")

	rec := testRecord()
	test.That(t, rec.Write(fn), test.ShouldBeNil)

	// intrinsic-only record has no projection block
	raw, err := os.ReadFile(fn)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, strings.Contains(string(raw), "projection_matrix"), test.ShouldBeFalse)
	test.That(t, strings.Contains(string(raw), "camera_matrix"), test.ShouldBeTrue)

	back, err := ReadRecord(fn)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, back, test.ShouldResemble, rec)

	camera, err := back.CameraMat()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, mat.Equal(camera, testCameraMatrix()), test.ShouldBeTrue)

	d, err := back.Distortion()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, d.RadialK1, test.ShouldEqual, 0.1)
	test.That(t, d.RadialK2, test.ShouldEqual, -0.05)
	test.That(t, d.TangentialP1, test.ShouldEqual, 0.001)
	test.That(t, d.TangentialP2, test.ShouldEqual, -0.002)
	test.That(t, d.RadialK3, test.ShouldEqual, 0.03)
}

func TestRecordWithProjection(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "camera60.yaml")

	rec := testRecord()
	proj := EncodeMatrix(mat.NewDense(4, 4, []float64{
		1, 0, 0, 4,
		0, 1, 0, 5,
		0, 0, 1, 6,
		0, 0, 0, 1,
	}))
	rec.ProjectionMatrix = &proj
	test.That(t, rec.Write(fn), test.ShouldBeNil)

	back, err := ReadRecord(fn)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, back.ProjectionMatrix, test.ShouldNotBeNil)
	test.That(t, back.ProjectionMatrix.Rows, test.ShouldEqual, 4)
	test.That(t, back.ProjectionMatrix.Cols, test.ShouldEqual, 4)
	test.That(t, back.CameraMatrix, test.ShouldResemble, rec.CameraMatrix)
}

func TestRecordOverwrite(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "camera60.yaml")
	test.That(t, os.WriteFile(fn, []byte("stale: true\n"), 0o644), test.ShouldBeNil)

	rec := testRecord()
	test.That(t, rec.Write(fn), test.ShouldBeNil)

	back, err := ReadRecord(fn)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, back, test.ShouldResemble, rec)

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(fn))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(entries), test.ShouldEqual, 1)
}

func TestReadRecordErrors(t *testing.T) {
	_, err := ReadRecord(filepath.Join(t.TempDir(), "missing.yaml"))
	test.That(t, err, test.ShouldNotBeNil)

	fn := filepath.Join(t.TempDir(), "bad.yaml")
	test.That(t, os.WriteFile(fn, []byte("camera_matrix: ["), 0o644), test.ShouldBeNil)
	_, err = ReadRecord(fn)
	test.That(t, err, test.ShouldNotBeNil)

	// well-formed YAML, wrong shape
	fn2 := filepath.Join(t.TempDir(), "shape.yaml")
	bad := &Record{
		CameraMatrix:           MatrixBlock{Rows: 3, Cols: 3, Data: make([]float64, 8)},
		DistortionCoefficients: MatrixBlock{Rows: 1, Cols: 5, Data: make([]float64, 5)},
	}
	test.That(t, bad.Write(fn2), test.ShouldBeNil)
	back, err := ReadRecord(fn2)
	test.That(t, err, test.ShouldBeNil)
	_, err = back.CameraMat()
	test.That(t, err, test.ShouldNotBeNil)
}
