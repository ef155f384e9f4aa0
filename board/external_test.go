package board

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"

	"github.com/erh/camcal/calib"
)

const calibrateYAML = `
camera_matrix:
  rows: 3
  cols: 3
  data: [600, 0, 320, 0, 600, 240, 0, 0, 1]
distortion_coefficients:
  rows: 1
  cols: 5
  data: [0.1, -0.05, 0.001, -0.002, 0.03]
reprojection_error: 0.42
usable_views: 12
`

func TestParseCalibrateOutput(t *testing.T) {
	res, err := parseCalibrateOutput([]byte(calibrateYAML))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.UsableViews, test.ShouldEqual, 12)
	test.That(t, res.ReprojectionError, test.ShouldAlmostEqual, 0.42)
	test.That(t, res.CameraMatrix.At(0, 0), test.ShouldEqual, 600)
	test.That(t, res.CameraMatrix.At(1, 2), test.ShouldEqual, 240)
	test.That(t, res.DistortionCoefficients, test.ShouldResemble, []float64{0.1, -0.05, 0.001, -0.002, 0.03})
}

func TestParseCalibrateNoViews(t *testing.T) {
	_, err := parseCalibrateOutput([]byte("usable_views: 0\n"))
	test.That(t, errors.Is(err, calib.ErrInsufficientViews), test.ShouldBeTrue)
}

func TestParseDetectOutput(t *testing.T) {
	pose, err := parseDetectOutput([]byte(`
detected: true
rotation_vector: [0.1, -0.2, 0.3]
translation_vector: [0.01, 0.02, 0.55]
`))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pose.Rotation.X, test.ShouldEqual, 0.1)
	test.That(t, pose.Rotation.Z, test.ShouldEqual, 0.3)
	test.That(t, pose.Translation.Z, test.ShouldEqual, 0.55)
}

func TestParseDetectNotDetected(t *testing.T) {
	_, err := parseDetectOutput([]byte("detected: false\n"))
	test.That(t, errors.Is(err, calib.ErrBoardNotDetected), test.ShouldBeTrue)

	_, err = parseDetectOutput([]byte("detected: true\nrotation_vector: [1, 2]\ntranslation_vector: [1, 2, 3]\n"))
	test.That(t, err, test.ShouldNotBeNil)
}

// fake detector script standing in for the real binary
func writeFakeDetector(t *testing.T, stdout string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "fake-detector")
	script := "#!/bin/sh\ncat <<'EOF'\n" + stdout + "\nEOF\n"
	test.That(t, os.WriteFile(fn, []byte(script), 0o755), test.ShouldBeNil)
	return fn
}

func TestExternalHandlerCalibrate(t *testing.T) {
	h := &ExternalHandler{Detector: writeFakeDetector(t, calibrateYAML)}
	res, err := h.Calibrate(context.Background(), "imgs", false)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.UsableViews, test.ShouldEqual, 12)
}

func TestExternalHandlerDetect(t *testing.T) {
	h := &ExternalHandler{Detector: writeFakeDetector(t, "detected: true\nrotation_vector: [0, 0, 0]\ntranslation_vector: [0, 0, 0.5]\n")}
	camera := mat.NewDense(3, 3, []float64{600, 0, 320, 0, 600, 240, 0, 0, 1})
	pose, err := h.DetectBoardInImage(context.Background(), "board.png", camera, []float64{0, 0, 0, 0, 0}, false)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pose.Translation.Z, test.ShouldEqual, 0.5)
}

func TestExternalHandlerMissingBinary(t *testing.T) {
	h := &ExternalHandler{Detector: filepath.Join(t.TempDir(), "nope")}
	_, err := h.Calibrate(context.Background(), "imgs", false)
	test.That(t, err, test.ShouldNotBeNil)
}
