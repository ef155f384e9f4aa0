// Package board bridges to an external fiducial-board detector. The
// detector does the actual corner detection and calibration solving;
// this package only speaks its command-line and YAML contract.
package board

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/erh/camcal/calib"
)

// ExternalHandler runs a detector binary once per call. The binary is
// expected to support two subcommands:
//
//	<detector> calibrate -dir DIR [-visualize]
//	<detector> detect -image IMG -intrinsics FILE [-visualize]
//
// and to print a YAML document on stdout (see calibrateOutput and
// detectOutput for the shapes).
type ExternalHandler struct {
	// Detector is the path to the detector binary.
	Detector string
}

type calibrateOutput struct {
	CameraMatrix           calib.MatrixBlock `yaml:"camera_matrix"`
	DistortionCoefficients calib.MatrixBlock `yaml:"distortion_coefficients"`
	ReprojectionError      float64           `yaml:"reprojection_error"`
	UsableViews            int               `yaml:"usable_views"`
}

type detectOutput struct {
	Detected          bool      `yaml:"detected"`
	RotationVector    []float64 `yaml:"rotation_vector,flow"`
	TranslationVector []float64 `yaml:"translation_vector,flow"`
}

// Calibrate runs the detector's multi-view solve over imageDir.
func (h *ExternalHandler) Calibrate(ctx context.Context, imageDir string, visualize bool) (calib.BoardCalibration, error) {
	args := []string{"calibrate", "-dir", imageDir}
	if visualize {
		args = append(args, "-visualize")
	}
	out, err := h.run(ctx, args)
	if err != nil {
		return calib.BoardCalibration{}, err
	}
	return parseCalibrateOutput(out)
}

// DetectBoardInImage runs a single-view pose solve on imagePath. The
// intrinsics are handed to the detector through a temp file in the
// calibration record format.
func (h *ExternalHandler) DetectBoardInImage(
	ctx context.Context,
	imagePath string,
	camera *mat.Dense,
	dist []float64,
	visualize bool,
) (calib.BoardPose, error) {
	rec := &calib.Record{
		CameraMatrix:           calib.EncodeMatrix(camera),
		DistortionCoefficients: calib.MatrixBlock{Rows: 1, Cols: len(dist), Data: dist},
	}
	tmpDir, err := os.MkdirTemp("", "camcal-detect-")
	if err != nil {
		return calib.BoardPose{}, errors.Wrap(err, "cannot stage intrinsics for detector")
	}
	defer os.RemoveAll(tmpDir)

	intrinsicsPath := filepath.Join(tmpDir, "intrinsics.yaml")
	if err := rec.Write(intrinsicsPath); err != nil {
		return calib.BoardPose{}, err
	}

	args := []string{"detect", "-image", imagePath, "-intrinsics", intrinsicsPath}
	if visualize {
		args = append(args, "-visualize")
	}
	out, err := h.run(ctx, args)
	if err != nil {
		return calib.BoardPose{}, err
	}
	return parseDetectOutput(out)
}

func (h *ExternalHandler) run(ctx context.Context, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, h.Detector, args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, errors.Wrapf(err, "detector %s failed: %s", h.Detector, string(exitErr.Stderr))
		}
		return nil, errors.Wrapf(err, "detector %s failed", h.Detector)
	}
	return out, nil
}

func parseCalibrateOutput(out []byte) (calib.BoardCalibration, error) {
	parsed := calibrateOutput{}
	if err := yaml.Unmarshal(out, &parsed); err != nil {
		return calib.BoardCalibration{}, errors.Wrap(err, "malformed detector calibrate output")
	}
	if parsed.UsableViews == 0 {
		return calib.BoardCalibration{}, calib.ErrInsufficientViews
	}
	camera, err := parsed.CameraMatrix.Decode()
	if err != nil {
		return calib.BoardCalibration{}, err
	}
	return calib.BoardCalibration{
		CameraMatrix:           camera,
		DistortionCoefficients: parsed.DistortionCoefficients.Data,
		ReprojectionError:      parsed.ReprojectionError,
		UsableViews:            parsed.UsableViews,
	}, nil
}

func parseDetectOutput(out []byte) (calib.BoardPose, error) {
	parsed := detectOutput{}
	if err := yaml.Unmarshal(out, &parsed); err != nil {
		return calib.BoardPose{}, errors.Wrap(err, "malformed detector detect output")
	}
	if !parsed.Detected {
		return calib.BoardPose{}, calib.ErrBoardNotDetected
	}
	if len(parsed.RotationVector) != 3 || len(parsed.TranslationVector) != 3 {
		return calib.BoardPose{}, errors.Errorf("detector pose vectors must have 3 components, got %d and %d",
			len(parsed.RotationVector), len(parsed.TranslationVector))
	}
	return calib.BoardPose{
		Rotation:    r3.Vector{X: parsed.RotationVector[0], Y: parsed.RotationVector[1], Z: parsed.RotationVector[2]},
		Translation: r3.Vector{X: parsed.TranslationVector[0], Y: parsed.TranslationVector[1], Z: parsed.TranslationVector[2]},
	}, nil
}
