package calib

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.viam.com/rdk/rimage/transform"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

// Record is the calibration artifact persisted for one camera. The
// projection matrix is only present after the extrinsic stage.
type Record struct {
	CameraMatrix           MatrixBlock  `yaml:"camera_matrix"`
	DistortionCoefficients MatrixBlock  `yaml:"distortion_coefficients"`
	ProjectionMatrix       *MatrixBlock `yaml:"projection_matrix,omitempty"`
}

// ReadRecord loads a calibration record from a YAML file.
func ReadRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read calibration file %s", path)
	}
	rec := &Record{}
	if err := yaml.Unmarshal(data, rec); err != nil {
		return nil, errors.Wrapf(err, "malformed calibration file %s", path)
	}
	return rec, nil
}

// Write persists the record to path, replacing whatever is there. The
// record goes through a temp file and a rename so a crash mid-write
// cannot leave a truncated file behind.
func (r *Record) Write(path string) error {
	out, err := yaml.Marshal(r)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".calib-*.yaml")
	if err != nil {
		return errors.Wrapf(err, "cannot write calibration file %s", path)
	}
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "cannot write calibration file %s", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "cannot write calibration file %s", path)
	}
	return os.Rename(tmp.Name(), path)
}

// CameraMat returns the 3x3 camera matrix.
func (r *Record) CameraMat() (*mat.Dense, error) {
	m, err := r.CameraMatrix.Decode()
	if err != nil {
		return nil, err
	}
	if rows, cols := m.Dims(); rows != 3 || cols != 3 {
		return nil, errors.Errorf("camera matrix must be 3x3, got %dx%d", rows, cols)
	}
	return m, nil
}

// DistortionVec returns the five persisted lens distortion coefficients
// in solver order (k1, k2, p1, p2, k3).
func (r *Record) DistortionVec() ([]float64, error) {
	m, err := r.DistortionCoefficients.Decode()
	if err != nil {
		return nil, err
	}
	if rows, cols := m.Dims(); rows != 1 || cols != 5 {
		return nil, errors.Errorf("distortion coefficients must be 1x5, got %dx%d", rows, cols)
	}
	return m.RawRowView(0), nil
}

// Distortion returns the persisted coefficients as a Brown-Conrady
// model usable for forward projection.
func (r *Record) Distortion() (*transform.BrownConrady, error) {
	d, err := r.DistortionVec()
	if err != nil {
		return nil, err
	}
	return &transform.BrownConrady{
		RadialK1:     d[0],
		RadialK2:     d[1],
		TangentialP1: d[2],
		TangentialP2: d[3],
		RadialK3:     d[4],
	}, nil
}
