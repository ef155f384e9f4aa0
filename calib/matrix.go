// Package calib computes and persists camera calibration parameters
// for a fixed rig looking at a planar fiducial board.
package calib

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrShapeMismatch means a persisted matrix block's data length does not
// match its declared shape.
var ErrShapeMismatch = errors.New("matrix block shape does not match data length")

// MatrixBlock is the persisted form of a matrix: row-major data plus its
// shape. Blocks produced by EncodeMatrix always satisfy
// len(Data) == Rows*Cols.
type MatrixBlock struct {
	Rows int       `yaml:"rows"`
	Cols int       `yaml:"cols"`
	Data []float64 `yaml:"data,flow"`
}

// EncodeMatrix flattens a matrix into a block, row-major.
func EncodeMatrix(m mat.Matrix) MatrixBlock {
	rows, cols := m.Dims()
	data := make([]float64, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			data = append(data, m.At(r, c))
		}
	}
	return MatrixBlock{Rows: rows, Cols: cols, Data: data}
}

// Decode reshapes the block back into a dense matrix. The data is
// copied, so the returned matrix does not alias the block.
func (b MatrixBlock) Decode() (*mat.Dense, error) {
	if b.Rows <= 0 || b.Cols <= 0 || len(b.Data) != b.Rows*b.Cols {
		return nil, errors.Wrapf(ErrShapeMismatch, "%dx%d with %d values", b.Rows, b.Cols, len(b.Data))
	}
	data := make([]float64, len(b.Data))
	copy(data, b.Data)
	return mat.NewDense(b.Rows, b.Cols, data), nil
}
