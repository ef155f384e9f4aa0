// Package overlay renders a projected 3D reference shape over a board
// image so an operator can eyeball whether a calibration is
// self-consistent.
package overlay

import "github.com/golang/geo/r3"

// Shape is a wireframe: 3D points in the board frame plus edges as
// index pairs into the point set.
type Shape struct {
	Points []r3.Vector
	Edges  [][2]int
}

// Cube returns the verification cube resting on the first board square,
// scaled so every edge spans one square.
func Cube(edge float64) Shape {
	pts := []r3.Vector{
		{X: 0, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1},
		{X: 0, Y: 1, Z: 1},
		{X: 1, Y: 0, Z: 1},
		{X: 1, Y: 1, Z: 1},
	}
	for i := range pts {
		pts[i] = pts[i].Mul(edge)
	}
	return Shape{
		Points: pts,
		Edges: [][2]int{
			{0, 4}, {1, 5}, {2, 6}, {3, 7},
			{0, 1}, {0, 2}, {1, 3}, {2, 3},
			{4, 5}, {4, 6}, {5, 7}, {6, 7},
		},
	}
}
