package overlay

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"go.viam.com/rdk/rimage/transform"
	"gonum.org/v1/gonum/mat"

	"github.com/erh/camcal/calib"
)

var wireColor = color.RGBA{R: 0, G: 200, B: 200, A: 255}

// Render projects the shape through the given pose and intrinsics and
// draws its wireframe over img, returning the annotated image. The
// source image is not modified.
func Render(img image.Image, shape Shape, pose calib.BoardPose, camera *mat.Dense, dist *transform.BrownConrady) image.Image {
	pts := calib.ProjectPoints(shape.Points, pose, camera, dist)

	dc := gg.NewContextForImage(img)
	dc.SetColor(wireColor)
	dc.SetLineWidth(2)
	for _, e := range shape.Edges {
		a, b := pts[e[0]], pts[e[1]]
		dc.DrawLine(a.X, a.Y, b.X, b.Y)
		dc.Stroke()
	}
	return dc.Image()
}
