package imgutils

import (
	"image"
	"image/color"
)

// exposure bounds on the 0-255 grayscale average; frames outside them
// carry no usable board contrast
const (
	minUsableAverage = 10
	maxUsableAverage = 245
)

func ComputeGrayscaleAverage(img image.Image) float64 {
	bounds := img.Bounds()

	totalValue := 0.0
	numPixels := 0.0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			grayColor := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			totalValue += float64(grayColor.Y)
			numPixels++
		}
	}

	return totalValue / numPixels
}

// WellExposed reports whether a frame has enough contrast to be worth
// handing to the board detector. A nearly black or blown-out frame will
// never produce corners.
func WellExposed(img image.Image) bool {
	avg := ComputeGrayscaleAverage(img)
	return avg > minUsableAverage && avg < maxUsableAverage
}
