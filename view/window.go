// Package view abstracts the operator-facing display so calibration and
// playback logic can run headless, e.g. in tests.
package view

import (
	"context"
	"image"
)

// Window shows named images to the operator and reports dismissal.
type Window interface {
	// Display shows img in the viewport labeled name, replacing
	// whatever was shown there before.
	Display(name string, img image.Image) error

	// AwaitDismiss blocks until the operator dismisses the display or
	// the context is cancelled.
	AwaitDismiss(ctx context.Context) error

	// Dismissed reports, without blocking, whether the operator has
	// asked to quit.
	Dismissed() bool

	Close() error
}
