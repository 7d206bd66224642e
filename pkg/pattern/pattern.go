// Package pattern defines the capability contract implemented by every
// visual scene and a registry the compositor selects from.
//
// A pattern owns a Surface (its renderable target) and consumes the per-tick
// signal bundle: elapsed seconds, the audio feature vector, and the gesture
// state. Patterns never talk to the sensor engines directly.
package pattern

import (
	"image"
	"image/color"

	"github.com/kaleidolab/go-kaleido/pkg/audio"
	"github.com/kaleidolab/go-kaleido/pkg/gesture"
)

// Surface dimensions for built-in patterns.
const (
	SurfaceWidth  = 160
	SurfaceHeight = 120
)

// Pattern is the contract between the compositor and a visual scene.
type Pattern interface {
	// Name returns the display identifier.
	Name() string

	// Update advances the pattern by dt seconds using this tick's frozen
	// signal snapshot. Side effects are confined to the pattern's own
	// surface.
	Update(dt float64, fv audio.FeatureVector, gs gesture.State)

	// Surface returns the renderable handle the compositor attaches and
	// detaches.
	Surface() *Surface

	// Destroy releases the pattern's resources. Called exactly once, at
	// retirement.
	Destroy()
}

// Surface is a pattern's renderable target: an RGBA pixel buffer plus the
// blend state the compositor drives.
type Surface struct {
	// Img holds the pixels the pattern draws into.
	Img *image.RGBA

	// Alpha is the blend weight set by the compositor's fade lifecycle.
	Alpha float64

	// Visible is false once the compositor detaches the surface.
	Visible bool
}

// NewSurface creates a surface at the standard size.
func NewSurface() *Surface {
	return &Surface{
		Img:     image.NewRGBA(image.Rect(0, 0, SurfaceWidth, SurfaceHeight)),
		Alpha:   0,
		Visible: true,
	}
}

// Clear fills the surface with transparent black.
func (s *Surface) Clear() {
	pix := s.Img.Pix
	for i := range pix {
		pix[i] = 0
	}
}

// Set writes one pixel, ignoring out-of-bounds coordinates.
func (s *Surface) Set(x, y int, c color.RGBA) {
	if x < 0 || x >= SurfaceWidth || y < 0 || y >= SurfaceHeight {
		return
	}
	s.Img.SetRGBA(x, y, c)
}
