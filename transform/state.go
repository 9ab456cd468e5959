package transform

import (
	"math"

	mgl "github.com/go-gl/mathgl/mgl32"
)

// Step sizes for the translate and shear commands.
const (
	TranslateStep = 0.1
	ShearStep     = 0.1
)

// State holds the interactive transform parameters. Each parameter is kept
// as a count of discrete steps so inverse commands cancel exactly.
type State struct {
	quarterTurns int // rotation in units of pi/2, counter-clockwise positive
	zoom         int // scale = 2^zoom
	translateX   int // tenths
	translateY   int
	shearX       int
	shearY       int
}

// NewState returns a State at the identity transform.
func NewState() *State {
	return &State{}
}

// Apply performs exactly one command and reports whether it asked to quit.
// Unknown commands are ignored.
func (s *State) Apply(c Command) (quit bool) {
	switch c {
	case RotateCounterClockwise:
		s.quarterTurns++
	case RotateClockwise:
		s.quarterTurns--
	case ZoomIn:
		s.zoom++
	case ZoomOut:
		s.zoom--
	case TranslateUp:
		s.translateY--
	case TranslateDown:
		s.translateY++
	case TranslateLeft:
		s.translateX++
	case TranslateRight:
		s.translateX--
	case ShearUp:
		s.shearX++
	case ShearDown:
		s.shearX--
	case ShearLeft:
		s.shearY--
	case ShearRight:
		s.shearY++
	case Reset:
		s.Reset()
	case Quit:
		return true
	}
	return false
}

// Reset restores the identity transform.
func (s *State) Reset() {
	*s = State{}
}

// Rotation returns the accumulated rotation in radians. It is not wrapped.
func (s *State) Rotation() float64 {
	return float64(s.quarterTurns) * math.Pi / 2
}

// Scale returns the accumulated zoom factor.
func (s *State) Scale() float64 {
	return math.Ldexp(1, s.zoom)
}

func (s *State) TranslateX() float64 { return float64(s.translateX) * TranslateStep }
func (s *State) TranslateY() float64 { return float64(s.translateY) * TranslateStep }
func (s *State) ShearX() float64     { return float64(s.shearX) * ShearStep }
func (s *State) ShearY() float64     { return float64(s.shearY) * ShearStep }

// Matrix composes the current parameters as R·H·S·T: rotation about Z,
// then shear, then in-plane scale, then translation. The order is fixed;
// shear acts in rotated space and scale is applied after shear.
func (s *State) Matrix() mgl.Mat4 {
	r := mgl.HomogRotate3DZ(float32(s.Rotation()))

	h := mgl.Ident4()
	h.Set(0, 1, float32(s.ShearX()))
	h.Set(1, 0, float32(s.ShearY()))

	// Only the in-plane terms scale; z and w stay at identity.
	scale := float32(s.Scale())
	sc := mgl.Scale3D(scale, scale, 1)

	t := mgl.Translate3D(float32(s.TranslateX()), float32(s.TranslateY()), 0)

	return r.Mul4(h).Mul4(sc).Mul4(t)
}
