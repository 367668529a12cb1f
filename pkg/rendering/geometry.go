package rendering

import (
	"math"

	"github.com/go-drift/hidpi/pkg/errors"
)

// Offset represents a 2D point or vector.
type Offset struct {
	X float64
	Y float64
}

// Size represents width and height dimensions.
//
// Sizes built with NewSize, LogicalSize or BitmapSize are never negative.
// Size is a value type: copies never alias.
type Size struct {
	Width  float64
	Height float64
}

// NewSize returns a Size, failing with a validation error when either
// dimension is negative or NaN.
func NewSize(width, height float64) (Size, error) {
	if width < 0 || math.IsNaN(width) {
		return Size{}, errors.Newf("rendering.NewSize", errors.KindValidation, "%w: width %v", errors.ErrNegativeSize, width)
	}
	if height < 0 || math.IsNaN(height) {
		return Size{}, errors.Newf("rendering.NewSize", errors.KindValidation, "%w: height %v", errors.ErrNegativeSize, height)
	}
	return Size{Width: width, Height: height}, nil
}

// MustSize is like NewSize but panics on invalid input.
func MustSize(width, height float64) Size {
	s, err := NewSize(width, height)
	if err != nil {
		panic(err)
	}
	return s
}

// LogicalSize returns the displayed size of an element in logical units.
func LogicalSize(width, height float64) (Size, error) {
	return NewSize(width, height)
}

// BitmapSize returns a backing-store size in physical pixels.
func BitmapSize(width, height int) (Size, error) {
	return NewSize(float64(width), float64(height))
}

// Equal reports whether both dimensions match exactly.
func (s Size) Equal(other Size) bool {
	return s.Width == other.Width && s.Height == other.Height
}

// EqualSizes reports whether a and b are structurally equal.
func EqualSizes(a, b Size) bool {
	return a.Equal(b)
}

// IsEmpty reports whether the size has zero area.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Scale multiplies each dimension by its factor.
func (s Size) Scale(sx, sy float64) Size {
	return Size{Width: s.Width * sx, Height: s.Height * sy}
}

// Round rounds both dimensions half away from zero.
func (s Size) Round() Size {
	return Size{Width: math.Round(s.Width), Height: math.Round(s.Height)}
}

// Max returns the per-axis maximum of s and other.
func (s Size) Max(other Size) Size {
	return Size{Width: math.Max(s.Width, other.Width), Height: math.Max(s.Height, other.Height)}
}

// Min returns the per-axis minimum of s and other.
func (s Size) Min(other Size) Size {
	return Size{Width: math.Min(s.Width, other.Width), Height: math.Min(s.Height, other.Height)}
}

// Rect represents a rectangle using left, top, right, bottom coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Size returns the size of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}
