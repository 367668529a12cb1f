package rendering

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// ImageCanvas is a software Canvas drawing into an *image.RGBA.
//
// Shapes are converted to polygons in device space and filled with an
// anti-aliasing rasterizer, so fractional scales produce partial coverage
// exactly as a hardware canvas would.
type ImageCanvas struct {
	TransformStack
	img *image.RGBA
	z   *vector.Rasterizer
}

// NewImageCanvas returns a canvas drawing into img.
func NewImageCanvas(img *image.RGBA) *ImageCanvas {
	b := img.Bounds()
	return &ImageCanvas{
		img: img,
		z:   vector.NewRasterizer(b.Dx(), b.Dy()),
	}
}

// Image returns the backing image.
func (c *ImageCanvas) Image() *image.RGBA {
	return c.img
}

// Size returns the backing image size in pixels.
func (c *ImageCanvas) Size() Size {
	b := c.img.Bounds()
	return Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// Clear fills the whole image, ignoring the transform.
func (c *ImageCanvas) Clear(color Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(color.NRGBA()), image.Point{}, draw.Src)
}

// DrawRect fills or strokes rect.
func (c *ImageCanvas) DrawRect(rect Rect, paint Paint) {
	if paint.Style == PaintStyleStroke {
		hw := strokeHalfWidth(paint)
		outer := Rect{Left: rect.Left - hw, Top: rect.Top - hw, Right: rect.Right + hw, Bottom: rect.Bottom + hw}
		c.fillRect(Rect{Left: outer.Left, Top: outer.Top, Right: outer.Right, Bottom: rect.Top + hw}, paint.Color)
		c.fillRect(Rect{Left: outer.Left, Top: rect.Bottom - hw, Right: outer.Right, Bottom: outer.Bottom}, paint.Color)
		c.fillRect(Rect{Left: outer.Left, Top: rect.Top + hw, Right: rect.Left + hw, Bottom: rect.Bottom - hw}, paint.Color)
		c.fillRect(Rect{Left: rect.Right - hw, Top: rect.Top + hw, Right: outer.Right, Bottom: rect.Bottom - hw}, paint.Color)
		return
	}
	c.fillRect(rect, paint.Color)
}

// DrawLine strokes the segment from start to end with butt caps.
func (c *ImageCanvas) DrawLine(start, end Offset, paint Paint) {
	dx, dy := end.X-start.X, end.Y-start.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	hw := strokeHalfWidth(paint)
	nx, ny := -dy/length*hw, dx/length*hw
	c.fillPolygon([]Offset{
		{X: start.X + nx, Y: start.Y + ny},
		{X: end.X + nx, Y: end.Y + ny},
		{X: end.X - nx, Y: end.Y - ny},
		{X: start.X - nx, Y: start.Y - ny},
	}, paint.Color)
}

func strokeHalfWidth(paint Paint) float64 {
	if paint.StrokeWidth <= 0 {
		return 0.5
	}
	return paint.StrokeWidth / 2
}

func (c *ImageCanvas) fillRect(r Rect, color Color) {
	if r.IsEmpty() {
		return
	}
	c.fillPolygon([]Offset{
		{X: r.Left, Y: r.Top},
		{X: r.Right, Y: r.Top},
		{X: r.Right, Y: r.Bottom},
		{X: r.Left, Y: r.Bottom},
	}, color)
}

// fillPolygon transforms pts into device space and composites the covered
// area over the image.
func (c *ImageCanvas) fillPolygon(pts []Offset, color Color) {
	b := c.img.Bounds()
	if b.Empty() {
		return
	}
	m := c.Transform()
	c.z.Reset(b.Dx(), b.Dy())
	for i, p := range pts {
		d := m.Apply(p)
		if i == 0 {
			c.z.MoveTo(float32(d.X), float32(d.Y))
		} else {
			c.z.LineTo(float32(d.X), float32(d.Y))
		}
	}
	c.z.ClosePath()
	c.z.DrawOp = draw.Over
	c.z.Draw(c.img, b, image.NewUniform(color.NRGBA()), b.Min)
}
