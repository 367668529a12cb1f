//go:build js && wasm

package web

import (
	"syscall/js"

	"github.com/go-drift/hidpi/pkg/rendering"
)

// Canvas wraps a CanvasRenderingContext2D. The transform is tracked on the
// Go side and pushed with setTransform after every change, so Transform
// never crosses into JavaScript.
type Canvas struct {
	rendering.TransformStack
	ctx js.Value
	el  *Element
}

var _ rendering.Canvas = (*Canvas)(nil)

func (c *Canvas) sync() {
	m := c.TransformStack.Transform()
	c.ctx.Call("setTransform", m[0], m[3], m[1], m[4], m[2], m[5])
}

func (c *Canvas) Save() {
	c.TransformStack.Save()
	c.ctx.Call("save")
}

func (c *Canvas) Restore() {
	c.TransformStack.Restore()
	c.ctx.Call("restore")
	c.sync()
}

func (c *Canvas) ResetTransform() {
	c.TransformStack.ResetTransform()
	c.sync()
}

func (c *Canvas) Translate(dx, dy float64) {
	c.TransformStack.Translate(dx, dy)
	c.sync()
}

func (c *Canvas) Scale(sx, sy float64) {
	c.TransformStack.Scale(sx, sy)
	c.sync()
}

func (c *Canvas) Clear(color rendering.Color) {
	size := c.Size()
	c.ctx.Call("save")
	c.ctx.Call("setTransform", 1, 0, 0, 1, 0, 0)
	c.ctx.Call("clearRect", 0, 0, size.Width, size.Height)
	if color>>24 != 0 {
		c.ctx.Set("fillStyle", color.CSS())
		c.ctx.Call("fillRect", 0, 0, size.Width, size.Height)
	}
	c.ctx.Call("restore")
}

func (c *Canvas) DrawRect(rect rendering.Rect, paint rendering.Paint) {
	if paint.Style == rendering.PaintStyleStroke {
		c.ctx.Set("strokeStyle", paint.Color.CSS())
		c.ctx.Set("lineWidth", strokeWidth(paint))
		c.ctx.Call("strokeRect", rect.Left, rect.Top, rect.Width(), rect.Height())
		return
	}
	c.ctx.Set("fillStyle", paint.Color.CSS())
	c.ctx.Call("fillRect", rect.Left, rect.Top, rect.Width(), rect.Height())
}

func (c *Canvas) DrawLine(start, end rendering.Offset, paint rendering.Paint) {
	c.ctx.Set("strokeStyle", paint.Color.CSS())
	c.ctx.Set("lineWidth", strokeWidth(paint))
	c.ctx.Call("beginPath")
	c.ctx.Call("moveTo", start.X, start.Y)
	c.ctx.Call("lineTo", end.X, end.Y)
	c.ctx.Call("stroke")
}

func (c *Canvas) Size() rendering.Size {
	return c.el.BitmapSize()
}

func strokeWidth(paint rendering.Paint) float64 {
	if paint.StrokeWidth <= 0 {
		return 1
	}
	return paint.StrokeWidth
}
