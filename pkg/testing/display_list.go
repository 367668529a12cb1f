package testing

import (
	"fmt"
	"math"

	"github.com/go-drift/hidpi/pkg/rendering"
)

// DisplayOp is one recorded canvas call with its rounded arguments.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

// Canvas implements rendering.Canvas and records every call as a DisplayOp.
// Its transform state behaves like a real canvas, so code under test can
// read Transform back.
type Canvas struct {
	rendering.TransformStack
	ops  []DisplayOp
	size rendering.Size
}

var _ rendering.Canvas = (*Canvas)(nil)

// NewCanvas returns a recording canvas of the given backing-store size.
func NewCanvas(size rendering.Size) *Canvas {
	return &Canvas{size: size}
}

// Ops returns the recorded operations, oldest first.
func (c *Canvas) Ops() []DisplayOp {
	return c.ops
}

// OpNames returns the recorded operation names, oldest first.
func (c *Canvas) OpNames() []string {
	names := make([]string, len(c.ops))
	for i, op := range c.ops {
		names[i] = op.Op
	}
	return names
}

// Reset drops the recorded operations. The transform state is kept.
func (c *Canvas) Reset() {
	c.ops = nil
}

func (c *Canvas) record(op string, kv ...any) {
	d := DisplayOp{Op: op}
	if len(kv) > 0 {
		d.Params = params(kv...)
	}
	c.ops = append(c.ops, d)
}

func (c *Canvas) Save() {
	c.TransformStack.Save()
	c.record("save")
}

func (c *Canvas) Restore() {
	c.TransformStack.Restore()
	c.record("restore")
}

func (c *Canvas) ResetTransform() {
	c.TransformStack.ResetTransform()
	c.record("resetTransform")
}

func (c *Canvas) Translate(dx, dy float64) {
	c.TransformStack.Translate(dx, dy)
	c.record("translate", "dx", round2(dx), "dy", round2(dy))
}

func (c *Canvas) Scale(sx, sy float64) {
	c.TransformStack.Scale(sx, sy)
	c.record("scale", "sx", round2(sx), "sy", round2(sy))
}

func (c *Canvas) Clear(color rendering.Color) {
	c.record("clear", "color", hexColor(color))
}

// DrawRect records strokeWidth only for stroked rectangles.
func (c *Canvas) DrawRect(rect rendering.Rect, paint rendering.Paint) {
	kv := []any{"rect", rectParams(rect), "color", hexColor(paint.Color)}
	if paint.Style == rendering.PaintStyleStroke {
		kv = append(kv, "strokeWidth", round2(paint.StrokeWidth))
	}
	c.record("drawRect", kv...)
}

func (c *Canvas) DrawLine(start, end rendering.Offset, paint rendering.Paint) {
	c.record("drawLine",
		"x1", round2(start.X), "y1", round2(start.Y),
		"x2", round2(end.X), "y2", round2(end.Y),
		"color", hexColor(paint.Color))
}

func (c *Canvas) Size() rendering.Size {
	return c.size
}

// SerializeDisplayList replays a DisplayList through a recording canvas.
func SerializeDisplayList(dl *rendering.DisplayList) []DisplayOp {
	canvas := NewCanvas(dl.Size())
	dl.Paint(canvas)
	return canvas.ops
}

func rectParams(r rendering.Rect) map[string]any {
	return params("left", round2(r.Left), "top", round2(r.Top), "right", round2(r.Right), "bottom", round2(r.Bottom))
}

func hexColor(c rendering.Color) string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

// round2 keeps snapshots stable across float noise.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// params builds a map from alternating key/value pairs. encoding/json sorts
// map keys, so snapshots do not depend on insertion order.
func params(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i].(string)] = kv[i+1]
	}
	return m
}
