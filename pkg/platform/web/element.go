//go:build js && wasm

package web

import (
	"math"
	"strconv"
	"syscall/js"

	"github.com/go-drift/hidpi/pkg/platform"
	"github.com/go-drift/hidpi/pkg/rendering"
)

// Element wraps a DOM element, normally an HTMLCanvasElement.
type Element struct {
	v      js.Value
	win    *Window
	canvas *Canvas
}

var _ platform.Element = (*Element)(nil)

// WrapElement wraps v. Its window is resolved from ownerDocument.
func WrapElement(v js.Value) *Element {
	return &Element{v: v}
}

// Value returns the wrapped DOM node.
func (e *Element) Value() js.Value {
	return e.v
}

func (e *Element) ClientSize() rendering.Size {
	return rendering.Size{
		Width:  e.v.Get("clientWidth").Float(),
		Height: e.v.Get("clientHeight").Float(),
	}
}

func (e *Element) SetStyleSize(size rendering.Size) {
	style := e.v.Get("style")
	style.Set("width", px(size.Width))
	style.Set("height", px(size.Height))
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

func (e *Element) BitmapSize() rendering.Size {
	return rendering.Size{
		Width:  e.v.Get("width").Float(),
		Height: e.v.Get("height").Float(),
	}
}

// SetBitmapSize writes the canvas width and height attributes. The browser
// resets the context state, so the mirrored transform is dropped as well.
func (e *Element) SetBitmapSize(size rendering.Size) {
	e.v.Set("width", int(math.Round(size.Width)))
	e.v.Set("height", int(math.Round(size.Height)))
	e.canvas = nil
}

func (e *Element) ClientRect() (rendering.Rect, bool) {
	rects := e.v.Call("getClientRects")
	if rects.Get("length").Int() == 0 {
		return rendering.Rect{}, false
	}
	r := rects.Index(0)
	return rendering.Rect{
		Left:   r.Get("left").Float(),
		Top:    r.Get("top").Float(),
		Right:  r.Get("right").Float(),
		Bottom: r.Get("bottom").Float(),
	}, true
}

func (e *Element) Window() platform.Window {
	if e.win != nil {
		return e.win
	}
	doc := e.v.Get("ownerDocument")
	if doc.IsNull() || doc.IsUndefined() {
		return nil
	}
	view := doc.Get("defaultView")
	if view.IsNull() || view.IsUndefined() {
		return nil
	}
	e.win = wrapWindow(view)
	return e.win
}

func (e *Element) Context2D(opts *platform.ContextOptions) (rendering.Canvas, bool) {
	if e.canvas != nil {
		return e.canvas, true
	}
	if opts == nil {
		opts = platform.DefaultContextOptions()
	}
	if e.v.Get("getContext").IsUndefined() {
		return nil, false
	}
	ctx := e.v.Call("getContext", "2d", map[string]any{
		"alpha":              opts.Alpha,
		"desynchronized":     opts.Desynchronized,
		"willReadFrequently": opts.WillReadFrequently,
	})
	if ctx.IsNull() || ctx.IsUndefined() {
		return nil, false
	}
	e.canvas = &Canvas{ctx: ctx, el: e}
	return e.canvas, true
}
