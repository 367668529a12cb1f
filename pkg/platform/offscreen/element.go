package offscreen

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/go-drift/hidpi/pkg/platform"
	"github.com/go-drift/hidpi/pkg/rendering"
)

// Default backing-store size of a freshly created canvas element.
const (
	DefaultBitmapWidth  = 300
	DefaultBitmapHeight = 150
)

// Element is an in-memory raster surface.
type Element struct {
	win       *Window
	left, top float64
	size      rendering.Size
	displayed bool

	bitmap     *image.RGBA
	canvas     *rendering.ImageCanvas
	noContext  bool
	preserve   bool
	styleSizes []rendering.Size
	writes     int
}

var _ platform.Element = (*Element)(nil)

// NewElement creates an element of the given logical size at the window's
// origin, with a 300x150 backing store.
func (w *Window) NewElement(width, height float64) *Element {
	e := NewDetachedElement(width, height)
	e.win = w
	return e
}

// NewDetachedElement creates an element that belongs to no window.
func NewDetachedElement(width, height float64) *Element {
	return &Element{
		size:      rendering.Size{Width: width, Height: height},
		displayed: true,
		bitmap:    image.NewRGBA(image.Rect(0, 0, DefaultBitmapWidth, DefaultBitmapHeight)),
	}
}

// ClientSize returns the displayed size, or zero when the element is hidden.
func (e *Element) ClientSize() rendering.Size {
	if !e.displayed {
		return rendering.Size{}
	}
	return e.size
}

// SetStyleSize sets the displayed size. Layout is immediate.
func (e *Element) SetStyleSize(size rendering.Size) {
	e.size = size
	e.styleSizes = append(e.styleSizes, size)
}

// StyleWrites returns every size written through SetStyleSize, oldest first.
func (e *Element) StyleWrites() []rendering.Size {
	return e.styleSizes
}

// BitmapSize returns the backing-store size.
func (e *Element) BitmapSize() rendering.Size {
	b := e.bitmap.Bounds()
	return rendering.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// SetBitmapSize reallocates the backing store. Content is cleared unless
// SetPreserveContent was enabled, in which case it is rescaled.
func (e *Element) SetBitmapSize(size rendering.Size) {
	w, h := int(math.Round(size.Width)), int(math.Round(size.Height))
	old := e.bitmap
	e.bitmap = image.NewRGBA(image.Rect(0, 0, w, h))
	if e.preserve && !old.Bounds().Empty() && !e.bitmap.Bounds().Empty() {
		draw.BiLinear.Scale(e.bitmap, e.bitmap.Bounds(), old, old.Bounds(), draw.Src, nil)
	}
	e.canvas = nil
	e.writes++
}

// BitmapWrites returns how many times the backing store was reallocated.
func (e *Element) BitmapWrites() int {
	return e.writes
}

// ClientRect returns the layout rectangle, or false when hidden.
func (e *Element) ClientRect() (rendering.Rect, bool) {
	if !e.displayed {
		return rendering.Rect{}, false
	}
	return rendering.RectFromLTWH(e.left, e.top, e.size.Width, e.size.Height), true
}

// Window returns the owning window.
func (e *Element) Window() platform.Window {
	if e.win == nil {
		return nil
	}
	return e.win
}

// Context2D returns a canvas drawing into the current backing store. A new
// context with a reset transform is returned after every reallocation.
func (e *Element) Context2D(*platform.ContextOptions) (rendering.Canvas, bool) {
	if e.noContext {
		return nil, false
	}
	if e.canvas == nil {
		e.canvas = rendering.NewImageCanvas(e.bitmap)
	}
	return e.canvas, true
}

// Image returns the backing store.
func (e *Element) Image() *image.RGBA {
	return e.bitmap
}

// SetPosition moves the element within the window, in logical units.
func (e *Element) SetPosition(left, top float64) {
	e.left, e.top = left, top
}

// SetDisplayed shows or hides the element. Hidden elements have no client
// rect and a zero client size.
func (e *Element) SetDisplayed(displayed bool) {
	e.displayed = displayed
}

// DisableContext makes Context2D fail.
func (e *Element) DisableContext() {
	e.noContext = true
}

// SetPreserveContent keeps and rescales content across reallocations.
func (e *Element) SetPreserveContent(preserve bool) {
	e.preserve = preserve
}

// devicePixelSize is the size the host itself would report for the
// device-pixel content box.
func (e *Element) devicePixelSize(ratio float64) rendering.Size {
	r, ok := e.ClientRect()
	if !ok {
		return rendering.Size{}
	}
	return rendering.Size{
		Width:  snap(r.Left, r.Width(), ratio),
		Height: snap(r.Top, r.Height(), ratio),
	}
}
