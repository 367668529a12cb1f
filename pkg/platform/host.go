// Package platform declares the host services a bitmap-size binding needs:
// an element with layout metrics and a backing store, the window that owns
// it, media queries, animation frames and resize observation.
//
// Implementations live in sub-packages: offscreen (in-memory, deterministic)
// and web (syscall/js, browser). Everything here is driven from the host's
// single event-processing goroutine; none of it is safe for concurrent use.
package platform

import "github.com/go-drift/hidpi/pkg/rendering"

// Element is a raster surface placed in a layout.
type Element interface {
	// ClientSize returns the displayed size in logical units.
	ClientSize() rendering.Size

	// SetStyleSize sets the displayed size in logical units.
	SetStyleSize(size rendering.Size)

	// BitmapSize returns the currently allocated backing-store size.
	BitmapSize() rendering.Size

	// SetBitmapSize reallocates the backing store.
	SetBitmapSize(size rendering.Size)

	// ClientRect returns the first on-screen bounding rectangle in logical
	// units, or false when the element is not laid out.
	ClientRect() (rendering.Rect, bool)

	// Window returns the owning window, or nil when the element has none.
	Window() Window

	// Context2D returns the element's drawing context, or false when one
	// cannot be obtained.
	Context2D(opts *ContextOptions) (rendering.Canvas, bool)
}

// Window is the display context that owns elements.
type Window interface {
	// DevicePixelRatio returns physical pixels per logical pixel.
	DevicePixelRatio() float64

	// MatchMedia evaluates a media query.
	MatchMedia(query string) MediaQueryList

	// RequestAnimationFrame schedules fn before the next repaint and returns
	// a non-zero request id.
	RequestAnimationFrame(fn func()) int

	// CancelAnimationFrame cancels a pending request. Unknown ids are ignored.
	CancelAnimationFrame(id int)

	// QueueTask schedules fn to run asynchronously on the event goroutine.
	QueueTask(fn func())

	// NewResizeObserver creates a resize observer, or fails when the host
	// has none.
	NewResizeObserver(callback ResizeObserverCallback) (ResizeObserver, error)

	// Body returns the document body, or nil when there is none.
	Body() Element
}

// ContextOptions are passed through to the host when obtaining a 2D context.
type ContextOptions struct {
	// Alpha indicates the backing store has an alpha channel.
	Alpha bool
	// Desynchronized hints the host to decouple painting from the event loop.
	Desynchronized bool
	// WillReadFrequently hints that pixels will be read back often.
	WillReadFrequently bool
}

// DefaultContextOptions returns the host defaults.
func DefaultContextOptions() *ContextOptions {
	return &ContextOptions{Alpha: true}
}
