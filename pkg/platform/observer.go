package platform

import "github.com/go-drift/hidpi/pkg/rendering"

// Box selects which box a resize observer reports.
type Box int

const (
	// BoxContentBox reports the content box in logical units.
	BoxContentBox Box = iota
	// BoxBorderBox reports the border box in logical units.
	BoxBorderBox
	// BoxDevicePixelContentBox reports the content box in device pixels.
	BoxDevicePixelContentBox
)

func (b Box) String() string {
	switch b {
	case BoxBorderBox:
		return "border-box"
	case BoxDevicePixelContentBox:
		return "device-pixel-content-box"
	default:
		return "content-box"
	}
}

// BoxSize is one fragment of an observed box.
type BoxSize struct {
	InlineSize float64
	BlockSize  float64
}

// ResizeObserverEntry reports the new geometry of one observed element.
type ResizeObserverEntry struct {
	Target         Element
	ContentRect    rendering.Rect
	ContentBoxSize []BoxSize
	// DevicePixelContentBoxSize is nil on hosts that do not report it.
	DevicePixelContentBoxSize []BoxSize
}

// HasDevicePixelContentBoxSize reports whether the entry carries the
// device-pixel content box.
func (e ResizeObserverEntry) HasDevicePixelContentBoxSize() bool {
	return len(e.DevicePixelContentBoxSize) > 0
}

// ResizeObserverCallback receives one batch of entries.
type ResizeObserverCallback func(entries []ResizeObserverEntry)

// ResizeObserver watches elements for size changes. A newly observed
// element is always reported once.
type ResizeObserver interface {
	Observe(target Element, box Box) error
	Unobserve(target Element)
	Disconnect()
}
