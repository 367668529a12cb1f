package offscreen

import (
	"fmt"
	"slices"

	"github.com/go-drift/hidpi/pkg/platform"
	"github.com/go-drift/hidpi/pkg/rendering"
)

// NewResizeObserver returns an observer whose batches are delivered by RunFrame.
func (w *Window) NewResizeObserver(callback platform.ResizeObserverCallback) (platform.ResizeObserver, error) {
	if !w.resizeObserver {
		return nil, platform.ErrResizeObserverUnsupported
	}
	o := &resizeObserver{win: w, callback: callback}
	w.observers = append(w.observers, o)
	return o, nil
}

// Observers returns the number of connected resize observers.
func (w *Window) Observers() int {
	return len(w.observers)
}

type resizeObserver struct {
	win          *Window
	callback     platform.ResizeObserverCallback
	targets      []*observation
	disconnected bool
}

type observation struct {
	el       *Element
	box      platform.Box
	reported bool
	content  rendering.Size
	device   rendering.Size
}

func (o *resizeObserver) Observe(target platform.Element, box platform.Box) error {
	if o.disconnected {
		return platform.ErrDisconnected
	}
	el, ok := target.(*Element)
	if !ok {
		return fmt.Errorf("offscreen: cannot observe %T", target)
	}
	for _, t := range o.targets {
		if t.el == el {
			t.box = box
			return nil
		}
	}
	o.targets = append(o.targets, &observation{el: el, box: box})
	return nil
}

func (o *resizeObserver) Unobserve(target platform.Element) {
	o.targets = slices.DeleteFunc(o.targets, func(t *observation) bool { return platform.Element(t.el) == target })
}

func (o *resizeObserver) Disconnect() {
	if o.disconnected {
		return
	}
	o.disconnected = true
	o.targets = nil
	o.win.observers = slices.DeleteFunc(o.win.observers, func(x *resizeObserver) bool { return x == o })
}

func (o *resizeObserver) hasChanges() bool {
	for _, t := range o.targets {
		if o.changed(t) {
			return true
		}
	}
	return false
}

func (o *resizeObserver) changed(t *observation) bool {
	if !t.reported {
		return true
	}
	if !t.el.ClientSize().Equal(t.content) {
		return true
	}
	return t.box == platform.BoxDevicePixelContentBox && !t.el.devicePixelSize(o.win.dpr).Equal(t.device)
}

func (o *resizeObserver) deliver() {
	if o.disconnected {
		return
	}
	var entries []platform.ResizeObserverEntry
	for _, t := range o.targets {
		if !o.changed(t) {
			continue
		}
		t.reported = true
		t.content = t.el.ClientSize()
		t.device = t.el.devicePixelSize(o.win.dpr)
		entry := platform.ResizeObserverEntry{
			Target:         t.el,
			ContentRect:    rendering.RectFromLTWH(0, 0, t.content.Width, t.content.Height),
			ContentBoxSize: []platform.BoxSize{{InlineSize: t.content.Width, BlockSize: t.content.Height}},
		}
		if o.win.devicePixelBox {
			entry.DevicePixelContentBoxSize = []platform.BoxSize{{InlineSize: t.device.Width, BlockSize: t.device.Height}}
		}
		entries = append(entries, entry)
	}
	if len(entries) > 0 {
		o.callback(entries)
	}
}
