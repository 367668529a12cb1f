//go:build js && wasm

package web

import (
	"fmt"
	"slices"
	"syscall/js"

	"github.com/go-drift/hidpi/pkg/platform"
	"github.com/go-drift/hidpi/pkg/rendering"
)

// NewResizeObserver wraps the ResizeObserver constructor.
func (w *Window) NewResizeObserver(callback platform.ResizeObserverCallback) (platform.ResizeObserver, error) {
	ctor := w.v.Get("ResizeObserver")
	if ctor.IsUndefined() {
		return nil, platform.ErrResizeObserverUnsupported
	}
	o := &resizeObserver{}
	o.cb = js.FuncOf(func(_ js.Value, args []js.Value) any {
		callback(o.entries(args[0]))
		return nil
	})
	o.v = ctor.New(o.cb)
	return o, nil
}

type resizeObserver struct {
	v            js.Value
	cb           js.Func
	targets      []*Element
	disconnected bool
}

// Observe rejects boxes the browser does not know, which it reports by
// throwing from observe.
func (o *resizeObserver) Observe(target platform.Element, box platform.Box) (err error) {
	if o.disconnected {
		return platform.ErrDisconnected
	}
	el, ok := target.(*Element)
	if !ok {
		return fmt.Errorf("web: cannot observe %T", target)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", platform.ErrBoxUnsupported, box, r)
		}
	}()
	o.v.Call("observe", el.v, map[string]any{"box": box.String()})
	if !slices.Contains(o.targets, el) {
		o.targets = append(o.targets, el)
	}
	return nil
}

func (o *resizeObserver) Unobserve(target platform.Element) {
	el, ok := target.(*Element)
	if !ok || o.disconnected {
		return
	}
	o.v.Call("unobserve", el.v)
	o.targets = slices.DeleteFunc(o.targets, func(t *Element) bool { return t == el })
}

func (o *resizeObserver) Disconnect() {
	if o.disconnected {
		return
	}
	o.disconnected = true
	o.v.Call("disconnect")
	o.targets = nil
	o.cb.Release()
}

func (o *resizeObserver) entries(list js.Value) []platform.ResizeObserverEntry {
	n := list.Length()
	entries := make([]platform.ResizeObserverEntry, 0, n)
	for i := range n {
		e := list.Index(i)
		rect := e.Get("contentRect")
		entries = append(entries, platform.ResizeObserverEntry{
			Target: o.target(e.Get("target")),
			ContentRect: rendering.RectFromLTWH(
				rect.Get("x").Float(), rect.Get("y").Float(),
				rect.Get("width").Float(), rect.Get("height").Float(),
			),
			ContentBoxSize:            boxSizes(e.Get("contentBoxSize")),
			DevicePixelContentBoxSize: boxSizes(e.Get("devicePixelContentBoxSize")),
		})
	}
	return entries
}

func (o *resizeObserver) target(v js.Value) platform.Element {
	for _, el := range o.targets {
		if el.v.Equal(v) {
			return el
		}
	}
	return WrapElement(v)
}

// boxSizes converts a ResizeObserverSize list. Older browsers report a single
// object instead of a list.
func boxSizes(v js.Value) []platform.BoxSize {
	if v.IsUndefined() || v.IsNull() {
		return nil
	}
	size := func(s js.Value) platform.BoxSize {
		return platform.BoxSize{InlineSize: s.Get("inlineSize").Float(), BlockSize: s.Get("blockSize").Float()}
	}
	if v.Get("length").IsUndefined() {
		return []platform.BoxSize{size(v)}
	}
	sizes := make([]platform.BoxSize, v.Length())
	for i := range sizes {
		sizes[i] = size(v.Index(i))
	}
	return sizes
}
