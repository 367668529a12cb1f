//go:build js && wasm

// Package web is the browser platform host, built on syscall/js.
//
// Callbacks registered through it run on the JavaScript event loop, which is
// the single event goroutine the binding expects. Every js.Func created here
// is released once it can no longer be called.
package web

import (
	"syscall/js"

	"github.com/go-drift/hidpi/pkg/platform"
)

// Window wraps a browser window object.
type Window struct {
	v      js.Value
	frames map[int]js.Func
}

var _ platform.Window = (*Window)(nil)

// Global returns the window the program runs in.
func Global() *Window {
	return wrapWindow(js.Global())
}

func wrapWindow(v js.Value) *Window {
	return &Window{v: v, frames: make(map[int]js.Func)}
}

// ElementByID returns the element with the given id.
func (w *Window) ElementByID(id string) (*Element, bool) {
	v := w.v.Get("document").Call("getElementById", id)
	if v.IsNull() || v.IsUndefined() {
		return nil, false
	}
	return &Element{v: v, win: w}, true
}

// DevicePixelRatio returns window.devicePixelRatio.
func (w *Window) DevicePixelRatio() float64 {
	return w.v.Get("devicePixelRatio").Float()
}

// MatchMedia wraps window.matchMedia.
func (w *Window) MatchMedia(query string) platform.MediaQueryList {
	return &mediaQueryList{v: w.v.Call("matchMedia", query)}
}

// RequestAnimationFrame wraps window.requestAnimationFrame.
func (w *Window) RequestAnimationFrame(fn func()) int {
	var id int
	cb := js.FuncOf(func(js.Value, []js.Value) any {
		if f, ok := w.frames[id]; ok {
			delete(w.frames, id)
			defer f.Release()
		}
		fn()
		return nil
	})
	id = w.v.Call("requestAnimationFrame", cb).Int()
	w.frames[id] = cb
	return id
}

// CancelAnimationFrame wraps window.cancelAnimationFrame.
func (w *Window) CancelAnimationFrame(id int) {
	f, ok := w.frames[id]
	if !ok {
		return
	}
	delete(w.frames, id)
	w.v.Call("cancelAnimationFrame", id)
	f.Release()
}

// QueueTask schedules fn as a microtask.
func (w *Window) QueueTask(fn func()) {
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		defer cb.Release()
		fn()
		return nil
	})
	w.v.Call("queueMicrotask", cb)
}

// Body returns document.body.
func (w *Window) Body() platform.Element {
	v := w.v.Get("document").Get("body")
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return &Element{v: v, win: w}
}

type mediaQueryList struct {
	v js.Value
}

func (q *mediaQueryList) Media() string {
	return q.v.Get("media").String()
}

func (q *mediaQueryList) Matches() bool {
	return q.v.Get("matches").Bool()
}

// AddListener uses the legacy addListener, which every browser that knows
// resolution media queries implements.
func (q *mediaQueryList) AddListener(fn func()) func() {
	cb := js.FuncOf(func(js.Value, []js.Value) any {
		fn()
		return nil
	})
	q.v.Call("addListener", cb)
	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		q.v.Call("removeListener", cb)
		cb.Release()
	}
}
