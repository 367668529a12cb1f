// Package density publishes a window's device pixel ratio and notifies
// subscribers when it changes.
//
// Hosts only signal density changes through media queries, and a resolution
// query matches one exact density. Once the density moves away from it the
// query flips to "not matching" and never fires again, so the observable
// re-arms a fresh query for the new density inside every change handler.
package density

import (
	"github.com/go-drift/hidpi/internal/listeners"
	"github.com/go-drift/hidpi/pkg/errors"
	"github.com/go-drift/hidpi/pkg/platform"
)

// Observable tracks the density of one window.
type Observable struct {
	win      platform.Window
	query    platform.MediaQueryList
	remove   func()
	subs     listeners.List[func(float64)]
	disposed bool
}

// New starts observing win.
func New(win platform.Window) *Observable {
	o := &Observable{win: win}
	o.install()
	return o
}

// Value returns the window's current density. It is read from the window on
// every call, never cached.
func (o *Observable) Value() float64 {
	return o.win.DevicePixelRatio()
}

// Subscription is returned by Subscribe.
type Subscription struct {
	o *Observable
	h *listeners.Handle
}

// Unsubscribe removes only this subscription. Calling it again is a no-op.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.o == nil {
		return
	}
	s.o.subs.Remove(s.h)
	s.o = nil
}

// Subscribe registers fn to receive every new density value.
func (o *Observable) Subscribe(fn func(density float64)) *Subscription {
	return &Subscription{o: o, h: o.subs.Add(fn)}
}

// Dispose removes the media-query registration and every subscriber. No
// notification is delivered afterwards. Dispose is idempotent.
func (o *Observable) Dispose() {
	if o.disposed {
		return
	}
	o.disposed = true
	o.uninstall()
	o.subs.Clear()
}

func (o *Observable) install() {
	dppx := o.win.DevicePixelRatio()
	o.query = o.win.MatchMedia(platform.ResolutionQuery(dppx))
	o.remove = o.query.AddListener(o.onChange)
	errors.Logger().Debug("density query armed", "query", o.query.Media())
}

func (o *Observable) uninstall() {
	if o.remove != nil {
		o.remove()
		o.remove = nil
	}
	o.query = nil
}

// onChange re-arms against the new density before notifying.
func (o *Observable) onChange() {
	if o.disposed {
		return
	}
	o.uninstall()
	o.install()

	value := o.win.DevicePixelRatio()
	o.subs.Each(func(fn func(float64)) {
		if !o.disposed {
			fn(value)
		}
	})
}
