// Package probe detects whether a host's resize observer reports the
// device-pixel content box.
//
// Some hosts implement resize observation but omit the per-axis
// device-pixel size from their entries. The only reliable test is to observe
// something and look at what comes back, which makes the answer asynchronous.
package probe

import (
	"fmt"

	"github.com/go-drift/hidpi/pkg/errors"
	"github.com/go-drift/hidpi/pkg/platform"
)

// Detect observes win's body with the device-pixel content box and calls
// done with whether every entry of the first batch carried that size. The
// observer is disconnected after the first batch.
//
// done is called exactly once and never synchronously. Any failure, including
// a panic inside the host, resolves false and is reported to the error
// handler instead of being returned.
func Detect(win platform.Window, done func(supported bool)) {
	resolved := false
	resolve := func(supported bool) {
		if resolved {
			return
		}
		resolved = true
		done(supported)
	}
	fail := func(err error) {
		errors.Report(errors.New("probe.Detect", errors.KindProbe, err))
		win.QueueTask(func() { resolve(false) })
	}
	defer errors.RecoverWithCallback("probe.Detect", func(any) {
		win.QueueTask(func() { resolve(false) })
	})

	body := win.Body()
	if body == nil {
		fail(fmt.Errorf("window has no body"))
		return
	}

	var ro platform.ResizeObserver
	ro, err := win.NewResizeObserver(func(entries []platform.ResizeObserverEntry) {
		ro.Disconnect()
		supported := true
		for _, e := range entries {
			if !e.HasDevicePixelContentBoxSize() {
				supported = false
				break
			}
		}
		errors.Logger().Debug("device-pixel-content-box probe resolved", "supported", supported)
		resolve(supported)
	})
	if err != nil {
		fail(err)
		return
	}
	if err := ro.Observe(body, platform.BoxDevicePixelContentBox); err != nil {
		ro.Disconnect()
		fail(err)
	}
}

// Cache shares one probe per window between callers.
type Cache struct {
	results map[platform.Window]*result
}

type result struct {
	resolved  bool
	supported bool
	waiters   []func(bool)
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{results: make(map[platform.Window]*result)}
}

// Detect is like the package-level Detect, but probes each window at most
// once. Later callers receive the memoized answer, still asynchronously.
func (c *Cache) Detect(win platform.Window, done func(supported bool)) {
	if r, ok := c.results[win]; ok {
		if r.resolved {
			supported := r.supported
			win.QueueTask(func() { done(supported) })
			return
		}
		r.waiters = append(r.waiters, done)
		return
	}

	r := &result{waiters: []func(bool){done}}
	c.results[win] = r
	Detect(win, func(supported bool) {
		r.resolved = true
		r.supported = supported
		waiters := r.waiters
		r.waiters = nil
		for _, w := range waiters {
			notify(w, supported)
		}
	})
}

// notify isolates waiters from each other's panics.
func notify(w func(bool), supported bool) {
	defer errors.Recover("probe.Cache.Detect")
	w(supported)
}

// Forget drops the memoized answer for win.
func (c *Cache) Forget(win platform.Window) {
	delete(c.results, win)
}
