package binding

import (
	"math"

	"github.com/go-drift/hidpi/pkg/density"
	"github.com/go-drift/hidpi/pkg/errors"
	"github.com/go-drift/hidpi/pkg/platform"
	"github.com/go-drift/hidpi/pkg/rendering"
)

// strategy is the active observation mechanism. Exactly one of
// *nativeStrategy or *pollingStrategy is installed per binding, once.
type strategy interface {
	// invalidate asks for a new suggestion after a logical resize.
	invalidate()
	dispose()
}

// start selects and activates a strategy. Without the native observer
// polling starts immediately; otherwise detection resolves on a later task.
func (b *Binding) start(detect func(platform.Window, func(bool))) {
	if !b.options.AllowNativeObserver {
		b.activatePolling()
		return
	}
	b.state = StateDetectingStrategy
	detect(b.window, func(supported bool) {
		if b.element == nil {
			return
		}
		if supported && b.activateNative() {
			return
		}
		b.activatePolling()
	})
}

func (b *Binding) activateNative() bool {
	n := &nativeStrategy{b: b}
	ro, err := b.window.NewResizeObserver(n.onResize)
	if err != nil {
		errors.Report(errors.New("binding.activateNative", errors.KindProbe, err))
		return false
	}
	if err := ro.Observe(b.element, platform.BoxDevicePixelContentBox); err != nil {
		ro.Disconnect()
		errors.Report(errors.New("binding.activateNative", errors.KindProbe, err))
		return false
	}
	n.observer = ro
	b.strategy = n
	b.state = StateNativeObserverActive
	errors.Logger().Debug("bitmap size strategy selected", "strategy", b.state.String())
	return true
}

func (b *Binding) activatePolling() {
	p := &pollingStrategy{b: b, density: density.New(b.window)}
	p.sub = p.density.Subscribe(func(float64) { p.invalidate() })
	b.strategy = p
	b.state = StateDensityPollingActive
	errors.Logger().Debug("bitmap size strategy selected", "strategy", b.state.String())
	p.invalidate()
}

// suggest runs a raw candidate through the transform and publishes it.
func (b *Binding) suggest(candidate rendering.Size) {
	if b.transform != nil {
		transformed, ok := b.transform(candidate, b.logicalSize)
		if !ok {
			return
		}
		if _, err := rendering.NewSize(transformed.Width, transformed.Height); err != nil {
			errors.Report(errors.New("binding.suggest", errors.KindValidation, err))
			return
		}
		// Backing stores hold whole pixels.
		candidate = transformed.Round()
	}

	var next *rendering.Size
	if !candidate.Equal(b.element.BitmapSize()) {
		next = &candidate
	}
	if equalSuggestions(b.suggested, next) {
		return
	}
	old := b.suggested
	b.suggested = next
	errors.Logger().Debug("suggested bitmap size changed", "from", old, "to", next)
	b.emitSuggestedChanged(old, next)
}

// nativeStrategy takes sizes from the host's device-pixel content box.
type nativeStrategy struct {
	b        *Binding
	observer platform.ResizeObserver
}

// invalidate is a no-op: the host re-reports the element after layout.
func (n *nativeStrategy) invalidate() {}

func (n *nativeStrategy) dispose() {
	n.observer.Disconnect()
}

func (n *nativeStrategy) onResize(entries []platform.ResizeObserverEntry) {
	defer errors.Recover("binding.onResize")
	b := n.b
	if b.element == nil {
		return
	}
	for _, e := range entries {
		if e.Target != b.element {
			continue
		}
		if !e.HasDevicePixelContentBoxSize() {
			return
		}
		box := e.DevicePixelContentBoxSize[0]
		candidate := rendering.Size{Width: box.InlineSize, Height: box.BlockSize}
		if !b.options.AllowDownsampling {
			candidate = candidate.Max(b.element.ClientSize())
		}
		b.suggest(candidate)
		return
	}
}

// pollingStrategy predicts sizes from density and layout. Recomputation is
// deferred to the next animation frame; triggers arriving before it runs
// share the pending frame.
type pollingStrategy struct {
	b       *Binding
	density *density.Observable
	sub     *density.Subscription
	frameID int
}

func (p *pollingStrategy) invalidate() {
	if p.frameID != 0 {
		return
	}
	p.frameID = p.b.window.RequestAnimationFrame(p.recompute)
}

func (p *pollingStrategy) dispose() {
	if p.frameID != 0 {
		p.b.window.CancelAnimationFrame(p.frameID)
		p.frameID = 0
	}
	p.sub.Unsubscribe()
	p.density.Dispose()
}

func (p *pollingStrategy) recompute() {
	defer errors.Recover("binding.recompute")
	p.frameID = 0
	b := p.b
	if b.element == nil {
		return
	}
	b.suggest(predictBitmapSize(b.element, b.logicalSize, p.ratio()))
}

func (p *pollingStrategy) ratio() float64 {
	ratio := p.density.Value()
	if ratio < 1 && !p.b.options.AllowDownsampling {
		return 1
	}
	return ratio
}

// predictBitmapSize guesses the device-pixel content box. Both edges of the
// layout rectangle are rounded separately, the way hosts snap fractional
// device pixels, so the prediction matches the host at non-integer ratios.
func predictBitmapSize(el platform.Element, logical rendering.Size, ratio float64) rendering.Size {
	rect, ok := el.ClientRect()
	if !ok {
		return logical.Scale(ratio, ratio).Round()
	}
	return rendering.Size{
		Width:  math.Round(rect.Left*ratio+rect.Width()*ratio) - math.Round(rect.Left*ratio),
		Height: math.Round(rect.Top*ratio+rect.Height()*ratio) - math.Round(rect.Top*ratio),
	}
}
