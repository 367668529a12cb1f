// Package binding keeps a raster surface's backing store sized to its
// displayed size times the display density.
//
// A Binding watches one element. Whenever layout or density changes it
// computes the backing-store size the element should have and publishes it
// as a suggestion; nothing is reallocated until the caller applies it,
// typically at the start of its next frame:
//
//	b, err := binding.Bind(el, binding.Target{Kind: binding.KindDevicePixelContentBox})
//	if err != nil {
//		return err
//	}
//	b.SubscribeSuggestedBitmapSizeChanged(func(_, _ *rendering.Size) {
//		win.RequestAnimationFrame(drawFrame)
//	})
//
//	func drawFrame() {
//		b.ApplySuggestedBitmapSize()
//		t, err := target.TryCreate(b, nil)
//		if t == nil || err != nil {
//			return
//		}
//		t.UseMediaCoordinateSpace(drawScene)
//	}
//
// Two observation strategies exist. Hosts whose resize observer reports the
// device-pixel content box get exact sizes from the host itself. Elsewhere the
// binding subscribes to density changes and predicts the size from the
// element's layout rectangle. The strategy is chosen once, asynchronously,
// right after Bind.
//
// Bindings live on the host's event goroutine and are not safe for
// concurrent use.
package binding

import (
	"github.com/go-drift/hidpi/internal/listeners"
	"github.com/go-drift/hidpi/pkg/errors"
	"github.com/go-drift/hidpi/pkg/platform"
	"github.com/go-drift/hidpi/pkg/rendering"
)

// State is the lifecycle state of a Binding.
type State int

const (
	// StateConstructed is the state before strategy detection starts.
	StateConstructed State = iota
	// StateDetectingStrategy waits for the capability probe.
	StateDetectingStrategy
	// StateNativeObserverActive observes the device-pixel content box.
	StateNativeObserverActive
	// StateDensityPollingActive predicts sizes from density and layout.
	StateDensityPollingActive
	// StateDisposed is terminal.
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateDetectingStrategy:
		return "detecting-strategy"
	case StateNativeObserverActive:
		return "native-observer"
	case StateDensityPollingActive:
		return "density-polling"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// BitmapSizeChangedListener is called after the backing store was reallocated.
type BitmapSizeChangedListener func(oldSize, newSize rendering.Size)

// SuggestedBitmapSizeChangedListener is called when the pending suggestion
// changes. A nil size means no suggestion is pending.
type SuggestedBitmapSizeChangedListener func(oldSize, newSize *rendering.Size)

// Subscription identifies a registered listener.
type Subscription = listeners.Handle

// Binding ties one element's backing-store size to its layout and density.
type Binding struct {
	element     platform.Element
	window      platform.Window
	logicalSize rendering.Size
	suggested   *rendering.Size
	transform   SizeTransform
	options     Options
	state       State
	strategy    strategy

	bitmapListeners    listeners.List[BitmapSizeChangedListener]
	suggestedListeners listeners.List[SuggestedBitmapSizeChangedListener]
}

func newBinding(el platform.Element, win platform.Window, transform SizeTransform, opts Options) *Binding {
	return &Binding{
		element:     el,
		window:      win,
		logicalSize: el.ClientSize(),
		transform:   transform,
		options:     opts,
		state:       StateConstructed,
	}
}

func (b *Binding) alive(op string) error {
	if b.element == nil {
		return errors.New("binding."+op, errors.KindState, errors.ErrDisposed)
	}
	return nil
}

// State returns the lifecycle state.
func (b *Binding) State() State {
	return b.state
}

// Element returns the bound element.
func (b *Binding) Element() (platform.Element, error) {
	if err := b.alive("Element"); err != nil {
		return nil, err
	}
	return b.element, nil
}

// ElementLogicalSize returns the last size set with ResizeElement, or the
// element's displayed size at bind time.
func (b *Binding) ElementLogicalSize() (rendering.Size, error) {
	if err := b.alive("ElementLogicalSize"); err != nil {
		return rendering.Size{}, err
	}
	return b.logicalSize, nil
}

// ResizeElement changes the element's displayed size.
//
// Under density polling this schedules a new suggestion. Under the native
// observer the host re-reports the element after layout.
func (b *Binding) ResizeElement(size rendering.Size) error {
	if err := b.alive("ResizeElement"); err != nil {
		return err
	}
	size, err := rendering.NewSize(size.Width, size.Height)
	if err != nil {
		return errors.New("binding.ResizeElement", errors.KindValidation, err)
	}
	b.logicalSize = size
	b.element.SetStyleSize(size)
	if b.strategy != nil {
		b.strategy.invalidate()
	}
	return nil
}

// BitmapSize returns the element's actual backing-store size.
func (b *Binding) BitmapSize() (rendering.Size, error) {
	if err := b.alive("BitmapSize"); err != nil {
		return rendering.Size{}, err
	}
	return b.element.BitmapSize(), nil
}

// SubscribeBitmapSizeChanged registers fn for backing-store reallocations.
func (b *Binding) SubscribeBitmapSizeChanged(fn BitmapSizeChangedListener) (*Subscription, error) {
	if err := b.alive("SubscribeBitmapSizeChanged"); err != nil {
		return nil, err
	}
	return b.bitmapListeners.Add(fn), nil
}

// UnsubscribeBitmapSizeChanged removes a registration. Unknown subscriptions
// are ignored.
func (b *Binding) UnsubscribeBitmapSizeChanged(sub *Subscription) error {
	if err := b.alive("UnsubscribeBitmapSizeChanged"); err != nil {
		return err
	}
	b.bitmapListeners.Remove(sub)
	return nil
}

// SuggestedBitmapSize returns the pending suggestion, or nil when the
// backing store already has the right size.
func (b *Binding) SuggestedBitmapSize() (*rendering.Size, error) {
	if err := b.alive("SuggestedBitmapSize"); err != nil {
		return nil, err
	}
	return copySize(b.suggested), nil
}

// SubscribeSuggestedBitmapSizeChanged registers fn for suggestion changes.
func (b *Binding) SubscribeSuggestedBitmapSizeChanged(fn SuggestedBitmapSizeChangedListener) (*Subscription, error) {
	if err := b.alive("SubscribeSuggestedBitmapSizeChanged"); err != nil {
		return nil, err
	}
	return b.suggestedListeners.Add(fn), nil
}

// UnsubscribeSuggestedBitmapSizeChanged removes a registration. Unknown
// subscriptions are ignored.
func (b *Binding) UnsubscribeSuggestedBitmapSizeChanged(sub *Subscription) error {
	if err := b.alive("UnsubscribeSuggestedBitmapSizeChanged"); err != nil {
		return err
	}
	b.suggestedListeners.Remove(sub)
	return nil
}

// ApplySuggestedBitmapSize reallocates the backing store to the pending
// suggestion and clears it. It does nothing when no suggestion is pending.
func (b *Binding) ApplySuggestedBitmapSize() error {
	if err := b.alive("ApplySuggestedBitmapSize"); err != nil {
		return err
	}
	if b.suggested == nil {
		return nil
	}
	old := b.suggested
	b.suggested = nil
	b.resizeBitmap(*old)
	b.emitSuggestedChanged(old, nil)
	return nil
}

// Dispose stops observation, drops every listener and releases the element.
// Every later call, including Dispose, fails with a state error.
func (b *Binding) Dispose() error {
	if err := b.alive("Dispose"); err != nil {
		return err
	}
	if b.strategy != nil {
		b.strategy.dispose()
		b.strategy = nil
	}
	b.bitmapListeners.Clear()
	b.suggestedListeners.Clear()
	b.suggested = nil
	b.element = nil
	b.window = nil
	b.state = StateDisposed
	return nil
}

// resizeBitmap writes size to the backing store unless it already has it.
// Listeners receive the size the host actually allocated.
func (b *Binding) resizeBitmap(size rendering.Size) {
	oldSize := b.element.BitmapSize()
	if oldSize.Equal(size) {
		return
	}
	b.element.SetBitmapSize(size)
	newSize := b.element.BitmapSize()
	if newSize.Equal(oldSize) {
		return
	}
	errors.Logger().Debug("bitmap resized", "from", oldSize, "to", newSize, "requested", size)
	b.bitmapListeners.Each(func(fn BitmapSizeChangedListener) {
		fn(oldSize, newSize)
	})
}

func (b *Binding) emitSuggestedChanged(oldSize, newSize *rendering.Size) {
	b.suggestedListeners.Each(func(fn SuggestedBitmapSizeChangedListener) {
		fn(copySize(oldSize), copySize(newSize))
	})
}

func copySize(s *rendering.Size) *rendering.Size {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func equalSuggestions(a, b *rendering.Size) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
