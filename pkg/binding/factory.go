package binding

import (
	"github.com/go-drift/hidpi/pkg/errors"
	"github.com/go-drift/hidpi/pkg/platform"
	"github.com/go-drift/hidpi/pkg/probe"
)

// Kind names what a binding tracks.
type Kind string

// KindDevicePixelContentBox tracks the element's content box in device pixels.
const KindDevicePixelContentBox Kind = "device-pixel-content-box"

// Options tunes strategy selection and size computation.
//
// The zero value disables both capabilities, so Options{AllowDownsampling:
// false} also turns the native observer off. To change one field, start from
// DefaultOptions:
//
//	opts := binding.DefaultOptions()
//	opts.AllowDownsampling = false
type Options struct {
	// AllowNativeObserver lets the binding use the host's device-pixel
	// content box when available. When false, density polling is used.
	AllowNativeObserver bool `yaml:"allow_native_observer"`
	// AllowDownsampling permits backing stores smaller than the displayed
	// size, which happens at densities below 1.
	AllowDownsampling bool `yaml:"allow_downsampling"`
}

// DefaultOptions returns options with every capability enabled.
func DefaultOptions() Options {
	return Options{AllowNativeObserver: true, AllowDownsampling: true}
}

// Target describes a binding request.
type Target struct {
	Kind      Kind
	Transform SizeTransform
	// Options defaults to DefaultOptions when nil. A non-nil value replaces
	// every field, see Options.
	Options *Options
}

// Factory creates bindings. It remembers per-window capability probes so
// bindings on the same window detect their strategy without new probes.
type Factory struct {
	probes *probe.Cache
}

// NewFactory returns a factory with an empty probe cache.
func NewFactory() *Factory {
	return &Factory{probes: probe.NewCache()}
}

var defaultFactory = NewFactory()

// Bind binds el using the default factory.
func Bind(el platform.Element, target Target) (*Binding, error) {
	return defaultFactory.Bind(el, target)
}

// Bind creates a binding for el. The strategy is selected asynchronously
// unless target options disable the native observer.
func (f *Factory) Bind(el platform.Element, target Target) (*Binding, error) {
	if el == nil {
		return nil, errors.New("binding.Bind", errors.KindValidation, errors.ErrNilElement)
	}
	if target.Kind != KindDevicePixelContentBox {
		return nil, errors.Newf("binding.Bind", errors.KindUnsupportedTarget, "%w: %q", errors.ErrUnsupportedTarget, target.Kind)
	}
	win := el.Window()
	if win == nil {
		return nil, errors.New("binding.Bind", errors.KindEnvironment, errors.ErrNoWindow)
	}
	opts := DefaultOptions()
	if target.Options != nil {
		opts = *target.Options
	}
	b := newBinding(el, win, target.Transform, opts)
	b.start(f.probes.Detect)
	return b, nil
}
