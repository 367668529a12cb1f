package target

import (
	"github.com/go-drift/hidpi/pkg/binding"
	"github.com/go-drift/hidpi/pkg/errors"
	"github.com/go-drift/hidpi/pkg/platform"
)

// Create snapshots b's element into a target. It fails when b is disposed,
// when either size has no area, or when the element has no 2D context.
func Create(b *binding.Binding, opts *platform.ContextOptions) (*Target, error) {
	el, err := b.Element()
	if err != nil {
		return nil, err
	}
	media, err := b.ElementLogicalSize()
	if err != nil {
		return nil, err
	}
	bitmap, err := b.BitmapSize()
	if err != nil {
		return nil, err
	}
	if opts == nil {
		opts = platform.DefaultContextOptions()
	}
	canvas, ok := el.Context2D(opts)
	if !ok {
		return nil, errors.New("target.Create", errors.KindEnvironment, errors.ErrNoContext)
	}
	return New(canvas, media, bitmap)
}

// TryCreate is like Create but returns a nil target and nil error when the
// element has no area yet or no 2D context, so a frame can be skipped. Other
// failures, such as a disposed binding, are returned.
func TryCreate(b *binding.Binding, opts *platform.ContextOptions) (*Target, error) {
	t, err := Create(b, opts)
	switch {
	case err == nil:
		return t, nil
	case errors.IsKind(err, errors.KindValidation), errors.Is(err, errors.ErrNoContext):
		errors.Logger().Debug("rendering target unavailable", "err", err)
		return nil, nil
	default:
		return nil, err
	}
}
