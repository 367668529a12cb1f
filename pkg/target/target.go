// Package target draws into a bound surface in either logical or device
// pixel units.
//
// A Target is a snapshot of a drawing context and the two sizes of its
// surface, taken when it is created. Create a new one every frame: after the
// binding applies a new backing-store size the old snapshot is stale.
package target

import (
	"github.com/go-drift/hidpi/pkg/errors"
	"github.com/go-drift/hidpi/pkg/rendering"
)

// Target is an immutable drawing snapshot.
type Target struct {
	canvas     rendering.Canvas
	mediaSize  rendering.Size
	bitmapSize rendering.Size
}

// MediaScope is passed to UseMediaCoordinateSpace callbacks. Canvas
// coordinates are logical units.
type MediaScope struct {
	Canvas     rendering.Canvas
	MediaSize  rendering.Size
	BitmapSize rendering.Size
}

// BitmapScope is passed to UseBitmapCoordinateSpace callbacks. Canvas
// coordinates are device pixels.
type BitmapScope struct {
	Canvas               rendering.Canvas
	MediaSize            rendering.Size
	BitmapSize           rendering.Size
	HorizontalPixelRatio float64
	VerticalPixelRatio   float64
}

// New returns a target for canvas. Both sizes need positive width and height.
func New(canvas rendering.Canvas, mediaSize, bitmapSize rendering.Size) (*Target, error) {
	if canvas == nil {
		return nil, errors.New("target.New", errors.KindEnvironment, errors.ErrNoContext)
	}
	if !positive(mediaSize) {
		return nil, errors.Newf("target.New", errors.KindValidation, "%w: media size %vx%v", errors.ErrEmptySize, mediaSize.Width, mediaSize.Height)
	}
	if !positive(bitmapSize) {
		return nil, errors.Newf("target.New", errors.KindValidation, "%w: bitmap size %vx%v", errors.ErrEmptySize, bitmapSize.Width, bitmapSize.Height)
	}
	return &Target{canvas: canvas, mediaSize: mediaSize, bitmapSize: bitmapSize}, nil
}

func positive(s rendering.Size) bool {
	return s.Width > 0 && s.Height > 0
}

// MediaSize returns the logical size.
func (t *Target) MediaSize() rendering.Size {
	return t.mediaSize
}

// BitmapSize returns the backing-store size.
func (t *Target) BitmapSize() rendering.Size {
	return t.bitmapSize
}

// HorizontalPixelRatio is the bitmap width per logical unit.
func (t *Target) HorizontalPixelRatio() float64 {
	return t.bitmapSize.Width / t.mediaSize.Width
}

// VerticalPixelRatio is the bitmap height per logical unit.
func (t *Target) VerticalPixelRatio() float64 {
	return t.bitmapSize.Height / t.mediaSize.Height
}

// UseMediaCoordinateSpace calls fn with the transform reset and scaled so
// that one unit is one logical pixel. The previous transform is restored when
// fn returns or panics; the panic is not recovered.
func (t *Target) UseMediaCoordinateSpace(fn func(MediaScope) error) error {
	return t.use(func() error {
		t.canvas.Scale(t.HorizontalPixelRatio(), t.VerticalPixelRatio())
		return fn(MediaScope{
			Canvas:     t.canvas,
			MediaSize:  t.mediaSize,
			BitmapSize: t.bitmapSize,
		})
	})
}

// UseBitmapCoordinateSpace calls fn with an identity transform so that one
// unit is one device pixel. The ratios are passed for callers that scale
// selectively, e.g. to keep hairlines one device pixel wide.
func (t *Target) UseBitmapCoordinateSpace(fn func(BitmapScope) error) error {
	return t.use(func() error {
		return fn(BitmapScope{
			Canvas:               t.canvas,
			MediaSize:            t.mediaSize,
			BitmapSize:           t.bitmapSize,
			HorizontalPixelRatio: t.HorizontalPixelRatio(),
			VerticalPixelRatio:   t.VerticalPixelRatio(),
		})
	})
}

func (t *Target) use(fn func() error) error {
	t.canvas.Save()
	defer t.canvas.Restore()
	t.canvas.ResetTransform()
	return fn()
}
