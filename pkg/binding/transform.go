package binding

import (
	"math"

	"github.com/go-drift/hidpi/pkg/rendering"
)

// SizeTransform adjusts a candidate backing-store size before it becomes a
// suggestion. Returning false discards the candidate and keeps the current
// suggestion. A transform must not return a negative size.
type SizeTransform func(bitmapSize, logicalSize rendering.Size) (rendering.Size, bool)

// ClampTransform limits each side of the backing store to max device pixels.
func ClampTransform(max float64) SizeTransform {
	return func(bitmap, _ rendering.Size) (rendering.Size, bool) {
		return bitmap.Min(rendering.Size{Width: max, Height: max}), true
	}
}

// EvenTransform rounds each side down to an even number of device pixels,
// which keeps the center of the surface on a pixel boundary.
func EvenTransform(bitmap, _ rendering.Size) (rendering.Size, bool) {
	return rendering.Size{
		Width:  even(bitmap.Width),
		Height: even(bitmap.Height),
	}, true
}

func even(v float64) float64 {
	return 2 * math.Floor(v/2)
}

// ComposeTransforms applies transforms in order. Nil entries are skipped and
// the first transform to discard stops the chain.
func ComposeTransforms(transforms ...SizeTransform) SizeTransform {
	var chain []SizeTransform
	for _, t := range transforms {
		if t != nil {
			chain = append(chain, t)
		}
	}
	switch len(chain) {
	case 0:
		return nil
	case 1:
		return chain[0]
	}
	return func(bitmap, logical rendering.Size) (rendering.Size, bool) {
		for _, t := range chain {
			var ok bool
			if bitmap, ok = t(bitmap, logical); !ok {
				return rendering.Size{}, false
			}
		}
		return bitmap, true
	}
}
