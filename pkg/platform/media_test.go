package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolutionQueryRoundTrip(t *testing.T) {
	for _, dppx := range []float64{1, 1.25, 1.5, 2, 2.625, 3} {
		q := ResolutionQuery(dppx)
		got, ok := ParseResolutionQuery(q)
		assert.True(t, ok, q)
		assert.Equal(t, dppx, got, q)
	}
	assert.Equal(t, "all and (resolution: 1.25dppx)", ResolutionQuery(1.25))
}

func TestParseResolutionQueryRejects(t *testing.T) {
	for _, q := range []string{
		"",
		"screen and (min-resolution: 2dppx)",
		"all and (resolution: xdppx)",
		"all and (resolution: 2dpi)",
		"all and (resolution: -1dppx)",
	} {
		_, ok := ParseResolutionQuery(q)
		assert.False(t, ok, q)
	}
}

func TestBoxString(t *testing.T) {
	assert.Equal(t, "content-box", BoxContentBox.String())
	assert.Equal(t, "border-box", BoxBorderBox.String())
	assert.Equal(t, "device-pixel-content-box", BoxDevicePixelContentBox.String())
}

func TestEntryHasDevicePixelContentBoxSize(t *testing.T) {
	assert.False(t, ResizeObserverEntry{}.HasDevicePixelContentBoxSize())
	assert.True(t, ResizeObserverEntry{DevicePixelContentBoxSize: []BoxSize{{InlineSize: 1, BlockSize: 1}}}.HasDevicePixelContentBoxSize())
}
