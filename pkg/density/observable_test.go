package density

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/hidpi/pkg/platform/offscreen"
)

func TestValueReadsWindow(t *testing.T) {
	w := offscreen.NewWindow(offscreen.WithDevicePixelRatio(2))
	o := New(w)
	defer o.Dispose()

	assert.Equal(t, 2.0, o.Value())
	w.SetDevicePixelRatio(3)
	assert.Equal(t, 3.0, o.Value(), "value is never cached")
}

func TestNotifiesAndRearms(t *testing.T) {
	w := offscreen.NewWindow(offscreen.WithDevicePixelRatio(1))
	o := New(w)
	defer o.Dispose()

	var got []float64
	o.Subscribe(func(d float64) { got = append(got, d) })

	for _, d := range []float64{2, 1.5, 3, 1} {
		w.SetDevicePixelRatio(d)
		w.Flush()
	}
	assert.Equal(t, []float64{2, 1.5, 3, 1}, got)
	assert.Equal(t, 1, w.MediaListeners(), "exactly one live registration")
}

func TestMultipleSubscribers(t *testing.T) {
	w := offscreen.NewWindow()
	o := New(w)
	defer o.Dispose()

	var a, b int
	subA := o.Subscribe(func(float64) { a++ })
	o.Subscribe(func(float64) { b++ })

	w.SetDevicePixelRatio(2)
	w.Flush()
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)

	subA.Unsubscribe()
	subA.Unsubscribe()
	w.SetDevicePixelRatio(3)
	w.Flush()
	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}

func TestDisposeStopsNotifications(t *testing.T) {
	w := offscreen.NewWindow()
	o := New(w)
	calls := 0
	o.Subscribe(func(float64) { calls++ })

	w.SetDevicePixelRatio(2)
	o.Dispose()
	o.Dispose()
	w.Flush()

	assert.Equal(t, 0, calls, "queued change after dispose is dropped")
	assert.Equal(t, 0, w.MediaListeners())

	w.SetDevicePixelRatio(1)
	w.Flush()
	assert.Equal(t, 0, calls)
}

func TestDisposeFromSubscriber(t *testing.T) {
	w := offscreen.NewWindow()
	o := New(w)
	var second int
	o.Subscribe(func(float64) { o.Dispose() })
	o.Subscribe(func(float64) { second++ })

	w.SetDevicePixelRatio(2)
	w.Flush()
	assert.Equal(t, 0, second)
	require.Equal(t, 0, w.MediaListeners())
}

func TestPanickingSubscriberDoesNotFreezeDetection(t *testing.T) {
	w := offscreen.NewWindow()
	o := New(w)
	defer o.Dispose()

	var got []float64
	first := true
	o.Subscribe(func(d float64) {
		if first {
			first = false
			panic("subscriber failure")
		}
		got = append(got, d)
	})

	w.SetDevicePixelRatio(2)
	assert.Panics(t, w.Flush)
	w.SetDevicePixelRatio(3)
	w.Flush()
	assert.Equal(t, []float64{3}, got)
}
