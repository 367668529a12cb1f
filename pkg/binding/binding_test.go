package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/hidpi/pkg/errors"
	"github.com/go-drift/hidpi/pkg/platform/offscreen"
	"github.com/go-drift/hidpi/pkg/rendering"
)

type capture struct {
	errs   []*errors.Error
	panics []*errors.PanicError
}

func (c *capture) HandleError(err *errors.Error)       { c.errs = append(c.errs, err) }
func (c *capture) HandlePanic(err *errors.PanicError) { c.panics = append(c.panics, err) }

func captureErrors(t *testing.T) *capture {
	c := &capture{}
	errors.SetHandler(c)
	t.Cleanup(func() { errors.SetHandler(nil) })
	return c
}

type suggestion struct {
	old, new *rendering.Size
}

type recorder struct {
	suggestions []suggestion
	resizes     [][2]rendering.Size
}

func record(t *testing.T, b *Binding) *recorder {
	t.Helper()
	r := &recorder{}
	_, err := b.SubscribeSuggestedBitmapSizeChanged(func(old, new *rendering.Size) {
		r.suggestions = append(r.suggestions, suggestion{old, new})
	})
	require.NoError(t, err)
	_, err = b.SubscribeBitmapSizeChanged(func(old, new rendering.Size) {
		r.resizes = append(r.resizes, [2]rendering.Size{old, new})
	})
	require.NoError(t, err)
	return r
}

func size(w, h float64) *rendering.Size {
	return &rendering.Size{Width: w, Height: h}
}

var (
	nativeOnly  = &Options{AllowNativeObserver: true, AllowDownsampling: true}
	pollingOnly = &Options{AllowNativeObserver: false, AllowDownsampling: true}
)

func bind(t *testing.T, el *offscreen.Element, opts *Options, transform SizeTransform) *Binding {
	t.Helper()
	b, err := NewFactory().Bind(el, Target{Kind: KindDevicePixelContentBox, Options: opts, Transform: transform})
	require.NoError(t, err)
	return b
}

func TestSuggestAndApply(t *testing.T) {
	for _, tc := range []struct {
		name     string
		win      []offscreen.Option
		opts     *Options
		strategy State
	}{
		{"native", nil, nativeOnly, StateNativeObserverActive},
		{"polling", nil, pollingOnly, StateDensityPollingActive},
		{"probe fails", []offscreen.Option{offscreen.WithoutDevicePixelContentBox()}, nil, StateDensityPollingActive},
		{"no observer", []offscreen.Option{offscreen.WithoutResizeObserver()}, nil, StateDensityPollingActive},
	} {
		t.Run(tc.name, func(t *testing.T) {
			captureErrors(t)
			w := offscreen.NewWindow(append(tc.win, offscreen.WithDevicePixelRatio(2))...)
			el := w.NewElement(100, 100)
			b := bind(t, el, tc.opts, nil)
			rec := record(t, b)

			w.Settle()
			assert.Equal(t, tc.strategy, b.State())
			require.Len(t, rec.suggestions, 1)
			assert.Nil(t, rec.suggestions[0].old)
			assert.Equal(t, size(200, 200), rec.suggestions[0].new)

			suggested, err := b.SuggestedBitmapSize()
			require.NoError(t, err)
			assert.Equal(t, size(200, 200), suggested)

			require.NoError(t, b.ApplySuggestedBitmapSize())
			assert.Equal(t, [][2]rendering.Size{{{Width: 300, Height: 150}, {Width: 200, Height: 200}}}, rec.resizes)
			require.Len(t, rec.suggestions, 2)
			assert.Equal(t, suggestion{size(200, 200), nil}, rec.suggestions[1])

			bitmap, err := b.BitmapSize()
			require.NoError(t, err)
			assert.Equal(t, rendering.Size{Width: 200, Height: 200}, bitmap)

			w.Settle()
			assert.Len(t, rec.suggestions, 2, "no new suggestion once applied")
		})
	}
}

func TestDensityChange(t *testing.T) {
	for _, opts := range []*Options{nativeOnly, pollingOnly} {
		w := offscreen.NewWindow(offscreen.WithDevicePixelRatio(2))
		el := w.NewElement(100, 50)
		b := bind(t, el, opts, nil)
		w.Settle()
		require.NoError(t, b.ApplySuggestedBitmapSize())
		rec := record(t, b)

		w.SetDevicePixelRatio(3)
		w.Settle()
		require.Len(t, rec.suggestions, 1)
		assert.Equal(t, size(300, 150), rec.suggestions[0].new)

		w.SetDevicePixelRatio(2)
		w.Settle()
		require.Len(t, rec.suggestions, 2)
		assert.Equal(t, suggestion{size(300, 150), nil}, rec.suggestions[1], "back to the actual size")
	}
}

func TestResizeElement(t *testing.T) {
	w := offscreen.NewWindow(offscreen.WithDevicePixelRatio(2))
	el := w.NewElement(100, 100)
	b := bind(t, el, nativeOnly, nil)
	w.Settle()
	rec := record(t, b)

	require.NoError(t, b.ResizeElement(rendering.Size{Width: 40, Height: 30}))
	assert.Equal(t, []rendering.Size{{Width: 40, Height: 30}}, el.StyleWrites())
	logical, err := b.ElementLogicalSize()
	require.NoError(t, err)
	assert.Equal(t, rendering.Size{Width: 40, Height: 30}, logical)

	w.Settle()
	require.Len(t, rec.suggestions, 1)
	assert.Equal(t, suggestion{size(200, 200), size(80, 60)}, rec.suggestions[0])

	err = b.ResizeElement(rendering.Size{Width: -1, Height: 10})
	assert.True(t, errors.IsKind(err, errors.KindValidation))
	assert.ErrorIs(t, err, errors.ErrNegativeSize)
}

func TestPollingCoalescesFrames(t *testing.T) {
	w := offscreen.NewWindow(offscreen.WithDevicePixelRatio(2))
	el := w.NewElement(100, 100)
	b := bind(t, el, pollingOnly, nil)
	assert.Equal(t, StateDensityPollingActive, b.State(), "polling starts synchronously")
	assert.Equal(t, 1, w.PendingFrames())

	rec := record(t, b)
	require.NoError(t, b.ResizeElement(rendering.Size{Width: 10, Height: 10}))
	require.NoError(t, b.ResizeElement(rendering.Size{Width: 20, Height: 10}))
	assert.Equal(t, 1, w.PendingFrames())

	w.RunFrame()
	require.Len(t, rec.suggestions, 1)
	assert.Equal(t, size(40, 20), rec.suggestions[0].new)
}

func TestPredictBitmapSize(t *testing.T) {
	w := offscreen.NewWindow()
	el := w.NewElement(101, 50)
	el.SetPosition(0.5, 0.25)

	// round(0.75 + 151.5) - round(0.75) = 152 - 1
	got := predictBitmapSize(el, el.ClientSize(), 1.5)
	assert.Equal(t, rendering.Size{Width: 151, Height: 75}, got)

	el.SetDisplayed(false)
	got = predictBitmapSize(el, rendering.Size{Width: 101, Height: 50}, 1.5)
	assert.Equal(t, rendering.Size{Width: 152, Height: 75}, got, "no layout box: round(logical*ratio)")
}

func TestPollingMatchesHostSnapping(t *testing.T) {
	for _, ratio := range []float64{1.25, 1.5, 1.75, 2.5} {
		w := offscreen.NewWindow(offscreen.WithDevicePixelRatio(ratio))
		el := w.NewElement(101, 33)
		el.SetPosition(0.5, 7.3)

		native := bind(t, el, nativeOnly, nil)
		w.Settle()
		want, err := native.SuggestedBitmapSize()
		require.NoError(t, err)
		require.NoError(t, native.Dispose())

		polling := bind(t, el, pollingOnly, nil)
		w.Settle()
		got, err := polling.SuggestedBitmapSize()
		require.NoError(t, err)
		assert.Equal(t, want, got, "ratio %v", ratio)
		require.NoError(t, polling.Dispose())
	}
}

func TestDownsampling(t *testing.T) {
	for _, tc := range []struct {
		name string
		opts *Options
		want *rendering.Size
	}{
		{"native allowed", nativeOnly, size(50, 25)},
		{"native clamped", &Options{AllowNativeObserver: true}, size(100, 50)},
		{"polling allowed", pollingOnly, size(50, 25)},
		{"polling clamped", &Options{}, size(100, 50)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			w := offscreen.NewWindow(offscreen.WithDevicePixelRatio(0.5))
			el := w.NewElement(100, 50)
			b := bind(t, el, tc.opts, nil)
			w.Settle()
			got, err := b.SuggestedBitmapSize()
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestOptionsReplaceDefaults(t *testing.T) {
	w := offscreen.NewWindow()

	opts := DefaultOptions()
	opts.AllowDownsampling = false
	b := bind(t, w.NewElement(10, 10), &opts, nil)
	w.Settle()
	assert.Equal(t, StateNativeObserverActive, b.State(), "edited defaults keep the native observer")

	b = bind(t, w.NewElement(10, 10), &Options{AllowDownsampling: false}, nil)
	assert.Equal(t, StateDensityPollingActive, b.State(), "zero value disables the native observer")
}

func TestTransform(t *testing.T) {
	w := offscreen.NewWindow(offscreen.WithDevicePixelRatio(2))
	el := w.NewElement(100, 100)

	var calls [][2]rendering.Size
	halve := func(bitmap, logical rendering.Size) (rendering.Size, bool) {
		calls = append(calls, [2]rendering.Size{bitmap, logical})
		return bitmap.Scale(0.5, 0.5), true
	}
	b := bind(t, el, pollingOnly, halve)
	w.Settle()
	require.Len(t, calls, 1)
	assert.Equal(t, [2]rendering.Size{{Width: 200, Height: 200}, {Width: 100, Height: 100}}, calls[0])
	got, err := b.SuggestedBitmapSize()
	require.NoError(t, err)
	assert.Equal(t, size(100, 100), got)
}

func TestFractionalTransformIsRounded(t *testing.T) {
	w := offscreen.NewWindow()
	el := w.NewElement(101, 101)
	halve := func(bitmap, _ rendering.Size) (rendering.Size, bool) {
		return bitmap.Scale(0.5, 0.5), true
	}
	b := bind(t, el, pollingOnly, halve)
	rec := record(t, b)
	w.Settle()

	got, err := b.SuggestedBitmapSize()
	require.NoError(t, err)
	assert.Equal(t, size(51, 51), got)

	require.NoError(t, b.ApplySuggestedBitmapSize())
	assert.Equal(t, [][2]rendering.Size{{{Width: 300, Height: 150}, {Width: 51, Height: 51}}}, rec.resizes)
	assert.Equal(t, rendering.Size{Width: 51, Height: 51}, el.BitmapSize())

	require.NoError(t, b.ResizeElement(rendering.Size{Width: 101, Height: 101}))
	w.Settle()
	got, err = b.SuggestedBitmapSize()
	require.NoError(t, err)
	assert.Nil(t, got, "rounded suggestion matches the applied backing store")
	assert.Len(t, rec.suggestions, 2)
}

// clampingElement allocates at most 64x64 pixels, like a host with a
// texture size limit.
type clampingElement struct {
	*offscreen.Element
}

func (e clampingElement) SetBitmapSize(s rendering.Size) {
	e.Element.SetBitmapSize(s.Min(rendering.Size{Width: 64, Height: 64}))
}

func TestBitmapChangeReportsAllocatedSize(t *testing.T) {
	w := offscreen.NewWindow()
	el := clampingElement{w.NewElement(100, 100)}
	b, err := NewFactory().Bind(el, Target{Kind: KindDevicePixelContentBox, Options: pollingOnly})
	require.NoError(t, err)
	rec := record(t, b)
	w.Settle()

	require.NoError(t, b.ApplySuggestedBitmapSize())
	assert.Equal(t, [][2]rendering.Size{{{Width: 300, Height: 150}, {Width: 64, Height: 64}}}, rec.resizes)
	got, err := b.BitmapSize()
	require.NoError(t, err)
	assert.Equal(t, rendering.Size{Width: 64, Height: 64}, got)
}

func TestTransformDiscards(t *testing.T) {
	w := offscreen.NewWindow(offscreen.WithDevicePixelRatio(2))
	el := w.NewElement(100, 100)
	b := bind(t, el, nativeOnly, func(rendering.Size, rendering.Size) (rendering.Size, bool) {
		return rendering.Size{}, false
	})
	rec := record(t, b)
	w.Settle()
	assert.Empty(t, rec.suggestions)
	got, err := b.SuggestedBitmapSize()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestInvalidTransformResultIsReported(t *testing.T) {
	c := captureErrors(t)
	w := offscreen.NewWindow(offscreen.WithDevicePixelRatio(2))
	el := w.NewElement(100, 100)
	b := bind(t, el, pollingOnly, func(rendering.Size, rendering.Size) (rendering.Size, bool) {
		return rendering.Size{Width: -1, Height: 5}, true
	})
	rec := record(t, b)
	w.Settle()
	assert.Empty(t, rec.suggestions)
	require.Len(t, c.errs, 1)
	assert.Equal(t, errors.KindValidation, c.errs[0].Kind)
}

func TestSuggestionEqualToBitmapIsAbsent(t *testing.T) {
	w := offscreen.NewWindow(offscreen.WithDevicePixelRatio(2))
	el := w.NewElement(150, 75)
	b := bind(t, el, nativeOnly, nil)
	rec := record(t, b)
	w.Settle()
	assert.Empty(t, rec.suggestions, "300x150 is already the backing-store size")
}

func TestApplyWithoutSuggestion(t *testing.T) {
	w := offscreen.NewWindow()
	el := w.NewElement(300, 150)
	b := bind(t, el, nativeOnly, nil)
	rec := record(t, b)
	w.Settle()
	require.NoError(t, b.ApplySuggestedBitmapSize())
	assert.Empty(t, rec.suggestions)
	assert.Empty(t, rec.resizes)
	assert.Equal(t, 0, el.BitmapWrites())
}

func TestUnsubscribeByIdentity(t *testing.T) {
	w := offscreen.NewWindow(offscreen.WithDevicePixelRatio(2))
	el := w.NewElement(100, 100)
	b := bind(t, el, nativeOnly, nil)

	calls := 0
	fn := func(_, _ *rendering.Size) { calls++ }
	first, err := b.SubscribeSuggestedBitmapSizeChanged(fn)
	require.NoError(t, err)
	_, err = b.SubscribeSuggestedBitmapSizeChanged(fn)
	require.NoError(t, err)
	require.NoError(t, b.UnsubscribeSuggestedBitmapSizeChanged(first))
	require.NoError(t, b.UnsubscribeSuggestedBitmapSizeChanged(first))

	w.Settle()
	assert.Equal(t, 1, calls)
}

func TestListenerPanicIsRecovered(t *testing.T) {
	c := captureErrors(t)
	w := offscreen.NewWindow(offscreen.WithDevicePixelRatio(2))
	el := w.NewElement(100, 100)
	b := bind(t, el, nativeOnly, nil)
	_, err := b.SubscribeSuggestedBitmapSizeChanged(func(_, _ *rendering.Size) { panic("listener") })
	require.NoError(t, err)

	assert.NotPanics(t, w.Settle)
	require.Len(t, c.panics, 1)
	assert.Equal(t, "binding.onResize", c.panics[0].Op)
	got, err := b.SuggestedBitmapSize()
	require.NoError(t, err)
	assert.Equal(t, size(200, 200), got)
}

func TestDispose(t *testing.T) {
	for _, opts := range []*Options{nativeOnly, pollingOnly} {
		w := offscreen.NewWindow(offscreen.WithDevicePixelRatio(2))
		el := w.NewElement(100, 100)
		b := bind(t, el, opts, nil)
		w.Settle()
		rec := record(t, b)

		require.NoError(t, b.Dispose())
		assert.Equal(t, StateDisposed, b.State())
		assert.Equal(t, 0, w.Observers())
		assert.Equal(t, 0, w.MediaListeners())
		assert.Equal(t, 0, w.PendingFrames())

		w.SetDevicePixelRatio(3)
		w.Settle()
		assert.Empty(t, rec.suggestions)

		checks := map[string]error{
			"Dispose":                  b.Dispose(),
			"ApplySuggestedBitmapSize": b.ApplySuggestedBitmapSize(),
			"ResizeElement":            b.ResizeElement(rendering.Size{Width: 1, Height: 1}),
		}
		_, checks["Element"] = b.Element()
		_, checks["BitmapSize"] = b.BitmapSize()
		_, checks["SuggestedBitmapSize"] = b.SuggestedBitmapSize()
		_, checks["ElementLogicalSize"] = b.ElementLogicalSize()
		_, checks["SubscribeBitmapSizeChanged"] = b.SubscribeBitmapSizeChanged(func(_, _ rendering.Size) {})
		for op, err := range checks {
			assert.True(t, errors.IsKind(err, errors.KindState), op)
			assert.ErrorIs(t, err, errors.ErrDisposed, op)
		}
	}
}

func TestDisposeBeforeDetection(t *testing.T) {
	w := offscreen.NewWindow(offscreen.WithDevicePixelRatio(2))
	el := w.NewElement(100, 100)
	b := bind(t, el, nil, nil)
	assert.Equal(t, StateDetectingStrategy, b.State())
	rec := record(t, b)

	require.NoError(t, b.Dispose())
	w.Settle()
	assert.Equal(t, StateDisposed, b.State())
	assert.Empty(t, rec.suggestions)
	assert.Equal(t, 0, w.Observers())
	assert.Equal(t, 0, w.MediaListeners())
	assert.Equal(t, 0, el.BitmapWrites())
}

func TestPollingDisposeCancelsFrame(t *testing.T) {
	w := offscreen.NewWindow()
	b := bind(t, w.NewElement(10, 10), pollingOnly, nil)
	require.Equal(t, 1, w.PendingFrames())
	require.NoError(t, b.Dispose())
	assert.Equal(t, 0, w.PendingFrames())
}

func TestBindErrors(t *testing.T) {
	w := offscreen.NewWindow()

	_, err := Bind(nil, Target{Kind: KindDevicePixelContentBox})
	assert.True(t, errors.IsKind(err, errors.KindValidation))
	assert.ErrorIs(t, err, errors.ErrNilElement)

	_, err = Bind(w.NewElement(1, 1), Target{Kind: "content-box"})
	assert.True(t, errors.IsKind(err, errors.KindUnsupportedTarget))
	assert.ErrorIs(t, err, errors.ErrUnsupportedTarget)

	_, err = Bind(offscreen.NewDetachedElement(1, 1), Target{Kind: KindDevicePixelContentBox})
	assert.True(t, errors.IsKind(err, errors.KindEnvironment))
	assert.ErrorIs(t, err, errors.ErrNoWindow)
}

func TestFactorySharesProbe(t *testing.T) {
	w := offscreen.NewWindow(offscreen.WithDevicePixelRatio(2))
	f := NewFactory()
	target := Target{Kind: KindDevicePixelContentBox}

	first, err := f.Bind(w.NewElement(10, 10), target)
	require.NoError(t, err)
	w.Settle()
	require.Equal(t, StateNativeObserverActive, first.State())
	require.Equal(t, 1, w.Observers())

	second, err := f.Bind(w.NewElement(20, 20), target)
	require.NoError(t, err)
	assert.Equal(t, 1, w.Observers(), "memoized probe observes nothing")
	w.Flush()
	assert.Equal(t, StateNativeObserverActive, second.State())
	assert.Equal(t, 2, w.Observers())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "constructed", StateConstructed.String())
	assert.Equal(t, "detecting-strategy", StateDetectingStrategy.String())
	assert.Equal(t, "native-observer", StateNativeObserverActive.String())
	assert.Equal(t, "density-polling", StateDensityPollingActive.String())
	assert.Equal(t, "disposed", StateDisposed.String())
	assert.Equal(t, "unknown", State(42).String())
}
