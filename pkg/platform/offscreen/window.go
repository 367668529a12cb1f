// Package offscreen is an in-memory platform host.
//
// It models a browser-like window on a single event goroutine: tasks queued
// with QueueTask run on Flush, animation frames and resize observations are
// delivered by RunFrame, and density changes fire media-query listeners the
// way a real display change would. Backing stores are *image.RGBA.
//
// It backs headless rendering and makes binding behavior reproducible in tests.
package offscreen

import (
	"math"
	"slices"

	"github.com/go-drift/hidpi/pkg/platform"
)

// maxFramesPerSettle bounds Settle so a binding that requests frames forever
// cannot hang a test.
const maxFramesPerSettle = 64

// Option configures a Window.
type Option func(*Window)

// WithDevicePixelRatio sets the initial density.
func WithDevicePixelRatio(ratio float64) Option {
	return func(w *Window) { w.dpr = ratio }
}

// WithoutResizeObserver makes NewResizeObserver fail.
func WithoutResizeObserver() Option {
	return func(w *Window) { w.resizeObserver = false }
}

// WithoutDevicePixelContentBox makes resize observer entries omit the
// device-pixel content box.
func WithoutDevicePixelContentBox() Option {
	return func(w *Window) { w.devicePixelBox = false }
}

// WithoutBody creates the window without a document body.
func WithoutBody() Option {
	return func(w *Window) { w.noBody = true }
}

// Window is an in-memory platform.Window.
type Window struct {
	dpr            float64
	resizeObserver bool
	devicePixelBox bool
	noBody         bool

	tasks       []func()
	frames      []frameRequest
	nextFrameID int
	queries     []*mediaQueryList
	observers   []*resizeObserver
	body        *Element
}

type frameRequest struct {
	id int
	fn func()
}

var _ platform.Window = (*Window)(nil)

// NewWindow returns a window with density 1 and a 1024x768 body.
func NewWindow(opts ...Option) *Window {
	w := &Window{
		dpr:            1,
		resizeObserver: true,
		devicePixelBox: true,
	}
	for _, opt := range opts {
		opt(w)
	}
	if !w.noBody {
		w.body = w.NewElement(1024, 768)
	}
	return w
}

// DevicePixelRatio returns the current density.
func (w *Window) DevicePixelRatio() float64 {
	return w.dpr
}

// SetDevicePixelRatio changes the density, as moving the window to another
// display or zooming would. Media-query listeners whose match state flips are
// queued as tasks and every observed element is re-measured on the next frame.
func (w *Window) SetDevicePixelRatio(ratio float64) {
	if ratio <= 0 || ratio == w.dpr {
		return
	}
	w.dpr = ratio
	for _, q := range slices.Clone(w.queries) {
		q.reevaluate()
	}
}

// MatchMedia evaluates a resolution query built by platform.ResolutionQuery.
// Other queries never match.
func (w *Window) MatchMedia(query string) platform.MediaQueryList {
	q := &mediaQueryList{win: w, media: query}
	q.matches = q.evaluate()
	w.queries = append(w.queries, q)
	return q
}

// MediaListeners returns the number of registered media-query listeners.
func (w *Window) MediaListeners() int {
	n := 0
	for _, q := range w.queries {
		n += len(q.listeners)
	}
	return n
}

// RequestAnimationFrame schedules fn for the next RunFrame.
func (w *Window) RequestAnimationFrame(fn func()) int {
	w.nextFrameID++
	w.frames = append(w.frames, frameRequest{id: w.nextFrameID, fn: fn})
	return w.nextFrameID
}

// CancelAnimationFrame drops a pending frame request.
func (w *Window) CancelAnimationFrame(id int) {
	w.frames = slices.DeleteFunc(w.frames, func(r frameRequest) bool { return r.id == id })
}

// PendingFrames returns the number of pending frame requests.
func (w *Window) PendingFrames() int {
	return len(w.frames)
}

// QueueTask schedules fn for the next Flush.
func (w *Window) QueueTask(fn func()) {
	w.tasks = append(w.tasks, fn)
}

// Body returns the document body.
func (w *Window) Body() platform.Element {
	if w.body == nil {
		return nil
	}
	return w.body
}

// Flush runs queued tasks, including tasks queued while flushing.
func (w *Window) Flush() {
	for len(w.tasks) > 0 {
		task := w.tasks[0]
		w.tasks = w.tasks[1:]
		task()
	}
}

// RunFrame runs one rendering step: pending tasks, animation frame
// callbacks, resize observations, then the tasks those produced.
func (w *Window) RunFrame() {
	w.Flush()
	frames := w.frames
	w.frames = nil
	for _, r := range frames {
		r.fn()
	}
	w.deliverObservations()
	w.Flush()
}

// Settle runs frames until no tasks, frames or observations are pending.
func (w *Window) Settle() {
	w.Flush()
	for i := 0; i < maxFramesPerSettle && w.pending(); i++ {
		w.RunFrame()
	}
}

func (w *Window) pending() bool {
	if len(w.tasks) > 0 || len(w.frames) > 0 {
		return true
	}
	for _, o := range w.observers {
		if o.hasChanges() {
			return true
		}
	}
	return false
}

func (w *Window) deliverObservations() {
	for _, o := range slices.Clone(w.observers) {
		o.deliver()
	}
}

// snap converts a logical extent starting at edge into device pixels,
// rounding both edges so adjacent elements never leave a seam.
func snap(edge, extent, ratio float64) float64 {
	return math.Round(edge*ratio+extent*ratio) - math.Round(edge*ratio)
}

type mediaQueryList struct {
	win       *Window
	media     string
	matches   bool
	listeners []*mediaListener
}

type mediaListener struct {
	fn      func()
	removed bool
}

func (q *mediaQueryList) Media() string { return q.media }

func (q *mediaQueryList) Matches() bool { return q.matches }

func (q *mediaQueryList) AddListener(fn func()) func() {
	l := &mediaListener{fn: fn}
	q.listeners = append(q.listeners, l)
	return func() {
		l.removed = true
		q.listeners = slices.DeleteFunc(q.listeners, func(x *mediaListener) bool { return x == l })
		if len(q.listeners) == 0 {
			q.win.queries = slices.DeleteFunc(q.win.queries, func(x *mediaQueryList) bool { return x == q })
		}
	}
}

func (q *mediaQueryList) evaluate() bool {
	dppx, ok := platform.ParseResolutionQuery(q.media)
	return ok && dppx == q.win.dpr
}

func (q *mediaQueryList) reevaluate() {
	matches := q.evaluate()
	if matches == q.matches {
		return
	}
	q.matches = matches
	for _, l := range slices.Clone(q.listeners) {
		q.win.QueueTask(func() {
			if !l.removed {
				l.fn()
			}
		})
	}
}
