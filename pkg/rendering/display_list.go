package rendering

// DisplayList is a frozen sequence of canvas calls. A frame recorded once can
// be replayed onto a backing store after every reallocation, or onto several
// bound surfaces.
type DisplayList struct {
	ops  []func(Canvas)
	size Size
}

// Paint replays the list onto canvas in recording order.
func (d *DisplayList) Paint(canvas Canvas) {
	for _, op := range d.ops {
		op(canvas)
	}
}

// Size returns the logical size the list was recorded at.
func (d *DisplayList) Size() Size {
	return d.size
}

// Len returns the number of recorded calls.
func (d *DisplayList) Len() int {
	return len(d.ops)
}

// PictureRecorder captures canvas calls into a DisplayList.
type PictureRecorder struct {
	active *recordingCanvas
	size   Size
}

// BeginRecording discards any unfinished recording and returns a canvas whose
// calls are captured until EndRecording. The canvas tracks its own transform so
// recorded code can query it.
func (r *PictureRecorder) BeginRecording(size Size) Canvas {
	if r.active != nil {
		r.active.closed = true
	}
	r.size = size
	r.active = &recordingCanvas{size: size}
	return r.active
}

// EndRecording returns what was captured since BeginRecording. Without an
// active recording it returns an empty list. The recording canvas ignores
// further calls.
func (r *PictureRecorder) EndRecording() *DisplayList {
	dl := &DisplayList{size: r.size}
	if r.active == nil {
		return dl
	}
	dl.ops = r.active.ops
	r.active.closed = true
	r.active = nil
	return dl
}

type recordingCanvas struct {
	TransformStack
	ops    []func(Canvas)
	size   Size
	closed bool
}

func (c *recordingCanvas) record(op func(Canvas)) {
	if !c.closed {
		c.ops = append(c.ops, op)
	}
}

func (c *recordingCanvas) Save() {
	c.TransformStack.Save()
	c.record(Canvas.Save)
}

func (c *recordingCanvas) Restore() {
	c.TransformStack.Restore()
	c.record(Canvas.Restore)
}

func (c *recordingCanvas) ResetTransform() {
	c.TransformStack.ResetTransform()
	c.record(Canvas.ResetTransform)
}

func (c *recordingCanvas) Translate(dx, dy float64) {
	c.TransformStack.Translate(dx, dy)
	c.record(func(dst Canvas) { dst.Translate(dx, dy) })
}

func (c *recordingCanvas) Scale(sx, sy float64) {
	c.TransformStack.Scale(sx, sy)
	c.record(func(dst Canvas) { dst.Scale(sx, sy) })
}

func (c *recordingCanvas) Clear(color Color) {
	c.record(func(dst Canvas) { dst.Clear(color) })
}

func (c *recordingCanvas) DrawRect(rect Rect, paint Paint) {
	c.record(func(dst Canvas) { dst.DrawRect(rect, paint) })
}

func (c *recordingCanvas) DrawLine(start, end Offset, paint Paint) {
	c.record(func(dst Canvas) { dst.DrawLine(start, end, paint) })
}

func (c *recordingCanvas) Size() Size {
	return c.size
}
