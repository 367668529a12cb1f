package rendering

// Canvas is a 2D drawing context bound to a raster surface.
//
// Coordinates passed to drawing methods are transformed by the current
// transform before reaching the backing store.
type Canvas interface {
	// Save pushes the current transform state.
	Save()

	// Restore pops the most recent transform state. Unbalanced calls are ignored.
	Restore()

	// ResetTransform replaces the current transform with the identity.
	ResetTransform()

	// Translate moves the origin by the given offset.
	Translate(dx, dy float64)

	// Scale scales the coordinate system by the given factors.
	Scale(sx, sy float64)

	// Transform returns the current transform.
	Transform() Matrix

	// Clear fills the entire backing store with the given color, ignoring the transform.
	Clear(color Color)

	// DrawRect draws a rectangle with the provided paint.
	DrawRect(rect Rect, paint Paint)

	// DrawLine draws a line segment with the provided paint.
	DrawLine(start, end Offset, paint Paint)

	// Size returns the size of the backing store in pixels.
	Size() Size
}

// TransformStack implements the Save/Restore/transform part of Canvas.
// Canvas implementations embed it.
type TransformStack struct {
	current Matrix
	saved   []Matrix
	init    bool
}

func (s *TransformStack) ensure() {
	if !s.init {
		s.current = Identity
		s.init = true
	}
}

// Save pushes the current transform.
func (s *TransformStack) Save() {
	s.ensure()
	s.saved = append(s.saved, s.current)
}

// Restore pops the most recently saved transform.
func (s *TransformStack) Restore() {
	s.ensure()
	if len(s.saved) == 0 {
		return
	}
	s.current = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

// ResetTransform sets the current transform to the identity.
func (s *TransformStack) ResetTransform() {
	s.init = true
	s.current = Identity
}

// Translate post-multiplies a translation.
func (s *TransformStack) Translate(dx, dy float64) {
	s.ensure()
	s.current = s.current.Multiply(TranslateMatrix(dx, dy))
}

// Scale post-multiplies a scale.
func (s *TransformStack) Scale(sx, sy float64) {
	s.ensure()
	s.current = s.current.Multiply(ScaleMatrix(sx, sy))
}

// Transform returns the current transform.
func (s *TransformStack) Transform() Matrix {
	s.ensure()
	return s.current
}

// Depth returns the number of saved states.
func (s *TransformStack) Depth() int {
	return len(s.saved)
}
