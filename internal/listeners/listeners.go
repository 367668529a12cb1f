// Package listeners keeps ordered callback lists whose entries are removed by
// handle identity. Go funcs are not comparable, so registration hands out a
// *Handle that stands in for the callback.
package listeners

// Handle identifies one registration.
type Handle struct {
	id uint64
}

// List is an ordered set of callbacks of type F. The zero value is ready to use.
type List[F any] struct {
	entries []entry[F]
	nextID  uint64
}

type entry[F any] struct {
	h  *Handle
	fn F
}

// Add appends fn and returns its handle. Adding the same func twice
// registers it twice.
func (l *List[F]) Add(fn F) *Handle {
	l.nextID++
	h := &Handle{id: l.nextID}
	l.entries = append(l.entries, entry[F]{h: h, fn: fn})
	return h
}

// Remove drops the registration for h and reports whether it was present.
func (l *List[F]) Remove(h *Handle) bool {
	if h == nil {
		return false
	}
	for i, e := range l.entries {
		if e.h == h {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Each calls visit for every callback registered when Each was called, in
// registration order. Callbacks removed during iteration are skipped.
func (l *List[F]) Each(visit func(F)) {
	snapshot := l.entries
	for _, e := range snapshot {
		if l.contains(e.h) {
			visit(e.fn)
		}
	}
}

func (l *List[F]) contains(h *Handle) bool {
	for _, e := range l.entries {
		if e.h == h {
			return true
		}
	}
	return false
}

// Len returns the number of registrations.
func (l *List[F]) Len() int {
	return len(l.entries)
}

// Clear drops every registration.
func (l *List[F]) Clear() {
	l.entries = nil
}
