package listeners

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddRemoveByIdentity(t *testing.T) {
	var l List[func(int)]
	var got []string
	a := l.Add(func(int) { got = append(got, "a") })
	b := l.Add(func(int) { got = append(got, "b") })
	c := l.Add(func(int) { got = append(got, "c") })
	assert.Equal(t, 3, l.Len())

	assert.True(t, l.Remove(b))
	assert.False(t, l.Remove(b), "second removal is a no-op")
	assert.False(t, l.Remove(nil))

	l.Each(func(f func(int)) { f(0) })
	assert.Equal(t, []string{"a", "c"}, got)

	l.Remove(a)
	l.Remove(c)
	assert.Equal(t, 0, l.Len())
}

func TestSameFuncTwice(t *testing.T) {
	var l List[func()]
	calls := 0
	f := func() { calls++ }
	h1 := l.Add(f)
	l.Add(f)
	l.Remove(h1)
	l.Each(func(f func()) { f() })
	assert.Equal(t, 1, calls)
}

func TestRemoveDuringEach(t *testing.T) {
	var l List[func()]
	var got []int
	var second *Handle
	l.Add(func() {
		got = append(got, 1)
		l.Remove(second)
	})
	second = l.Add(func() { got = append(got, 2) })
	l.Add(func() { got = append(got, 3) })

	l.Each(func(f func()) { f() })
	assert.Equal(t, []int{1, 3}, got)
}

func TestAddDuringEachNotVisited(t *testing.T) {
	var l List[func()]
	calls := 0
	l.Add(func() {
		calls++
		l.Add(func() { calls += 10 })
	})
	l.Each(func(f func()) { f() })
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, l.Len())
}

func TestClear(t *testing.T) {
	var l List[func()]
	l.Add(func() {})
	l.Clear()
	assert.Equal(t, 0, l.Len())
}
