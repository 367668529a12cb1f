package rendering

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/hidpi/pkg/errors"
)

func TestNewSize(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		wantErr bool
	}{
		{"zero", 0, 0, false},
		{"integral", 2, 3, false},
		{"fractional", 100.5, 0.25, false},
		{"negative width", -1, 3, true},
		{"negative height", 2, -0.5, true},
		{"nan width", math.NaN(), 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSize(tt.w, tt.h)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsKind(err, errors.KindValidation))
				assert.True(t, errors.Is(err, errors.ErrNegativeSize))
				return
			}
			require.NoError(t, err)
			assert.True(t, s.Equal(Size{Width: tt.w, Height: tt.h}))
		})
	}
}

func TestMustSizePanics(t *testing.T) {
	assert.Panics(t, func() { MustSize(-1, 0) })
	assert.NotPanics(t, func() { MustSize(1, 0) })
}

func TestBitmapSize(t *testing.T) {
	s, err := BitmapSize(200, 100)
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 200, Height: 100}, s)

	_, err = BitmapSize(-2, 100)
	assert.Error(t, err)
}

func TestLogicalSize(t *testing.T) {
	s, err := LogicalSize(100.5, 50)
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 100.5, Height: 50}, s)

	_, err = LogicalSize(10, -1)
	assert.True(t, errors.Is(err, errors.ErrNegativeSize))
}

func TestSizeEqual(t *testing.T) {
	a := MustSize(2, 3)
	b := MustSize(2, 3)
	swapped := MustSize(3, 2)

	assert.True(t, a.Equal(a), "reflexive")
	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a), "symmetric")
	assert.False(t, a.Equal(swapped))
	assert.False(t, EqualSizes(swapped, a))
}

func TestSizeHelpers(t *testing.T) {
	s := MustSize(100.4, 50.5)
	assert.Equal(t, Size{Width: 100, Height: 51}, s.Round())
	assert.Equal(t, Size{Width: 200.8, Height: 101}, s.Scale(2, 2))
	assert.Equal(t, Size{Width: 120, Height: 50.5}, s.Max(MustSize(120, 10)))
	assert.Equal(t, Size{Width: 100.4, Height: 10}, s.Min(MustSize(120, 10)))
	assert.True(t, MustSize(0, 10).IsEmpty())
	assert.False(t, s.IsEmpty())
}

func TestRect(t *testing.T) {
	r := RectFromLTWH(10, 20, 30, 40)
	assert.Equal(t, 30.0, r.Width())
	assert.Equal(t, 40.0, r.Height())
	assert.Equal(t, Size{Width: 30, Height: 40}, r.Size())
	assert.False(t, r.IsEmpty())
	assert.True(t, RectFromLTWH(10, 20, 0, 40).IsEmpty())
}
