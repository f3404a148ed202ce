package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointArithmetic(t *testing.T) {
	p, q := Pt(3, 4), Pt(-1, 2)

	assert.Equal(t, Pt(2, 6), p.Add(q))
	assert.Equal(t, Pt(4, 2), p.Sub(q))
	assert.Equal(t, Pt(6, 8), p.Scale(2))
	assert.Equal(t, 5.0, p.Len())
	assert.Equal(t, 5.0, Dist(Pt(0, 0), p))
	assert.Equal(t, Dist(p, q), Dist(q, p))
	assert.Equal(t, p, FromVec(p.Vec()))
}

func TestLerp(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		t    float64
		want Point
	}{
		{"start", Pt(0.1, 0.7), Pt(0.3, -2.9), 0, Pt(0.1, 0.7)},
		{"end", Pt(0.1, 0.7), Pt(0.3, -2.9), 1, Pt(0.3, -2.9)},
		{"end large", Pt(1e9, -1e-9), Pt(0.7, 1.1), 1, Pt(0.7, 1.1)},
		{"start tiny", Pt(1e-300, 0.2), Pt(1e300, 0.6), 0, Pt(1e-300, 0.2)},
		{"middle", Pt(0, 0), Pt(4, -2), 0.5, Pt(2, -1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Lerp(tt.a, tt.b, tt.t))
		})
	}
}

func TestBoundsOf(t *testing.T) {
	tests := []struct {
		name   string
		pts    []Point
		ok     bool
		want   Bounds
		width  float64
		height float64
		center Point
	}{
		{name: "nil", pts: nil},
		{name: "empty", pts: []Point{}},
		{
			name: "single point",
			pts:  []Point{Pt(2, -3)},
			ok:   true,
			want: NewBounds(2, -3, 2, -3), center: Pt(2, -3),
		},
		{
			name: "portal",
			pts:  []Point{Pt(0, 0), Pt(0, 3), Pt(4, 3), Pt(4, 0)},
			ok:   true,
			want: NewBounds(0, 0, 4, 3), width: 4, height: 3, center: Pt(2, 1.5),
		},
		{
			name: "negative quadrant",
			pts:  []Point{Pt(-1, 5), Pt(-6, -2), Pt(3, 1)},
			ok:   true,
			want: NewBounds(-6, -2, 3, 5), width: 9, height: 7, center: Pt(-1.5, 1.5),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := BoundsOf(tt.pts)
			require.Equal(t, tt.ok, ok)
			if !ok {
				assert.Equal(t, Bounds{}, b)
				return
			}
			assert.Equal(t, tt.want, b)
			assert.Equal(t, tt.width, b.Width())
			assert.Equal(t, tt.height, b.Height())
			assert.Equal(t, tt.center, b.Center())
		})
	}
}

func TestNewBoundsOrdersCorners(t *testing.T) {
	b := NewBounds(5, 1, -2, 4)
	assert.Equal(t, Pt(-2, 1), FromVec(b.Min))
	assert.Equal(t, Pt(5, 4), FromVec(b.Max))
	assert.Equal(t, 7.0, b.Width())
	assert.Equal(t, 3.0, b.Height())
}
