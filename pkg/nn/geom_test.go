package nn

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRectIOU(t *testing.T) {
	a := MakeRect(0, 0, 100, 100)
	require.Equal(t, float32(1), a.IOU(a))

	b := MakeRect(200, 200, 300, 300)
	require.Equal(t, float32(0), a.IOU(b))

	// Half overlap: inter 50*100=5000, union 10000+10000-5000=15000
	c := MakeRect(50, 0, 150, 100)
	require.InDelta(t, 1.0/3.0, a.IOU(c), 1e-5)

	// Degenerate boxes must not divide by zero
	empty := MakeRect(10, 10, 10, 10)
	require.Equal(t, float32(0), empty.IOU(empty))
}

func TestRectCenterDistance(t *testing.T) {
	a := MakeRect(0, 0, 100, 100)
	b := MakeRect(30, 40, 130, 140)
	require.InDelta(t, 50, a.Center().Distance(b.Center()), 1e-4)
	require.Equal(t, Point{X: 50, Y: 50}, a.Center())
}
