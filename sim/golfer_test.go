package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func threeHoles() []HolePoint {
	return []HolePoint{
		{Number: 1, Lat: 34.00, Lon: -84.00},
		{Number: 2, Lat: 34.01, Lon: -84.01},
		{Number: 3, Lat: 34.02, Lon: -84.02},
	}
}

func TestLoop_HoleAt_SegmentBoundaries(t *testing.T) {
	l := Loop{Points: threeHoles(), CycleSec: 900}

	// 300 s per hole
	assert.Equal(t, 1, l.HoleAt(0))
	assert.Equal(t, 1, l.HoleAt(299))
	assert.Equal(t, 2, l.HoleAt(300))
	assert.Equal(t, 3, l.HoleAt(899))
}

func TestLoop_NoWrap_ClampsOutsideCycle(t *testing.T) {
	l := Loop{Points: threeHoles(), CycleSec: 900}

	assert.Equal(t, 1, l.HoleAt(-50))
	assert.Equal(t, 3, l.HoleAt(900))
	assert.Equal(t, 3, l.HoleAt(5000))
}

func TestLoop_Wrap_RepeatsCycle(t *testing.T) {
	l := Loop{Points: threeHoles(), CycleSec: 900, Wrap: true}

	assert.Equal(t, l.HoleAt(0), l.HoleAt(900))
	assert.Equal(t, l.HoleAt(150), l.HoleAt(900+150))
}

func TestLoop_PositionAt_InterpolatesMidSegment(t *testing.T) {
	l := Loop{Points: threeHoles(), CycleSec: 900}

	// Halfway through the first segment: midpoint of holes 1 and 2.
	lat, lon := l.PositionAt(150)
	assert.InDelta(t, 34.005, lat, 1e-9)
	assert.InDelta(t, -84.005, lon, 1e-9)
}

func TestLoop_Wrap_FinalSegmentReturnsToStart(t *testing.T) {
	l := Loop{Points: threeHoles(), CycleSec: 900, Wrap: true}

	// Position at the cycle boundary equals the starting point.
	lat0, lon0 := l.PositionAt(0)
	latC, lonC := l.PositionAt(900)
	assert.InDelta(t, lat0, latC, 1e-9)
	assert.InDelta(t, lon0, lonC, 1e-9)
}

func TestGolferGroup_OnCourse_Window(t *testing.T) {
	g := &GolferGroup{ID: 1, TeeOffSec: 600, Loop: Loop{Points: threeHoles(), CycleSec: 900}}

	assert.False(t, g.OnCourse(599))
	assert.True(t, g.OnCourse(600))
	assert.True(t, g.OnCourse(1499))
	assert.False(t, g.OnCourse(1500))
}

func TestGolferGroup_HoleAt_OffsetsByTeeTime(t *testing.T) {
	g := &GolferGroup{ID: 1, TeeOffSec: 600, Loop: Loop{Points: threeHoles(), CycleSec: 900}}

	assert.Equal(t, 1, g.HoleAt(600))
	assert.Equal(t, 2, g.HoleAt(900))
}

func TestReverseHoles_ReversesWithoutMutating(t *testing.T) {
	points := threeHoles()
	rev := ReverseHoles(points)

	assert.Equal(t, 3, rev[0].Number)
	assert.Equal(t, 1, rev[2].Number)
	// Input untouched.
	assert.Equal(t, 1, points[0].Number)
}

func TestBeverageCart_RunsIndefinitely(t *testing.T) {
	c := &BeverageCart{ID: 1, StartSec: 0, Loop: Loop{Points: ReverseHoles(threeHoles()), CycleSec: 900, Wrap: true}}

	assert.True(t, c.OnCourse(0))
	assert.True(t, c.OnCourse(100000))
	assert.Equal(t, c.HoleAt(0), c.HoleAt(900))
}
