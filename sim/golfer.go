package sim

// HolePoint is the representative coordinate of one hole on the course.
type HolePoint struct {
	Number int
	Lat    float64
	Lon    float64
}

// Loop is a deterministic movement schedule over an ordered sequence of
// holes. A loop divides its cycle evenly across its points and linearly
// interpolates position inside each segment. Movement has no contention:
// position is a pure function of elapsed time.
type Loop struct {
	Points   []HolePoint
	CycleSec int64
	Wrap     bool // true: repeat forever (beverage cart); false: single pass (golfer round)
}

// segSec returns the duration of one hole-to-hole segment.
func (l Loop) segSec() int64 {
	return l.CycleSec / int64(len(l.Points))
}

// phase maps elapsed time into [0, CycleSec).
func (l Loop) phase(t int64) int64 {
	if l.Wrap {
		p := t % l.CycleSec
		if p < 0 {
			p += l.CycleSec
		}
		return p
	}
	if t < 0 {
		return 0
	}
	if t >= l.CycleSec {
		return l.CycleSec - 1
	}
	return t
}

// HoleAt returns the hole number occupied at elapsed time t.
func (l Loop) HoleAt(t int64) int {
	seg := int(l.phase(t) / l.segSec())
	if seg >= len(l.Points) {
		seg = len(l.Points) - 1
	}
	return l.Points[seg].Number
}

// PositionAt returns the interpolated latitude/longitude at elapsed time t.
func (l Loop) PositionAt(t int64) (lat, lon float64) {
	p := l.phase(t)
	segDur := l.segSec()
	seg := int(p / segDur)
	if seg >= len(l.Points) {
		seg = len(l.Points) - 1
	}
	next := seg + 1
	if next >= len(l.Points) {
		if l.Wrap {
			next = 0
		} else {
			next = seg
		}
	}
	frac := float64(p-int64(seg)*segDur) / float64(segDur)
	a, b := l.Points[seg], l.Points[next]
	return a.Lat + (b.Lat-a.Lat)*frac, a.Lon + (b.Lon-a.Lon)*frac
}

// ReverseHoles returns a reversed copy of a hole sequence. The beverage
// cart traverses the course against play so it crosses every group twice
// per loop.
func ReverseHoles(points []HolePoint) []HolePoint {
	out := make([]HolePoint, len(points))
	for i, p := range points {
		out[len(points)-1-i] = p
	}
	return out
}

// GolferGroup is a party playing one round: it tees off at TeeOffSec,
// traverses its hole sequence once, and leaves the course.
type GolferGroup struct {
	ID        int
	TeeOffSec int64
	Loop      Loop
}

// OnCourse reports whether the group is mid-round at clock t.
func (g *GolferGroup) OnCourse(t int64) bool {
	return t >= g.TeeOffSec && t < g.TeeOffSec+g.Loop.CycleSec
}

// HoleAt returns the group's current hole at clock t.
func (g *GolferGroup) HoleAt(t int64) int {
	return g.Loop.HoleAt(t - g.TeeOffSec)
}

// PositionAt returns the group's position at clock t.
func (g *GolferGroup) PositionAt(t int64) (lat, lon float64) {
	return g.Loop.PositionAt(t - g.TeeOffSec)
}

// BeverageCart circulates the course continuously from StartSec onward.
type BeverageCart struct {
	ID       int
	StartSec int64
	Loop     Loop
}

// OnCourse reports whether the cart is out at clock t.
func (c *BeverageCart) OnCourse(t int64) bool {
	return t >= c.StartSec
}

// HoleAt returns the cart's current hole at clock t.
func (c *BeverageCart) HoleAt(t int64) int {
	return c.Loop.HoleAt(t - c.StartSec)
}

// PositionAt returns the cart's position at clock t.
func (c *BeverageCart) PositionAt(t int64) (lat, lon float64) {
	return c.Loop.PositionAt(t - c.StartSec)
}
