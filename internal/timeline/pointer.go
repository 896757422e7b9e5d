package timeline

import (
	"math"
	"sort"

	"github.com/MaryHal/sonorous/internal/chart"
)

// Pointer is a lightweight cursor into a timeline: a shared reference to the
// object sequence, an index, and the interpolated location matching that
// index. Objects before Index have been passed; the object at Index has not.
// Many pointers may coexist over one timeline; each owns its Index and Loc.
type Pointer struct {
	timeline *Timeline
	// Index is the cursor position, clamped to [0, len(Objs)].
	Index int
	// Loc is the location corresponding to Index under the seek semantics;
	// it is recomputed on every seek.
	Loc chart.Loc
}

// Pointer returns a cursor located at the given coordinate on the given axis.
func (tl *Timeline) Pointer(axis chart.Axis, v float64) Pointer {
	index := tl.locate(axis, v)
	return Pointer{timeline: tl, Index: index, Loc: tl.interpolate(index, axis, v)}
}

// locate returns the index of the first object whose coordinate on axis
// exceeds target. Coordinates are monotonically non-decreasing on every
// axis, so a binary search is valid even with infinite entries.
func (tl *Timeline) locate(axis chart.Axis, target float64) int {
	return sort.Search(len(tl.Objs), func(i int) bool {
		return tl.Objs[i].Loc.At(axis) > target
	})
}

// originLoc derives a location before the first object, where the measure
// factor is still one and the initial BPM relates positions to times.
func (tl *Timeline) originLoc(axis chart.Axis, target float64) chart.Loc {
	var pos, sec float64
	switch axis {
	case chart.VirtualPos, chart.ActualPos:
		pos = target
		sec = tl.InitBPM.MeasureToSec(target)
	default:
		sec = target
		pos = tl.InitBPM.SecToMeasure(target)
	}
	return chart.Loc{VPos: pos, Pos: pos, VTime: sec, Time: sec}
}

// lerp interpolates a single coordinate, keeping the lower end when the
// upper end lies past an infinite discontinuity.
func lerp(lo, hi, f float64) float64 {
	if f <= 0 {
		return lo
	}
	if math.IsInf(hi, 0) {
		return hi
	}
	return lo + f*(hi-lo)
}

// interpolate computes the location at the given coordinate for a cursor
// standing at index. The bracketing objects' segment supplies the linear
// relation for the remaining axes. Past the End object the location clamps.
func (tl *Timeline) interpolate(index int, axis chart.Axis, target float64) chart.Loc {
	n := len(tl.Objs)
	if n == 0 || index <= 0 && tl.Objs[0].Loc.At(axis) >= target {
		return tl.originLoc(axis, target)
	}
	if index >= n {
		return tl.lastLoc()
	}
	var lo chart.Loc
	if index == 0 {
		lo = tl.originLoc(axis, target)
	} else {
		lo = tl.Objs[index-1].Loc
	}
	hi := tl.Objs[index].Loc
	den := hi.At(axis) - lo.At(axis)
	f := 0.0
	if den > 0 && !math.IsInf(den, 0) {
		f = (target - lo.At(axis)) / den
	}
	loc := chart.Loc{
		VPos:  lerp(lo.VPos, hi.VPos, f),
		Pos:   lerp(lo.Pos, hi.Pos, f),
		VTime: lerp(lo.VTime, hi.VTime, f),
		Time:  lerp(lo.Time, hi.Time, f),
	}
	return withAxis(loc, axis, target)
}

// Obj returns the object under the cursor. The cursor must not be past the
// last object.
func (p Pointer) Obj() chart.Obj { return p.timeline.Objs[p.Index] }

// Data returns the object data under the cursor.
func (p Pointer) Data() chart.Data { return p.timeline.Objs[p.Index].Data }

// Timeline returns the shared timeline.
func (p Pointer) Timeline() *Timeline { return p.timeline }

// Before orders pointers by actual time.
func (p Pointer) Before(other Pointer) bool { return p.Loc.Time < other.Loc.Time }

// Seek moves the cursor by delta along the given axis, recomputing the
// location on all four axes. Seeking past either end of the timeline clamps.
func (p *Pointer) Seek(axis chart.Axis, delta float64) {
	target := p.Loc.At(axis) + delta
	p.Index = p.timeline.locate(axis, target)
	p.Loc = p.timeline.interpolate(p.Index, axis, target)
}

// Find returns a cursor moved by delta along the given axis, leaving the
// receiver untouched.
func (p Pointer) Find(axis chart.Axis, delta float64) Pointer {
	q := p
	q.Seek(axis, delta)
	return q
}

// FindEnd returns a cursor past the last object.
func (p Pointer) FindEnd() Pointer {
	return Pointer{timeline: p.timeline, Index: len(p.timeline.Objs), Loc: p.timeline.lastLoc()}
}

// FindNext returns a cursor at the first object strictly after the cursor
// matching the predicate, if any exists before the End object.
func (p Pointer) FindNext(pred func(chart.Data) bool) (Pointer, bool) {
	for i := p.Index + 1; i < len(p.timeline.Objs); i++ {
		if pred(p.timeline.Objs[i].Data) {
			return Pointer{timeline: p.timeline, Index: i, Loc: p.timeline.Objs[i].Loc}, true
		}
	}
	return Pointer{}, false
}

// FindClosest scans forward and backward for objects matching the predicate
// and returns the one nearer to the cursor on the given axis. On a tie the
// earlier object wins. Objects with an infinite coordinate never win over a
// finite candidate.
func (p Pointer) FindClosest(axis chart.Axis, pred func(chart.Data) bool) (Pointer, bool) {
	objs := p.timeline.Objs
	here := p.Loc.At(axis)
	fwd, bwd := -1, -1
	for i := p.Index; i < len(objs); i++ {
		if pred(objs[i].Data) {
			fwd = i
			break
		}
	}
	for i := p.Index - 1; i >= 0; i-- {
		if pred(objs[i].Data) {
			bwd = i
			break
		}
	}
	choice := -1
	switch {
	case fwd < 0:
		choice = bwd
	case bwd < 0:
		choice = fwd
	default:
		fdist := math.Abs(objs[fwd].Loc.At(axis) - here)
		bdist := math.Abs(objs[bwd].Loc.At(axis) - here)
		if bdist <= fdist {
			choice = bwd
		} else {
			choice = fwd
		}
	}
	if choice < 0 {
		return Pointer{}, false
	}
	return Pointer{timeline: p.timeline, Index: choice, Loc: objs[choice].Loc}, true
}

// Upto returns the objects strictly between this cursor and the other by
// index, without mutating either. The slice is shared with the timeline and
// must be treated as read-only.
func (p Pointer) Upto(other Pointer) []chart.Obj {
	if other.Index <= p.Index {
		return nil
	}
	return p.timeline.Objs[p.Index:other.Index]
}

// Scan is a finite, non-restartable walk over the objects between a cursor
// and a bound. The owning cursor is committed to each object as it is
// yielded, so abandoning a scan mid-way leaves the cursor at the last
// yielded object; draining it fully commits the end location.
type Scan struct {
	p      *Pointer
	limit  int
	endLoc chart.Loc
	cur    int
}

// MutUntil scans the objects from the cursor up to (not including) the first
// object whose coordinate on axis exceeds the cursor's coordinate plus
// delta, advancing the cursor as a side effect as described on Scan.
func (p *Pointer) MutUntil(axis chart.Axis, delta float64) *Scan {
	target := p.Loc.At(axis) + delta
	limit := p.timeline.locate(axis, target)
	if limit < p.Index {
		limit = p.Index
	}
	return &Scan{p: p, limit: limit, endLoc: p.timeline.interpolate(limit, axis, target), cur: p.Index - 1}
}

// MutUpto scans the objects from the cursor up to (not including) the other
// cursor's index, advancing the cursor as a side effect as described on Scan.
func (p *Pointer) MutUpto(other Pointer) *Scan {
	limit := other.Index
	if limit < p.Index {
		limit = p.Index
	}
	return &Scan{p: p, limit: limit, endLoc: other.Loc, cur: p.Index - 1}
}

// Next advances to the next object in the scan. It returns false once the
// bound is reached, at which point the owning cursor has been committed to
// the scan's end location.
func (s *Scan) Next() bool {
	if s.cur+1 >= s.limit {
		s.p.Index = s.limit
		s.p.Loc = s.endLoc
		return false
	}
	s.cur++
	s.p.Index = s.cur
	s.p.Loc = s.p.timeline.Objs[s.cur].Loc
	return true
}

// Obj returns the object at the current scan position.
func (s *Scan) Obj() chart.Obj { return s.p.timeline.Objs[s.cur] }

// Index returns the index of the current scan position.
func (s *Scan) Index() int { return s.cur }

// Pointer returns a snapshot cursor at the current scan position.
func (s *Scan) Pointer() Pointer {
	return Pointer{timeline: s.p.timeline, Index: s.cur, Loc: s.p.timeline.Objs[s.cur].Loc}
}
