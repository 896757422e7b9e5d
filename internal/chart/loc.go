package chart

import "fmt"

// Axis selects one of the four coordinates of an object location.
type Axis int

const (
	// VirtualPos is the position in measures as the chart author wrote it.
	VirtualPos Axis = iota
	// ActualPos is the position after the measure scaling factor is applied.
	// It linearly relates to the on-screen position of game elements.
	ActualPos
	// VirtualTime relates to the actual position by BPM. Grading uses
	// virtual-time distances so rapid BPM changes do not distort the grading
	// area; it stops while a Stop object is active.
	VirtualTime
	// ActualTime is when the object truly activates.
	ActualTime
)

func (a Axis) String() string {
	switch a {
	case VirtualPos:
		return "VirtualPos"
	case ActualPos:
		return "ActualPos"
	case VirtualTime:
		return "VirtualTime"
	case ActualTime:
		return "ActualTime"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Loc is an object location along all four axes. Positions are in measures,
// times in seconds. VTime and Time are +Inf for objects past a backward
// scrolling discontinuity; such objects are never activated nor graded.
//
// Within a contiguous region without stops or reverse scroll all four
// coordinates are monotonically non-decreasing with object order, and axes
// are linearly related between consecutive objects.
type Loc struct {
	VPos  float64
	Pos   float64
	VTime float64
	Time  float64
}

// At returns the coordinate on the given axis.
func (l Loc) At(axis Axis) float64 {
	switch axis {
	case VirtualPos:
		return l.VPos
	case ActualPos:
		return l.Pos
	case VirtualTime:
		return l.VTime
	case ActualTime:
		return l.Time
	}
	panic(fmt.Sprintf("chart: unknown axis %d", int(axis)))
}

// Less orders locations by actual time.
func (l Loc) Less(other Loc) bool { return l.Time < other.Time }

// Obj is an object with its precalculated location. Objects are owned by a
// timeline and never mutated in place; transformations produce new values.
type Obj struct {
	Loc  Loc
	Data Data
}

// Less orders objects by actual time.
func (o Obj) Less(other Obj) bool { return o.Loc.Less(other.Loc) }
