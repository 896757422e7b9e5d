// Package timeline holds the ordered, immutable object sequence of a chart
// and the cursors used to navigate it along the four location axes.
package timeline

import (
	"math"

	"github.com/MaryHal/sonorous/internal/chart"
)

// Timeline is an ordered sequence of objects plus chart-wide facts. It is
// built once by the chart supplier and shared read-only by every Pointer and
// by the player; it is never mutated after hand-off.
type Timeline struct {
	// InitBPM is the BPM at the beginning of the chart.
	InitBPM chart.BPM
	// NLanes is the number of addressable lanes.
	NLanes int
	// Objs is the object sequence, ordered by actual time (ties broken by
	// insertion order). The last object is always End.
	Objs []chart.Obj
}

// Info is the derived facts from a timeline, calculated by Analyze.
type Info struct {
	// HasBPMChange is true if the chart changes the BPM midway.
	HasBPMChange bool
	// HasLongNote is true if the chart contains a long note.
	HasLongNote bool
	// NNotes is the number of graded notes (visible notes and long note
	// starts; long note ends do not count separately).
	NNotes int
	// OriginOffset is the virtual position at which the game play starts.
	// Normally zero unless the chart has a pre-roll.
	OriginOffset float64
}

// Analyze walks the timeline once and returns the derived facts.
func (tl *Timeline) Analyze() Info {
	info := Info{}
	minvpos := 0.0
	for _, obj := range tl.Objs {
		switch obj.Data.Kind {
		case chart.SetBPM:
			info.HasBPMChange = true
		case chart.LNStart:
			info.HasLongNote = true
			info.NNotes++
		case chart.Visible:
			info.NNotes++
		}
		if obj.Data.IsRenderable() && obj.Loc.VPos < minvpos {
			minvpos = obj.Loc.VPos
		}
	}
	info.OriginOffset = math.Floor(minvpos)
	return info
}

// Duration computes the total chart duration in seconds, counted from the
// given origin offset (a virtual position). soundLen resolves the length in
// seconds of a sound resource and is supplied by the audio collaborator;
// a nil soundLen treats every sound as zero-length.
func (tl *Timeline) Duration(originOffset float64, soundLen func(chart.SoundRef) float64) float64 {
	origin := tl.Pointer(chart.VirtualPos, originOffset)
	maxtime := origin.Loc.Time
	for _, obj := range tl.Objs {
		t := obj.Loc.Time
		if math.IsInf(t, 0) {
			continue
		}
		switch obj.Data.Kind {
		case chart.Visible, chart.Invisible, chart.LNStart, chart.LNDone, chart.BGM:
			if obj.Data.Sound != 0 && nil != soundLen {
				t += soundLen(obj.Data.Sound)
			}
		case chart.End:
		default:
			continue
		}
		if t > maxtime {
			maxtime = t
		}
	}
	return maxtime - origin.Loc.Time
}

// lastLoc returns the location of the final (End) object.
func (tl *Timeline) lastLoc() chart.Loc {
	if len(tl.Objs) == 0 {
		return chart.Loc{}
	}
	return tl.Objs[len(tl.Objs)-1].Loc
}

func withAxis(l chart.Loc, axis chart.Axis, v float64) chart.Loc {
	switch axis {
	case chart.VirtualPos:
		l.VPos = v
	case chart.ActualPos:
		l.Pos = v
	case chart.VirtualTime:
		l.VTime = v
	case chart.ActualTime:
		l.Time = v
	}
	return l
}
