package timeline

import (
	"errors"
	"fmt"
	"math"

	"github.com/MaryHal/sonorous/internal/chart"
)

// Builder attaches the four-axis location to a virtual-position-ordered
// stream of object data. It tracks the current BPM, measure scaling factor
// and scroll stops so that consecutive objects stay linearly related on
// every axis, per the location model:
//
//	vpos    pos     vtime   time    data
//	------  ------  ------  ------  ----------------
//	0.00    0.00    0.00    0.00    MeasureBar
//	1.00    1.00    2.00    2.00    MeasureBar, SetMeasureFactor(0.5)
//	2.00    1.50    3.00    3.00    MeasureBar, SetMeasureFactor(1)
//	2.50    2.00    4.00    4.00    SetBPM(240)
//	3.00    2.50    4.50    4.50    MeasureBar, SetBPM(24000)
//	4.00    3.50    4.51    4.51    MeasureBar, Stop(Seconds(1.48))
//	4.00    3.50    4.51    5.99    StopEnd
//	5.00    4.50    4.52    6.00    MeasureBar, SetBPM(-120)
//	6.00    5.50    +inf    +inf    MeasureBar
//
// (initial BPM 120.) A StopEnd is emitted automatically after each Stop.
// Once a non-positive BPM is seen, later objects get infinite times.
type Builder struct {
	initBPM chart.BPM
	bpm     chart.BPM
	factor  float64
	loc     chart.Loc
	started bool
	frozen  bool
	endSeen bool
	objs    []chart.Obj
}

// NewBuilder returns a builder for a chart starting at the given BPM.
func NewBuilder(initBPM chart.BPM) *Builder {
	return &Builder{initBPM: initBPM, bpm: initBPM, factor: 1.0}
}

// advance moves the running location to the given virtual position.
func (b *Builder) advance(vpos float64) {
	if !b.started {
		// The first segment extends the origin relation: unit measure
		// factor and the initial BPM.
		b.started = true
		sec := b.initBPM.MeasureToSec(vpos)
		b.loc = chart.Loc{VPos: vpos, Pos: vpos, VTime: sec, Time: sec}
		return
	}
	dv := vpos - b.loc.VPos
	if dv < 0 {
		panic(fmt.Sprintf("timeline: object at vpos %g added after vpos %g", vpos, b.loc.VPos))
	}
	if dv == 0 {
		return
	}
	dp := dv * b.factor
	b.loc.VPos = vpos
	b.loc.Pos += dp
	if b.frozen {
		b.loc.VTime = math.Inf(1)
		b.loc.Time = math.Inf(1)
		return
	}
	dt := b.bpm.MeasureToSec(dp)
	b.loc.VTime += dt
	b.loc.Time += dt
}

// Add appends an object at the given virtual position, which must not
// precede the previously added position. Effects carried by the object
// (BPM, stops, measure factor) apply to everything after it.
func (b *Builder) Add(vpos float64, data chart.Data) {
	if b.endSeen {
		panic("timeline: object added after End")
	}
	b.advance(vpos)
	b.objs = append(b.objs, chart.Obj{Loc: b.loc, Data: data})

	switch data.Kind {
	case chart.SetBPM:
		b.bpm = data.BPM
		if data.BPM <= 0 {
			b.frozen = true
		}
	case chart.SetMeasureFactor:
		b.factor = data.Factor
	case chart.Stop:
		if !b.frozen {
			b.loc.Time += data.Dur.ToSec(b.bpm)
		}
		b.objs = append(b.objs, chart.Obj{Loc: b.loc, Data: chart.NewStopEnd()})
	case chart.End:
		b.endSeen = true
	}
}

// Build finalizes the timeline. If no End object was added, one is appended
// a measure after the last object. It is an error for the End object not to
// occupy a strictly later position than every preceding object.
func (b *Builder) Build(nlanes int) (*Timeline, error) {
	if len(b.objs) == 0 {
		return nil, errors.New("timeline: empty chart")
	}
	if !b.endSeen {
		b.Add(b.loc.VPos+1.0, chart.NewEnd())
	}
	n := len(b.objs)
	end := b.objs[n-1]
	if !end.Data.IsEnd() {
		return nil, errors.New("timeline: End is not the last object")
	}
	if n > 1 && !(b.objs[n-2].Loc.VPos < end.Loc.VPos) {
		return nil, fmt.Errorf("timeline: End at vpos %g does not follow the chart", end.Loc.VPos)
	}
	if nlanes <= 0 {
		nlanes = chart.NLanes
	}
	return &Timeline{InitBPM: b.initBPM, NLanes: nlanes, Objs: b.objs}, nil
}
