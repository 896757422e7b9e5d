package player

import (
	"math"

	"github.com/MaryHal/sonorous/internal/chart"
	"github.com/MaryHal/sonorous/internal/input"
)

// Tick advances the player state to the given clock reading (seconds) and
// processes the raw events queued since the last tick, in order. The phase
// order is load-bearing: object effects first, then the escaped-object miss
// sweep, then input processing, then the bomb sweep, so that the input phase
// sees an up-to-date grading window and the bomb sweep sees the press state
// as updated by this frame's inputs.
func (p *Player) Tick(now float64, events []input.Event) Status {
	// Smoothly approach the target play speed.
	if p.hasTarget {
		delta := p.targetSpeed - p.playSpeed
		if math.Abs(delta) < 0.001 {
			p.playSpeed = p.targetSpeed
			p.hasTarget = false
		} else {
			p.playSpeed += delta * 0.1
		}
	}

	p.now = now
	prev := p.cur
	curtime := (now - p.originTime) + p.origin.Loc.Time

	if nil != p.reverse {
		// Reverse motion: the cursor tracks the negative BPM directly
		// instead of the normal forward advance.
		newpos := p.reverse.Loc.Pos + p.bpm.SecToMeasure(curtime-p.reverse.Loc.Time)
		p.cur.Seek(chart.ActualPos, newpos-p.cur.Loc.Pos)
	} else {
		// Apply object-like effects while advancing the cursor.
		scan := p.cur.MutUntil(chart.ActualTime, curtime-p.cur.Loc.Time)
		for scan.Next() {
			obj := scan.Obj()
			switch obj.Data.Kind {
			case chart.BGM:
				p.playSound(obj.Data.Sound, true)
			case chart.SetBGA:
				p.bga[obj.Data.Layer] = obj.Data.BGA
			case chart.SetBPM:
				p.bpm = obj.Data.BPM
				if obj.Data.BPM == 0 {
					return Finished
				} else if obj.Data.BPM < 0 {
					rev := scan.Pointer()
					p.reverse = &rev
				}
			case chart.Visible, chart.LNStart:
				if p.opts.AutoPlay {
					p.playSound(obj.Data.Sound, false)
					p.updateGradeFromDistance(0.0)
					p.resolved[scan.Index()] = true
				}
			}
		}
	}

	// Grade objects that have escaped the grading area.
	if !p.opts.AutoPlay {
		scan := p.checked.MutUpto(p.cur)
		for scan.Next() {
			obj := scan.Obj()
			dist := (p.cur.Loc.VTime - obj.Loc.VTime) * p.gradeFactor
			if dist < BadCutoff {
				break
			}
			if !p.resolved[scan.Index()] {
				if lane, ok := obj.Data.ObjectLane(); ok {
					missable := false
					switch obj.Data.Kind {
					case chart.Visible, chart.LNStart:
						missable = true
					case chart.LNDone:
						missable = nil != p.thru[lane]
					}
					if missable {
						p.resolved[scan.Index()] = true
						p.updateGradeToMiss()
						p.thru[lane] = nil
					}
				}
			}
		}
	}

	// Process the queued raw inputs.
	for _, ev := range events {
		act, ok := p.mapper.Translate(ev)
		if !ok {
			continue
		}
		switch {
		case act.Quit:
			return Quit
		case act.SpeedDown:
			if mark, ok := lowerSpeedMark(p.NominalSpeed()); ok {
				p.targetSpeed = mark
				p.hasTarget = true
				p.audio.Beep()
			}
		case act.SpeedUp:
			if mark, ok := upperSpeedMark(p.NominalSpeed()); ok {
				p.targetSpeed = mark
				p.hasTarget = true
				p.audio.Beep()
			}
		case act.HasLane:
			if p.opts.AutoPlay {
				break
			}
			for _, edge := range act.Edges {
				if edge == input.Unpressed {
					p.processUnpress(act.Lane)
				} else {
					p.processPress(act.Lane)
				}
			}
		}
	}

	// Process bombs passed over in this tick.
	if !p.opts.AutoPlay {
		for _, obj := range prev.Upto(p.cur) {
			if !obj.Data.IsBomb() {
				continue
			}
			lane := obj.Data.Lane
			if !p.KeyPressed(lane) {
				continue
			}
			// An ongoing long note is not graded twice.
			p.thru[lane] = nil
			p.playSound(obj.Data.ThroughSound(), false)
			if damage, ok := obj.Data.ThroughDamage(); ok {
				if !p.updateGradeFromDamage(damage) {
					// Instant death.
					p.cur = p.cur.FindEnd()
					return Finished
				}
			}
		}
	}

	// Decide whether to keep playing.
	switch {
	case p.cur.Index >= len(p.tl.Objs):
		if p.opts.AutoPlay {
			if p.audio.NumPlaying(GroupKey)+p.audio.NumPlaying(GroupBGM) > 0 {
				return Playing
			}
		} else if p.audio.NumPlaying(GroupKey) > 0 {
			return Playing
		}
		return Finished
	case p.cur.Loc.VPos < p.info.OriginOffset:
		// Scrolled back past the origin under a negative BPM.
		return Finished
	}
	return Playing
}

// processUnpress handles a lane becoming unpressed: an in-progress long note
// must be released within the grading area of its end, otherwise a MISS is
// issued. The hold reference is cleared either way.
func (p *Player) processUnpress(lane chart.Lane) {
	if thru := p.thru[lane]; nil != thru {
		next, ok := thru.FindNext(func(d chart.Data) bool {
			l, isObj := d.ObjectLane()
			return isObj && l == lane && d.IsLNDone()
		})
		if ok {
			delta := (next.Loc.VTime - p.cur.Loc.VTime) * p.gradeFactor
			if math.Abs(delta) < BadCutoff {
				// A clean release: settled without a separate grade event.
				p.resolved[next.Index] = true
			} else {
				p.updateGradeToMiss()
			}
		}
	}
	p.thru[lane] = nil
}

// processPress handles a lane becoming pressed: the closest soundable object
// in the lane plays its sound, and the closest unresolved gradable object
// within the grading area is graded by distance.
func (p *Player) processPress(lane chart.Lane) {
	inLane := func(d chart.Data) (chart.Lane, bool) {
		l, isObj := d.ObjectLane()
		return l, isObj && l == lane
	}

	if snd, ok := p.cur.FindClosest(chart.VirtualTime, func(d chart.Data) bool {
		_, ok := inLane(d)
		return ok && d.IsSoundable()
	}); ok {
		for _, sref := range snd.Data().Sounds() {
			p.playSound(sref, false)
		}
	}

	gradable, ok := p.cur.FindClosest(chart.VirtualTime, func(d chart.Data) bool {
		_, ok := inLane(d)
		return ok && d.IsGradable()
	})
	if !ok {
		return
	}
	if gradable.Index >= p.checked.Index && !p.resolved[gradable.Index] && !gradable.Data().IsLNDone() {
		dist := (gradable.Loc.VTime - p.cur.Loc.VTime) * p.gradeFactor
		if math.Abs(dist) < BadCutoff {
			if gradable.Data().IsLNStart() {
				hold := gradable
				p.thru[lane] = &hold
			}
			p.resolved[gradable.Index] = true
			p.updateGradeFromDistance(dist)
		}
	}
}
