// Package player implements the grading engine: the per-frame state machine
// that matches inputs to chart objects and keeps score, combo and gauge.
package player

import (
	"math"

	"github.com/MaryHal/sonorous/internal/chart"
	"github.com/MaryHal/sonorous/internal/input"
	"github.com/MaryHal/sonorous/internal/keyspec"
	"github.com/MaryHal/sonorous/internal/timeline"
)

// Group selects the mixing group a sound plays in.
type Group int

const (
	// GroupKey is the group for key sounds.
	GroupKey Group = iota
	// GroupBGM is the group for background sounds, played at lower volume.
	GroupBGM
)

// Audio is the sound collaborator. Calls are fire and forget and must never
// block; playing an absent resource is a silent no-op. Play reports false
// when no channel is free, in which case the player requests more channels
// and retries.
type Audio interface {
	Play(sound chart.SoundRef, group Group) bool
	AllocateMoreChannels(n int)
	// Beep plays the speed-change beep on its reserved channel.
	Beep()
	// NumPlaying counts the currently audible sounds in a group; the beep
	// channel is never counted.
	NumPlaying(group Group) int
}

// Options are the per-session game play options.
type Options struct {
	// PlaySpeed is the initial chart expansion rate.
	PlaySpeed float64
	// AutoPlay simulates a flawless player and ignores lane input.
	AutoPlay bool
	// Exclusive drops all live lane input (replay or demo playback).
	Exclusive bool
	// Rank is the chart's judge rank; it scales the grading area.
	Rank int
}

// Status is the continuation verdict of a tick.
type Status int

const (
	// Playing means the session goes on.
	Playing Status = iota
	// Finished means the session ended: end of chart, zero BPM or death.
	Finished
	// Quit means the player asked to leave; callers may skip the result
	// screen in this case.
	Quit
)

// Player is the mutable game play state. It is created once per session,
// mutated exclusively by Tick and shared with the renderer read-only.
type Player struct {
	opts Options
	tl   *timeline.Timeline
	info timeline.Info
	spec *keyspec.KeySpec

	mapper *input.Mapper
	audio  Audio

	// resolved is set per object index once that object has been graded or
	// otherwise settled; a set entry is never cleared.
	resolved []bool
	bga      [chart.NLayers]chart.BGARef

	playSpeed   float64
	targetSpeed float64
	hasTarget   bool
	bpm         chart.BPM
	now         float64
	originTime  float64

	origin  timeline.Pointer
	cur     timeline.Pointer
	checked timeline.Pointer
	thru    [chart.NLanes]*timeline.Pointer
	// reverse marks the first SetBPM object with a negative value. Once set
	// the normal forward advance is disabled and the cursor tracks the
	// negative BPM directly.
	reverse *timeline.Pointer

	gradeFactor   float64
	lastGrade     Grade
	lastGradeTime float64
	graded        bool
	gradeCounts   [NGrades]int
	lastCombo     int
	bestCombo     int
	score         int
	gauge         int
	survival      int
}

// New creates a player over the given timeline. The key specification and
// key map must already be resolved; now is the current clock reading in
// seconds, which also becomes the play origin.
func New(tl *timeline.Timeline, spec *keyspec.KeySpec, keymap input.KeyMap,
	audio Audio, opts Options, now float64) *Player {
	info := tl.Analyze()
	rank := opts.Rank
	if rank > 5 {
		rank = 5
	}
	origin := tl.Pointer(chart.VirtualPos, info.OriginOffset)
	p := &Player{
		opts:   opts,
		tl:     tl,
		info:   info,
		spec:   spec,
		mapper: input.NewMapper(keymap, opts.Exclusive),
		audio:  audio,

		resolved: make([]bool, len(tl.Objs)),

		playSpeed:  opts.PlaySpeed,
		bpm:        tl.InitBPM,
		now:        now,
		originTime: now,

		origin:  origin,
		cur:     origin,
		checked: origin,

		gradeFactor: 1.5 - float64(rank)*0.25,
		gauge:       MaxGauge * 500 / 1000,
		survival:    MaxGauge * 293 / 1000,
	}
	p.bga[chart.PoorBGA] = chart.ImageBGA(0)
	p.audio.AllocateMoreChannels(64)
	return p
}

// KeyPressed reports whether the lane is held by any physical input.
func (p *Player) KeyPressed(lane chart.Lane) bool { return p.mapper.Pressed(lane) }

// NominalSpeed is the play speed to display; during a speed change it shows
// the target rather than the eased current value.
func (p *Player) NominalSpeed() float64 {
	if p.hasTarget {
		return p.targetSpeed
	}
	return p.playSpeed
}

// Score returns the current score.
func (p *Player) Score() int { return p.score }

// Gauge returns the current gauge value; it may be negative.
func (p *Player) Gauge() int { return p.gauge }

// Survival returns the gauge needed to clear the chart.
func (p *Player) Survival() int { return p.survival }

// Combo returns the current run of at-least-GREAT grades.
func (p *Player) Combo() int { return p.lastCombo }

// BestCombo returns the best combo so far.
func (p *Player) BestCombo() int { return p.bestCombo }

// GradeCounts returns the number of grades issued, indexed by Grade.
func (p *Player) GradeCounts() [NGrades]int { return p.gradeCounts }

// LastGrade returns the last grade and when it was issued.
func (p *Player) LastGrade() (Grade, float64, bool) {
	return p.lastGrade, p.lastGradeTime, p.graded
}

// BGA returns the current BGA layer references.
func (p *Player) BGA() [chart.NLayers]chart.BGARef { return p.bga }

// Cursor returns the grading-line pointer.
func (p *Player) Cursor() timeline.Pointer { return p.cur }

// Info returns the derived timeline facts.
func (p *Player) Info() timeline.Info { return p.info }

// KeySpec returns the key specification the session was resolved against.
func (p *Player) KeySpec() *keyspec.KeySpec { return p.spec }

// AutoPlay reports whether the session simulates a flawless player.
func (p *Player) AutoPlay() bool { return p.opts.AutoPlay }

// updateGrade applies one grading verdict. scoreDelta is a [0,1] weight from
// the input distance; damage, when non-nil, is applied to the gauge. The
// return value is false when the damage was an instant death.
func (p *Player) updateGrade(grade Grade, scoreDelta float64, damage *chart.Damage) bool {
	p.gradeCounts[grade]++
	p.lastGrade = grade
	p.lastGradeTime = p.now
	p.graded = true
	nnotes := p.info.NNotes
	if nnotes < 1 {
		nnotes = 1
	}
	p.score += int(scoreDelta * ScorePerNote * (1.0 + float64(p.lastCombo)/float64(nnotes)))

	switch grade {
	case Miss, Bad:
		p.lastCombo = 0
	case Good:
		// neither combo nor gauge
	case Great, Cool:
		// at most 5/512 (~1%) recovery when the combo is topped
		weight := 2
		if grade == Cool {
			weight = 3
		}
		cmbbonus := p.lastCombo
		if cmbbonus > 100 {
			cmbbonus = 100
		}
		p.lastCombo++
		p.gauge += weight + cmbbonus/50
		if p.gauge > MaxGauge {
			p.gauge = MaxGauge
		}
	}
	if p.lastCombo > p.bestCombo {
		p.bestCombo = p.lastCombo
	}

	if nil != damage {
		if damage.InstantDeath {
			if p.gauge > 0 {
				p.gauge = 0
			}
			return false
		}
		p.gauge -= int(MaxGauge * damage.Ratio)
	}
	return true
}

// updateGradeFromDistance grades from the normalized time difference in
// seconds. The normalized distance equals the actual difference when the
// grade factor is one.
func (p *Player) updateGradeFromDistance(dist float64) {
	dist = math.Abs(dist)
	var grade Grade
	var damage *chart.Damage
	switch {
	case dist < CoolCutoff:
		grade = Cool
	case dist < GreatCutoff:
		grade = Great
	case dist < GoodCutoff:
		grade = Good
	case dist < BadCutoff:
		grade = Bad
		d := chart.GaugeDamage(badDamageRatio)
		damage = &d
	default:
		grade = Miss
		d := chart.GaugeDamage(missDamageRatio)
		damage = &d
	}
	scoreDelta := 1.0 - dist/BadCutoff
	if scoreDelta < 0 {
		scoreDelta = 0
	}
	if !p.updateGrade(grade, scoreDelta, damage) {
		panic("player: gauge damage from distance caused instant death")
	}
}

// updateGradeFromDamage issues a MISS with the given damage. The return
// value is false when the damage was an instant death.
func (p *Player) updateGradeFromDamage(damage chart.Damage) bool {
	return p.updateGrade(Miss, 0.0, &damage)
}

// updateGradeToMiss issues a MISS with the standard damage.
func (p *Player) updateGradeToMiss() {
	d := chart.GaugeDamage(missDamageRatio)
	if !p.updateGrade(Miss, 0.0, &d) {
		panic("player: standard miss damage caused instant death")
	}
}

// playSound plays a sound, growing the channel pool on capacity failures.
// A zero (placeholder) reference is a no-op.
func (p *Player) playSound(sound chart.SoundRef, bgm bool) {
	if sound == 0 {
		return
	}
	group := GroupKey
	if bgm {
		group = GroupBGM
	}
	for !p.audio.Play(sound, group) {
		p.audio.AllocateMoreChannels(32)
	}
}
