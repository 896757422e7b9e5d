package input

import (
	"github.com/MaryHal/sonorous/internal/chart"
)

// Edge is a debounced lane transition.
type Edge int

const (
	// Unpressed is reported when the lane's last physical input goes away.
	Unpressed Edge = iota
	// Pressed is reported when the lane's first physical input arrives.
	Pressed
)

// Action is the mapper's verdict on one raw event. At most one of Quit,
// SpeedUp, SpeedDown or a lane action is set; a lane action carries the
// edges in the order they must be processed (an axis reversal yields an
// unpress followed by a press).
type Action struct {
	Quit      bool
	SpeedUp   bool
	SpeedDown bool
	HasLane   bool
	Lane      chart.Lane
	Edges     []Edge
}

// Mapper turns raw device events into debounced virtual lane events. Each
// lane tracks a multiplicity (how many discrete inputs currently hold it)
// and the state of its continuous inputs, so that several physical keys
// bound to one lane don't falsely report a release.
type Mapper struct {
	keymap KeyMap
	// exclusive drops all lane input (replay/demo playback); quit is still
	// honored.
	exclusive bool

	multiplicity [chart.NLanes]int
	axisState    [chart.NLanes]State
}

// NewMapper returns a mapper over the given resolved key map.
func NewMapper(keymap KeyMap, exclusive bool) *Mapper {
	return &Mapper{keymap: keymap, exclusive: exclusive}
}

// Pressed reports whether the lane is currently held, by keys or by an axis.
func (m *Mapper) Pressed(lane chart.Lane) bool {
	return m.multiplicity[lane] > 0 || m.axisState[lane] != Neutral
}

// Multiplicity returns the number of discrete inputs holding the lane.
func (m *Mapper) Multiplicity(lane chart.Lane) int { return m.multiplicity[lane] }

// unpress updates the lane state for a release-like transition and reports
// whether the lane as a whole became unpressed.
func (m *Mapper) unpress(lane chart.Lane, continuous bool, state State) bool {
	if state == Neutral || (continuous && m.axisState[lane] != state) {
		if continuous {
			m.axisState[lane] = state
			return true
		}
		if m.multiplicity[lane] > 0 {
			m.multiplicity[lane]--
		}
		return m.multiplicity[lane] == 0
	}
	return false
}

// press updates the lane state for a press-like transition and reports
// whether the lane as a whole became pressed.
func (m *Mapper) press(lane chart.Lane, continuous bool, state State) bool {
	if state == Neutral {
		return false
	}
	if continuous {
		m.axisState[lane] = state
		return true
	}
	m.multiplicity[lane]++
	return m.multiplicity[lane] == 1
}

// Translate maps one raw event. The second return value is false when the
// event is to be dropped: not in the key map, or suppressed by the
// exclusive mode.
func (m *Mapper) Translate(ev Event) (Action, bool) {
	if ev.Input.Type == QuitInput {
		return Action{Quit: true}, true
	}
	vinput, ok := m.keymap[ev.Input]
	if !ok {
		return Action{}, false
	}
	if m.exclusive {
		return Action{}, false
	}

	switch vinput.Kind {
	case SpeedDownKey:
		if ev.State != Neutral {
			return Action{SpeedDown: true}, true
		}
		return Action{}, false
	case SpeedUpKey:
		if ev.State != Neutral {
			return Action{SpeedUp: true}, true
		}
		return Action{}, false
	}

	lane := vinput.Lane
	continuous := ev.Input.Continuous()
	act := Action{HasLane: true, Lane: lane}
	// The unpress check runs first so a direct axis reversal reports the
	// release of the old direction before the press of the new one.
	if m.unpress(lane, continuous, ev.State) {
		act.Edges = append(act.Edges, Unpressed)
	}
	if m.press(lane, continuous, ev.State) {
		act.Edges = append(act.Edges, Pressed)
	}
	return act, true
}
