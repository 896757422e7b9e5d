package input

import (
	"testing"

	"github.com/MaryHal/sonorous/internal/chart"
)

const lane = chart.Lane(1)

var (
	keyA  = Input{Type: KeyInput, Code: 30}
	keyB  = Input{Type: KeyInput, Code: 48}
	axisX = Input{Type: JoyAxisInput, Code: 2}
)

func laneMap() KeyMap {
	v := Virtual{Kind: LaneKey, Lane: lane}
	return KeyMap{keyA: v, keyB: v, axisX: v}
}

func edges(t *testing.T, m *Mapper, ev Event) []Edge {
	t.Helper()
	act, ok := m.Translate(ev)
	if !ok {
		return nil
	}
	if !act.HasLane || act.Lane != lane {
		t.Fatal("unexpected action", act)
	}
	return act.Edges
}

func sameEdges(a []Edge, b ...Edge) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Two keys held on one lane: only the first press and the last release make
// an edge.
func TestMultiplicity(t *testing.T) {
	m := NewMapper(laneMap(), false)

	if got := edges(t, m, Event{keyA, Positive}); !sameEdges(got, Pressed) {
		t.Log("press A", got)
		t.Fail()
	}
	if got := edges(t, m, Event{keyB, Positive}); !sameEdges(got) {
		t.Log("press B", got)
		t.Fail()
	}
	if !m.Pressed(lane) || m.Multiplicity(lane) != 2 {
		t.Log("state", m.Multiplicity(lane))
		t.Fail()
	}
	if got := edges(t, m, Event{keyA, Neutral}); !sameEdges(got) {
		t.Log("release A", got)
		t.Fail()
	}
	if got := edges(t, m, Event{keyB, Neutral}); !sameEdges(got, Unpressed) {
		t.Log("release B", got)
		t.Fail()
	}
	if m.Pressed(lane) {
		t.Log("still pressed")
		t.Fail()
	}
}

// A direct axis reversal reports the release of the old direction before the
// press of the new one.
func TestAxisReversal(t *testing.T) {
	m := NewMapper(laneMap(), false)

	edges(t, m, Event{axisX, Positive})
	if !m.Pressed(lane) {
		t.Log("axis not pressed")
		t.Fail()
	}
	if got := edges(t, m, Event{axisX, Negative}); !sameEdges(got, Unpressed, Pressed) {
		t.Log("reversal", got)
		t.Fail()
	}
	if got := edges(t, m, Event{axisX, Neutral}); !sameEdges(got, Unpressed) {
		t.Log("centered", got)
		t.Fail()
	}
	if m.Pressed(lane) {
		t.Log("still pressed")
		t.Fail()
	}
}

func TestUnmappedInputDropped(t *testing.T) {
	m := NewMapper(laneMap(), false)
	if _, ok := m.Translate(Event{Input{Type: KeyInput, Code: 99}, Positive}); ok {
		t.Log("unmapped input translated")
		t.Fail()
	}
}

// Exclusive mode drops everything except the quit input.
func TestExclusive(t *testing.T) {
	m := NewMapper(laneMap(), true)
	if _, ok := m.Translate(Event{keyA, Positive}); ok {
		t.Log("lane input translated")
		t.Fail()
	}
	act, ok := m.Translate(Event{Input{Type: QuitInput}, Positive})
	if !ok || !act.Quit {
		t.Log("quit", act, ok)
		t.Fail()
	}
}

func TestSpeedKeys(t *testing.T) {
	keymap := KeyMap{
		keyA: {Kind: SpeedDownKey},
		keyB: {Kind: SpeedUpKey},
	}
	m := NewMapper(keymap, false)
	if act, ok := m.Translate(Event{keyA, Positive}); !ok || !act.SpeedDown {
		t.Log("down", act, ok)
		t.Fail()
	}
	if act, ok := m.Translate(Event{keyB, Positive}); !ok || !act.SpeedUp {
		t.Log("up", act, ok)
		t.Fail()
	}
	// Releases don't repeat the request.
	if _, ok := m.Translate(Event{keyA, Neutral}); ok {
		t.Log("release translated")
		t.Fail()
	}
}
