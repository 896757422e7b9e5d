package input

import (
	"testing"

	"github.com/MaryHal/sonorous/internal/chart"
	"github.com/MaryHal/sonorous/internal/keyspec"
)

var parseInputTests = map[string]Input{
	"z":          {Type: KeyInput, Code: 44},
	"left shift": {Type: KeyInput, Code: KeyLeftShift},
	"f3":         {Type: KeyInput, Code: 61},
	"button 3":   {Type: JoyButtonInput, Code: 3},
	"axis 2":     {Type: JoyAxisInput, Code: 2},
	" x ":        {Type: KeyInput, Code: 45},
}

func TestParseInput(t *testing.T) {
	for name, expected := range parseInputTests {
		got, err := ParseInput(name)
		if nil != err || got != expected {
			t.Log("name    ", name)
			t.Log("got     ", got, err)
			t.Log("expected", expected)
			t.Fail()
		}
	}
	for _, name := range []string{"nosuchkey", "button x", "axis "} {
		if _, err := ParseInput(name); nil == err {
			t.Log("accepted", name)
			t.Fail()
		}
	}
}

func TestBuildKeyMap(t *testing.T) {
	spec, err := keyspec.FromPreset("7")
	if nil != err {
		t.Fatal("unable to resolve key spec:", err)
	}
	keymap, err := BuildKeyMap(spec, DefaultBindings())
	if nil != err {
		t.Fatal("unable to build key map:", err)
	}

	expected := map[Input]chart.Lane{
		{Type: KeyInput, Code: KeyLeftShift}: 6, // scratch
		{Type: JoyAxisInput, Code: 3}:        6,
		{Type: KeyInput, Code: 44}:           1, // z
		{Type: KeyInput, Code: 31}:           2, // s
		{Type: JoyButtonInput, Code: 4}:      8, // f's alternative
	}
	for in, lane := range expected {
		v, ok := keymap[in]
		if !ok || v.Kind != LaneKey || v.Lane != lane {
			t.Log("input   ", in)
			t.Log("got     ", v, ok)
			t.Log("expected", lane)
			t.Fail()
		}
	}

	// The foot pedal binding has no lane in a 7-key layout.
	if _, ok := keymap[Input{Type: KeyInput, Code: KeyLeftAlt}]; ok {
		t.Log("inactive binding mapped")
		t.Fail()
	}

	// Speed keys are always mapped.
	if v := keymap[Input{Type: KeyInput, Code: 61}]; v.Kind != SpeedDownKey {
		t.Log("f3", v)
		t.Fail()
	}
	if v := keymap[Input{Type: KeyInput, Code: 62}]; v.Kind != SpeedUpKey {
		t.Log("f4", v)
		t.Fail()
	}
}

func TestBuildKeyMapRejectsUnknownNames(t *testing.T) {
	spec, err := keyspec.FromPreset("7")
	if nil != err {
		t.Fatal("unable to resolve key spec:", err)
	}
	b := DefaultBindings()
	b.Keys1P = "nosuchkey"
	if _, err := BuildKeyMap(spec, b); nil == err {
		t.Log("expected an error")
		t.Fail()
	}
}

func TestDrain(t *testing.T) {
	events := make(chan Event, 8)
	if got := Drain(events); len(got) != 0 {
		t.Log("drained", got)
		t.Fail()
	}
	events <- Event{Input{Type: KeyInput, Code: 44}, Positive}
	events <- Event{Input{Type: KeyInput, Code: 44}, Neutral}
	if got := Drain(events); len(got) != 2 {
		t.Log("drained", got)
		t.Fail()
	}
}
