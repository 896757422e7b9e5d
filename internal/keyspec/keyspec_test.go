package keyspec

import (
	"testing"

	"github.com/MaryHal/sonorous/internal/chart"
)

// Scratches and foot pedals don't count towards the key number in the name.
var presetKeyCounts = map[string]int{
	"5":     5,
	"10":    10,
	"5/fp":  5,
	"10/fp": 10,
	"7":     7,
	"14":    14,
	"7/fp":  7,
	"14/fp": 14,
	"9":     9,
	"9-bme": 9,
}

func TestPresets(t *testing.T) {
	for name, nkeys := range presetKeyCounts {
		spec, err := FromPreset(name)
		if nil != err {
			t.Log("preset", name, err)
			t.Fail()
			continue
		}
		if spec.NKeys() != nkeys {
			t.Log("preset  ", name)
			t.Log("got     ", spec.NKeys())
			t.Log("expected", nkeys)
			t.Fail()
		}
	}
	if _, err := FromPreset("23"); nil == err {
		t.Log("expected an error")
		t.Fail()
	}
}

func TestDoublePlaySplit(t *testing.T) {
	spec, err := FromPreset("14")
	if nil != err {
		t.Fatal("unable to resolve preset:", err)
	}
	if len(spec.LeftLanes()) != 8 || len(spec.RightLanes()) != 8 {
		t.Log("split", spec.Split, len(spec.Order))
		t.Fail()
	}
	// Lanes on the right side belong to the second player's channels.
	for _, lane := range spec.RightLanes() {
		if lane < 36 {
			t.Log("right lane", lane)
			t.Fail()
		}
	}
}

func TestParseSpecEntries(t *testing.T) {
	spec, err := Parse("16s 11a 12b", "")
	if nil != err {
		t.Fatal("unable to parse spec:", err)
	}
	expected := map[chart.Lane]Kind{6: Scratch, 1: WhiteKey, 2: BlackKey}
	for lane, kind := range expected {
		got, ok := spec.KindOf(lane)
		if !ok || got != kind {
			t.Log("lane    ", lane)
			t.Log("got     ", got, ok)
			t.Log("expected", kind)
			t.Fail()
		}
	}
	if _, ok := spec.KindOf(3); ok {
		t.Log("unassigned lane has a kind")
		t.Fail()
	}
	if spec.NKeys() != 2 {
		t.Log("nkeys", spec.NKeys())
		t.Fail()
	}
}

var badSpecs = map[string]string{
	"empty":        "",
	"short entry":  "1a",
	"bad kind":     "11z",
	"low channel":  "01a",
	"high channel": "31a",
	"duplicate":    "11a 11b",
}

func TestParseRejectsBadSpecs(t *testing.T) {
	for name, s := range badSpecs {
		if _, err := Parse(s, ""); nil == err {
			t.Log("spec", name, "accepted")
			t.Fail()
		}
	}
}

func TestKindFromChar(t *testing.T) {
	if k, ok := KindFromChar('s'); !ok || k != Scratch {
		t.Log("scratch", k, ok)
		t.Fail()
	}
	if _, ok := KindFromChar('x'); ok {
		t.Log("unknown kind accepted")
		t.Fail()
	}
	if Scratch.CountsAsKey() || FootPedal.CountsAsKey() || !WhiteKey.CountsAsKey() {
		t.Log("counts as key")
		t.Fail()
	}
}
