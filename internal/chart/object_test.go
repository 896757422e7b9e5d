package chart

import (
	"testing"
)

var predicateTests = map[string]struct {
	data      Data
	soundable bool
	gradable  bool
	render    bool
	object    bool
}{
	"visible":   {NewVisible(3, 1), true, true, true, true},
	"invisible": {NewInvisible(3, 1), true, false, false, true},
	"lnstart":   {NewLNStart(3, 1), true, true, true, true},
	"lndone":    {NewLNDone(3, 1), true, true, true, true},
	"bomb":      {NewBomb(3, 1, GaugeDamage(0.1)), false, false, true, true},
	"bgm":       {NewBGM(1), false, false, false, false},
	"setbpm":    {NewSetBPM(150), false, false, false, false},
	"bar":       {NewMeasureBar(), false, false, false, false},
	"end":       {NewEnd(), false, false, false, false},
}

func TestPredicates(t *testing.T) {
	for name, tt := range predicateTests {
		if tt.data.IsSoundable() != tt.soundable ||
			tt.data.IsGradable() != tt.gradable ||
			tt.data.IsRenderable() != tt.render ||
			tt.data.IsObject() != tt.object {
			t.Log("data    ", name, tt.data)
			t.Log("got     ", tt.data.IsSoundable(), tt.data.IsGradable(),
				tt.data.IsRenderable(), tt.data.IsObject())
			t.Log("expected", tt.soundable, tt.gradable, tt.render, tt.object)
			t.Fail()
		}
	}
}

func TestObjectLane(t *testing.T) {
	if lane, ok := NewVisible(7, 0).ObjectLane(); !ok || lane != 7 {
		t.Log("lane", lane, ok)
		t.Fail()
	}
	if _, ok := NewBGM(1).ObjectLane(); ok {
		t.Log("BGM has a lane")
		t.Fail()
	}
}

var soundTests = map[string]struct {
	data    Data
	keydown SoundRef
	keyup   SoundRef
	through SoundRef
}{
	"visible": {NewVisible(0, 5), 5, 0, 0},
	"lnstart": {NewLNStart(0, 5), 5, 0, 0},
	"lndone":  {NewLNDone(0, 5), 0, 5, 0},
	"bomb":    {NewBomb(0, 5, InstantDeath()), 0, 0, 5},
}

func TestSoundAccessors(t *testing.T) {
	for name, tt := range soundTests {
		if tt.data.KeydownSound() != tt.keydown ||
			tt.data.KeyupSound() != tt.keyup ||
			tt.data.ThroughSound() != tt.through {
			t.Log("data    ", name)
			t.Log("got     ", tt.data.KeydownSound(), tt.data.KeyupSound(), tt.data.ThroughSound())
			t.Log("expected", tt.keydown, tt.keyup, tt.through)
			t.Fail()
		}
	}
}

func TestConversions(t *testing.T) {
	v := NewVisible(3, 9)
	if got := v.ToLNStart(); !got.IsLNStart() || got.Lane != 3 || got.Sound != 9 {
		t.Log("ToLNStart", got)
		t.Fail()
	}
	if got := v.ToInvisible(); !got.IsInvisible() || got.Sound != 9 {
		t.Log("ToInvisible", got)
		t.Fail()
	}
	if got := v.WithLane(11); got.Lane != 11 || !got.IsVisible() {
		t.Log("WithLane", got)
		t.Fail()
	}
	if got := NewSetBPM(150).WithLane(11); got.Lane != 0 {
		t.Log("WithLane on effect", got)
		t.Fail()
	}
}

func TestToEffect(t *testing.T) {
	if got := NewVisible(3, 9).ToEffect(); !got.IsBGM() || got.Sound != 9 {
		t.Log("sounded note", got)
		t.Fail()
	}
	if got := NewVisible(3, 0).ToEffect(); !got.IsDeleted() {
		t.Log("silent note", got)
		t.Fail()
	}
	if got := NewBomb(3, 9, InstantDeath()).ToEffect(); !got.IsDeleted() {
		t.Log("bomb", got)
		t.Fail()
	}
	if got := NewSetBPM(150).ToEffect(); !got.IsSetBPM() {
		t.Log("effect", got)
		t.Fail()
	}
}

func TestConversionPanicsOnNonObject(t *testing.T) {
	defer func() {
		if nil == recover() {
			t.Log("expected a panic")
			t.Fail()
		}
	}()
	NewBGM(1).ToVisible()
}

var bpmTests = map[BPM][2]float64{
	// measure interval of 1 -> seconds, and back
	120: {2.0, 1.0},
	240: {1.0, 1.0},
	60:  {4.0, 1.0},
}

func TestBPMConversion(t *testing.T) {
	for bpm, expected := range bpmTests {
		sec := bpm.MeasureToSec(1.0)
		round := bpm.SecToMeasure(sec)
		if sec != expected[0] || round != expected[1] {
			t.Log("bpm     ", bpm)
			t.Log("got     ", sec, round)
			t.Log("expected", expected)
			t.Fail()
		}
	}
}

func TestDur(t *testing.T) {
	if got := Seconds(1.5).ToSec(120); got != 1.5 {
		t.Log("seconds", got)
		t.Fail()
	}
	if got := Measures(0.5).ToSec(120); got != 1.0 {
		t.Log("measures", got)
		t.Fail()
	}
	if Seconds(-1).Sign() != -1 || Seconds(0).Sign() != 0 || Measures(2).Sign() != 1 {
		t.Log("sign")
		t.Fail()
	}
}

func TestBGARef(t *testing.T) {
	if _, ok := BlankBGA().ImageRefOK(); ok {
		t.Log("blank has an image")
		t.Fail()
	}
	if ref, ok := ImageBGA(4).ImageRefOK(); !ok || ref != 4 {
		t.Log("image", ref, ok)
		t.Fail()
	}
	sliced := SlicedBGA(4, ImageSlice{W: 32, H: 32})
	if ref, ok := sliced.ImageRefOK(); !ok || ref != 4 {
		t.Log("sliced", ref, ok)
		t.Fail()
	}
	if imgs := NewSetBGA(Layer1, ImageBGA(4)).Images(); len(imgs) != 1 || imgs[0] != 4 {
		t.Log("images", imgs)
		t.Fail()
	}
}

func TestLocAt(t *testing.T) {
	loc := Loc{VPos: 1, Pos: 2, VTime: 3, Time: 4}
	axes := map[Axis]float64{
		VirtualPos:  1,
		ActualPos:   2,
		VirtualTime: 3,
		ActualTime:  4,
	}
	for axis, expected := range axes {
		if got := loc.At(axis); got != expected {
			t.Log("axis    ", axis)
			t.Log("got     ", got)
			t.Log("expected", expected)
			t.Fail()
		}
	}
}
