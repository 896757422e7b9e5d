package chart

import "fmt"

// Lane is a logical input/display channel an object is associated with.
type Lane int

// NLanes is the maximum number of lanes.
const NLanes = 72

// BGALayer identifies one of the background image layers.
type BGALayer int

const (
	// Layer1 is the lowest layer.
	Layer1 BGALayer = iota
	// Layer2 is the middle layer.
	Layer2
	// Layer3 is the highest layer.
	Layer3
	// PoorBGA is only displayed shortly after a MISS grade.
	PoorBGA
)

// NLayers is the number of BGA layers.
const NLayers = 4

// BPM is beats per minute, the conversion factor between positions (in
// measures) and times (in seconds). Negative BPM scrolls the chart backwards;
// zero BPM terminates the chart.
type BPM float64

// MeasureToSec converts a measure interval to seconds under this BPM.
func (b BPM) MeasureToSec(measure float64) float64 { return measure * 240.0 / float64(b) }

// SecToMeasure converts a second interval to measures under this BPM.
func (b BPM) SecToMeasure(sec float64) float64 { return sec * float64(b) / 240.0 }

// Dur is a duration specified either in seconds or in measures. Used by Stop
// objects; a measure-specified duration is not affected by the measure
// scaling factor.
type Dur struct {
	InMeasures bool
	Value      float64
}

// Seconds returns a duration in seconds.
func Seconds(v float64) Dur { return Dur{Value: v} }

// Measures returns a duration in measures.
func Measures(v float64) Dur { return Dur{InMeasures: true, Value: v} }

// Sign returns -1, 0 or 1 according to the sign of the duration.
func (d Dur) Sign() int {
	switch {
	case d.Value < 0:
		return -1
	case d.Value > 0:
		return 1
	}
	return 0
}

// ToSec resolves the duration to seconds under the current BPM.
func (d Dur) ToSec(bpm BPM) float64 {
	if d.InMeasures {
		return bpm.MeasureToSec(d.Value)
	}
	return d.Value
}

// Damage is the gauge damage dealt on a MISS grade. Normally a fraction of
// the full gauge, but bombs may cause an instant death instead.
type Damage struct {
	InstantDeath bool
	Ratio        float64
}

// GaugeDamage returns a damage worth the given fraction of the full gauge.
func GaugeDamage(ratio float64) Damage { return Damage{Ratio: ratio} }

// InstantDeath returns the session-ending damage kind.
func InstantDeath() Damage { return Damage{InstantDeath: true} }

// SoundRef is an index into the sound resources supplied by the host.
// Zero is a placeholder and is never played.
type SoundRef int

// ImageRef is an index into the image resources supplied by the host.
type ImageRef int

// ImageSlice selects a portion of a source image for blitting. The region
// (SX,SY)-(SX+W,SY+H) of the source is drawn at (DX,DY).
type ImageSlice struct {
	SX, SY, DX, DY, W, H float32
}

// BGARef is something displayable in a single BGA layer: nothing, a whole
// image, or a slice of an image.
type BGARef struct {
	Blank bool
	Image ImageRef
	Slice *ImageSlice
}

// BlankBGA returns a fully transparent reference.
func BlankBGA() BGARef { return BGARef{Blank: true} }

// ImageBGA returns a reference to a whole image.
func ImageBGA(image ImageRef) BGARef { return BGARef{Image: image} }

// SlicedBGA returns a reference to a portion of an image.
func SlicedBGA(image ImageRef, slice ImageSlice) BGARef {
	return BGARef{Image: image, Slice: &slice}
}

// ImageRefOK returns the underlying image resource if any.
func (r BGARef) ImageRefOK() (ImageRef, bool) {
	if r.Blank {
		return 0, false
	}
	return r.Image, true
}

// Kind discriminates the Data union.
type Kind uint8

const (
	// Deleted marks an object removed during processing.
	Deleted Kind = iota
	// Visible is a note. Its sound plays when the key is input inside the
	// associated grading area.
	Visible
	// Invisible is like Visible but is neither rendered nor graded.
	Invisible
	// LNStart is the start of a long note.
	LNStart
	// LNDone is the end of a long note.
	LNDone
	// Bomb damages the player when activated while the lane is pressed.
	Bomb
	// BGM plays the associated sound.
	BGM
	// SetBGA switches a BGA layer to the given reference.
	SetBGA
	// SetBPM changes the BPM. Negative scrolls backwards, zero terminates.
	SetBPM
	// Stop halts the scroll for the given duration.
	Stop
	// StopEnd restarts the scroll. A no-op kept to preserve the linear
	// relation between the time and position axes.
	StopEnd
	// SetMeasureFactor changes the ratio between virtual and actual position.
	SetMeasureFactor
	// MeasureBar marks the start of a measure.
	MeasureBar
	// End marks the logical end of the chart. Exactly one End must exist and
	// it must be the last object, strictly later than every other object.
	End
)

// Data is the per-object payload without time information. It is a tagged
// union over Kind; only the fields relevant to the Kind are meaningful.
// A zero Sound means "no sound attached".
type Data struct {
	Kind   Kind
	Lane   Lane
	Sound  SoundRef
	Damage Damage
	Layer  BGALayer
	BGA    BGARef
	BPM    BPM
	Dur    Dur
	Factor float64
}

// NewVisible returns a visible note in the given lane.
func NewVisible(lane Lane, sound SoundRef) Data {
	return Data{Kind: Visible, Lane: lane, Sound: sound}
}

// NewInvisible returns an invisible note in the given lane.
func NewInvisible(lane Lane, sound SoundRef) Data {
	return Data{Kind: Invisible, Lane: lane, Sound: sound}
}

// NewLNStart returns a long note start in the given lane.
func NewLNStart(lane Lane, sound SoundRef) Data {
	return Data{Kind: LNStart, Lane: lane, Sound: sound}
}

// NewLNDone returns a long note end in the given lane.
func NewLNDone(lane Lane, sound SoundRef) Data {
	return Data{Kind: LNDone, Lane: lane, Sound: sound}
}

// NewBomb returns a bomb in the given lane.
func NewBomb(lane Lane, sound SoundRef, damage Damage) Data {
	return Data{Kind: Bomb, Lane: lane, Sound: sound, Damage: damage}
}

// NewBGM returns a background sound trigger.
func NewBGM(sound SoundRef) Data { return Data{Kind: BGM, Sound: sound} }

// NewSetBGA returns a BGA layer switch.
func NewSetBGA(layer BGALayer, ref BGARef) Data {
	return Data{Kind: SetBGA, Layer: layer, BGA: ref}
}

// NewSetBPM returns a BPM change.
func NewSetBPM(bpm BPM) Data { return Data{Kind: SetBPM, BPM: bpm} }

// NewStop returns a scroll stopper.
func NewStop(d Dur) Data { return Data{Kind: Stop, Dur: d} }

// NewStopEnd returns the end mark of a scroll stopper.
func NewStopEnd() Data { return Data{Kind: StopEnd} }

// NewSetMeasureFactor returns a measure scaling factor change.
func NewSetMeasureFactor(factor float64) Data {
	return Data{Kind: SetMeasureFactor, Factor: factor}
}

// NewMeasureBar returns a measure bar.
func NewMeasureBar() Data { return Data{Kind: MeasureBar} }

// NewEnd returns the chart terminator.
func NewEnd() Data { return Data{Kind: End} }

// NewDeleted returns a deleted object.
func NewDeleted() Data { return Data{Kind: Deleted} }

func (d Data) IsDeleted() bool   { return d.Kind == Deleted }
func (d Data) IsVisible() bool   { return d.Kind == Visible }
func (d Data) IsInvisible() bool { return d.Kind == Invisible }
func (d Data) IsLNStart() bool   { return d.Kind == LNStart }
func (d Data) IsLNDone() bool    { return d.Kind == LNDone }
func (d Data) IsLN() bool        { return d.Kind == LNStart || d.Kind == LNDone }
func (d Data) IsBomb() bool      { return d.Kind == Bomb }

// IsSoundable reports whether the object may play its sound when it is the
// closest soundable object from the current position and the key is pressed.
func (d Data) IsSoundable() bool {
	switch d.Kind {
	case Visible, Invisible, LNStart, LNDone:
		return true
	}
	return false
}

// IsGradable reports whether the object is subject to grading.
func (d Data) IsGradable() bool {
	switch d.Kind {
	case Visible, LNStart, LNDone:
		return true
	}
	return false
}

// IsRenderable reports whether the object has a visible representation.
func (d Data) IsRenderable() bool {
	switch d.Kind {
	case Visible, LNStart, LNDone, Bomb:
		return true
	}
	return false
}

// IsObject reports whether the data is an object, i.e. tied to a lane.
func (d Data) IsObject() bool {
	switch d.Kind {
	case Visible, Invisible, LNStart, LNDone, Bomb:
		return true
	}
	return false
}

func (d Data) IsBGM() bool              { return d.Kind == BGM }
func (d Data) IsSetBGA() bool           { return d.Kind == SetBGA }
func (d Data) IsSetBPM() bool           { return d.Kind == SetBPM }
func (d Data) IsStop() bool             { return d.Kind == Stop }
func (d Data) IsStopEnd() bool          { return d.Kind == StopEnd }
func (d Data) IsSetMeasureFactor() bool { return d.Kind == SetMeasureFactor }
func (d Data) IsMeasureBar() bool       { return d.Kind == MeasureBar }
func (d Data) IsEnd() bool              { return d.Kind == End }

// ObjectLane returns the associated lane if the data is an object.
func (d Data) ObjectLane() (Lane, bool) {
	if d.IsObject() {
		return d.Lane, true
	}
	return 0, false
}

// Sounds returns all sounds associated to the data.
func (d Data) Sounds() []SoundRef {
	switch d.Kind {
	case Visible, Invisible, LNStart, LNDone, Bomb, BGM:
		if d.Sound != 0 {
			return []SoundRef{d.Sound}
		}
	}
	return nil
}

// KeydownSound returns the sound played when the key is pressed.
func (d Data) KeydownSound() SoundRef {
	switch d.Kind {
	case Visible, Invisible, LNStart:
		return d.Sound
	}
	return 0
}

// KeyupSound returns the sound played when the key is released.
func (d Data) KeyupSound() SoundRef {
	if d.Kind == LNDone {
		return d.Sound
	}
	return 0
}

// ThroughSound returns the sound played when the object activates while the
// corresponding key is pressed. Bombs are the only such objects.
func (d Data) ThroughSound() SoundRef {
	if d.Kind == Bomb {
		return d.Sound
	}
	return 0
}

// Images returns all images associated to the data.
func (d Data) Images() []ImageRef {
	if d.Kind == SetBGA {
		if iref, ok := d.BGA.ImageRefOK(); ok {
			return []ImageRef{iref}
		}
	}
	return nil
}

// ThroughDamage returns the damage dealt when the object activates.
func (d Data) ThroughDamage() (Damage, bool) {
	if d.Kind == Bomb {
		return d.Damage, true
	}
	return Damage{}, false
}

// mustBeObject panics unless the data is a soundable object; the conversion
// operations require callers to check IsObject first.
func (d Data) mustBeObject(op string) {
	switch d.Kind {
	case Visible, Invisible, LNStart, LNDone:
		return
	}
	panic(fmt.Sprintf("chart: %s for non-object %v", op, d.Kind))
}

// ToVisible returns a visible note with the same lane and sound.
func (d Data) ToVisible() Data {
	d.mustBeObject("ToVisible")
	return NewVisible(d.Lane, d.Sound)
}

// ToInvisible returns an invisible note with the same lane and sound.
func (d Data) ToInvisible() Data {
	d.mustBeObject("ToInvisible")
	return NewInvisible(d.Lane, d.Sound)
}

// ToLNStart returns a long note start with the same lane and sound.
func (d Data) ToLNStart() Data {
	d.mustBeObject("ToLNStart")
	return NewLNStart(d.Lane, d.Sound)
}

// ToLNDone returns a long note end with the same lane and sound.
func (d Data) ToLNDone() Data {
	d.mustBeObject("ToLNDone")
	return NewLNDone(d.Lane, d.Sound)
}

// ToEffect returns a non-object version of the data. Objects with a sound
// become BGMs; silent objects and bombs become Deleted; everything else is
// returned unchanged.
func (d Data) ToEffect() Data {
	switch d.Kind {
	case Visible, Invisible, LNStart, LNDone:
		if d.Sound != 0 {
			return NewBGM(d.Sound)
		}
		return NewDeleted()
	case Bomb:
		return NewDeleted()
	}
	return d
}

// WithLane returns the object moved to the given lane. No effect on
// object-like effects.
func (d Data) WithLane(lane Lane) Data {
	if d.IsObject() {
		d.Lane = lane
	}
	return d
}

func (k Kind) String() string {
	switch k {
	case Deleted:
		return "Deleted"
	case Visible:
		return "Visible"
	case Invisible:
		return "Invisible"
	case LNStart:
		return "LNStart"
	case LNDone:
		return "LNDone"
	case Bomb:
		return "Bomb"
	case BGM:
		return "BGM"
	case SetBGA:
		return "SetBGA"
	case SetBPM:
		return "SetBPM"
	case Stop:
		return "Stop"
	case StopEnd:
		return "StopEnd"
	case SetMeasureFactor:
		return "SetMeasureFactor"
	case MeasureBar:
		return "MeasureBar"
	case End:
		return "End"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

func (d Data) String() string {
	switch d.Kind {
	case Visible, Invisible, LNStart, LNDone:
		return fmt.Sprintf("%v(%d,%d)", d.Kind, d.Lane, d.Sound)
	case Bomb:
		return fmt.Sprintf("Bomb(%d,%d,%+v)", d.Lane, d.Sound, d.Damage)
	case BGM:
		return fmt.Sprintf("BGM(%d)", d.Sound)
	case SetBGA:
		return fmt.Sprintf("SetBGA(%d,%+v)", d.Layer, d.BGA)
	case SetBPM:
		return fmt.Sprintf("SetBPM(%g)", float64(d.BPM))
	case Stop:
		return fmt.Sprintf("Stop(%+v)", d.Dur)
	case SetMeasureFactor:
		return fmt.Sprintf("SetMeasureFactor(%g)", d.Factor)
	}
	return d.Kind.String()
}
