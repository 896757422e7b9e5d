// Package input maps raw device events to debounced virtual lane events.
package input

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MaryHal/sonorous/internal/chart"
	"github.com/MaryHal/sonorous/internal/keyspec"
)

// Type discriminates raw inputs.
type Type int

const (
	// KeyInput is a keyboard key, identified by its event code.
	KeyInput Type = iota
	// JoyAxisInput is a joystick axis. Axis inputs are continuous: the
	// Negative state matters for them.
	JoyAxisInput
	// JoyButtonInput is a joystick button.
	JoyButtonInput
	// QuitInput is generated by the quit button or the escape key.
	QuitInput
)

// Input is an actual input, mapped to zero or one virtual inputs.
type Input struct {
	Type Type
	Code int
}

// Continuous reports whether the input produces continuous values.
func (in Input) Continuous() bool { return in.Type == JoyAxisInput }

// State of an input element. There is no semantic difference between the
// positive and negative states except that they are distinct: a continuous
// device can transition between them without ever reporting neutral, and the
// mapper turns such a transition into an unpress followed by a press.
type State int

const (
	// Negative occurs when a joystick axis is moved in the negative direction.
	Negative State = -1
	// Neutral occurs when a button is not pressed or an axis is centered.
	Neutral State = 0
	// Positive occurs when a button is pressed or an axis is moved in the
	// positive direction.
	Positive State = 1
)

// Event is a raw device event as delivered by an input source.
type Event struct {
	Input Input
	State State
}

// VirtualKind discriminates virtual inputs.
type VirtualKind int

const (
	// LaneKey is a virtual input mapped to a lane.
	LaneKey VirtualKind = iota
	// SpeedDownKey requests the previous play speed mark.
	SpeedDownKey
	// SpeedUpKey requests the next play speed mark.
	SpeedUpKey
)

// Virtual is a virtual input.
type Virtual struct {
	Kind VirtualKind
	Lane chart.Lane
}

// activeInKeySpec reports whether the virtual input participates in the
// given key specification with the given kind.
func (v Virtual) activeInKeySpec(kind keyspec.Kind, spec *keyspec.KeySpec) bool {
	if v.Kind != LaneKey {
		return true
	}
	got, ok := spec.KindOf(v.Lane)
	return ok && got == kind
}

// KeyMap maps actual inputs to virtual inputs. Built once from the resolved
// bindings, consumed read-only.
type KeyMap map[Input]Virtual

// Bindings is the resolved key binding configuration. Each field is a
// `|`-separated list of entries, one per lane of the corresponding key set;
// an entry may give `%`-separated alternatives, each a key name, "button N"
// or "axis N".
type Bindings struct {
	Keys1P string
	Keys2P string
	Speed  string
}

// DefaultBindings returns the stock bindings.
func DefaultBindings() Bindings {
	return Bindings{
		Keys1P: "left shift%axis 3|z%button 3|s%button 6|x%button 2|d%button 7|" +
			"c%button 1|f%button 4|v%axis 2|left alt",
		Keys2P: "right alt|m|k|,|l|.|;|/|right shift",
		Speed:  "f3|f4",
	}
}

// keySet describes one group of bindings: the kind each entry must have in
// the key specification (kind < 0 for none) and the virtual inputs it maps to.
type keySet struct {
	binding func(Bindings) string
	mapping []struct {
		kind    int
		vinputs []Virtual
	}
}

func laneKey(lane chart.Lane) []Virtual {
	return []Virtual{{Kind: LaneKey, Lane: lane}}
}

var keySets = []keySet{
	{
		binding: func(b Bindings) string { return b.Keys1P },
		mapping: []struct {
			kind    int
			vinputs []Virtual
		}{
			{int(keyspec.Scratch), laneKey(6)},
			{int(keyspec.WhiteKey), laneKey(1)},
			{int(keyspec.BlackKey), laneKey(2)},
			{int(keyspec.WhiteKey), laneKey(3)},
			{int(keyspec.BlackKey), laneKey(4)},
			{int(keyspec.WhiteKey), laneKey(5)},
			{int(keyspec.BlackKey), laneKey(8)},
			{int(keyspec.WhiteKey), laneKey(9)},
			{int(keyspec.FootPedal), laneKey(7)},
		},
	},
	{
		binding: func(b Bindings) string { return b.Keys2P },
		mapping: []struct {
			kind    int
			vinputs []Virtual
		}{
			{int(keyspec.FootPedal), laneKey(36 + 7)},
			{int(keyspec.WhiteKey), laneKey(36 + 1)},
			{int(keyspec.BlackKey), laneKey(36 + 2)},
			{int(keyspec.WhiteKey), laneKey(36 + 3)},
			{int(keyspec.BlackKey), laneKey(36 + 4)},
			{int(keyspec.WhiteKey), laneKey(36 + 5)},
			{int(keyspec.BlackKey), laneKey(36 + 8)},
			{int(keyspec.WhiteKey), laneKey(36 + 9)},
			{int(keyspec.Scratch), laneKey(36 + 6)},
		},
	},
	{
		binding: func(b Bindings) string { return b.Speed },
		mapping: []struct {
			kind    int
			vinputs []Virtual
		}{
			{-1, []Virtual{{Kind: SpeedDownKey}}},
			{-1, []Virtual{{Kind: SpeedUpKey}}},
		},
	},
}

// ParseInput parses an input name: a key name, "button N" or "axis N".
func ParseInput(s string) (Input, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "button "); ok {
		idx, err := strconv.Atoi(strings.TrimSpace(rest))
		if nil != err {
			return Input{}, fmt.Errorf("input: bad button index %q", rest)
		}
		return Input{Type: JoyButtonInput, Code: idx}, nil
	}
	if rest, ok := strings.CutPrefix(s, "axis "); ok {
		idx, err := strconv.Atoi(strings.TrimSpace(rest))
		if nil != err {
			return Input{}, fmt.Errorf("input: bad axis index %q", rest)
		}
		return Input{Type: JoyAxisInput, Code: idx}, nil
	}
	code, ok := keyCodes[strings.ToLower(s)]
	if !ok {
		return Input{}, fmt.Errorf("input: unknown key name %q", s)
	}
	return Input{Type: KeyInput, Code: code}, nil
}

// BuildKeyMap resolves the bindings against a key specification. Bindings
// whose lane has no kind assigned in the specification are skipped; unknown
// key names are a configuration error.
func BuildKeyMap(spec *keyspec.KeySpec, b Bindings) (KeyMap, error) {
	keymap := KeyMap{}
	for _, set := range keySets {
		parts := strings.Split(set.binding(b), "|")
		for i, part := range parts {
			if i >= len(set.mapping) {
				break
			}
			entry := set.mapping[i]
			for _, alt := range strings.Split(part, "%") {
				if strings.TrimSpace(alt) == "" {
					continue
				}
				in, err := ParseInput(alt)
				if nil != err {
					return nil, err
				}
				for _, vinput := range entry.vinputs {
					if entry.kind < 0 || vinput.activeInKeySpec(keyspec.Kind(entry.kind), spec) {
						keymap[in] = vinput
					}
				}
			}
		}
	}
	return keymap, nil
}
