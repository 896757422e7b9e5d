// Package keyspec defines key kinds and the lane layout specification.
package keyspec

import (
	"fmt"
	"strings"

	"github.com/MaryHal/sonorous/internal/chart"
)

// Kind is the visual and grading category of a lane. It defines the
// appearance of the lane but is otherwise ignored for the game play.
type Kind int

const (
	// WhiteKey mimics a real white key in the musical keyboard.
	WhiteKey Kind = iota
	// WhiteKeyAlt is a white key rendered yellow, as in the O2Jam layout.
	WhiteKeyAlt
	// BlackKey mimics a real black key, rendered light blue.
	BlackKey
	// Scratch is wider than other keys and normally doesn't count as one.
	Scratch
	// FootPedal has the same properties as Scratch.
	FootPedal
	// Button1 through Button5 are the nine-button layout categories.
	Button1
	Button2
	Button3
	Button4
	Button5
)

var kindChars = map[byte]Kind{
	'a': WhiteKey, 'y': WhiteKeyAlt, 'b': BlackKey, 's': Scratch, 'p': FootPedal,
	'q': Button1, 'w': Button2, 'e': Button3, 'r': Button4, 't': Button5,
}

// KindFromChar converts a mnemonic character to a key kind.
func KindFromChar(c byte) (Kind, bool) {
	k, ok := kindChars[c]
	return k, ok
}

// CountsAsKey reports whether a kind counts as a "key". Scratches and foot
// pedals do not, reflecting the common practice of counting keys (a lane
// layout with 8 lanes including one scratch is said to have 7 keys).
func (k Kind) CountsAsKey() bool { return k != Scratch && k != FootPedal }

// KeySpec is the order and appearance of lanes. Once determined from the
// options and the chart it is fixed and consumed read-only.
type KeySpec struct {
	// Split is the number of lanes on the left side. Significant only when
	// the layout has two panes.
	Split int
	// Order is the significant lanes, left pane first.
	Order []chart.Lane
	// Kinds maps each lane to its kind; nil entry means the lane is unused.
	Kinds [chart.NLanes]*Kind
}

// NKeys returns the number of lanes that count towards "keys".
func (s *KeySpec) NKeys() int {
	nkeys := 0
	for _, kind := range s.Kinds {
		if nil != kind && kind.CountsAsKey() {
			nkeys++
		}
	}
	return nkeys
}

// LeftLanes returns the lanes on the left pane, from left to right.
func (s *KeySpec) LeftLanes() []chart.Lane { return s.Order[:s.Split] }

// RightLanes returns the lanes on the right pane if any, from left to right.
func (s *KeySpec) RightLanes() []chart.Lane { return s.Order[s.Split:] }

// KindOf returns the kind assigned to the lane, if any.
func (s *KeySpec) KindOf(lane chart.Lane) (Kind, bool) {
	if lane < 0 || int(lane) >= chart.NLanes || nil == s.Kinds[lane] {
		return 0, false
	}
	return *s.Kinds[lane], true
}

// parseSpec parses a key specification string like "16s 11a 12b". Each entry
// is a two-digit base-36 channel followed by a kind mnemonic; the channel
// maps to a lane by subtracting one player's worth of channels (36).
func parseSpec(s string) ([]chart.Lane, []Kind, error) {
	var lanes []chart.Lane
	var kinds []Kind
	for _, part := range strings.Fields(s) {
		if len(part) != 3 {
			return nil, nil, fmt.Errorf("keyspec: malformed entry %q", part)
		}
		hi := base36(part[0])
		lo := base36(part[1])
		if hi < 0 || lo < 0 {
			return nil, nil, fmt.Errorf("keyspec: malformed channel in %q", part)
		}
		chanv := hi*36 + lo
		if chanv < 36 || chanv >= 3*36 {
			return nil, nil, fmt.Errorf("keyspec: channel out of range in %q", part)
		}
		kind, ok := KindFromChar(part[2])
		if !ok {
			return nil, nil, fmt.Errorf("keyspec: unknown key kind %q in %q", part[2:], part)
		}
		lanes = append(lanes, chart.Lane(chanv-36))
		kinds = append(kinds, kind)
	}
	return lanes, kinds, nil
}

func base36(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	}
	return -1
}

// presets are the well-known key specifications, by name.
var presets = map[string][2]string{
	// 5-key, single and double play
	"5":  {"16s 11a 12b 13a 14b 15a", ""},
	"10": {"16s 11a 12b 13a 14b 15a", "21a 22b 23a 24b 25a 26s"},
	// 5-key with a foot pedal
	"5/fp":  {"16s 11a 12b 13a 14b 15a 17p", ""},
	"10/fp": {"16s 11a 12b 13a 14b 15a 17p", "27p 21a 22b 23a 24b 25a 26s"},
	// 7-key
	"7":  {"16s 11a 12b 13a 14b 15a 18b 19a", ""},
	"14": {"16s 11a 12b 13a 14b 15a 18b 19a", "21a 22b 23a 24b 25a 28b 29a 26s"},
	// 7-key with a foot pedal
	"7/fp":  {"16s 11a 12b 13a 14b 15a 18b 19a 17p", ""},
	"14/fp": {"16s 11a 12b 13a 14b 15a 18b 19a 17p", "27p 21a 22b 23a 24b 25a 28b 29a 26s"},
	// 9-key
	"9":     {"11q 12w 13e 14r 15t 22r 23e 24w 25q", ""},
	"9-bme": {"11q 12w 13e 14r 15t 18r 19e 16w 17q", ""},
}

// Preset resolves a preset name to its left and right key specifications.
func Preset(name string) (left, right string, err error) {
	lr, ok := presets[strings.ToLower(name)]
	if !ok {
		return "", "", fmt.Errorf("keyspec: invalid preset name %q", name)
	}
	return lr[0], lr[1], nil
}

// Parse builds a key specification from left and right pane spec strings.
// The left spec must be non-empty; assigning two kinds to one lane is a
// configuration error.
func Parse(leftkeys, rightkeys string) (*KeySpec, error) {
	spec := &KeySpec{}
	add := func(keys string) (int, error) {
		lanes, kinds, err := parseSpec(keys)
		if nil != err {
			return 0, err
		}
		if len(lanes) == 0 {
			return 0, fmt.Errorf("keyspec: empty key spec %q", keys)
		}
		for i, lane := range lanes {
			if nil != spec.Kinds[lane] {
				return 0, fmt.Errorf("keyspec: lane %d specified twice", lane)
			}
			kind := kinds[i]
			spec.Order = append(spec.Order, lane)
			spec.Kinds[lane] = &kind
		}
		return len(lanes), nil
	}

	if leftkeys == "" {
		return nil, fmt.Errorf("keyspec: no key model specified")
	}
	n, err := add(leftkeys)
	if nil != err {
		return nil, fmt.Errorf("invalid key spec for left hand side: %w", err)
	}
	spec.Split = n
	if rightkeys != "" {
		if _, err = add(rightkeys); nil != err {
			return nil, fmt.Errorf("invalid key spec for right hand side: %w", err)
		}
	}
	return spec, nil
}

// FromPreset builds a key specification from a preset name.
func FromPreset(name string) (*KeySpec, error) {
	left, right, err := Preset(name)
	if nil != err {
		return nil, err
	}
	return Parse(left, right)
}
