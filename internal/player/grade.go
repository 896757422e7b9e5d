package player

import "fmt"

// Grade is the verdict on a single graded input. Grading is time-based: the
// normalized virtual-time difference between the input and the object picks
// the grade.
type Grade int

const (
	// Miss is issued when the object was not input at all, a bomb passed
	// through a pressed lane, or a long note was not released within its
	// grading area. Resets the combo and deals severe gauge damage.
	Miss Grade = iota
	// Bad resets the combo and deals moderate gauge damage.
	Bad
	// Good affects neither the combo nor the gauge.
	Good
	// Great increments the combo and replenishes the gauge a little.
	Great
	// Cool increments the combo and replenishes the gauge more.
	Cool
)

// NGrades is the number of available grades.
const NGrades = 5

// Normalized time difference cutoffs, in seconds, to get at least each grade.
const (
	CoolCutoff  = 0.0144
	GreatCutoff = 0.048
	GoodCutoff  = 0.084
	BadCutoff   = 0.144
)

// MaxGauge is the internal full-gauge value.
const MaxGauge = 512

// ScorePerNote is the base score per exact input. The actual score can be
// up to doubled by the combo or reduced by the time difference.
const ScorePerNote = 300.0

const (
	// missDamageRatio is the gauge fraction lost on a MISS not caused by a bomb.
	missDamageRatio = 0.059
	// badDamageRatio is the gauge fraction lost on a BAD.
	badDamageRatio = 0.030
)

func (g Grade) String() string {
	switch g {
	case Miss:
		return "MISS"
	case Bad:
		return "BAD"
	case Good:
		return "GOOD"
	case Great:
		return "GREAT"
	case Cool:
		return "COOL"
	}
	return fmt.Sprintf("Grade(%d)", int(g))
}
