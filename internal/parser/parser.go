// Package parser reads .sm chart files into playable timelines.
package parser

import (
	"github.com/MaryHal/sonorous/internal/keyspec"
	"github.com/MaryHal/sonorous/internal/timeline"
)

type Parser interface {
	Parse(file string, spec *keyspec.KeySpec) ([]*Chart, error)
}

// Chart is one parsed difficulty of a chart file.
type Chart struct {
	Title string
	// Name is the difficulty name (Beginner, Challenge, ...).
	Name string
	// Msd is the difficulty rating.
	Msd   string
	NKeys int
	// Sum identifies the source file for the result history.
	Sum      string
	Timeline *timeline.Timeline
}
