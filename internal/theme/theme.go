// Package theme decides how lanes, notes and grades look on the console.
package theme

import (
	"image/color"

	"github.com/MaryHal/sonorous/internal/keyspec"
	"github.com/MaryHal/sonorous/internal/player"
)

type Theme interface {
	NoteSym(kind keyspec.Kind) string
	LongNoteSym(kind keyspec.Kind) string
	MineSym() string
	BarSym() string
	NoteColor(kind keyspec.Kind) color.RGBA
	GradeName(grade player.Grade) string
}
