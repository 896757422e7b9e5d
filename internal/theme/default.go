package theme

import (
	"image/color"

	"github.com/MaryHal/sonorous/internal/keyspec"
	"github.com/MaryHal/sonorous/internal/player"
)

type DefaultTheme struct {
}

const (
	noteSym = "⬤"
	longSym = "┃"
	mineSym = "⨯"
	barSym  = "-"
)

var noteColors = map[keyspec.Kind]color.RGBA{
	keyspec.WhiteKey:    {236, 236, 236, 255},
	keyspec.WhiteKeyAlt: {236, 195, 0, 255},
	keyspec.BlackKey:    {80, 160, 236, 255},
	keyspec.Scratch:     {236, 30, 0, 255},
	keyspec.FootPedal:   {180, 0, 236, 255},
	keyspec.Button1:     {236, 236, 236, 255},
	keyspec.Button2:     {236, 195, 0, 255},
	keyspec.Button3:     {0, 236, 128, 255},
	keyspec.Button4:     {0, 118, 236, 255},
	keyspec.Button5:     {236, 30, 0, 255},
}

var gradeNames = map[player.Grade]string{
	player.Cool:  "\033[38;5;153mCOOL\033[0m",
	player.Great: "\033[1;33mGREAT\033[0m",
	player.Good:  "\033[1;32mGOOD\033[0m",
	player.Bad:   "\033[1;35mBAD\033[0m",
	player.Miss:  "\033[1;31mMISS\033[0m",
}

func (t *DefaultTheme) NoteSym(kind keyspec.Kind) string     { return noteSym }
func (t *DefaultTheme) LongNoteSym(kind keyspec.Kind) string { return longSym }
func (t *DefaultTheme) MineSym() string                      { return mineSym }
func (t *DefaultTheme) BarSym() string                       { return barSym }

func (t *DefaultTheme) NoteColor(kind keyspec.Kind) color.RGBA {
	col, ok := noteColors[kind]
	if !ok {
		return color.RGBA{255, 255, 255, 255}
	}
	return col
}

func (t *DefaultTheme) GradeName(grade player.Grade) string {
	name, ok := gradeNames[grade]
	if !ok {
		return ""
	}
	return name
}
