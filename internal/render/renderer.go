// Package render draws the play field on an ANSI terminal.
package render

import (
	"image/color"
	"time"
)

type Renderer interface {
	Init() error
	Deinit() error
	AddDecoration(row, col int, content string, frames int)
	RenderLoop(delay time.Duration, render func(start time.Time, duration time.Duration) bool)
	Fill(row, col int, message string)
	FillColor(row, col int, color color.RGBA, message string)
}
