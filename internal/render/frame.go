package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/MaryHal/sonorous/internal/chart"
	"github.com/MaryHal/sonorous/internal/config"
	"github.com/MaryHal/sonorous/internal/keyspec"
	"github.com/MaryHal/sonorous/internal/player"
	"github.com/MaryHal/sonorous/internal/theme"
)

// rowsPerMeasure is how many console rows one measure spans at play speed 1.
const rowsPerMeasure = 8.0

// gradeFlash is how many frames a grade name stays on screen.
const gradeFlash = 30

type cell struct {
	row, col int
}

// Field lays the play field out on the terminal: one column per lane in key
// specification order, the grading bar near the bottom, and a status panel
// on the left.
type Field struct {
	r  Renderer
	th theme.Theme

	rows    int
	barRow  int
	sideCol int
	lanes   []chart.Lane
	columns map[chart.Lane]int
	kinds   map[chart.Lane]keyspec.Kind

	drawn     []cell
	lastFlash float64
}

func NewField(r Renderer, th theme.Theme, spec *keyspec.KeySpec, rows, cols int) *Field {
	f := &Field{
		r:       r,
		th:      th,
		rows:    rows,
		barRow:  rows - int(*config.BarRow),
		lanes:   spec.Order,
		columns: map[chart.Lane]int{},
		kinds:   map[chart.Lane]keyspec.Kind{},
	}

	width := int(*config.ColumnWidth)
	fieldWidth := len(spec.Order)*width + 2
	left := (cols - fieldWidth) / 2
	if left < 2 {
		left = 2
	}
	for i, lane := range spec.Order {
		col := left + i*width
		if i >= spec.Split {
			// A small gap between the panes of a double play layout.
			col += 2
		}
		f.columns[lane] = col
		if kind, ok := spec.KindOf(lane); ok {
			f.kinds[lane] = kind
		}
	}
	f.sideCol = left - 28
	if f.sideCol < 2 {
		f.sideCol = 2
	}
	f.lastFlash = math.Inf(-1)
	return f
}

// Render draws one frame of the play state. The player is read-only here;
// all mutation happens in its own tick.
func (f *Field) Render(p *player.Player, now float64) {
	for _, c := range f.drawn {
		f.r.Fill(c.row, c.col, " ")
	}
	f.drawn = f.drawn[:0]

	// The grading bar, highlighted per pressed lane.
	for _, lane := range f.lanes {
		sym := f.th.BarSym()
		if p.KeyPressed(lane) {
			sym = "\033[1m=\033[0m"
		}
		f.r.Fill(f.barRow, f.columns[lane], sym)
	}

	f.renderNotes(p)
	f.renderPanel(p, now)
}

func (f *Field) renderNotes(p *player.Player) {
	cur := p.Cursor()
	speed := p.NominalSpeed()
	view := float64(f.barRow)/(speed*rowsPerMeasure) + 1.0

	for _, obj := range cur.Upto(cur.Find(chart.VirtualPos, view)) {
		if !obj.Data.IsRenderable() {
			continue
		}
		dv := obj.Loc.VPos - cur.Loc.VPos
		row := f.barRow - int(math.Round(dv*speed*rowsPerMeasure))
		if row < 1 || row >= f.barRow {
			continue
		}
		lane, ok := obj.Data.ObjectLane()
		if !ok {
			continue
		}
		col, ok := f.columns[lane]
		if !ok {
			continue
		}
		kind := f.kinds[lane]
		switch obj.Data.Kind {
		case chart.Bomb:
			f.r.FillColor(row, col, color.RGBA{236, 30, 0, 255}, f.th.MineSym())
		case chart.LNStart, chart.LNDone:
			f.r.FillColor(row, col, f.th.NoteColor(kind), f.th.LongNoteSym(kind))
		default:
			f.r.FillColor(row, col, f.th.NoteColor(kind), f.th.NoteSym(kind))
		}
		f.drawn = append(f.drawn, cell{row: row, col: col})
	}
}

func (f *Field) renderPanel(p *player.Player, now float64) {
	f.r.Fill(2, f.sideCol, fmt.Sprintf("  Score:  %8v", p.Score()))
	f.r.Fill(3, f.sideCol, fmt.Sprintf("  Combo:  %5v (best %v)  ", p.Combo(), p.BestCombo()))
	f.r.Fill(4, f.sideCol, fmt.Sprintf("  Speed:  %6.1fx", p.NominalSpeed()))

	gauge := p.Gauge()
	if gauge < 0 {
		gauge = 0
	}
	filled := gauge * 20 / player.MaxGauge
	bar := ""
	for i := 0; i < 20; i++ {
		if i < filled {
			bar += "="
		} else {
			bar += " "
		}
	}
	gaugeColor := color.RGBA{236, 30, 0, 255}
	if p.Gauge() >= p.Survival() {
		gaugeColor = color.RGBA{0, 236, 128, 255}
	}
	f.r.Fill(6, f.sideCol, "  Gauge: [")
	f.r.FillColor(6, f.sideCol+10, gaugeColor, bar)
	f.r.Fill(6, f.sideCol+30, "]")

	counts := p.GradeCounts()
	for i := player.NGrades - 1; i >= 0; i-- {
		g := player.Grade(i)
		f.r.Fill(8+player.NGrades-1-i, f.sideCol,
			fmt.Sprintf("%7v:  %6v", g, counts[g]))
	}

	if grade, at, ok := p.LastGrade(); ok && at > f.lastFlash && now-at < 1.0 {
		f.lastFlash = at
		mid := f.barRow / 2
		f.r.AddDecoration(mid, f.sideCol, fmt.Sprintf("%16v", f.th.GradeName(grade)), gradeFlash)
	}
}
