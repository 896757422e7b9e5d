// Package score persists play results per chart.
package score

import (
	"time"

	"github.com/MaryHal/sonorous/internal/player"
)

type Store interface {
	Init(path string) error
	Deinit()

	// Save the result of this performance
	Save(sum string, result *Result)

	// Load up previous results for the chart
	Load(sum string) []Result
}

// Result is one finished performance of a chart.
type Result struct {
	Sum       string
	PlayedAt  time.Time
	Speed     float64
	AutoPlay  bool
	Grades    [player.NGrades]int
	Score     int
	BestCombo int
	Gauge     int
	Cleared   bool
}
