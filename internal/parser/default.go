package parser

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/MaryHal/sonorous/internal/chart"
	"github.com/MaryHal/sonorous/internal/keyspec"
	"github.com/MaryHal/sonorous/internal/score"
	"github.com/MaryHal/sonorous/internal/timeline"
)

type DefaultParser struct{}

// songSound is the resource reference of the song audio. The host loads the
// audio file as the first sound resource.
const songSound = chart.SoundRef(1)

// mineDamage is the gauge fraction a triggered mine costs, the same as an
// ordinary miss.
const mineDamage = 0.059

// nKeyMap gives the column count per recognized chart type.
var nKeyMap = map[string]int{
	"dance-single": 4,
	"dance-solo":   6,
	"dance-double": 8,
	"dance-couple": 8,
	"pump-single":  5,
	"pump-double":  10,
}

type bpmChange struct {
	beat  float64
	value float64
}

// event is an object waiting to be placed; effects order before bars, bars
// before notes at the same position.
type event struct {
	vpos  float64
	order int
	data  chart.Data
}

type meta struct {
	title  string
	offset float64
	bpms   []bpmChange
	stops  []bpmChange
}

func parseChanges(value string) ([]bpmChange, error) {
	value = strings.ReplaceAll(value, "\n", "")
	value = strings.TrimSuffix(value, ";")
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	changes := []bpmChange{}
	for _, pair := range strings.Split(value, ",") {
		as := strings.Split(pair, "=")
		if len(as) != 2 {
			return nil, fmt.Errorf("unable to parse change %q", pair)
		}
		beat, err := strconv.ParseFloat(strings.TrimSpace(as[0]), 64)
		if nil != err {
			return nil, err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(as[1]), 64)
		if nil != err {
			return nil, err
		}
		changes = append(changes, bpmChange{beat: beat, value: v})
	}
	return changes, nil
}

func parseMeta(section string) (meta, error) {
	m := meta{}
	for _, mdl := range strings.Split(section, "\n#") {
		mdl = strings.TrimSpace(mdl)
		switch {
		case strings.HasPrefix(mdl, "TITLE:"):
			m.title = strings.TrimSuffix(strings.TrimPrefix(mdl, "TITLE:"), ";")
		case strings.HasPrefix(mdl, "OFFSET:"):
			mdl = strings.TrimSuffix(strings.TrimPrefix(mdl, "OFFSET:"), ";")
			offset, err := strconv.ParseFloat(mdl, 64)
			if nil != err {
				return m, err
			}
			m.offset = offset
		case strings.HasPrefix(mdl, "BPMS:"):
			bpms, err := parseChanges(strings.TrimPrefix(mdl, "BPMS:"))
			if nil != err {
				return m, err
			}
			m.bpms = bpms
		case strings.HasPrefix(mdl, "STOPS:"):
			stops, err := parseChanges(strings.TrimPrefix(mdl, "STOPS:"))
			if nil != err {
				return m, err
			}
			m.stops = stops
		}
	}
	return m, nil
}

func (p *DefaultParser) Parse(file string, spec *keyspec.KeySpec) ([]*Chart, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}
	sum := score.HashChart(data)

	str := strings.ReplaceAll(string(data), "\r", "")
	sections := strings.Split(str, "#NOTES:")
	m, err := parseMeta(sections[0])
	if nil != err {
		return nil, err
	}
	if len(m.bpms) == 0 {
		return nil, errors.New("unable to find a BPM definition")
	}

	charts := []*Chart{}
	for _, section := range sections[1:] {
		lines := strings.SplitN(section, "\n", 7)
		if len(lines) < 7 {
			continue
		}
		chartType := strings.TrimSuffix(strings.TrimSpace(lines[1]), ":")
		nkeys, ok := nKeyMap[chartType]
		if !ok {
			continue
		}
		tl, err := p.buildTimeline(&m, lines[6], nkeys, spec)
		if nil != err {
			return nil, fmt.Errorf("unable to build %v chart: %w", chartType, err)
		}
		charts = append(charts, &Chart{
			Title:    m.title,
			Name:     strings.TrimSuffix(strings.TrimSpace(lines[3]), ":"),
			Msd:      strings.TrimSuffix(strings.TrimSpace(lines[4]), ":"),
			NKeys:    nkeys,
			Sum:      sum,
			Timeline: tl,
		})
	}
	if len(charts) == 0 {
		return nil, errors.New("unable to find a playable chart")
	}
	return charts, nil
}

// buildTimeline places the note section onto the four location axes. Beat 0
// sits so that the song audio, emitted at position zero, starts OFFSET
// seconds before it.
func (p *DefaultParser) buildTimeline(m *meta, section string, nkeys int, spec *keyspec.KeySpec) (*timeline.Timeline, error) {
	initBPM := chart.BPM(m.bpms[0].value)
	beat0 := initBPM.SecToMeasure(-m.offset)

	events := []event{{vpos: 0, order: 2, data: chart.NewBGM(songSound)}}
	for _, b := range m.bpms[1:] {
		events = append(events, event{vpos: beat0 + b.beat/4.0, order: 0, data: chart.NewSetBPM(chart.BPM(b.value))})
	}
	for _, s := range m.stops {
		events = append(events, event{vpos: beat0 + s.beat/4.0, order: 0, data: chart.NewStop(chart.Seconds(s.value))})
	}

	for measure, block := range strings.Split(section, "\n,") {
		base := beat0 + float64(measure)
		events = append(events, event{vpos: base, order: 1, data: chart.NewMeasureBar()})

		rows := []string{}
		for _, l := range strings.Split(block, "\n") {
			l = strings.TrimSuffix(strings.TrimSpace(l), ";")
			if len(l) < nkeys || strings.Contains(l, "-") {
				continue
			}
			rows = append(rows, l)
		}
		for i, row := range rows {
			vpos := base + float64(i)/float64(len(rows))
			for col := 0; col < nkeys && col < len(row); col++ {
				if col >= len(spec.Order) {
					break
				}
				lane := spec.Order[col]
				switch row[col] {
				case '1':
					events = append(events, event{vpos: vpos, order: 2, data: chart.NewVisible(lane, 0)})
				case '2', '4':
					events = append(events, event{vpos: vpos, order: 2, data: chart.NewLNStart(lane, 0)})
				case '3':
					events = append(events, event{vpos: vpos, order: 2, data: chart.NewLNDone(lane, 0)})
				case 'M':
					events = append(events, event{vpos: vpos, order: 2, data: chart.NewBomb(lane, 0, chart.GaugeDamage(mineDamage))})
				}
			}
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].vpos != events[j].vpos {
			return events[i].vpos < events[j].vpos
		}
		return events[i].order < events[j].order
	})

	b := timeline.NewBuilder(initBPM)
	for _, ev := range events {
		b.Add(ev.vpos, ev.data)
	}
	return b.Build(chart.NLanes)
}
