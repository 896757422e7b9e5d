package parser

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/MaryHal/sonorous/internal/chart"
	"github.com/MaryHal/sonorous/internal/keyspec"
)

const testChart = `#TITLE:test song;
#OFFSET:0.000;
#BPMS:0.000=120.000,8.000=240.000;
#STOPS:;

#NOTES:
     dance-single:
     :
     Beginner:
     1:
     0,0,0,0,0:
1000
0010
2000
3000
,
0000
M000
0000
0000
;
`

func parseTestChart(t *testing.T) *Chart {
	dir := t.TempDir()
	file := filepath.Join(dir, "test.sm")
	if err := os.WriteFile(file, []byte(testChart), 0o644); nil != err {
		t.Fatal("unable to write chart:", err)
	}

	spec, err := keyspec.FromPreset("7")
	if nil != err {
		t.Fatal("unable to resolve key spec:", err)
	}
	p := DefaultParser{}
	charts, err := p.Parse(file, spec)
	if nil != err {
		t.Fatal("unable to parse chart:", err)
	}
	if len(charts) != 1 {
		t.Fatal("unexpected chart count:", len(charts))
	}
	return charts[0]
}

func TestParseMetadata(t *testing.T) {
	c := parseTestChart(t)
	if c.Title != "test song" || c.Name != "Beginner" || c.Msd != "1" || c.NKeys != 4 {
		t.Log("title", c.Title, "name", c.Name, "msd", c.Msd, "nkeys", c.NKeys)
		t.Fail()
	}
	if c.Sum == "" {
		t.Log("missing chart digest")
		t.Fail()
	}
}

func TestParseObjects(t *testing.T) {
	c := parseTestChart(t)
	tl := c.Timeline

	if tl.InitBPM != 120 {
		t.Log("bpm", tl.InitBPM)
		t.Fail()
	}

	counts := map[chart.Kind]int{}
	for _, obj := range tl.Objs {
		counts[obj.Data.Kind]++
	}
	expected := map[chart.Kind]int{
		chart.Visible:    2,
		chart.LNStart:    1,
		chart.LNDone:     1,
		chart.Bomb:       1,
		chart.BGM:        1,
		chart.SetBPM:     1,
		chart.MeasureBar: 2,
		chart.End:        1,
	}
	for kind, n := range expected {
		if counts[kind] != n {
			t.Log("kind    ", kind)
			t.Log("got     ", counts[kind])
			t.Log("expected", n)
			t.Fail()
		}
	}
}

// At 120 BPM a measure is two seconds, so the second row of the first
// measure lands half a second in.
func TestParseTiming(t *testing.T) {
	c := parseTestChart(t)

	var visible []chart.Obj
	for _, obj := range c.Timeline.Objs {
		if obj.Data.IsVisible() {
			visible = append(visible, obj)
		}
	}
	if len(visible) != 2 {
		t.Fatal("unexpected visible notes:", len(visible))
	}
	if visible[0].Loc.Time != 0.0 || math.Abs(visible[1].Loc.Time-0.5) > 1e-9 {
		t.Log("times", visible[0].Loc.Time, visible[1].Loc.Time)
		t.Fail()
	}

	// The BPM doubles at beat 8, the start of the third measure.
	for _, obj := range c.Timeline.Objs {
		if obj.Data.IsSetBPM() {
			if obj.Loc.VPos != 2.0 || obj.Data.BPM != 240 {
				t.Log("bpm change", obj.Loc.VPos, obj.Data.BPM)
				t.Fail()
			}
		}
	}
}

func TestParseLaneMapping(t *testing.T) {
	c := parseTestChart(t)
	spec, err := keyspec.FromPreset("7")
	if nil != err {
		t.Fatal("unable to resolve key spec:", err)
	}

	for _, obj := range c.Timeline.Objs {
		lane, ok := obj.Data.ObjectLane()
		if !ok {
			continue
		}
		if _, active := spec.KindOf(lane); !active {
			t.Log("object in unmapped lane", obj.Data)
			t.Fail()
		}
	}
}

func TestParseRejectsChartWithoutBPM(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "bad.sm")
	if err := os.WriteFile(file, []byte("#TITLE:x;\n#NOTES:\n"), 0o644); nil != err {
		t.Fatal("unable to write chart:", err)
	}
	spec, err := keyspec.FromPreset("7")
	if nil != err {
		t.Fatal("unable to resolve key spec:", err)
	}
	p := DefaultParser{}
	if _, err := p.Parse(file, spec); nil == err {
		t.Log("expected an error")
		t.Fail()
	}
}
