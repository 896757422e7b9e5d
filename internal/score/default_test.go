package score

import (
	"testing"
	"time"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	s := DefaultStore{}
	if err := s.Init(":memory:"); nil != err {
		t.Fatal("unable to open store:", err)
	}
	defer s.Deinit()

	sum := HashChart([]byte("#TITLE test chart"))
	result := Result{
		Sum:       sum,
		PlayedAt:  time.Unix(1700000000, 0),
		Speed:     1.5,
		Grades:    [5]int{2, 0, 1, 10, 30},
		Score:     12345,
		BestCombo: 25,
		Gauge:     312,
		Cleared:   true,
	}
	s.Save(sum, &result)

	loaded := s.Load(sum)
	if len(loaded) != 1 {
		t.Fatal("unable to load saved result:", len(loaded))
	}
	got := loaded[0]
	if got.Sum != sum || got.Grades != result.Grades || got.Score != result.Score ||
		got.BestCombo != result.BestCombo || got.Gauge != result.Gauge ||
		!got.Cleared || got.Speed != result.Speed ||
		!got.PlayedAt.Equal(result.PlayedAt) {
		t.Log("got     ", got)
		t.Log("expected", result)
		t.Fail()
	}

	if other := s.Load(HashChart([]byte("another chart"))); len(other) != 0 {
		t.Log("unexpected results", other)
		t.Fail()
	}
}
