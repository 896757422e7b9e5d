package audio

import (
	"math"
	"testing"

	"github.com/faiface/beep"
)

func TestBeepStream(t *testing.T) {
	sr := beep.SampleRate(44100)
	s := newBeep(sr)

	total := 0
	peak := 0.0
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			v := math.Abs(buf[i][0])
			if v > peak {
				peak = v
			}
			if buf[i][0] != buf[i][1] {
				t.Log("stereo mismatch at", total+i)
				t.Fail()
			}
			if v > 1.0 {
				t.Log("sample out of range", buf[i][0])
				t.Fail()
			}
		}
		total += n
		if !ok {
			break
		}
	}

	if expected := int(float64(sr) * beepLen); total != expected {
		t.Log("samples ", total)
		t.Log("expected", expected)
		t.Fail()
	}
	if peak == 0.0 {
		t.Log("beep is silent")
		t.Fail()
	}
	if n, ok := s.Stream(buf); n != 0 || ok {
		t.Log("drained streamer still streams", n, ok)
		t.Fail()
	}
}
