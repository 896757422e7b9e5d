package audio

import "github.com/faiface/beep"

// beepFreq is the base frequency of the synthesized beep in Hz.
const beepFreq = 1000.0

// beepLen is the length of the synthesized beep in seconds.
const beepLen = 0.14

// sawtooth is a short sawtooth wave with a quadratic decay, used for the
// speed-change beep so no sound file needs to ship with the program.
type sawtooth struct {
	sr    beep.SampleRate
	pos   int
	total int
}

func newBeep(sr beep.SampleRate) beep.Streamer {
	return &sawtooth{sr: sr, total: int(float64(sr) * beepLen)}
}

func (s *sawtooth) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= s.total {
		return 0, false
	}
	n := 0
	for ; n < len(samples) && s.pos < s.total; n++ {
		t := float64(s.pos) / float64(s.sr)
		phase := t * beepFreq
		phase -= float64(int(phase))
		decay := 1.0 - float64(s.pos)/float64(s.total)
		v := (2.0*phase - 1.0) * decay * decay * 0.3
		samples[n][0] = v
		samples[n][1] = v
		s.pos++
	}
	return n, true
}

func (s *sawtooth) Err() error { return nil }
