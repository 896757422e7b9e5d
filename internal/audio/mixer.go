// Package audio plays the chart's sound resources over a bounded pool of
// mixing channels backed by the speaker.
package audio

import (
	"fmt"
	"os"
	"path"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"

	"github.com/MaryHal/sonorous/internal/chart"
	"github.com/MaryHal/sonorous/internal/player"
)

// bgmVolume attenuates background sounds relative to key sounds, in powers
// of two.
const bgmVolume = -1.0

// Mixer is the sound collaborator of the player. Sounds are decoded once
// into memory; each Play mixes a fresh cursor over the speaker, so one
// resource can overlap itself.
type Mixer struct {
	mu       sync.Mutex
	sounds   []*beep.Buffer
	sr       beep.SampleRate
	capacity int
	active   [2]int
}

// NewMixer opens the speaker at the given sample rate. The sound table
// starts with the placeholder entry so that resource references are never
// zero.
func NewMixer(sampleRate int) (*Mixer, error) {
	sr := beep.SampleRate(sampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/60)); nil != err {
		return nil, fmt.Errorf("unable to open speaker: %w", err)
	}
	return &Mixer{sounds: []*beep.Buffer{nil}, sr: sr}, nil
}

// AddSound decodes the file into memory and returns its resource reference.
// The decoder is picked by the file extension; wav, mp3 and ogg are
// supported.
func (m *Mixer) AddSound(name string) (chart.SoundRef, error) {
	f, err := os.Open(name)
	if nil != err {
		return 0, err
	}
	defer f.Close()

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch path.Ext(name) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	default:
		return 0, fmt.Errorf("unable to play %v: unknown extension", name)
	}
	if nil != err {
		return 0, fmt.Errorf("unable to decode %v: %w", name, err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sounds = append(m.sounds, buffer)
	return chart.SoundRef(len(m.sounds) - 1), nil
}

// AddMissingSound reserves a resource reference with no sound attached.
// Playing it is a no-op, which keeps the reference numbering aligned with
// the chart when a file could not be loaded.
func (m *Mixer) AddMissingSound() chart.SoundRef {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sounds = append(m.sounds, nil)
	return chart.SoundRef(len(m.sounds) - 1)
}

// SoundLen returns the length of a sound resource in seconds, zero for the
// placeholder or a missing resource.
func (m *Mixer) SoundLen(sound chart.SoundRef) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	buffer := m.lookup(sound)
	if nil == buffer {
		return 0
	}
	n := buffer.Len()
	if buffer.Format().SampleRate != m.sr {
		n = int(float64(n) * float64(m.sr) / float64(buffer.Format().SampleRate))
	}
	return m.sr.D(n).Seconds()
}

func (m *Mixer) lookup(sound chart.SoundRef) *beep.Buffer {
	if sound <= 0 || int(sound) >= len(m.sounds) {
		return nil
	}
	return m.sounds[sound]
}

// Play mixes the sound in the given group. A missing resource is a silent
// no-op; a full channel pool reports false without playing anything.
func (m *Mixer) Play(sound chart.SoundRef, group player.Group) bool {
	m.mu.Lock()
	buffer := m.lookup(sound)
	if nil == buffer {
		m.mu.Unlock()
		return true
	}
	if m.active[player.GroupKey]+m.active[player.GroupBGM] >= m.capacity {
		m.mu.Unlock()
		return false
	}
	m.active[group]++
	m.mu.Unlock()

	var streamer beep.Streamer = buffer.Streamer(0, buffer.Len())
	if buffer.Format().SampleRate != m.sr {
		streamer = beep.Resample(4, buffer.Format().SampleRate, m.sr, streamer)
	}
	if group == player.GroupBGM {
		streamer = &effects.Volume{Streamer: streamer, Base: 2, Volume: bgmVolume}
	}
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		m.mu.Lock()
		m.active[group]--
		m.mu.Unlock()
	})))
	return true
}

// AllocateMoreChannels grows the channel pool.
func (m *Mixer) AllocateMoreChannels(n int) {
	m.mu.Lock()
	m.capacity += n
	m.mu.Unlock()
}

// Beep plays the synthesized speed-change beep. It never occupies a pool
// channel and is not counted by NumPlaying.
func (m *Mixer) Beep() {
	speaker.Play(newBeep(m.sr))
}

// NumPlaying counts the currently audible sounds in a group.
func (m *Mixer) NumPlaying(group player.Group) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active[group]
}
