package config

import (
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	Directory  = kingpin.Arg("directory", "Song/chart directory").Required().ExistingDir()
	Speed      = kingpin.Flag("speed", "Play speed, chart expansion rate").Default("1.0").Short('s').Float64()
	Rate       = kingpin.Flag("rate", "Playback rate").Default("1.0").Short('r').Float64()
	Delay      = kingpin.Flag("delay", "Start delay").Default("1.5s").Short('d').Duration()
	AutoPlay   = kingpin.Flag("autoplay", "Simulate a flawless play").Short('a').Bool()
	Exclusive  = kingpin.Flag("exclusive", "Ignore lane input").Bool()
	Rank       = kingpin.Flag("rank", "Judge rank, higher is lenient").Default("2").Int()
	Preset     = kingpin.Flag("preset", "Key layout preset").Default("7").String()
	LeftKeys   = kingpin.Flag("keys-left", "Key spec override, left side").String()
	RightKeys  = kingpin.Flag("keys-right", "Key spec override, right side").String()
	Keys1P     = kingpin.Flag("bind-1p", "Bindings for player 1 lanes").String()
	Keys2P     = kingpin.Flag("bind-2p", "Bindings for player 2 lanes").String()
	SpeedKeys  = kingpin.Flag("bind-speed", "Bindings for speed down/up").String()
	Device     = kingpin.Flag("device", "Input device node to read besides the keyboard").String()
	SampleRate = kingpin.Flag("sample-rate", "Mixing sample rate").Default("44100").Int()
	Scores     = kingpin.Flag("scores", "Result database path").Default("./scores.db").String()

	FramePeriod = kingpin.Flag("frame-period", "Render frame period").Default("16ms").Short('p').Duration()
	BarRow      = kingpin.Flag("bar-row", "Console row to render the grading bar").Default("8").Uint()
	ColumnWidth = kingpin.Flag("column-width", "Console columns per lane").Default("4").Uint()
)

func Parse() {
	kingpin.Version("0.1.0")
	kingpin.Parse()
}
