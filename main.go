package main

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"github.com/eiannone/keyboard"
	"golang.org/x/term"

	"github.com/MaryHal/sonorous/internal/audio"
	"github.com/MaryHal/sonorous/internal/config"
	"github.com/MaryHal/sonorous/internal/input"
	"github.com/MaryHal/sonorous/internal/keyspec"
	"github.com/MaryHal/sonorous/internal/parser"
	"github.com/MaryHal/sonorous/internal/player"
	"github.com/MaryHal/sonorous/internal/render"
	"github.com/MaryHal/sonorous/internal/score"
	"github.com/MaryHal/sonorous/internal/theme"
)

func main() {
	config.Parse()
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

func resolveKeySpec() (*keyspec.KeySpec, error) {
	if *config.LeftKeys != "" {
		return keyspec.Parse(*config.LeftKeys, *config.RightKeys)
	}
	return keyspec.FromPreset(*config.Preset)
}

func resolveBindings() input.Bindings {
	b := input.DefaultBindings()
	if *config.Keys1P != "" {
		b.Keys1P = *config.Keys1P
	}
	if *config.Keys2P != "" {
		b.Keys2P = *config.Keys2P
	}
	if *config.SpeedKeys != "" {
		b.Speed = *config.SpeedKeys
	}
	return b
}

func selectChart(charts []*parser.Chart) (*parser.Chart, error) {
	if len(charts) == 1 {
		return charts[0], nil
	}
	for i, c := range charts {
		fmt.Printf("%2v) %3v  %vk  %v\n", i, c.Msd, c.NKeys, c.Name)
	}
	ch, _, err := keyboard.GetSingleKey()
	if nil != err {
		return nil, err
	}
	index, err := strconv.ParseInt(string(ch), 10, 64)
	if nil != err || index < 0 || index > int64(len(charts)-1) {
		return nil, errors.New("unable to read a difficulty number")
	}
	return charts[index], nil
}

func run() error {
	// Ensure our Default implementations are used as interfaces
	var r render.Renderer = &render.DefaultRenderer{}
	var th theme.Theme = &theme.DefaultTheme{}
	var psr parser.Parser = &parser.DefaultParser{}
	var store score.Store = &score.DefaultStore{}

	columns, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if nil != err {
		return fmt.Errorf("unable to get terminal size: %w", err)
	}

	spec, err := resolveKeySpec()
	if nil != err {
		return err
	}
	keymap, err := input.BuildKeyMap(spec, resolveBindings())
	if nil != err {
		return err
	}

	var audioFile, chartFile string
	if err := filepath.Walk(*config.Directory, func(p string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		switch path.Ext(info.Name()) {
		case ".mp3", ".ogg", ".wav":
			audioFile = p
		case ".sm":
			chartFile = p
		}
		return nil
	}); nil != err {
		return fmt.Errorf("unable to walk song directory: %w", err)
	}
	if chartFile == "" {
		return errors.New("unable to find a .sm file in the given directory")
	}

	charts, err := psr.Parse(chartFile, spec)
	if nil != err {
		return err
	}
	chart, err := selectChart(charts)
	if nil != err {
		return err
	}

	events := make(chan input.Event, 256)
	if err := input.ReadKeyboard(events); nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	defer func() {
		if err := keyboard.Close(); nil != err {
			log.Println("unable to close keyboard:", err)
		}
	}()
	if *config.Device != "" {
		if err := input.ReadDevice(*config.Device, events); nil != err {
			return fmt.Errorf("unable to open input device: %w", err)
		}
	}

	mixer, err := audio.NewMixer(int(math.Round(float64(*config.SampleRate) * *config.Rate)))
	if nil != err {
		return err
	}
	if audioFile != "" {
		if _, err := mixer.AddSound(audioFile); nil != err {
			log.Println("unable to load song audio:", err)
			mixer.AddMissingSound()
		}
	} else {
		mixer.AddMissingSound()
	}

	if err := store.Init(*config.Scores); nil != err {
		return fmt.Errorf("unable to open result store: %w", err)
	}
	defer store.Deinit()

	info := chart.Timeline.Analyze()
	length := chart.Timeline.Duration(info.OriginOffset, mixer.SoundLen)
	log.Printf("Playing %v [%v] (%v notes, %.0fs)\n",
		chart.Title, chart.Name, info.NNotes, length)

	opts := player.Options{
		PlaySpeed: *config.Speed,
		AutoPlay:  *config.AutoPlay,
		Exclusive: *config.Exclusive,
		Rank:      *config.Rank,
	}
	p := player.New(chart.Timeline, spec, keymap, mixer, opts, 0.0)

	// Clear the screen and hide the cursor
	if err := r.Init(); nil != err {
		return err
	}
	defer func() {
		// Restore the terminal state
		if err := r.Deinit(); nil != err {
			log.Println("unable to restore terminal:", err)
		}
	}()

	field := render.NewField(r, th, spec, rows, columns)
	status := player.Playing
	r.RenderLoop(*config.Delay, func(start time.Time, duration time.Duration) bool {
		now := duration.Seconds()
		status = p.Tick(now, input.Drain(events))
		field.Render(p, now)
		return status == player.Playing
	})

	// A quit skips the result; a finished run is recorded whether cleared
	// or not.
	if status == player.Finished {
		result := score.Result{
			Sum:       chart.Sum,
			PlayedAt:  time.Now(),
			Speed:     *config.Speed,
			AutoPlay:  *config.AutoPlay,
			Grades:    p.GradeCounts(),
			Score:     p.Score(),
			BestCombo: p.BestCombo(),
			Gauge:     p.Gauge(),
			Cleared:   p.Gauge() >= p.Survival(),
		}
		store.Save(chart.Sum, &result)
	}
	return nil
}
