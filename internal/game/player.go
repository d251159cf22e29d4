package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/neural-backdrop/internal/audio"
	"github.com/iburimskiy/neural-backdrop/internal/config"
)

// player plays one soundtrack at a time and exposes its level.
type player struct {
	mu          sync.Mutex
	currentFile *os.File
	streamer    beep.StreamSeekCloser
	format      beep.Format
	ctrl        *beep.Ctrl
	tap         *audio.Tap
	meter       *audio.Meter
	duration    time.Duration
	paused      bool
	initDone    bool
}

func newPlayer() *player {
	return &player{meter: audio.NewMeter(config.MeterBands)}
}

func decode(path string) (beep.StreamSeekCloser, beep.Format, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, nil, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, beep.Format{}, nil, errors.New("unsupported file type: " + ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return streamer, format, f, nil
}

// load replaces the current soundtrack with path and starts playing it.
func (p *player) load(path string) error {
	streamer, format, f, err := decode(path)
	if err != nil {
		return err
	}

	// streamer -> tap -> ctrl
	t := audio.NewTap(streamer, config.VisualRingSize)
	ctrl := &beep.Ctrl{Streamer: t, Paused: false}

	p.mu.Lock()
	defer p.mu.Unlock()

	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !p.initDone:
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return err
		}
		p.initDone = true
	case p.format.SampleRate != format.SampleRate:
		speaker.Clear()
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return err
		}
	default:
		speaker.Clear()
	}
	p.closeLocked()

	p.currentFile = f
	p.streamer = streamer
	p.format = format
	p.ctrl = ctrl
	p.tap = t
	p.paused = false
	p.duration = format.SampleRate.D(streamer.Len())
	p.meter.Reset()

	// The callback runs with the speaker locked, so release on another goroutine.
	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		go func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			if p.streamer == streamer {
				p.closeLocked()
			}
		}()
	})))
	return nil
}

// closeLocked releases the current soundtrack; mu must be held
func (p *player) closeLocked() {
	if p.streamer != nil {
		_ = p.streamer.Close()
		p.streamer = nil
	}
	if p.currentFile != nil {
		_ = p.currentFile.Close()
		p.currentFile = nil
	}
	p.ctrl = nil
	p.tap = nil
	p.duration = 0
}

// stop silences the speaker and releases the soundtrack.
func (p *player) stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initDone {
		return
	}
	speaker.Clear()
	p.closeLocked()
}

func (p *player) setPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.paused = paused
	p.ctrl.Paused = paused
	speaker.Unlock()
}

func (p *player) active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctrl != nil
}

// level folds the latest samples into the meter.
func (p *player) level() float64 {
	p.mu.Lock()
	t := p.tap
	p.mu.Unlock()
	if t == nil {
		return p.meter.Level()
	}
	return p.meter.Update(t.Snapshot(config.SnapshotSamples))
}

// progress reports playback position and total length.
func (p *player) progress() (time.Duration, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0, 0
	}
	speaker.Lock()
	pos := p.streamer.Position()
	speaker.Unlock()
	return p.format.SampleRate.D(pos), p.duration
}
