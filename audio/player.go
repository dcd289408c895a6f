package audio

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/crystal-shard/prefs"
	"github.com/lixenwraith/crystal-shard/status"
)

// Player owns background music and the shatter effect
// Every method is safe before Initialize and after Cleanup
type Player struct {
	mu sync.Mutex

	cfg   Config
	sr    beep.SampleRate
	sink  Sink
	flags prefs.Flags

	mixer   *beep.Mixer
	music   *beep.Ctrl
	shatter *beep.Buffer

	initialized bool
	playing     bool
	resumeArmed bool
	shatters    int64

	playingMetric *atomic.Bool
}

// NewPlayer creates a stopped player; a nil sink plays through the system speaker
func NewPlayer(cfg Config, flags prefs.Flags, sink Sink) *Player {
	if sink == nil {
		sink = speakerSink{}
	}
	if flags == nil {
		flags = prefs.NewMemory()
	}
	return &Player{
		cfg:   cfg,
		sr:    beep.SampleRate(cfg.SampleRate),
		sink:  sink,
		flags: flags,
		mixer: &beep.Mixer{},
	}
}

// Instrument publishes the playing state
func (p *Player) Instrument(reg *status.Registry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playingMetric = reg.Bools.Get(status.KeyAudio)
	p.playingMetric.Store(p.playing)
}

// Initialize opens the device and prepares the music paused
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := p.sink.Init(p.sr, p.sr.N(p.cfg.Buffer)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	p.music = &beep.Ctrl{Streamer: newVolume(p.musicStream(), p.cfg.MusicVolume), Paused: true}
	p.mixer.Add(p.music)

	if p.cfg.ShatterPath != "" {
		buf, err := LoadWAV(p.cfg.ShatterPath, p.sr)
		if err != nil {
			log.Printf("audio: %v, using synthesized shatter", err)
		} else {
			p.shatter = buf
		}
	}

	p.sink.Play(p.mixer)
	p.initialized = true
	return nil
}

func (p *Player) musicStream() beep.Streamer {
	if p.cfg.MusicPath != "" {
		buf, err := LoadWAV(p.cfg.MusicPath, p.sr)
		if err == nil && buf.Len() > 0 {
			return beep.Loop(-1, buf.Streamer(0, buf.Len()))
		}
		if err == nil {
			err = fmt.Errorf("%s is empty", p.cfg.MusicPath)
		}
		log.Printf("audio: %v, using synthesized pad", err)
	}
	return NewPadGenerator(p.sr)
}

// Initialized reports whether a device is open
func (p *Player) Initialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Playing reports whether music is audible
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Toggle flips the music and persists the new state
// Without a device nothing changes and false is returned
func (p *Player) Toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return false
	}
	p.setPlaying(!p.playing)
	p.resumeArmed = false
	if err := p.flags.SetFlag(prefs.KeyAudioPlaying, p.playing); err != nil {
		log.Printf("audio: persist state: %v", err)
	}
	return p.playing
}

// ArmResume reads the persisted state and, when music was on, waits for the first Interact to restart it
func (p *Player) ArmResume() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	on, ok, err := p.flags.Flag(prefs.KeyAudioPlaying)
	if err != nil {
		log.Printf("audio: read state: %v", err)
		return false
	}
	p.resumeArmed = ok && on
	return p.resumeArmed
}

// Interact signals user input; the first call after ArmResume restarts the music
func (p *Player) Interact() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.resumeArmed {
		return
	}
	p.resumeArmed = false
	if p.initialized {
		p.setPlaying(true)
	}
}

// PlayShatter plays the glass break once over the music
func (p *Player) PlayShatter() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	var s beep.Streamer
	if p.shatter != nil {
		s = p.shatter.Streamer(0, p.shatter.Len())
	} else {
		s = NewShatterSound(p.sr, time.Now().UnixNano()+p.shatters)
	}
	p.shatters++

	p.sink.Lock()
	p.mixer.Add(newVolume(s, p.cfg.EffectVolume))
	p.sink.Unlock()
}

// Cleanup silences everything and releases the device
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	p.setPlaying(false)
	p.sink.Lock()
	p.mixer.Clear()
	p.sink.Unlock()
	p.sink.Clear()
	p.music = nil
	p.initialized = false
}

// setPlaying requires p.mu
func (p *Player) setPlaying(on bool) {
	p.playing = on
	if p.music != nil {
		p.sink.Lock()
		p.music.Paused = !on
		p.sink.Unlock()
	}
	if p.playingMetric != nil {
		p.playingMetric.Store(on)
	}
}
