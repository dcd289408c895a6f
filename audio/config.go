package audio

import "time"

// Config controls playback
// Empty paths select the synthesized sounds
type Config struct {
	SampleRate   int
	Buffer       time.Duration
	MusicVolume  float64
	EffectVolume float64
	MusicPath    string
	ShatterPath  string
}

// DefaultConfig returns the stock settings
func DefaultConfig() Config {
	return Config{
		SampleRate:   44100,
		Buffer:       100 * time.Millisecond,
		MusicVolume:  0.3,
		EffectVolume: 0.6,
	}
}
