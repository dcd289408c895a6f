// Package config layers built-in defaults, an optional TOML file and command line flags
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/crystal-shard/audio"
	"github.com/lixenwraith/crystal-shard/particle"
	"github.com/lixenwraith/crystal-shard/scene"
)

// Variant names accepted for the foreground scene
const (
	VariantBackground = "background"
	VariantShowcase   = "showcase"
)

var (
	ErrBadFPS     = errors.New("fps must be between 1 and 240")
	ErrBadScale   = errors.New("pixel_scale must be positive")
	ErrBadVariant = errors.New("unknown scene variant")
	ErrBadVolume  = errors.New("volume must be within [0,1]")
)

// FieldConfig tunes the 2D particle network
type FieldConfig struct {
	Particles        int     `toml:"particles"`
	MaxDistance      float64 `toml:"max_distance"`
	AttractionRadius float64 `toml:"attraction_radius"`
	Paused           bool    `toml:"paused"`
}

// SceneConfig selects and tunes the 3D scenes
type SceneConfig struct {
	Variant   string  `toml:"variant"`
	EnvMap    string  `toml:"env_map"`
	Shards    int     `toml:"shards"`
	Points    int     `toml:"points"`
	TimeScale float64 `toml:"time_scale"`
}

// AudioConfig tunes music and effects
type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Music   string  `toml:"music"`
	Shatter string  `toml:"shatter"`
	Volume  float64 `toml:"volume"`
}

// Config is the whole runtime configuration
type Config struct {
	FPS        int     `toml:"fps"`
	PixelScale float64 `toml:"pixel_scale"` // logical units per terminal pixel
	Seed       int64   `toml:"seed"`        // zero seeds from the clock
	Frames     int     `toml:"frames"`      // headless run length
	LogFile    string  `toml:"log_file"`

	Field     FieldConfig `toml:"field"`
	Scene     SceneConfig `toml:"scene"`
	Audio     AudioConfig `toml:"audio"`
	Catalog   string      `toml:"catalog"`
	PrefsDB   string      `toml:"prefs_db"`
	Starfield bool        `toml:"starfield"`
}

// Default returns the built-in configuration
func Default() Config {
	field := particle.DefaultConfig()
	bg := scene.BackgroundParams()
	return Config{
		FPS:        60,
		PixelScale: 4,
		Frames:     600,
		Field: FieldConfig{
			Particles:        field.Count,
			MaxDistance:      field.MaxDistance,
			AttractionRadius: field.AttractionRadius,
		},
		Scene: SceneConfig{
			Variant:   VariantShowcase,
			Shards:    bg.Shards.Count,
			Points:    bg.Particles.Count,
			TimeScale: bg.TimeScale,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  audio.DefaultConfig().MusicVolume,
		},
		PrefsDB:   "crystal-shard.db",
		Starfield: true,
	}
}

// Load returns the defaults overlaid with the TOML file at path, an empty path means defaults only
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return cfg, fmt.Errorf("load config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges
func (c Config) Validate() error {
	if c.FPS < 1 || c.FPS > 240 {
		return fmt.Errorf("%w: %d", ErrBadFPS, c.FPS)
	}
	if c.PixelScale <= 0 {
		return fmt.Errorf("%w: %v", ErrBadScale, c.PixelScale)
	}
	switch c.Scene.Variant {
	case VariantBackground, VariantShowcase:
	default:
		return fmt.Errorf("%w: %q", ErrBadVariant, c.Scene.Variant)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: %v", ErrBadVolume, c.Audio.Volume)
	}
	return nil
}

// Interval returns the frame period
func (c Config) Interval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// ParticleConfig maps the field section onto the particle defaults
func (c Config) ParticleConfig() particle.Config {
	p := particle.DefaultConfig()
	p.Count = max(c.Field.Particles, 0)
	p.MaxDistance = c.Field.MaxDistance
	p.AttractionRadius = c.Field.AttractionRadius
	return p
}

// BackgroundParams maps the scene section onto the backdrop preset
func (c Config) BackgroundParams() scene.Params {
	p := scene.BackgroundParams()
	p.Shards.Count = max(c.Scene.Shards, 0)
	p.Particles.Count = max(c.Scene.Points, 0)
	p.TimeScale = c.Scene.TimeScale
	return p
}

// ShowcaseParams maps the scene section onto the showcase preset
func (c Config) ShowcaseParams() scene.Params {
	p := scene.ShowcaseParams()
	p.TimeScale = c.Scene.TimeScale
	return p
}

// AudioConfig maps the audio section onto the player settings
func (c Config) AudioConfig() audio.Config {
	a := audio.DefaultConfig()
	a.MusicVolume = c.Audio.Volume
	a.MusicPath = c.Audio.Music
	a.ShatterPath = c.Audio.Shatter
	return a
}
