package config

import "flag"

// Overrides holds command line values that replace file settings when given explicitly
type Overrides struct {
	fs *flag.FlagSet

	fps       *int
	scale     *float64
	seed      *int64
	frames    *int
	logFile   *string
	particles *int
	variant   *string
	envMap    *string
	noAudio   *bool
	music     *string
	catalog   *string
	prefsDB   *string
}

// NewOverrides registers override flags on fs
func NewOverrides(fs *flag.FlagSet) *Overrides {
	d := Default()
	return &Overrides{
		fs:        fs,
		fps:       fs.Int("fps", d.FPS, "frames per second"),
		scale:     fs.Float64("scale", d.PixelScale, "logical units per terminal pixel"),
		seed:      fs.Int64("seed", d.Seed, "random seed, 0 for time based"),
		frames:    fs.Int("frames", d.Frames, "frames to run in headless mode"),
		logFile:   fs.String("log", d.LogFile, "log file path, empty discards logs in terminal mode"),
		particles: fs.Int("particles", d.Field.Particles, "particle field count"),
		variant:   fs.String("variant", d.Scene.Variant, "foreground scene: background or showcase"),
		envMap:    fs.String("envmap", d.Scene.EnvMap, "directory holding posx..negz environment faces"),
		noAudio:   fs.Bool("mute", false, "disable audio output"),
		music:     fs.String("music", d.Audio.Music, "WAV file for background music"),
		catalog:   fs.String("catalog", d.Catalog, "TOML works catalog"),
		prefsDB:   fs.String("prefs", d.PrefsDB, "preferences database path"),
	}
}

// Apply copies every flag set on the command line into c and validates the result
func (o *Overrides) Apply(c *Config) error {
	o.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "fps":
			c.FPS = *o.fps
		case "scale":
			c.PixelScale = *o.scale
		case "seed":
			c.Seed = *o.seed
		case "frames":
			c.Frames = *o.frames
		case "log":
			c.LogFile = *o.logFile
		case "particles":
			c.Field.Particles = *o.particles
		case "variant":
			c.Scene.Variant = *o.variant
		case "envmap":
			c.Scene.EnvMap = *o.envMap
		case "mute":
			c.Audio.Enabled = !*o.noAudio
		case "music":
			c.Audio.Music = *o.music
		case "catalog":
			c.Catalog = *o.catalog
		case "prefs":
			c.PrefsDB = *o.prefsDB
		}
	})
	return c.Validate()
}
