package particle

import "github.com/lixenwraith/crystal-shard/render"

// Palette is the iridescent particle color set: pink, blue, green, yellow
var Palette = []render.RGB{
	{R: 255, G: 100, B: 255},
	{R: 100, G: 200, B: 255},
	{R: 200, G: 255, B: 100},
	{R: 255, G: 200, B: 100},
}

// Config holds field tuning, distances are in surface units
type Config struct {
	Count    int
	SizeMin  float64
	SizeMax  float64
	SpeedMin float64
	SpeedMax float64

	Palette    []render.RGB
	ColorAlpha float64 // palette alpha, multiplied into particle opacity

	MaxDistance       float64
	ConnectionOpacity float64
	LineWidth         float64

	AttractionRadius   float64
	AttractionStrength float64

	GlowFactor float64 // glow radius as a multiple of particle radius
}

// DefaultConfig returns the stock field tuning
func DefaultConfig() Config {
	return Config{
		Count:              100,
		SizeMin:            1,
		SizeMax:            3,
		SpeedMin:           0.2,
		SpeedMax:           0.8,
		Palette:            Palette,
		ColorAlpha:         0.8,
		MaxDistance:        150,
		ConnectionOpacity:  0.2,
		LineWidth:          0.5,
		AttractionRadius:   200,
		AttractionStrength: 0.002,
		GlowFactor:         2,
	}
}
