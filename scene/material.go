package scene

import "github.com/lixenwraith/crystal-shard/render"

// Material holds physically based surface parameters for a translucent shard
type Material struct {
	Color              render.RGB
	Opacity            float64
	Metalness          float64
	Roughness          float64
	Transmission       float64
	Thickness          float64
	EnvMapIntensity    float64
	Clearcoat          float64
	ClearcoatRoughness float64
	IOR                float64
	SpecularIntensity  float64
	Iridescence        float64
	IridescenceIOR     float64
	IridescenceRange   [2]float64 // thin-film thickness in nanometres
	Emissive           render.RGB
	EmissiveIntensity  float64
	DoubleSide         bool
}

// BackgroundMaterial is the faint glass used by the large drifting shards
func BackgroundMaterial(opacity float64) Material {
	return Material{
		Color:              render.RGBWhite,
		Opacity:            opacity,
		Metalness:          0.2,
		Roughness:          0.1,
		Transmission:       0.9,
		Thickness:          0.5,
		EnvMapIntensity:    1,
		Clearcoat:          1,
		ClearcoatRoughness: 0.1,
		IOR:                1.5,
		SpecularIntensity:  1,
		DoubleSide:         true,
	}
}

// ShowcaseMaterial is the bright iridescent crystal tinted and lit by color
func ShowcaseMaterial(color render.RGB) Material {
	return Material{
		Color:              color,
		Opacity:            0.9,
		Metalness:          0.2,
		Roughness:          0.05,
		Transmission:       0.9,
		Thickness:          0.3,
		EnvMapIntensity:    2,
		Clearcoat:          1,
		ClearcoatRoughness: 0.05,
		IOR:                2.5,
		SpecularIntensity:  1.5,
		Iridescence:        1.5,
		IridescenceIOR:     1.5,
		IridescenceRange:   [2]float64{50, 500},
		Emissive:           color,
		EmissiveIntensity:  0.2,
		DoubleSide:         true,
	}
}
