package scene

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/crystal-shard/render"
)

// Cube face order, matching the conventional posx/negx/posy/negy/posz/negz file set
const (
	facePosX = iota
	faceNegX
	facePosY
	faceNegY
	facePosZ
	faceNegZ
)

// EnvFaceNames are the expected file stems inside an environment map directory
var EnvFaceNames = [6]string{"posx", "negx", "posy", "negy", "posz", "negz"}

var envExtensions = []string{".jpg", ".jpeg", ".png"}

// ErrEnvFaceMissing is returned when a cube face file cannot be found
var ErrEnvFaceMissing = errors.New("environment face missing")

// EnvMap is a cube map sampled by direction for reflection tint
type EnvMap struct {
	faces [6]image.Image
}

// LoadEnvMap reads six face images from dir
func LoadEnvMap(dir string) (*EnvMap, error) {
	var env EnvMap
	for i, name := range EnvFaceNames {
		img, err := loadFace(dir, name)
		if err != nil {
			return nil, err
		}
		env.faces[i] = img
	}
	return &env, nil
}

func loadFace(dir, name string) (image.Image, error) {
	for _, ext := range envExtensions {
		path := filepath.Join(dir, name+ext)
		f, err := os.Open(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return img, nil
	}
	return nil, fmt.Errorf("%s in %s: %w", name, dir, ErrEnvFaceMissing)
}

// Sample returns the color seen along dir
func (e *EnvMap) Sample(dir mgl64.Vec3) render.RGB {
	x, y, z := dir.X(), dir.Y(), dir.Z()
	ax, ay, az := math.Abs(x), math.Abs(y), math.Abs(z)

	var face int
	var sc, tc, ma float64
	switch {
	case ax >= ay && ax >= az:
		ma = ax
		if x > 0 {
			face, sc, tc = facePosX, -z, -y
		} else {
			face, sc, tc = faceNegX, z, -y
		}
	case ay >= az:
		ma = ay
		if y > 0 {
			face, sc, tc = facePosY, x, z
		} else {
			face, sc, tc = faceNegY, x, -z
		}
	default:
		ma = az
		if z > 0 {
			face, sc, tc = facePosZ, x, -y
		} else {
			face, sc, tc = faceNegZ, -x, -y
		}
	}
	if ma == 0 {
		return render.RGBBlack
	}

	u := (sc/ma + 1) / 2
	v := (tc/ma + 1) / 2
	img := e.faces[face]
	b := img.Bounds()
	px := b.Min.X + min(int(u*float64(b.Dx())), b.Dx()-1)
	py := b.Min.Y + min(int(v*float64(b.Dy())), b.Dy()-1)

	r, g, bl, _ := img.At(px, py).RGBA()
	return render.RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)}
}
