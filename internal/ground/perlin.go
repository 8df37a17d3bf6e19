package ground

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Perlin noise parameters tuned for rolling terrain at block scale.
const (
	perlinAlpha      = 2
	perlinBeta       = 2
	perlinOctaves    = 3
	perlinWavelength = 180.0
	perlinAmplitudeM = 60.0
)

// SyntheticElevation builds an elevation grid from Perlin noise, for offline
// runs where real tiles are unavailable or unwanted. The same seed always
// yields the same terrain.
func SyntheticElevation(width, height int, seed int64, groundLevel int, scale float64) *ElevationData {
	p := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)

	heights := make([]int16, width*height)
	for z := 0; z < height; z++ {
		for x := 0; x < width; x++ {
			n := p.Noise2D(float64(x)/perlinWavelength, float64(z)/perlinWavelength)
			meters := (n + 1) / 2 * perlinAmplitudeM
			heights[z*width+x] = int16(math.Round(meters))
		}
	}

	return newElevationData(heights, width, height, groundLevel, scale)
}
