// Procedural island synthesis using layered simplex noise. An
// elevation field shaped by radial falloff keeps the coastline well
// inside the border, and a moisture field splits the interior into
// jungle, savannah, and desert.
package island

import (
	"math"
	"math/rand"
	"strings"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds island synthesis parameters.
type GenConfig struct {
	Rows        int     // Grid height, border included
	Cols        int     // Grid width, border included
	Seed        int64   // Noise seed (0 = random)
	SeaLevel    float64 // Elevation threshold for ocean (0.0-1.0)
	MountainLvl float64 // Elevation threshold for mountains (0.0-1.0)
}

// DefaultGenConfig returns a mid-sized island.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Rows:        21,
		Cols:        34,
		Seed:        0,
		SeaLevel:    0.32,
		MountainLvl: 0.78,
	}
}

// Generate synthesizes a terrain sketch. The result always parses and
// always carries an ocean border, so FromString(Generate(cfg)) cannot
// fail.
func Generate(cfg GenConfig) string {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	elevNoise := opensimplex.NewNormalized(seed)
	moistNoise := opensimplex.NewNormalized(seed + 1)

	rows, cols := cfg.Rows, cfg.Cols
	if rows < 3 {
		rows = 3
	}
	if cols < 3 {
		cols = 3
	}

	var sb strings.Builder
	sb.Grow(rows * (cols + 1))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if r == 0 || r == rows-1 || c == 0 || c == cols-1 {
				sb.WriteByte(Ocean.Code())
				continue
			}

			// Map the grid onto [-1, 1] with the island center at the origin.
			x := 2*float64(c)/float64(cols-1) - 1
			y := 2*float64(r)/float64(rows-1) - 1

			elev := octaveNoise(elevNoise, x, y, 4, 1.8, 0.5)
			moist := octaveNoise(moistNoise, x, y, 3, 1.4, 0.5)

			// Continental shaping: sink elevation toward the edges.
			dist := math.Sqrt(x*x + y*y)
			falloff := 1 - math.Pow(dist, 3)
			if falloff < 0 {
				falloff = 0
			}
			elev *= falloff

			sb.WriteByte(deriveBiome(elev, moist, cfg).Code())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// deriveBiome maps elevation and moisture to terrain.
func deriveBiome(elev, moist float64, cfg GenConfig) Biome {
	switch {
	case elev < cfg.SeaLevel:
		return Ocean
	case elev > cfg.MountainLvl:
		return Mountain
	case moist > 0.6:
		return Jungle
	case moist > 0.35:
		return Savannah
	default:
		return Desert
	}
}

// octaveNoise layers multiple noise frequencies into fractal terrain.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
