// Package island models the simulation arena: a rectangular grid of
// biome cells whose fodder regrows at the turn of every year.
// Terrain maps are multiline strings of one-letter biome codes.
package island

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/suggest"
)

var (
	ErrInvalidMap       = errors.New("island: invalid map")
	ErrInvalidParameter = errors.New("island: invalid parameter")
)

// Biome classifies a cell's terrain.
type Biome uint8

const (
	Ocean    Biome = iota // Impassable water, rings every island
	Mountain              // Impassable rock
	Jungle                // Fodder resets to capacity every year
	Savannah              // Fodder regrows a fraction of the deficit
	Desert                // Passable but barren

	numBiomes
)

var biomeCodes = [numBiomes]byte{'O', 'M', 'J', 'S', 'D'}
var biomeNames = [numBiomes]string{"Ocean", "Mountain", "Jungle", "Savannah", "Desert"}

// BiomeFromCode maps a terrain letter to its biome.
func BiomeFromCode(code byte) (Biome, error) {
	for b, c := range biomeCodes {
		if c == code {
			return Biome(b), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown biome code %q", ErrInvalidMap, string(code))
}

// ParseBiome resolves a biome name as written in configuration files.
func ParseBiome(name string) (Biome, error) {
	for b, n := range biomeNames {
		if n == name {
			return Biome(b), nil
		}
	}
	if hint := suggest.Nearest(name, biomeNames[:]); hint != "" {
		return 0, fmt.Errorf("%w: unknown biome %q (did you mean %q?)", ErrInvalidParameter, name, hint)
	}
	return 0, fmt.Errorf("%w: unknown biome %q", ErrInvalidParameter, name)
}

func (b Biome) String() string {
	if b < numBiomes {
		return biomeNames[b]
	}
	return fmt.Sprintf("Biome(%d)", uint8(b))
}

// Code returns the one-letter terrain code.
func (b Biome) Code() byte { return biomeCodes[b] }

// Passable reports whether animals can stand on or cross this biome.
func (b Biome) Passable() bool {
	return b != Ocean && b != Mountain
}

// BiomeParams tunes the fodder economy of one biome.
type BiomeParams struct {
	FMax  float64 // f_max: fodder capacity of the cell
	Alpha float64 // alpha: fraction of the deficit regrown per year
}

// BiomeParamSet carries the fodder parameters of every biome.
type BiomeParamSet [numBiomes]BiomeParams

// DefaultBiomeParams returns the standard fodder economy: lush jungle,
// slowly recovering savannah, nothing anywhere else.
func DefaultBiomeParams() BiomeParamSet {
	var bp BiomeParamSet
	bp[Jungle] = BiomeParams{FMax: 800}
	bp[Savannah] = BiomeParams{FMax: 300, Alpha: 0.3}
	return bp
}

// Apply returns a copy of the set with overrides applied to one biome,
// or the set unchanged alongside an error. Only Jungle (f_max) and
// Savannah (f_max, alpha) are tunable. Keys are checked in sorted
// order so the first error is deterministic.
func (bp BiomeParamSet) Apply(b Biome, overrides map[string]float64) (BiomeParamSet, error) {
	if len(overrides) > 0 && b != Jungle && b != Savannah {
		key := sortedKeys(overrides)[0]
		return bp, fmt.Errorf("%w: %s takes no fodder parameters (got %q)", ErrInvalidParameter, b, key)
	}

	next := bp
	for _, key := range sortedKeys(overrides) {
		v := overrides[key]
		switch key {
		case "f_max":
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return bp, fmt.Errorf("%w: %s f_max = %v, want a finite non-negative value", ErrInvalidParameter, b, v)
			}
			next[b].FMax = v
		case "alpha":
			if b != Savannah {
				return bp, fmt.Errorf("%w: alpha applies to Savannah only", ErrInvalidParameter)
			}
			if math.IsNaN(v) || v < 0 || v > 1 {
				return bp, fmt.Errorf("%w: alpha = %v, want a value in [0, 1]", ErrInvalidParameter, v)
			}
			next[b].Alpha = v
		default:
			if hint := suggest.Nearest(key, []string{"f_max", "alpha"}); hint != "" {
				return bp, fmt.Errorf("%w: unknown key %q for %s (did you mean %q?)", ErrInvalidParameter, key, b, hint)
			}
			return bp, fmt.Errorf("%w: unknown key %q for %s", ErrInvalidParameter, key, b)
		}
	}
	return next, nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
