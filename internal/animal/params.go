// Life-history parameters. Each species carries an immutable snapshot that
// is threaded into every animal operation; overrides build a new snapshot
// and never touch one already in use.
package animal

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/suggest"
)

// ErrInvalidParameter flags an override with an unknown name or a value
// outside its legal range. The previous snapshot stays in effect.
var ErrInvalidParameter = errors.New("animal: invalid parameter")

// Params holds the life-history constants of one species.
type Params struct {
	WBirth     float64 // w_birth: mean birth weight
	SigmaBirth float64 // sigma_birth: birth weight spread
	Beta       float64 // beta: weight gained per unit of food
	Eta        float64 // eta: annual fractional weight loss
	AHalf      float64 // a_half: age at half fitness
	PhiAge     float64 // phi_age: steepness of the age logistic
	WHalf      float64 // w_half: weight at half fitness
	PhiWeight  float64 // phi_weight: steepness of the weight logistic
	Mu         float64 // mu: migration gate probability factor
	Lambda     float64 // lambda_animal: abundance weighting in migration
	Gamma      float64 // gamma: birth probability factor
	Zeta       float64 // zeta: breeding weight threshold factor
	Xi         float64 // xi: parent weight cost per unit newborn weight
	Omega      float64 // omega: death probability factor
	F          float64 // F: yearly appetite

	// DeltaPhiMax divides the fitness gap into a kill chance. Carnivores only.
	DeltaPhiMax float64
}

// DefaultHerbivore returns the standard herbivore parameters.
func DefaultHerbivore() Params {
	return Params{
		WBirth:     8.0,
		SigmaBirth: 1.5,
		Beta:       0.9,
		Eta:        0.05,
		AHalf:      40.0,
		PhiAge:     0.2,
		WHalf:      10.0,
		PhiWeight:  0.1,
		Mu:         0.25,
		Lambda:     1.0,
		Gamma:      0.2,
		Zeta:       3.5,
		Xi:         1.2,
		Omega:      0.4,
		F:          10.0,
	}
}

// DefaultCarnivore returns the standard carnivore parameters.
func DefaultCarnivore() Params {
	return Params{
		WBirth:      6.0,
		SigmaBirth:  1.0,
		Beta:        0.75,
		Eta:         0.125,
		AHalf:       60.0,
		PhiAge:      0.4,
		WHalf:       4.0,
		PhiWeight:   0.4,
		Mu:          0.4,
		Lambda:      1.0,
		Gamma:       0.8,
		Zeta:        3.5,
		Xi:          1.1,
		Omega:       0.9,
		F:           50.0,
		DeltaPhiMax: 10.0,
	}
}

// ParamSet is the parameter snapshot for both species.
type ParamSet struct {
	Herbivore Params
	Carnivore Params
}

// DefaultParams returns the standard snapshot for both species.
func DefaultParams() ParamSet {
	return ParamSet{Herbivore: DefaultHerbivore(), Carnivore: DefaultCarnivore()}
}

// For returns the parameters of the given species.
func (ps ParamSet) For(sp Species) Params {
	if sp == Carnivore {
		return ps.Carnivore
	}
	return ps.Herbivore
}

// Apply returns a new snapshot with the named overrides applied to one
// species. Any unknown name or out-of-range value rejects the whole override
// and returns the receiver unchanged.
func (ps ParamSet) Apply(sp Species, overrides map[string]float64) (ParamSet, error) {
	p := ps.For(sp)

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		v := overrides[key]
		switch key {
		case "w_birth":
			p.WBirth = v
		case "sigma_birth":
			p.SigmaBirth = v
		case "beta":
			p.Beta = v
		case "eta":
			p.Eta = v
		case "a_half":
			p.AHalf = v
		case "phi_age":
			p.PhiAge = v
		case "w_half":
			p.WHalf = v
		case "phi_weight":
			p.PhiWeight = v
		case "mu":
			p.Mu = v
		case "lambda_animal":
			p.Lambda = v
		case "gamma":
			p.Gamma = v
		case "zeta":
			p.Zeta = v
		case "xi":
			p.Xi = v
		case "omega":
			p.Omega = v
		case "F":
			p.F = v
		case "DeltaPhiMax":
			if sp != Carnivore {
				return ps, fmt.Errorf("%w: DeltaPhiMax applies to carnivores only", ErrInvalidParameter)
			}
			p.DeltaPhiMax = v
		default:
			if hint := suggest.Nearest(key, paramKeys(sp)); hint != "" {
				return ps, fmt.Errorf("%w: unknown parameter %q (did you mean %q?)", ErrInvalidParameter, key, hint)
			}
			return ps, fmt.Errorf("%w: unknown parameter %q", ErrInvalidParameter, key)
		}
	}

	if err := p.validate(sp); err != nil {
		return ps, err
	}

	out := ps
	if sp == Carnivore {
		out.Carnivore = p
	} else {
		out.Herbivore = p
	}
	return out, nil
}

// paramKeys lists the legal override names for a species.
func paramKeys(sp Species) []string {
	keys := []string{
		"w_birth", "sigma_birth", "beta", "eta", "a_half", "phi_age",
		"w_half", "phi_weight", "mu", "lambda_animal", "gamma", "zeta",
		"xi", "omega", "F",
	}
	if sp == Carnivore {
		keys = append(keys, "DeltaPhiMax")
	}
	return keys
}

func (p Params) validate(sp Species) error {
	fields := []struct {
		name string
		v    float64
	}{
		{"w_birth", p.WBirth},
		{"sigma_birth", p.SigmaBirth},
		{"beta", p.Beta},
		{"eta", p.Eta},
		{"a_half", p.AHalf},
		{"phi_age", p.PhiAge},
		{"w_half", p.WHalf},
		{"phi_weight", p.PhiWeight},
		{"mu", p.Mu},
		{"lambda_animal", p.Lambda},
		{"gamma", p.Gamma},
		{"zeta", p.Zeta},
		{"xi", p.Xi},
		{"omega", p.Omega},
		{"F", p.F},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 {
			return fmt.Errorf("%w: %s = %v must be a non-negative number", ErrInvalidParameter, f.name, f.v)
		}
	}
	if p.Eta > 1 {
		return fmt.Errorf("%w: eta = %v exceeds 1", ErrInvalidParameter, p.Eta)
	}
	if sp == Carnivore && !(p.DeltaPhiMax > 0) {
		return fmt.Errorf("%w: DeltaPhiMax = %v must be positive", ErrInvalidParameter, p.DeltaPhiMax)
	}
	return nil
}
