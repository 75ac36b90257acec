package island

import (
	"errors"
	"strings"
	"testing"
)

func TestBiomeCodesRoundTrip(t *testing.T) {
	for _, b := range []Biome{Ocean, Mountain, Jungle, Savannah, Desert} {
		got, err := BiomeFromCode(b.Code())
		if err != nil || got != b {
			t.Errorf("BiomeFromCode(%q) = %v, %v, want %v", string(b.Code()), got, err, b)
		}
	}
	if _, err := BiomeFromCode('X'); !errors.Is(err, ErrInvalidMap) {
		t.Errorf("unknown code: got %v, want ErrInvalidMap", err)
	}
}

func TestBiomePassable(t *testing.T) {
	cases := []struct {
		b    Biome
		want bool
	}{
		{Ocean, false},
		{Mountain, false},
		{Jungle, true},
		{Savannah, true},
		{Desert, true},
	}
	for _, tc := range cases {
		if got := tc.b.Passable(); got != tc.want {
			t.Errorf("%s passable = %v, want %v", tc.b, got, tc.want)
		}
	}
}

func TestParseBiome(t *testing.T) {
	b, err := ParseBiome("Savannah")
	if err != nil || b != Savannah {
		t.Fatalf("ParseBiome(Savannah) = %v, %v", b, err)
	}
	_, err = ParseBiome("Jungel")
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("misspelled biome: got %v, want ErrInvalidParameter", err)
	}
	if !strings.Contains(err.Error(), `did you mean "Jungle"`) {
		t.Errorf("misspelled biome error should hint at the fix: %v", err)
	}
}

func TestBiomeParamsApply(t *testing.T) {
	bp := DefaultBiomeParams()

	got, err := bp.Apply(Jungle, map[string]float64{"f_max": 700})
	if err != nil {
		t.Fatal(err)
	}
	if got[Jungle].FMax != 700 {
		t.Errorf("jungle f_max = %v, want 700", got[Jungle].FMax)
	}
	if got[Savannah] != bp[Savannah] {
		t.Errorf("savannah must be untouched: %+v", got[Savannah])
	}
	if bp[Jungle].FMax != 800 {
		t.Errorf("Apply must not mutate its receiver: %v", bp[Jungle].FMax)
	}

	got, err = bp.Apply(Savannah, map[string]float64{"alpha": 1, "f_max": 250})
	if err != nil {
		t.Fatal(err)
	}
	if got[Savannah].Alpha != 1 || got[Savannah].FMax != 250 {
		t.Errorf("savannah overrides not applied: %+v", got[Savannah])
	}
}

func TestBiomeParamsApplyRejections(t *testing.T) {
	bp := DefaultBiomeParams()
	cases := []struct {
		name      string
		b         Biome
		overrides map[string]float64
	}{
		{"desert has no fodder", Desert, map[string]float64{"f_max": 10}},
		{"ocean has no fodder", Ocean, map[string]float64{"f_max": 10}},
		{"alpha outside savannah", Jungle, map[string]float64{"alpha": 0.5}},
		{"alpha above one", Savannah, map[string]float64{"alpha": 1.5}},
		{"negative f_max", Jungle, map[string]float64{"f_max": -1}},
		{"unknown key", Jungle, map[string]float64{"fmax": 100}},
	}
	for _, tc := range cases {
		got, err := bp.Apply(tc.b, tc.overrides)
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("%s: got %v, want ErrInvalidParameter", tc.name, err)
		}
		if got != bp {
			t.Errorf("%s: failed Apply must return the set unchanged", tc.name)
		}
	}
}

func TestBiomeParamsApplyHintsUnknownKey(t *testing.T) {
	_, err := DefaultBiomeParams().Apply(Jungle, map[string]float64{"fmax": 100})
	if err == nil || !strings.Contains(err.Error(), `did you mean "f_max"`) {
		t.Errorf("unknown key error should hint at the fix: %v", err)
	}
}
