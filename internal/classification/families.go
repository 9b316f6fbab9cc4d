package classification

import (
	"sort"
	"strconv"
	"strings"
)

// Family groups related captures for comparison charts.
type Family string

const (
	FamilySineWaves     Family = "sine_waves"
	FamilyGaussianPulse Family = "gaussian_pulse"
	FamilyOriginalWaves Family = "original_waves"
	FamilyCutoffTests   Family = "cutoff_tests"
)

// Families lists every family in evaluation order.
var Families = []Family{FamilySineWaves, FamilyGaussianPulse, FamilyOriginalWaves, FamilyCutoffTests}

// Title returns a display name such as "Sine Waves".
func (f Family) Title() string {
	words := strings.Split(string(f), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// FamilyOf returns the family of a stem. Matching is case-insensitive and
// follows Families order, so SINE_CUTOFF_* stems land in the sine family.
func FamilyOf(stem string) (Family, bool) {
	s := strings.ToLower(stem)
	switch {
	case strings.HasPrefix(s, "sine_") && strings.Contains(s, "khz"):
		return FamilySineWaves, true
	case strings.HasPrefix(s, "gaussian"):
		return FamilyGaussianPulse, true
	case strings.HasPrefix(s, "original_wave"):
		return FamilyOriginalWaves, true
	case strings.Contains(s, "cutoff"):
		return FamilyCutoffTests, true
	}
	return "", false
}

// Partition groups indices of stems by family, keeping input order within
// each family except for the sine family, which is sorted by frequency.
// Stems without a family are left out.
func Partition(stems []string) map[Family][]int {
	groups := make(map[Family][]int)
	for i, stem := range stems {
		if f, ok := FamilyOf(stem); ok {
			groups[f] = append(groups[f], i)
		}
	}
	if sine := groups[FamilySineWaves]; len(sine) > 1 {
		sort.SliceStable(sine, func(a, b int) bool {
			return lessByFrequency(stems[sine[a]], stems[sine[b]])
		})
	}
	return groups
}

// FrequencyKHz extracts the kHz value from a sine stem such as
// "SINE_10kHz_HPF". It reports false when no frequency token is present.
func FrequencyKHz(stem string) (float64, bool) {
	parts := strings.Split(stem, "_")
	if len(parts) < 2 {
		return 0, false
	}
	token := parts[1]
	i := strings.Index(strings.ToLower(token), "khz")
	if i <= 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(token[:i], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func lessByFrequency(a, b string) bool {
	fa, okA := FrequencyKHz(a)
	fb, okB := FrequencyKHz(b)
	switch {
	case okA && okB && fa != fb:
		return fa < fb
	case okA != okB:
		return okA
	}
	return filterRank(a) < filterRank(b)
}
