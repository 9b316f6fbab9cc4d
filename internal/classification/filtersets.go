package classification

import (
	"sort"
	"strings"
)

// FilterVariant describes one member slot of a filter set.
type FilterVariant struct {
	Suffix string
	Label  string
}

// FilterVariants are the recognized stem suffixes, in display order.
var FilterVariants = []FilterVariant{
	{Suffix: "", Label: "Original"},
	{Suffix: "_BEF", Label: "BEF (Band Elimination)"},
	{Suffix: "_BPF", Label: "BPF (Band Pass)"},
	{Suffix: "_HPF", Label: "HPF (High Pass)"},
	{Suffix: "_LPF", Label: "LPF (Low Pass)"},
}

// FilterMember is one capture inside a filter set.
type FilterMember struct {
	Index   int // position in the slice passed to GroupFilterSets
	Rank    int // position of Variant in FilterVariants
	Variant FilterVariant
}

// FilterSet is the unfiltered capture of a signal together with its
// filtered variants, e.g. SINE_10kHz, SINE_10kHz_BEF, SINE_10kHz_HPF.
type FilterSet struct {
	Base    string
	Members []FilterMember
}

// SplitFilterSuffix returns the base stem and the variant rank of stem.
// Stems without a filter suffix have rank 0.
func SplitFilterSuffix(stem string) (string, int) {
	for rank, v := range FilterVariants {
		if v.Suffix != "" && strings.HasSuffix(stem, v.Suffix) && len(stem) > len(v.Suffix) {
			return strings.TrimSuffix(stem, v.Suffix), rank
		}
	}
	return stem, 0
}

func filterRank(stem string) int {
	_, rank := SplitFilterSuffix(stem)
	return rank
}

// GroupFilterSets groups stems sharing a base stem. Members are ordered
// Original, BEF, BPF, HPF, LPF and sets are ordered by base. When two stems
// map to the same slot the first one wins. Sets with a single member are
// dropped unless keepSingles is set.
func GroupFilterSets(stems []string, keepSingles bool) []FilterSet {
	byBase := make(map[string]*FilterSet)
	var bases []string

	for i, stem := range stems {
		base, rank := SplitFilterSuffix(stem)
		set, ok := byBase[base]
		if !ok {
			set = &FilterSet{Base: base}
			byBase[base] = set
			bases = append(bases, base)
		}
		if set.has(rank) {
			continue
		}
		set.Members = append(set.Members, FilterMember{Index: i, Rank: rank, Variant: FilterVariants[rank]})
	}

	sort.Strings(bases)
	sets := make([]FilterSet, 0, len(bases))
	for _, base := range bases {
		set := byBase[base]
		if len(set.Members) < 2 && !keepSingles {
			continue
		}
		sort.SliceStable(set.Members, func(a, b int) bool {
			return set.Members[a].Rank < set.Members[b].Rank
		})
		sets = append(sets, *set)
	}
	return sets
}

func (s *FilterSet) has(rank int) bool {
	for _, m := range s.Members {
		if m.Rank == rank {
			return true
		}
	}
	return false
}

// OutputName returns the chart base name for the set.
func (s FilterSet) OutputName() string {
	return safePart(s.Base) + "_filter_comparison"
}
