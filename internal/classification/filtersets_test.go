package classification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFilterSuffix(t *testing.T) {
	tests := []struct {
		stem     string
		wantBase string
		wantRank int
	}{
		{"SINE_10kHz", "SINE_10kHz", 0},
		{"SINE_10kHz_BEF", "SINE_10kHz", 1},
		{"SINE_10kHz_BPF", "SINE_10kHz", 2},
		{"gaussian_pulse_HPF", "gaussian_pulse", 3},
		{"original_wave1_LPF", "original_wave1", 4},
		{"_LPF", "_LPF", 0},
		{"SINE_10kHz_lpf", "SINE_10kHz_lpf", 0},
	}

	for _, tt := range tests {
		t.Run(tt.stem, func(t *testing.T) {
			base, rank := SplitFilterSuffix(tt.stem)
			assert.Equal(t, tt.wantBase, base)
			assert.Equal(t, tt.wantRank, rank)
		})
	}
}

func TestGroupFilterSets(t *testing.T) {
	stems := []string{
		"SINE_10kHz_LPF",     // 0
		"gaussian_pulse",     // 1
		"SINE_10kHz",         // 2
		"SINE_10kHz_BEF",     // 3
		"noise",              // 4
		"gaussian_pulse_HPF", // 5
		"SINE_10kHz_LPF",     // 6 duplicate slot
	}

	sets := GroupFilterSets(stems, false)
	require.Len(t, sets, 2)

	assert.Equal(t, "SINE_10kHz", sets[0].Base)
	require.Len(t, sets[0].Members, 3)
	assert.Equal(t, []int{2, 3, 0}, memberIndexes(sets[0]))
	assert.Equal(t, "Original", sets[0].Members[0].Variant.Label)
	assert.Equal(t, "LPF (Low Pass)", sets[0].Members[2].Variant.Label)

	assert.Equal(t, "gaussian_pulse", sets[1].Base)
	assert.Equal(t, []int{1, 5}, memberIndexes(sets[1]))
	assert.Equal(t, "gaussian_pulse_filter_comparison", sets[1].OutputName())
}

func TestGroupFilterSets_KeepSingles(t *testing.T) {
	sets := GroupFilterSets([]string{"noise", "SINE_10kHz_HPF"}, true)
	require.Len(t, sets, 2)
	assert.Equal(t, "SINE_10kHz", sets[0].Base)
	assert.Equal(t, "noise", sets[1].Base)

	assert.Empty(t, GroupFilterSets([]string{"noise", "SINE_10kHz_HPF"}, false))
	assert.Empty(t, GroupFilterSets(nil, false))
}

func memberIndexes(s FilterSet) []int {
	out := make([]int, 0, len(s.Members))
	for _, m := range s.Members {
		out = append(out, m.Index)
	}
	return out
}
