package classification

import (
	"path/filepath"
	"strings"
)

// Filter labels used in capture file names.
const (
	FilterOriginal = "Original"
	FilterBEF      = "BEF"
	FilterBPF      = "BPF"
	FilterHPF      = "HPF"
	FilterLPF      = "LPF"
	FilterTest     = "Test"
)

// Rule names reported in Classification.Rule.
const (
	RuleCutoff       = "cutoff"
	RuleSine         = "sine"
	RuleGaussian     = "gaussian"
	RuleOriginalWave = "original_wave"
	RuleFallback     = "fallback"
)

const titleSuffix = "Input/Output Characteristic"

// Classification is the canonical identity of one capture file.
type Classification struct {
	SignalType string
	FilterType string
	Rule       string
}

// Title returns the chart title, e.g. "10kHz - HPF - Input/Output Characteristic".
func (c Classification) Title() string {
	return c.SignalType + " - " + c.FilterType + " - " + titleSuffix
}

// OutputName returns the base name used for generated files, without extension.
func (c Classification) OutputName() string {
	return safePart(c.SignalType) + "_" + safePart(c.FilterType) + "_characteristic"
}

func safePart(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, " ", "_"), "/", "")
}

type rule struct {
	name     string
	matches  func(stem string) bool
	classify func(stem string) (signal, filter string)
}

// rules are evaluated top to bottom; the first match wins. The fallback
// rule matches everything, so classification is total.
var rules = []rule{
	{
		name:     RuleCutoff,
		matches:  func(stem string) bool { return strings.Contains(stem, "CUTOFF") },
		classify: classifyCutoff,
	},
	{
		name: RuleSine,
		matches: func(stem string) bool {
			return strings.HasPrefix(stem, "SINE_") && strings.Contains(stem, "kHz")
		},
		classify: classifySine,
	},
	{
		name:     RuleGaussian,
		matches:  func(stem string) bool { return strings.HasPrefix(stem, "gaussian") },
		classify: classifyGaussian,
	},
	{
		name:     RuleOriginalWave,
		matches:  func(stem string) bool { return strings.HasPrefix(stem, "original_wave") },
		classify: classifyOriginalWave,
	},
	{
		name:     RuleFallback,
		matches:  func(string) bool { return true },
		classify: func(stem string) (string, string) { return stem, FilterOriginal },
	},
}

// cutoffStems are the known cutoff measurements, keyed by exact stem.
var cutoffStems = map[string][2]string{
	"SINE_CUTOFF_LPF(150kHz)":  {"150kHz", FilterLPF},
	"SINE_CUTOFF_HPF(140kHz)":  {"140kHz", FilterHPF},
	"SINE_CUTOFF1_BEF(75kHz)":  {"75kHz", FilterBEF},
	"SINE_CUTOFF1_BPF(50kHz)":  {"50kHz", FilterBPF},
	"SINE_CUTOFF2_BEF(140kHz)": {"140kHz", FilterBEF},
	"SINE_CUTOFF2_BPF(200kHz)": {"200kHz", FilterBPF},
}

func classifyCutoff(stem string) (string, string) {
	if pair, ok := cutoffStems[stem]; ok {
		return pair[0], pair[1]
	}
	return "Cutoff test", FilterTest
}

func classifySine(stem string) (string, string) {
	parts := strings.Split(stem, "_")
	if len(parts) > 2 {
		return parts[1], parts[2]
	}
	return parts[1], FilterOriginal
}

func classifyGaussian(stem string) (string, string) {
	const signal = "Gaussian pulse"
	if i := strings.LastIndex(stem, "_"); i >= 0 {
		if last := stem[i+1:]; IsFilterLabel(last) {
			return signal, last
		}
	}
	return signal, FilterOriginal
}

func classifyOriginalWave(stem string) (string, string) {
	parts := strings.Split(stem, "_")
	wave := parts[1]
	if !strings.HasPrefix(wave, "wave") {
		wave = "wave" + wave
	}
	if len(parts) > 2 {
		return "Original " + wave, parts[2]
	}
	return "Original " + wave, FilterOriginal
}

// IsFilterLabel reports whether s is one of BEF, BPF, HPF or LPF.
func IsFilterLabel(s string) bool {
	switch s {
	case FilterBEF, FilterBPF, FilterHPF, FilterLPF:
		return true
	}
	return false
}

// Classify maps a file name stem to its classification.
func Classify(stem string) Classification {
	for _, r := range rules {
		if r.matches(stem) {
			signal, filter := r.classify(stem)
			return Classification{SignalType: signal, FilterType: filter, Rule: r.name}
		}
	}
	// unreachable: the fallback rule always matches
	return Classification{SignalType: stem, FilterType: FilterOriginal, Rule: RuleFallback}
}

// ClassifyFile classifies a file path or name by its stem.
func ClassifyFile(name string) Classification {
	return Classify(Stem(name))
}

// Stem returns the base name of path without its last extension. A leading
// dot does not start an extension and a trailing dot is not one, so ".csv"
// and "a." are returned whole.
func Stem(path string) string {
	base := filepath.Base(path)
	if i := strings.LastIndex(base, "."); i > 0 && i < len(base)-1 {
		return base[:i]
	}
	return base
}
