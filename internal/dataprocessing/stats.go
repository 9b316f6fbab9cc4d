package dataprocessing

import "math"

// ChannelStats summarizes one channel of a trace.
type ChannelStats struct {
	Min  float64
	Max  float64
	Mean float64
}

// PeakToPeak returns Max - Min.
func (c ChannelStats) PeakToPeak() float64 {
	return c.Max - c.Min
}

// TraceStats summarizes a normalized trace for reports.
type TraceStats struct {
	Samples    int
	Discarded  int
	StartUS    float64
	EndUS      float64
	DurationUS float64
	Ch1        ChannelStats
	Ch2        ChannelStats
}

// Summarize computes TraceStats. An empty trace yields zero stats.
func Summarize(t *NormalizedTrace) TraceStats {
	if t.Len() == 0 {
		return TraceStats{}
	}

	stats := TraceStats{
		Samples:   len(t.Points),
		Discarded: t.Discarded,
		Ch1:       ChannelStats{Min: math.Inf(1), Max: math.Inf(-1)},
		Ch2:       ChannelStats{Min: math.Inf(1), Max: math.Inf(-1)},
	}
	stats.StartUS, stats.EndUS = t.TimeRange()
	stats.DurationUS = stats.EndUS - stats.StartUS

	var sum1, sum2 float64
	for _, p := range t.Points {
		stats.Ch1.Min = math.Min(stats.Ch1.Min, p.Ch1)
		stats.Ch1.Max = math.Max(stats.Ch1.Max, p.Ch1)
		stats.Ch2.Min = math.Min(stats.Ch2.Min, p.Ch2)
		stats.Ch2.Max = math.Max(stats.Ch2.Max, p.Ch2)
		sum1 += p.Ch1
		sum2 += p.Ch2
	}
	n := float64(len(t.Points))
	stats.Ch1.Mean = sum1 / n
	stats.Ch2.Mean = sum2 / n

	return stats
}
