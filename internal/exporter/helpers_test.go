package exporter

import (
	"scopecli/internal/config"
	"scopecli/internal/dataprocessing"
)

func testTrace(n int) *dataprocessing.NormalizedTrace {
	t := &dataprocessing.NormalizedTrace{Layout: dataprocessing.LayoutThreeColumnDirect}
	for i := 0; i < n; i++ {
		t.Points = append(t.Points, dataprocessing.TracePoint{
			TimestampUS: float64(i) * 0.5,
			Ch1:         float64(i%4) - 1.5,
			Ch2:         float64(i%2) * 0.25,
		})
	}
	t.SourceRows = n
	return t
}

// smallStyle keeps rendered images small so tests stay fast.
func smallStyle() RenderStyle {
	cfg := config.Default().Render
	cfg.WidthIn = 4
	cfg.HeightIn = 3
	cfg.DPI = 50
	return StyleFromConfig(cfg)
}
