package exporter

import (
	"image/color"

	"gonum.org/v1/plot/vg"

	"scopecli/internal/config"
)

// RenderStyle is the fixed look of every chart in a run. It is built once
// and handed to NewChartRenderer; nothing in this package mutates it.
type RenderStyle struct {
	Width     vg.Length
	Height    vg.Length
	DPI       int
	LineWidth vg.Length

	Ch1Label string
	Ch2Label string
	XLabel   string
	YLabel   string

	Ch1Color color.Color
	Ch2Color color.Color
	Grid     bool
}

// DefaultRenderStyle returns a 12x8 inch, 300 DPI style.
func DefaultRenderStyle() RenderStyle {
	return StyleFromConfig(config.Default().Render)
}

// StyleFromConfig builds a RenderStyle from the render section of the config.
func StyleFromConfig(cfg config.RenderConfig) RenderStyle {
	return RenderStyle{
		Width:     vg.Length(cfg.WidthIn) * vg.Inch,
		Height:    vg.Length(cfg.HeightIn) * vg.Inch,
		DPI:       cfg.DPI,
		LineWidth: vg.Points(cfg.LineWidth),
		Ch1Label:  "Channel 1 (Input)",
		Ch2Label:  "Channel 2 (Output)",
		XLabel:    "Time (μs)",
		YLabel:    "Voltage (V)",
		Ch1Color:  color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
		Ch2Color:  color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
		Grid:      true,
	}
}
