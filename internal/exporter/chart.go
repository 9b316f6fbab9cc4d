package exporter

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"scopecli/internal/dataprocessing"
	apperrors "scopecli/internal/errors"
)

// ErrEmptyTrace is returned when asked to draw a trace with no samples.
var ErrEmptyTrace = errors.New("trace has no samples")

// Series is one labelled trace on a comparison chart.
type Series struct {
	Label string
	Trace *dataprocessing.NormalizedTrace
}

// ChartRenderer draws traces as PNG images with gonum/plot.
type ChartRenderer struct {
	style RenderStyle
}

// NewChartRenderer creates a renderer with a fixed style.
func NewChartRenderer(style RenderStyle) *ChartRenderer {
	return &ChartRenderer{style: style}
}

// Style returns the renderer's style.
func (r *ChartRenderer) Style() RenderStyle {
	return r.style
}

// RenderTrace draws both channels of one trace against time and writes the
// PNG to w. The x axis spans exactly the trace's time range.
func (r *ChartRenderer) RenderTrace(w io.Writer, trace *dataprocessing.NormalizedTrace, title string) error {
	if trace.Len() == 0 {
		return apperrors.NewRenderError("cannot render chart", ErrEmptyTrace).WithContext("title", title)
	}

	p := r.newPlot(title)

	ch1, err := r.line(trace, channel1, r.style.Ch1Color)
	if err != nil {
		return apperrors.NewRenderError("failed to build channel 1 line", err)
	}
	ch2, err := r.line(trace, channel2, r.style.Ch2Color)
	if err != nil {
		return apperrors.NewRenderError("failed to build channel 2 line", err)
	}
	p.Add(ch1, ch2)
	p.Legend.Add(r.style.Ch1Label, ch1)
	p.Legend.Add(r.style.Ch2Label, ch2)

	p.X.Min, p.X.Max = trace.TimeRange()

	c := r.canvas()
	p.Draw(draw.New(c))
	return r.writePNG(w, c)
}

// RenderComparison overlays several traces, channel 1 on the top panel
// and channel 2 on the bottom panel, and writes the PNG to w.
func (r *ChartRenderer) RenderComparison(w io.Writer, name string, series []Series) error {
	var drawn []Series
	for _, s := range series {
		if s.Trace.Len() > 0 {
			drawn = append(drawn, s)
		}
	}
	if len(drawn) == 0 {
		return apperrors.NewRenderError("cannot render comparison", ErrEmptyTrace).WithContext("name", name)
	}

	top := r.newPlot("Channel 1 Comparison - " + name)
	bottom := r.newPlot("Channel 2 Comparison - " + name)

	xMin, xMax := drawn[0].Trace.TimeRange()
	for i, s := range drawn {
		clr := plotutil.Color(i)
		l1, err := r.line(s.Trace, channel1, clr)
		if err != nil {
			return apperrors.NewRenderError("failed to build comparison line", err).WithContext("series", s.Label)
		}
		l2, err := r.line(s.Trace, channel2, clr)
		if err != nil {
			return apperrors.NewRenderError("failed to build comparison line", err).WithContext("series", s.Label)
		}
		top.Add(l1)
		bottom.Add(l2)
		top.Legend.Add(s.Label, l1)
		bottom.Legend.Add(s.Label, l2)

		lo, hi := s.Trace.TimeRange()
		xMin, xMax = min(xMin, lo), max(xMax, hi)
	}
	top.X.Min, top.X.Max = xMin, xMax
	bottom.X.Min, bottom.X.Max = xMin, xMax

	c := r.canvas()
	plots := [][]*plot.Plot{{top}, {bottom}}
	tiles := draw.Tiles{
		Rows:      2,
		Cols:      1,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
		PadY:      vg.Millimeter * 6,
	}
	canvases := plot.Align(plots, tiles, draw.New(c))
	for j := range plots {
		plots[j][0].Draw(canvases[j][0])
	}
	return r.writePNG(w, c)
}

type channel int

const (
	channel1 channel = iota
	channel2
)

func (r *ChartRenderer) newPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = r.style.XLabel
	p.Y.Label.Text = r.style.YLabel
	p.Legend.Top = true
	if r.style.Grid {
		grid := plotter.NewGrid()
		grid.Vertical.Color = color.Gray{Y: 0xdd}
		grid.Horizontal.Color = color.Gray{Y: 0xdd}
		p.Add(grid)
	}
	return p
}

func (r *ChartRenderer) line(trace *dataprocessing.NormalizedTrace, ch channel, clr color.Color) (*plotter.Line, error) {
	xys := make(plotter.XYs, len(trace.Points))
	for i, pt := range trace.Points {
		xys[i].X = pt.TimestampUS
		if ch == channel1 {
			xys[i].Y = pt.Ch1
		} else {
			xys[i].Y = pt.Ch2
		}
	}
	l, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	l.LineStyle.Width = r.style.LineWidth
	l.LineStyle.Color = clr
	return l, nil
}

func (r *ChartRenderer) canvas() *vgimg.Canvas {
	return vgimg.NewWith(
		vgimg.UseWH(r.style.Width, r.style.Height),
		vgimg.UseDPI(r.style.DPI),
	)
}

func (r *ChartRenderer) writePNG(w io.Writer, c *vgimg.Canvas) error {
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(w); err != nil {
		return apperrors.NewRenderError(fmt.Sprintf("failed to encode %dx%d png", c.Image().Bounds().Dx(), c.Image().Bounds().Dy()), err)
	}
	return nil
}
