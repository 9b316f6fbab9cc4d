package exporter

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scopecli/internal/dataprocessing"
	apperrors "scopecli/internal/errors"
)

func TestRenderTrace(t *testing.T) {
	r := NewChartRenderer(smallStyle())

	var buf bytes.Buffer
	require.NoError(t, r.RenderTrace(&buf, testTrace(100), "Sine 10kHz - LPF"))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())
}

func TestRenderTraceSinglePoint(t *testing.T) {
	r := NewChartRenderer(smallStyle())

	var buf bytes.Buffer
	require.NoError(t, r.RenderTrace(&buf, testTrace(1), "single"))
	assert.NotZero(t, buf.Len())
}

func TestRenderTraceEmpty(t *testing.T) {
	r := NewChartRenderer(smallStyle())

	tests := []struct {
		name  string
		trace *dataprocessing.NormalizedTrace
	}{
		{name: "nil trace", trace: nil},
		{name: "no points", trace: &dataprocessing.NormalizedTrace{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := r.RenderTrace(&buf, tt.trace, "empty")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrEmptyTrace)
			assert.Equal(t, apperrors.ErrTypeRender, apperrors.TypeOf(err))
			assert.Zero(t, buf.Len())
		})
	}
}

func TestRenderComparison(t *testing.T) {
	r := NewChartRenderer(smallStyle())

	series := []Series{
		{Label: "BPF (Band Pass)", Trace: testTrace(50)},
		{Label: "LPF (Low Pass)", Trace: testTrace(80)},
		{Label: "empty", Trace: &dataprocessing.NormalizedTrace{}},
	}

	var buf bytes.Buffer
	require.NoError(t, r.RenderComparison(&buf, "Sine Waves", series))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
}

func TestRenderComparisonAllEmpty(t *testing.T) {
	r := NewChartRenderer(smallStyle())

	err := r.RenderComparison(&bytes.Buffer{}, "nothing", []Series{{Label: "a"}})
	assert.ErrorIs(t, err, ErrEmptyTrace)
	assert.Equal(t, apperrors.ErrTypeRender, apperrors.TypeOf(err))
}

func TestStyleFromConfig(t *testing.T) {
	style := DefaultRenderStyle()

	assert.Equal(t, 300, style.DPI)
	assert.InDelta(t, 12*72, float64(style.Width), 1e-9)
	assert.InDelta(t, 8*72, float64(style.Height), 1e-9)
	assert.Equal(t, "Time (μs)", style.XLabel)
	assert.Equal(t, "Voltage (V)", style.YLabel)
	assert.True(t, style.Grid)
}
