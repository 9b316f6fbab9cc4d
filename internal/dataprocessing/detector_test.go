package dataprocessing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "scopecli/internal/errors"
)

const (
	minMaxHeader = "No.,日付,タイムスタンプ（ns）,1 最小(V),1 最大(V),2 最小(V),2 最大(V)"
	directHeader = "No.,日付,タイムスタンプ（ns）,1,2"
)

func preamble() []string {
	return []string{
		"モデル,MSO-2000",
		"サンプリング,1GS/s",
		"トリガ,CH1",
		"",
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name       string
		lines      []string
		opts       DetectorOptions
		wantLayout Layout
		wantHeader int
		wantErr    bool
	}{
		{
			name:       "five column min max",
			lines:      append(preamble(), minMaxHeader, "0,x,0,0.1,0.3,1,2"),
			wantLayout: LayoutFiveColumnMinMax,
			wantHeader: 4,
		},
		{
			name:       "three column direct exact channel field",
			lines:      append(preamble(), directHeader, "0,x,0,0.1,0.2"),
			wantLayout: LayoutThreeColumnDirect,
			wantHeader: 4,
		},
		{
			name:       "header on first line",
			lines:      []string{directHeader},
			wantLayout: LayoutThreeColumnDirect,
			wantHeader: 0,
		},
		{
			name:       "channel field containing 1 accepted by substring rule",
			lines:      []string{"a,b,タイムスタンプ（ns）,CH1 (V),CH2 (V)"},
			wantLayout: LayoutThreeColumnDirect,
		},
		{
			name:    "channel field containing 1 rejected in strict mode",
			lines:   []string{"a,b,タイムスタンプ（ns）,CH1 (V),CH2 (V)"},
			opts:    DetectorOptions{StrictChannelField: true},
			wantErr: true,
		},
		{
			name:       "strict mode still accepts exact channel field",
			lines:      []string{" a,b,タイムスタンプ（ns）, 1 ,2"},
			opts:       DetectorOptions{StrictChannelField: true},
			wantLayout: LayoutThreeColumnDirect,
		},
		{
			name:    "marker absent",
			lines:   append(preamble(), "No.,Time,CH1,CH2", "0,0,1,2"),
			wantErr: true,
		},
		{
			name:    "empty input",
			lines:   nil,
			wantErr: true,
		},
		{
			name:    "header too short",
			lines:   []string{"タイムスタンプ（ns）,1"},
			wantErr: true,
		},
		{
			name:    "six columns without min max labels or channel 1",
			lines:   []string{"a,b,タイムスタンプ（ns）,2,3,4"},
			wantErr: true,
		},
		{
			name:       "min max labels need six columns",
			lines:      []string{"a,タイムスタンプ（ns）,1 最小,1 最大"},
			wantLayout: LayoutThreeColumnDirect, // field 3 is "1 最大", which contains "1"
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fd, err := NewDetector(tt.opts, nil).Detect(tt.lines)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownFormat))
				assert.Equal(t, apperrors.ErrTypeFormat, apperrors.TypeOf(err))
				assert.Equal(t, LayoutUnknown, fd.Layout)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLayout, fd.Layout)
			assert.Equal(t, tt.wantHeader, fd.HeaderRow)
			assert.Equal(t, fd.HeaderRow+1, fd.DataStartRow)
		})
	}
}

func TestDetect_UsesFirstMarker(t *testing.T) {
	lines := []string{"x", directHeader, "0,0,0,1,2", minMaxHeader}

	fd, err := Detect(lines)
	require.NoError(t, err)
	assert.Equal(t, 1, fd.HeaderRow)
	assert.Equal(t, LayoutThreeColumnDirect, fd.Layout)
}

func TestLayout_String(t *testing.T) {
	assert.Equal(t, "five_column_min_max", LayoutFiveColumnMinMax.String())
	assert.Equal(t, "three_column_direct", LayoutThreeColumnDirect.String())
	assert.Equal(t, "unknown", LayoutUnknown.String())
	assert.Equal(t, "unknown", Layout(42).String())
}
