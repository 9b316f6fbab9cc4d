package dataprocessing

import (
	"errors"
	"log/slog"
	"strings"

	apperrors "scopecli/internal/errors"
)

// Header labels written by the instrument export.
const (
	HeaderMarker = "タイムスタンプ（ns）"
	LabelCh1Min  = "1 最小"
	LabelCh1Max  = "1 最大"
)

// ErrUnknownFormat is returned when no known layout can be identified.
var ErrUnknownFormat = errors.New("unknown capture format")

// DetectorOptions tunes header classification.
type DetectorOptions struct {
	// StrictChannelField requires the channel field of a three-column header
	// to be exactly "1" or "1,2". When false, any channel field containing
	// "1" is accepted, which is how existing exports have been classified.
	StrictChannelField bool
}

// Detector identifies the layout of a capture export.
type Detector struct {
	opts   DetectorOptions
	logger *slog.Logger
}

// NewDetector creates a detector. A nil logger uses slog.Default().
func NewDetector(opts DetectorOptions, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{opts: opts, logger: logger}
}

// Detect scans lines for the header marker and classifies the header row.
func (d *Detector) Detect(lines []string) (FormatDescriptor, error) {
	headerRow := -1
	for i, line := range lines {
		if strings.Contains(line, HeaderMarker) {
			headerRow = i
			break
		}
	}
	if headerRow == -1 {
		return FormatDescriptor{}, apperrors.NewFormatError("header marker not found", ErrUnknownFormat).
			WithContext("lines", len(lines))
	}

	header := lines[headerRow]
	columns := strings.Split(header, ",")

	layout := d.classifyHeader(header, columns)
	if layout == LayoutUnknown {
		return FormatDescriptor{}, apperrors.NewFormatError("header matches no known layout", ErrUnknownFormat).
			WithContext("header_row", headerRow).
			WithContext("columns", len(columns))
	}

	d.logger.Debug("Capture layout detected",
		slog.String("layout", layout.String()),
		slog.Int("header_row", headerRow),
		slog.Int("columns", len(columns)))

	return FormatDescriptor{
		Layout:       layout,
		HeaderRow:    headerRow,
		DataStartRow: headerRow + 1,
	}, nil
}

func (d *Detector) classifyHeader(header string, columns []string) Layout {
	if len(columns) >= 6 && strings.Contains(header, LabelCh1Min) && strings.Contains(header, LabelCh1Max) {
		return LayoutFiveColumnMinMax
	}
	if len(columns) < 4 {
		return LayoutUnknown
	}

	channels := strings.TrimSpace(columns[3])
	if channels == "1" || channels == "1,2" {
		return LayoutThreeColumnDirect
	}
	// The substring fallback is evaluated even after the equality checks fail.
	if !d.opts.StrictChannelField && strings.Contains(columns[3], "1") {
		return LayoutThreeColumnDirect
	}
	return LayoutUnknown
}

// Detect runs layout detection with default options.
func Detect(lines []string) (FormatDescriptor, error) {
	return NewDetector(DetectorOptions{}, nil).Detect(lines)
}
