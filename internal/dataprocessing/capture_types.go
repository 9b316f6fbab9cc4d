package dataprocessing

// Layout identifies the column arrangement of a capture's data rows.
type Layout int

const (
	// LayoutUnknown is the zero value and never the result of a successful detection.
	LayoutUnknown Layout = iota
	// LayoutFiveColumnMinMax rows carry timestamp, ch1 min/max and ch2 min/max.
	LayoutFiveColumnMinMax
	// LayoutThreeColumnDirect rows carry timestamp, ch1 and ch2.
	LayoutThreeColumnDirect
)

var layoutNames = map[Layout]string{
	LayoutUnknown:           "unknown",
	LayoutFiveColumnMinMax:  "five_column_min_max",
	LayoutThreeColumnDirect: "three_column_direct",
}

func (l Layout) String() string {
	if n, ok := layoutNames[l]; ok {
		return n
	}
	return "unknown"
}

// Column offsets used by each layout, counted from the start of a data row.
const (
	colTimestamp = 2
	colCh1Min    = 3
	colCh1Max    = 4
	colCh2Min    = 5
	colCh2Max    = 6

	colCh1 = 3
	colCh2 = 4
)

// RawCapture is the text content of one capture export.
type RawCapture struct {
	Name  string
	Lines []string
}

// FormatDescriptor is the result of layout detection.
// DataStartRow always indexes the line right after HeaderRow.
type FormatDescriptor struct {
	Layout       Layout
	HeaderRow    int
	DataStartRow int
}

// TracePoint is one normalized sample.
type TracePoint struct {
	TimestampUS float64
	Ch1         float64
	Ch2         float64
}

// NormalizedTrace is the cleaned series for one capture file, in file order.
type NormalizedTrace struct {
	Layout     Layout
	Points     []TracePoint
	SourceRows int // non-blank rows after the header
	Discarded  int // rows dropped during cleaning
}

// Len returns the number of samples.
func (t *NormalizedTrace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Points)
}

// IsMonotonic reports whether timestamps never decrease.
func (t *NormalizedTrace) IsMonotonic() bool {
	for i := 1; i < t.Len(); i++ {
		if t.Points[i].TimestampUS < t.Points[i-1].TimestampUS {
			return false
		}
	}
	return true
}

// TimeRange returns the smallest and largest timestamp in microseconds.
func (t *NormalizedTrace) TimeRange() (float64, float64) {
	if t.Len() == 0 {
		return 0, 0
	}
	lo, hi := t.Points[0].TimestampUS, t.Points[0].TimestampUS
	for _, p := range t.Points[1:] {
		if p.TimestampUS < lo {
			lo = p.TimestampUS
		}
		if p.TimestampUS > hi {
			hi = p.TimestampUS
		}
	}
	return lo, hi
}
