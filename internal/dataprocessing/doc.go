// Package dataprocessing reads oscilloscope capture exports and turns them into
// normalized time series.
//
// # Architecture
//
// The package is organized into three components:
//
// 1. Reader: loads an export and splits it into lines (UTF-8 or Shift-JIS)
// 2. Detector: finds the header marker row and identifies the column layout
// 3. Parser: cleans the data rows into a NormalizedTrace
//
// # Layouts
//
// Two layouts are recognized. Both place the timestamp (ns) in column 2.
//
//	FiveColumnMinMax:  timestamp, ch1 min, ch1 max, ch2 min, ch2 max
//	ThreeColumnDirect: timestamp, ch1, ch2
//
// Min/max pairs are reduced to their midpoint, so downstream code only ever
// sees one value per channel.
//
// # Usage
//
//	raw, err := dataprocessing.ReadCapture("SINE_10kHz.csv", dataprocessing.EncodingAuto)
//	if err != nil {
//	    return err
//	}
//	fd, trace, err := dataprocessing.ParseCapture(raw, dataprocessing.ParseOptions{})
//
// # Error Handling
//
// Detection failures wrap ErrUnknownFormat and parsing failures wrap
// ErrNoValidRows; both are *errors.AppError values and can be matched with
// errors.Is.
package dataprocessing
