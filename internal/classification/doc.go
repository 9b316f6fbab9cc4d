// Package classification derives a capture's signal type and filter type
// from its file name.
//
// Classification is a pure function of the file name stem. An ordered rule
// table is evaluated top to bottom and the first matching rule wins:
//
//	cutoff         stem contains CUTOFF (six known measurements, else "Cutoff test"/"Test")
//	sine           SINE_<freq>kHz[_<filter>]
//	gaussian       gaussian...[_<filter>]
//	original_wave  original_wave<N>[_<filter>]
//	fallback       the stem itself, filter "Original"
//
// The package also groups stems into families and filter sets for
// comparison charts.
package classification
