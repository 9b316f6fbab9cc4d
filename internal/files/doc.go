// Package files provides file system operations and discovery utilities
// for scopeplot.
//
// This package contains two main components:
//
// Discovery: finds capture files in an input directory by glob pattern and
// returns them in a stable, name-sorted order.
//
// Manager: ensures output directories exist and writes generated files
// atomically (temporary file in the same directory, then rename), so an
// interrupted or failed render never leaves a partial file behind.
//
// Example usage:
//
//	discovery := files.NewDiscovery("/path/to/base")
//	captures, err := discovery.FindCaptureFiles("captures", "*.csv")
//
//	manager := files.NewManager("/path/to/graphs", logger)
//	err = manager.WriteFileAtomic("10kHz_HPF_characteristic.png", func(w io.Writer) error {
//	    _, err := canvas.WriteTo(w)
//	    return err
//	})
package files
