package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Capture headers as written by the instrument.
const (
	MinMaxHeader = "No.,日付,タイムスタンプ（ns）,1 最小(V),1 最大(V),2 最小(V),2 最大(V)"
	DirectHeader = "No.,日付,タイムスタンプ（ns）,1,2"
)

// Preamble is the instrument metadata block that precedes the header.
var Preamble = []string{
	"モデル,MSO-2000",
	"サンプリング,1GS/s",
	"トリガ,CH1",
	"",
}

// MinMaxCapture builds a five-column min/max capture with the given data rows
func MinMaxCapture(rows ...string) string {
	return joinCapture(MinMaxHeader, rows)
}

// DirectCapture builds a three-column capture with the given data rows
func DirectCapture(rows ...string) string {
	return joinCapture(DirectHeader, rows)
}

// HeaderlessCapture builds a file with a preamble and data but no marker header
func HeaderlessCapture(rows ...string) string {
	lines := append(append([]string{}, Preamble...), rows...)
	return strings.Join(lines, "\n") + "\n"
}

// DirectRows returns n well-formed three-column rows, 1 µs apart
func DirectRows(n int) []string {
	rows := make([]string, n)
	for i := range rows {
		rows[i] = fmt.Sprintf("%d,2024/05/01,%d,%.2f,%.2f", i, i*1000, float64(i%5)/10, float64(i%3)/5)
	}
	return rows
}

// WriteCapture writes content to dir/name and returns the path
func WriteCapture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write capture %s: %v", name, err)
	}
	return path
}

func joinCapture(header string, rows []string) string {
	lines := append(append([]string{}, Preamble...), header)
	lines = append(lines, rows...)
	return strings.Join(lines, "\n") + "\n"
}
