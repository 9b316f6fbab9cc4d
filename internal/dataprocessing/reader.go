package dataprocessing

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	apperrors "scopecli/internal/errors"
)

// Supported input encodings.
const (
	EncodingAuto     = "auto"
	EncodingUTF8     = "utf-8"
	EncodingShiftJIS = "shift_jis"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCapture loads a capture export and splits it into lines.
// With EncodingAuto the content is used as UTF-8 when valid and
// transcoded from Shift-JIS otherwise.
func ReadCapture(path string, encoding string) (RawCapture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RawCapture{}, apperrors.NewStorageError("failed to read capture file", err).
			WithContext("path", path)
	}

	text, err := decode(data, encoding)
	if err != nil {
		return RawCapture{}, apperrors.NewFormatError("failed to decode capture file", err).
			WithContext("path", path).
			WithContext("encoding", encoding)
	}

	return RawCapture{
		Name:  filepath.Base(path),
		Lines: SplitLines(text),
	}, nil
}

func decode(data []byte, encoding string) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	switch strings.ToLower(encoding) {
	case EncodingUTF8:
		return string(data), nil
	case EncodingShiftJIS:
		return fromShiftJIS(data)
	case EncodingAuto, "":
		if utf8.Valid(data) {
			return string(data), nil
		}
		return fromShiftJIS(data)
	default:
		return "", fmt.Errorf("unsupported encoding %q", encoding)
	}
}

func fromShiftJIS(data []byte) (string, error) {
	out, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("shift_jis decode: %w", err)
	}
	return string(out), nil
}

// SplitLines splits text into lines, accepting both LF and CRLF terminators.
// A trailing terminator does not produce an empty final line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
