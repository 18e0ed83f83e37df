// Package clipboard defines the system clipboard abstraction used by the
// capture poller and the copy commands, plus helpers for moving plain
// text in and out of it.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// MaxTextSize is the largest clipboard text ReadText accepts.
const MaxTextSize = 1 << 20

var (
	// ErrUnsupported means no clipboard is available on this system.
	ErrUnsupported = errors.New("clipboard not supported")

	// ErrAccessDenied means the clipboard exists but could not be read.
	ErrAccessDenied = errors.New("clipboard access denied")

	// ErrNotText means the clipboard holds binary data.
	ErrNotText = errors.New("clipboard does not contain text")

	// ErrTooLarge means the clipboard holds more than MaxTextSize bytes.
	ErrTooLarge = errors.New("clipboard text too large")
)

// Clipboard is a readable and writable system clipboard.
type Clipboard interface {
	// Read returns the current clipboard contents as a stream.
	// Caller is responsible for closing the reader.
	Read() (io.ReadCloser, error)

	// Write replaces the clipboard contents.
	Write(r io.Reader) error

	// IsSupported reports whether clipboard operations can work here.
	IsSupported() bool
}

// ReadText reads the clipboard as text. Failures are reported as
// ErrUnsupported, ErrAccessDenied, ErrNotText or ErrTooLarge so callers
// can treat them as expected conditions. Text is never truncated.
func ReadText(c Clipboard) (string, error) {
	if !c.IsSupported() {
		return "", ErrUnsupported
	}

	rc, err := c.Read()
	if err != nil {
		if errors.Is(err, ErrUnsupported) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrAccessDenied, err)
	}

	data, readErr := io.ReadAll(io.LimitReader(rc, MaxTextSize+1))
	closeErr := rc.Close()
	if readErr != nil {
		return "", fmt.Errorf("%w: %v", ErrAccessDenied, readErr)
	}
	// A helper process that exits non-zero without output never got at
	// the clipboard. Once output arrived, a close error only reflects
	// process teardown.
	if closeErr != nil && len(data) == 0 {
		return "", fmt.Errorf("%w: %v", ErrAccessDenied, closeErr)
	}

	if len(data) > MaxTextSize {
		return "", ErrTooLarge
	}
	if isBinary(data) {
		return "", ErrNotText
	}
	return string(data), nil
}

// WriteText replaces the clipboard contents with text.
func WriteText(c Clipboard, text string) error {
	if !c.IsSupported() {
		return ErrUnsupported
	}
	if err := c.Write(strings.NewReader(text)); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

// isBinary detects if data is binary by checking for null bytes and the
// share of non-printable characters.
func isBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	// Check up to first 8KB for performance
	sampleSize := min(len(data), 8192)

	nonPrintable := 0
	for i := 0; i < sampleSize; i++ {
		b := data[i]

		// Null byte is a strong indicator of binary content
		if b == 0 {
			return true
		}

		// Count non-printable characters (excluding common whitespace)
		if b < 32 && b != '\n' && b != '\r' && b != '\t' {
			nonPrintable++
		}
	}

	// If more than 30% of characters are non-printable, consider it binary
	return float64(nonPrintable)/float64(sampleSize) > 0.3
}
