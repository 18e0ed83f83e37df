// Package nativeboard implements clipboard.Clipboard with the native
// platform clipboard APIs from golang.design/x/clipboard.
package nativeboard

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"golang.design/x/clipboard"

	cb "github.com/yiblet/clipstash/internal/clipboard"
)

var (
	initOnce sync.Once
	initErr  error
)

// ensureInit initialises the native clipboard once per process.
func ensureInit() error {
	initOnce.Do(func() {
		initErr = clipboard.Init()
	})
	return initErr
}

// NativeClipboard talks to the OS clipboard directly.
type NativeClipboard struct{}

var _ cb.Clipboard = (*NativeClipboard)(nil)

// New creates a NativeClipboard.
func New() *NativeClipboard {
	return &NativeClipboard{}
}

// IsSupported reports whether the native clipboard initialised.
func (n *NativeClipboard) IsSupported() bool {
	return ensureInit() == nil
}

// Read returns the current text contents.
func (n *NativeClipboard) Read() (io.ReadCloser, error) {
	if err := ensureInit(); err != nil {
		return nil, fmt.Errorf("%w: %v", cb.ErrUnsupported, err)
	}
	return io.NopCloser(bytes.NewReader(clipboard.Read(clipboard.FmtText))), nil
}

// Write replaces the clipboard with the text read from r.
func (n *NativeClipboard) Write(r io.Reader) error {
	if err := ensureInit(); err != nil {
		return fmt.Errorf("%w: %v", cb.ErrUnsupported, err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read content: %w", err)
	}
	clipboard.Write(clipboard.FmtText, data)
	return nil
}
