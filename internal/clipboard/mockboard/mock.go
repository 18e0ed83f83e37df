// Package mockboard provides a mock clipboard implementation for testing.
package mockboard

import (
	"bytes"
	"io"
	"sync"
)

// MockClipboard implements clipboard.Clipboard for testing. Reads can be
// made to fail and the clipboard can be marked unsupported.
type MockClipboard struct {
	mu          sync.Mutex
	data        []byte
	readErr     error
	unsupported bool
	reads       int
}

// New creates a new MockClipboard instance
func New() *MockClipboard {
	return &MockClipboard{}
}

// Read implements Clipboard.Read for MockClipboard
func (m *MockClipboard) Read() (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reads++
	if m.readErr != nil {
		return nil, m.readErr
	}
	return io.NopCloser(bytes.NewReader(bytes.Clone(m.data))), nil
}

// Write implements Clipboard.Write for MockClipboard
func (m *MockClipboard) Write(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	return nil
}

// SetText sets the mock clipboard contents directly (for testing)
func (m *MockClipboard) SetText(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = []byte(text)
}

// SetData sets raw clipboard bytes (for testing)
func (m *MockClipboard) SetData(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
}

// Text returns the current clipboard contents (for testing)
func (m *MockClipboard) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.data)
}

// FailReads makes every Read return err until cleared with nil.
func (m *MockClipboard) FailReads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = err
}

// SetSupported toggles the result of IsSupported.
func (m *MockClipboard) SetSupported(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unsupported = !ok
}

// Reads reports how many times Read was called.
func (m *MockClipboard) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

// IsSupported implements Clipboard.IsSupported for MockClipboard
func (m *MockClipboard) IsSupported() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.unsupported
}
