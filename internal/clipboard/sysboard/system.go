// Package sysboard implements system clipboard operations by shelling out
// to platform helpers: pbcopy/pbpaste on macOS, wl-clipboard, xclip or
// xsel on Linux.
package sysboard

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/yiblet/clipstash/internal/clipboard"
)

// command is one helper invocation.
type command struct {
	name string
	args []string
}

// Candidates are tried in order; the first one on PATH wins.
var (
	readCommands = map[string][]command{
		"darwin": {{name: "pbpaste"}},
		"linux": {
			{name: "wl-paste", args: []string{"--no-newline"}},
			{name: "xclip", args: []string{"-selection", "clipboard", "-o"}},
			{name: "xsel", args: []string{"--clipboard", "--output"}},
		},
	}
	writeCommands = map[string][]command{
		"darwin": {{name: "pbcopy"}},
		"linux": {
			{name: "wl-copy"},
			{name: "xclip", args: []string{"-selection", "clipboard"}},
			{name: "xsel", args: []string{"--clipboard", "--input"}},
		},
	}
)

// SystemClipboard implements clipboard.Clipboard using system commands
type SystemClipboard struct {
	goos     string
	lookPath func(string) (string, error)
}

var _ clipboard.Clipboard = (*SystemClipboard)(nil)

// New creates a new SystemClipboard for the running platform
func New() *SystemClipboard {
	return &SystemClipboard{goos: runtime.GOOS, lookPath: exec.LookPath}
}

// IsSupported returns true if both a read and a write helper are installed
func (s *SystemClipboard) IsSupported() bool {
	_, readOK := s.pick(readCommands)
	_, writeOK := s.pick(writeCommands)
	return readOK && writeOK
}

// Read streams the clipboard contents from the first available helper
func (s *SystemClipboard) Read() (io.ReadCloser, error) {
	cmd, ok := s.pick(readCommands)
	if !ok {
		return nil, fmt.Errorf("%w: no clipboard reader found for %s", clipboard.ErrUnsupported, s.goos)
	}

	c := exec.Command(cmd.name, cmd.args...)
	stdout, err := c.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	if err := c.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", cmd.name, err)
	}

	return &cmdReadCloser{stdout: stdout, cmd: c}, nil
}

// Write feeds r to the first available clipboard writer
func (s *SystemClipboard) Write(r io.Reader) error {
	cmd, ok := s.pick(writeCommands)
	if !ok {
		return fmt.Errorf("%w: no clipboard writer found for %s", clipboard.ErrUnsupported, s.goos)
	}

	c := exec.Command(cmd.name, cmd.args...)
	c.Stdin = r
	if err := c.Run(); err != nil {
		return fmt.Errorf("failed to run %s: %w", cmd.name, err)
	}
	return nil
}

// pick returns the first candidate for this platform that is on PATH
func (s *SystemClipboard) pick(table map[string][]command) (command, bool) {
	for _, cmd := range table[s.goos] {
		if _, err := s.lookPath(cmd.name); err == nil {
			return cmd, true
		}
	}
	return command{}, false
}

// cmdReadCloser wraps a command's stdout and ensures the command is waited on when closed
type cmdReadCloser struct {
	stdout io.ReadCloser
	cmd    *exec.Cmd
}

func (c *cmdReadCloser) Read(p []byte) (n int, err error) {
	return c.stdout.Read(p)
}

func (c *cmdReadCloser) Close() error {
	// Close stdout first
	if err := c.stdout.Close(); err != nil {
		c.cmd.Wait() // Still wait for command even if close fails
		return err
	}

	if runtime.GOOS != "windows" {
		c.cmd.Process.Signal(os.Interrupt) // stop helpers that are still writing
	}
	return c.cmd.Wait()
}
