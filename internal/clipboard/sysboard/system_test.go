package sysboard

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/yiblet/clipstash/internal/clipboard"
)

// fakePath reports only the named helpers as installed.
func fakePath(installed ...string) func(string) (string, error) {
	set := make(map[string]bool, len(installed))
	for _, name := range installed {
		set[name] = true
	}
	return func(name string) (string, error) {
		if set[name] {
			return "/usr/bin/" + name, nil
		}
		return "", exec.ErrNotFound
	}
}

func TestPick_PrefersFirstInstalled(t *testing.T) {
	s := &SystemClipboard{goos: "linux", lookPath: fakePath("xsel", "xclip")}

	cmd, ok := s.pick(readCommands)
	if !ok {
		t.Fatal("pick() found no reader")
	}
	if cmd.name != "xclip" {
		t.Errorf("pick() = %s, want xclip (listed before xsel)", cmd.name)
	}
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		name      string
		goos      string
		installed []string
		want      bool
	}{
		{name: "mac with pb tools", goos: "darwin", installed: []string{"pbcopy", "pbpaste"}, want: true},
		{name: "mac missing pbcopy", goos: "darwin", installed: []string{"pbpaste"}, want: false},
		{name: "wayland", goos: "linux", installed: []string{"wl-copy", "wl-paste"}, want: true},
		{name: "x11 xsel only", goos: "linux", installed: []string{"xsel"}, want: true},
		{name: "linux nothing", goos: "linux", want: false},
		{name: "windows", goos: "windows", installed: []string{"clip"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &SystemClipboard{goos: tt.goos, lookPath: fakePath(tt.installed...)}
			if got := s.IsSupported(); got != tt.want {
				t.Errorf("IsSupported() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnsupportedPlatformErrors(t *testing.T) {
	s := &SystemClipboard{goos: "plan9", lookPath: fakePath()}

	if _, err := s.Read(); !errors.Is(err, clipboard.ErrUnsupported) {
		t.Errorf("Read() error = %v, want ErrUnsupported", err)
	}
	if err := s.Write(nil); !errors.Is(err, clipboard.ErrUnsupported) {
		t.Errorf("Write() error = %v, want ErrUnsupported", err)
	}
}
