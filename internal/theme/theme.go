// Package theme stores the dark mode preference and turns it into the
// lipgloss colors used by the browser.
package theme

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/yiblet/clipstash/internal/store"
	"go.uber.org/zap"
)

// StorageKey is the KV key holding the preference as a JSON boolean.
const StorageKey = "darkMode"

// Preference reads and writes the dark mode flag.
type Preference struct {
	kv       store.KV
	fallback func() bool
	logger   *zap.Logger
}

// Option configures a Preference.
type Option func(*Preference)

// WithFallback sets the detector used when no preference is stored.
func WithFallback(fn func() bool) Option {
	return func(p *Preference) {
		if fn != nil {
			p.fallback = fn
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Preference) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPreference creates a preference backed by kv. Without a stored value
// the terminal background decides.
func NewPreference(kv store.KV, opts ...Option) *Preference {
	p := &Preference{
		kv:       kv,
		fallback: lipgloss.HasDarkBackground,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DarkMode returns the stored preference. Missing or malformed values
// fall back to detection.
func (p *Preference) DarkMode() bool {
	raw, ok, err := store.Lookup(p.kv, StorageKey)
	if err != nil {
		p.logger.Warn("failed to read theme preference", zap.Error(err))
		return p.fallback()
	}
	if !ok {
		return p.fallback()
	}

	var dark bool
	if err := json.Unmarshal([]byte(raw), &dark); err != nil {
		p.logger.Debug("ignoring malformed theme preference", zap.String("value", raw))
		return p.fallback()
	}
	return dark
}

// SetDarkMode stores the preference.
func (p *Preference) SetDarkMode(dark bool) error {
	data, err := json.Marshal(dark)
	if err != nil {
		return err
	}
	if err := p.kv.Set(StorageKey, string(data)); err != nil {
		return fmt.Errorf("failed to save theme preference: %w", err)
	}
	return nil
}

// Toggle flips the preference and returns the new value.
func (p *Preference) Toggle() (bool, error) {
	dark := !p.DarkMode()
	if err := p.SetDarkMode(dark); err != nil {
		return !dark, err
	}
	return dark, nil
}

// Name returns "dark" or "light".
func Name(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
