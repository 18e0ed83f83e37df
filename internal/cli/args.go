package cli

import (
	"fmt"
	"strings"

	"github.com/yiblet/clipstash/internal/query"
)

// Args represents the top-level command structure
type Args struct {
	ConfigPath *string `arg:"--config" help:"Config file (default ~/.config/clipstash/config.yaml)"`
	DataDir    *string `arg:"--data-dir" help:"Directory for the clip database (overrides data-dir)"`
	Backend    *string `arg:"--backend" help:"Storage backend: sqlite, bolt or memory (overrides backend)"`
	Verbose    bool    `arg:"-v,--verbose" help:"Enable debug logging"`

	Add      *AddCmd     `arg:"subcommand:add" help:"Store a clip"`
	List     *ListCmd    `arg:"subcommand:list" help:"List clips"`
	Show     *ShowCmd    `arg:"subcommand:show" help:"Print a clip's content"`
	Edit     *EditCmd    `arg:"subcommand:edit" help:"Change a clip's content, tags or pin"`
	Pin      *PinCmd     `arg:"subcommand:pin" help:"Toggle the pin on clips"`
	Delete   *DeleteCmd  `arg:"subcommand:delete" help:"Delete clips"`
	Clear    *ClearCmd   `arg:"subcommand:clear" help:"Delete every clip"`
	Tags     *TagsCmd    `arg:"subcommand:tags" help:"List tags in use"`
	Capture  *CaptureCmd `arg:"subcommand:capture" help:"Capture the clipboard once"`
	Sweep    *SweepCmd   `arg:"subcommand:sweep" help:"Remove expired unpinned clips once"`
	Watch    *WatchCmd   `arg:"subcommand:watch" help:"Capture and sweep in the background until interrupted"`
	Copy     *CopyCmd    `arg:"subcommand:copy" help:"Copy a clip to the clipboard"`
	Share    *ShareCmd   `arg:"subcommand:share" help:"Print a share link for a clip"`
	QR       *QRCmd      `arg:"subcommand:qr" help:"Show a clip as a QR code"`
	Theme    *ThemeCmd   `arg:"subcommand:theme" help:"Show or set the browser theme"`
	Settings *ConfigCmd  `arg:"subcommand:config" help:"Manage configuration settings"`
	UI       *UICmd      `arg:"subcommand:ui" help:"Open the interactive browser (default)"`
}

// AddCmd represents 'clipstash add'
type AddCmd struct {
	Content   *string `arg:"positional" help:"Text to store (reads stdin if omitted)"`
	Tags      string  `arg:"-t,--tags" help:"Comma-separated tags"`
	Pin       bool    `arg:"-p,--pin" help:"Pin the clip"`
	Clipboard bool    `arg:"-c,--clipboard" help:"Read from clipboard"`
}

// ListCmd represents 'clipstash list'
type ListCmd struct {
	Search string   `arg:"-s,--search" help:"Case-insensitive match on content or tags"`
	Tag    []string `arg:"-t,--tag,separate" help:"Only clips with this tag (repeatable, any matches)"`
	Sort   string   `arg:"--sort" default:"date" help:"Sort by date or pinned"`
	Limit  int      `arg:"-n,--limit" help:"Show at most this many clips"`
	JSON   bool     `arg:"--json" help:"Print clips as JSON"`
}

// ShowCmd represents 'clipstash show'
type ShowCmd struct {
	ID string `arg:"positional,required" help:"Clip id"`
}

// EditCmd represents 'clipstash edit'
type EditCmd struct {
	ID      string  `arg:"positional,required" help:"Clip id"`
	Content *string `arg:"--content" help:"New content"`
	Tags    *string `arg:"--tags" help:"Replace tags (comma-separated, empty clears)"`
	Pinned  *bool   `arg:"--pinned" help:"Set the pin state"`
}

// PinCmd represents 'clipstash pin'
type PinCmd struct {
	IDs []string `arg:"positional,required" help:"Clip ids"`
}

// DeleteCmd represents 'clipstash delete'
type DeleteCmd struct {
	IDs []string `arg:"positional,required" help:"Clip ids"`
}

// ClearCmd represents 'clipstash clear'
type ClearCmd struct {
	Force bool `arg:"-f,--force" help:"Skip confirmation prompt"`
}

// TagsCmd represents 'clipstash tags'
type TagsCmd struct{}

// CaptureCmd represents 'clipstash capture'
type CaptureCmd struct{}

// SweepCmd represents 'clipstash sweep'
type SweepCmd struct{}

// WatchCmd represents 'clipstash watch'
type WatchCmd struct{}

// CopyCmd represents 'clipstash copy'
type CopyCmd struct {
	ID string `arg:"positional,required" help:"Clip id"`
}

// ShareCmd represents 'clipstash share'
type ShareCmd struct {
	ID      string  `arg:"positional,required" help:"Clip id"`
	BaseURL *string `arg:"--base-url" help:"Share page URL (overrides share-base-url)"`
}

// QRCmd represents 'clipstash qr'
type QRCmd struct {
	ID      string  `arg:"positional,required" help:"Clip id"`
	Link    bool    `arg:"-l,--link" help:"Encode the share link instead of the content"`
	BaseURL *string `arg:"--base-url" help:"Share page URL for --link (overrides share-base-url)"`
	PNG     *string `arg:"--png" help:"Write a PNG image to this file instead of printing"`
	Size    int     `arg:"--size" default:"256" help:"PNG edge length in pixels"`
	Invert  bool    `arg:"--invert" help:"Swap light and dark for light terminals"`
}

// ThemeCmd represents 'clipstash theme'
type ThemeCmd struct {
	Mode *string `arg:"positional" help:"dark, light or toggle (prints the current theme if omitted)"`
}

// ConfigCmd represents 'clipstash config'
type ConfigCmd struct {
	Get  *ConfigGetCmd  `arg:"subcommand:get" help:"Get a configuration value"`
	Set  *ConfigSetCmd  `arg:"subcommand:set" help:"Set a configuration value"`
	List *ConfigListCmd `arg:"subcommand:list" help:"List all configuration values"`
}

// ConfigGetCmd represents 'clipstash config get'
type ConfigGetCmd struct {
	Key string `arg:"positional,required" help:"Configuration key"`
}

// ConfigSetCmd represents 'clipstash config set'
type ConfigSetCmd struct {
	Key   string `arg:"positional,required" help:"Configuration key"`
	Value string `arg:"positional,required" help:"Configuration value"`
}

// ConfigListCmd represents 'clipstash config list'
type ConfigListCmd struct{}

// UICmd represents 'clipstash ui'
type UICmd struct{}

// Description returns the program description
func (Args) Description() string {
	return "clipstash - clipboard history with tags, pins and automatic expiry"
}

// Version returns the program version
func (Args) Version() string {
	return "clipstash 0.1.0"
}

// Epilogue returns additional help text
func (Args) Epilogue() string {
	return `Examples:
  clipstash                          # Interactive browser
  echo "hello" | clipstash add       # Store from stdin
  clipstash add -t work,todo "text"  # Store with tags
  clipstash list -s hello --sort pinned
  clipstash pin <id>                 # Pinned clips never expire
  clipstash qr <id> --png clip.png   # QR code image of a clip
  clipstash watch                    # Record the clipboard in the background

Configuration keys: backend, data-dir, capture-interval, sweep-interval,
retention, auto-capture-tag, log-level, share-base-url`
}

// HasCommand reports whether a subcommand was given
func (args *Args) HasCommand() bool {
	return args.Add != nil || args.List != nil || args.Show != nil || args.Edit != nil ||
		args.Pin != nil || args.Delete != nil || args.Clear != nil || args.Tags != nil ||
		args.Capture != nil || args.Sweep != nil || args.Watch != nil || args.Copy != nil ||
		args.Share != nil || args.QR != nil || args.Theme != nil || args.Settings != nil || args.UI != nil
}

// Validate performs validation on the parsed arguments
func (args *Args) Validate() error {
	switch {
	case args.Add != nil:
		return args.Add.Validate()
	case args.List != nil:
		return args.List.Validate()
	case args.Edit != nil:
		return args.Edit.Validate()
	case args.QR != nil:
		return args.QR.Validate()
	case args.Theme != nil:
		return args.Theme.Validate()
	case args.Settings != nil:
		return args.Settings.Validate()
	}
	return nil
}

// Validate validates add command arguments
func (a *AddCmd) Validate() error {
	if a.Content != nil && a.Clipboard {
		return fmt.Errorf("cannot specify both content and clipboard input")
	}
	return nil
}

// Validate validates list command arguments
func (l *ListCmd) Validate() error {
	if _, err := query.ParseSortMode(l.Sort); err != nil {
		return err
	}
	if l.Limit < 0 {
		return fmt.Errorf("limit must be non-negative")
	}
	return nil
}

// Validate validates edit command arguments
func (e *EditCmd) Validate() error {
	if e.Content == nil && e.Tags == nil && e.Pinned == nil {
		return fmt.Errorf("nothing to change: use --content, --tags or --pinned")
	}
	return nil
}

// Validate validates qr command arguments
func (q *QRCmd) Validate() error {
	if q.Size < 0 {
		return fmt.Errorf("size must be non-negative")
	}
	if q.BaseURL != nil && !q.Link {
		return fmt.Errorf("--base-url only applies with --link")
	}
	return nil
}

// Validate validates theme command arguments
func (t *ThemeCmd) Validate() error {
	if t.Mode == nil {
		return nil
	}
	switch strings.ToLower(*t.Mode) {
	case "dark", "light", "toggle":
		return nil
	}
	return fmt.Errorf("theme must be dark, light or toggle")
}

// Validate validates config command arguments
func (c *ConfigCmd) Validate() error {
	if c.Get == nil && c.Set == nil && c.List == nil {
		return fmt.Errorf("no config subcommand specified")
	}
	return nil
}
