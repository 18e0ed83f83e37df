// Package cli wires configuration, storage and the clip components into
// the clipstash subcommands.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/yiblet/clipstash/internal/capture"
	"github.com/yiblet/clipstash/internal/clip"
	"github.com/yiblet/clipstash/internal/clipboard"
	"github.com/yiblet/clipstash/internal/clock"
	"github.com/yiblet/clipstash/internal/config"
	"github.com/yiblet/clipstash/internal/datadir"
	"github.com/yiblet/clipstash/internal/history"
	"github.com/yiblet/clipstash/internal/logging"
	"github.com/yiblet/clipstash/internal/query"
	"github.com/yiblet/clipstash/internal/retention"
	"github.com/yiblet/clipstash/internal/store"
	"github.com/yiblet/clipstash/internal/theme"
	"github.com/yiblet/clipstash/internal/tui"
	"go.uber.org/zap"
)

// Env holds everything a CLI needs. Zero fields get defaults in New.
type Env struct {
	Out     io.Writer
	In      io.Reader
	Config  *config.Config
	Configs *config.ConfigManager
	KV      store.KV
	Board   clipboard.Clipboard
	Logger  *zap.Logger
	Clock   clock.Clock
	IDs     clip.IDSource
	// RunUI replaces the interactive browser, for tests.
	RunUI func(ctx context.Context, deps tui.Deps) error
}

// CLI handles the command-line interface
type CLI struct {
	out     io.Writer
	in      io.Reader
	cfg     *config.Config
	configs *config.ConfigManager
	kv      store.KV
	board   clipboard.Clipboard
	logger  *zap.Logger
	clock   clock.Clock
	repo    *history.Repository
	prefs   *theme.Preference
	runUI   func(ctx context.Context, deps tui.Deps) error
}

// New creates a CLI over an already opened store.
func New(env Env) *CLI {
	c := &CLI{
		out:     env.Out,
		in:      env.In,
		cfg:     env.Config,
		configs: env.Configs,
		kv:      env.KV,
		board:   env.Board,
		logger:  env.Logger,
		clock:   env.Clock,
		runUI:   env.RunUI,
	}
	if c.out == nil {
		c.out = os.Stdout
	}
	if c.in == nil {
		c.in = os.Stdin
	}
	if c.cfg == nil {
		c.cfg = config.DefaultConfig()
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.clock == nil {
		c.clock = clock.System{}
	}
	if c.runUI == nil {
		c.runUI = func(ctx context.Context, deps tui.Deps) error { return tui.Run(ctx, deps) }
	}

	opts := []history.Option{history.WithClock(c.clock), history.WithLogger(c.logger)}
	if env.IDs != nil {
		opts = append(opts, history.WithIDSource(env.IDs))
	}
	c.repo = history.Open(c.kv, opts...)
	c.prefs = theme.NewPreference(c.kv, theme.WithLogger(c.logger))
	return c
}

// NewWithArgs loads configuration, opens the configured backend and
// builds a CLI for the real terminal.
func NewWithArgs(args *Args) (*CLI, error) {
	var configs *config.ConfigManager
	if args.ConfigPath != nil {
		configs = config.NewConfigManagerWithPath(*args.ConfigPath)
	} else {
		var err error
		if configs, err = config.NewConfigManager(); err != nil {
			return nil, err
		}
	}

	cfg, err := configs.Load()
	if err != nil {
		return nil, err
	}
	if args.DataDir != nil {
		cfg.DataDir = *args.DataDir
	}
	if args.Backend != nil {
		cfg.Backend = strings.ToLower(*args.Backend)
	}

	dir, err := datadir.New(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	// The browser owns the terminal, so its logs go to a file.
	logOpts := logging.Options{Level: cfg.LogLevel, Verbose: args.Verbose}
	if args.UI != nil || !args.HasCommand() {
		if logOpts.Path, err = dir.Path(LogFile); err != nil {
			return nil, err
		}
	}
	logger, err := logging.New(logOpts)
	if err != nil {
		return nil, err
	}

	kv, err := OpenStore(cfg.Backend, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Backend, err)
	}
	logger.Debug("opened store", zap.String("backend", cfg.Backend), zap.String("dir", dir.Root()))

	return New(Env{
		Config:  cfg,
		Configs: configs,
		KV:      kv,
		Board:   SystemClipboard(),
		Logger:  logger,
		IDs:     clip.UUIDSource{},
	}), nil
}

// Repository exposes the clip repository.
func (c *CLI) Repository() *history.Repository {
	return c.repo
}

// Close flushes logs and closes the store.
func (c *CLI) Close() error {
	_ = c.logger.Sync()
	return c.kv.Close()
}

// Execute runs the CLI command based on parsed arguments
func (c *CLI) Execute(ctx context.Context, args *Args) error {
	if err := args.Validate(); err != nil {
		return err
	}

	switch {
	case args.Add != nil:
		return c.executeAdd(args.Add)
	case args.List != nil:
		return c.executeList(args.List)
	case args.Show != nil:
		return c.executeShow(args.Show)
	case args.Edit != nil:
		return c.executeEdit(args.Edit)
	case args.Pin != nil:
		return c.executePin(args.Pin)
	case args.Delete != nil:
		return c.executeDelete(args.Delete)
	case args.Clear != nil:
		return c.executeClear(args.Clear)
	case args.Tags != nil:
		return c.executeTags()
	case args.Capture != nil:
		return c.executeCapture()
	case args.Sweep != nil:
		return c.executeSweep()
	case args.Watch != nil:
		return c.executeWatch(ctx)
	case args.Copy != nil:
		return c.executeCopy(args.Copy)
	case args.Share != nil:
		return c.executeShare(args.Share)
	case args.QR != nil:
		return c.executeQR(args.QR)
	case args.Theme != nil:
		return c.executeTheme(args.Theme)
	case args.Settings != nil:
		return c.executeConfig(args.Settings)
	default:
		return c.executeUI(ctx)
	}
}

// executeAdd handles 'clipstash add'
func (c *CLI) executeAdd(cmd *AddCmd) error {
	var content string
	switch {
	case cmd.Content != nil:
		content = *cmd.Content
	case cmd.Clipboard:
		text, err := clipboard.ReadText(c.board)
		if err != nil {
			return fmt.Errorf("failed to read clipboard: %w", err)
		}
		content = text
	default:
		data, err := io.ReadAll(c.in)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		content = string(data)
	}

	stored, outcome := c.repo.Create(content, clip.ParseTags(cmd.Tags), cmd.Pin)
	switch outcome {
	case history.Skipped:
		return fmt.Errorf("nothing to store: content is blank")
	case history.Refreshed:
		fmt.Fprintf(c.out, "Refreshed %s: %s\n", stored.ID, clip.Preview(stored.Content, clip.DefaultPreviewLength))
	default:
		fmt.Fprintf(c.out, "Stored %s: %s\n", stored.ID, clip.Preview(stored.Content, clip.DefaultPreviewLength))
	}
	return c.persisted()
}

// executeList handles 'clipstash list'
func (c *CLI) executeList(cmd *ListCmd) error {
	mode, err := query.ParseSortMode(cmd.Sort)
	if err != nil {
		return err
	}

	clips := query.Run(c.repo.Snapshot(), query.Options{
		Search: cmd.Search,
		Tags:   clip.NormalizeTags(cmd.Tag),
		Sort:   mode,
	})
	if cmd.Limit > 0 && len(clips) > cmd.Limit {
		clips = clips[:cmd.Limit]
	}

	if cmd.JSON {
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(clips)
	}

	if len(clips) == 0 {
		fmt.Fprintln(c.out, "No clips found.")
		return nil
	}

	rows := make([][]string, 0, len(clips))
	for _, cl := range clips {
		pin := ""
		if cl.IsPinned {
			pin = "*"
		}
		rows = append(rows, []string{
			cl.ID,
			pin,
			cl.Time().Local().Format("2006-01-02 15:04"),
			clip.JoinTags(cl.Tags),
			clip.Preview(cl.Content, 50),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "PIN", "SAVED", "TAGS", "PREVIEW").
		Rows(rows...)
	fmt.Fprintln(c.out, t.String())
	return nil
}

// executeShow handles 'clipstash show'
func (c *CLI) executeShow(cmd *ShowCmd) error {
	cl, err := c.lookup(cmd.ID)
	if err != nil {
		return err
	}
	_, err = io.WriteString(c.out, cl.Content)
	if err == nil && !strings.HasSuffix(cl.Content, "\n") {
		_, err = io.WriteString(c.out, "\n")
	}
	return err
}

// executeEdit handles 'clipstash edit'
func (c *CLI) executeEdit(cmd *EditCmd) error {
	patch := history.Patch{Content: cmd.Content, Pinned: cmd.Pinned}
	if cmd.Tags != nil {
		patch.Tags = clip.ParseTags(*cmd.Tags)
	}

	updated, ok := c.repo.Update(cmd.ID, patch)
	if !ok {
		return fmt.Errorf("clip %s not found", cmd.ID)
	}
	if cmd.Content != nil && updated.Content != *cmd.Content {
		fmt.Fprintln(c.out, "Content unchanged: it is blank or matches another clip.")
	}

	fmt.Fprintf(c.out, "Updated %s: %s\n", updated.ID, clip.Preview(updated.Content, clip.DefaultPreviewLength))
	return c.persisted()
}

// executePin handles 'clipstash pin'
func (c *CLI) executePin(cmd *PinCmd) error {
	n := c.repo.TogglePins(cmd.IDs...)
	if n == 0 {
		return fmt.Errorf("no matching clips")
	}
	fmt.Fprintf(c.out, "Toggled pin on %d clip(s)\n", n)
	return c.persisted()
}

// executeDelete handles 'clipstash delete'
func (c *CLI) executeDelete(cmd *DeleteCmd) error {
	n := c.repo.DeleteMany(cmd.IDs...)
	if n == 0 {
		return fmt.Errorf("no matching clips")
	}
	fmt.Fprintf(c.out, "Deleted %d clip(s)\n", n)
	return c.persisted()
}

// executeClear handles 'clipstash clear'
func (c *CLI) executeClear(cmd *ClearCmd) error {
	count := c.repo.Len()
	if count == 0 {
		fmt.Fprintln(c.out, "History is already empty.")
		return nil
	}

	// Prompt for confirmation unless --force is used
	if !cmd.Force {
		fmt.Fprintf(c.out, "This will delete %d clip(s), pinned ones included. Continue? [y/N]: ", count)
		response, _ := bufio.NewReader(c.in).ReadString('\n')
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(c.out, "Cancelled.")
			return nil
		}
	}

	n := c.repo.ClearAll()
	fmt.Fprintf(c.out, "Cleared %d clip(s) from history.\n", n)
	return c.persisted()
}

// executeTags handles 'clipstash tags'
func (c *CLI) executeTags() error {
	counts := make(map[string]int)
	for _, cl := range c.repo.Snapshot() {
		for _, tag := range cl.Tags {
			counts[tag]++
		}
	}

	tags := c.repo.Tags()
	if len(tags) == 0 {
		fmt.Fprintln(c.out, "No tags.")
		return nil
	}
	for _, tag := range tags {
		fmt.Fprintf(c.out, "%s (%d)\n", tag, counts[tag])
	}
	return nil
}

func (c *CLI) poller() *capture.Poller {
	return capture.New(c.repo, c.board,
		capture.WithTag(c.cfg.AutoCaptureTag),
		capture.WithInterval(c.cfg.CaptureInterval),
		capture.WithLogger(c.logger))
}

func (c *CLI) sweeper() *retention.Sweeper {
	return retention.New(c.repo,
		retention.WithMaxAge(c.cfg.Retention),
		retention.WithInterval(c.cfg.SweepInterval),
		retention.WithClock(c.clock),
		retention.WithLogger(c.logger))
}

// executeCapture handles 'clipstash capture'
func (c *CLI) executeCapture() error {
	captured, ok := c.poller().Poll()
	if !ok {
		fmt.Fprintln(c.out, "Nothing new on the clipboard.")
		return nil
	}
	fmt.Fprintf(c.out, "Captured %s: %s\n", captured.ID, clip.Preview(captured.Content, clip.DefaultPreviewLength))
	return c.persisted()
}

// executeSweep handles 'clipstash sweep'
func (c *CLI) executeSweep() error {
	n := c.sweeper().Sweep()
	fmt.Fprintf(c.out, "Removed %d expired clip(s)\n", n)
	return c.persisted()
}

// startBackground runs the sweeper and poller until the returned stop is called
func (c *CLI) startBackground(ctx context.Context) (stop func()) {
	sweeper := c.sweeper()
	// Catch up on anything that expired while nothing was running
	sweeper.Sweep()

	sweepTask := sweeper.Start(ctx)
	pollTask := c.poller().Start(ctx)
	return func() {
		pollTask.Stop()
		sweepTask.Stop()
	}
}

// executeWatch handles 'clipstash watch'
func (c *CLI) executeWatch(ctx context.Context) error {
	cancel := c.repo.Subscribe(func(clips []clip.Clip) {
		c.logger.Debug("history changed", zap.Int("clips", len(clips)))
	})
	defer cancel()

	stop := c.startBackground(ctx)
	defer stop()

	fmt.Fprintf(c.out, "Watching clipboard every %s (Ctrl+C to stop)\n", c.cfg.CaptureInterval)
	<-ctx.Done()
	fmt.Fprintln(c.out, "Stopped.")
	return nil
}

// executeCopy handles 'clipstash copy'
func (c *CLI) executeCopy(cmd *CopyCmd) error {
	cl, err := c.lookup(cmd.ID)
	if err != nil {
		return err
	}
	if err := clipboard.WriteText(c.board, cl.Content); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Copied to clipboard: %s\n", clip.Preview(cl.Content, clip.DefaultPreviewLength))
	return nil
}

// executeShare handles 'clipstash share'
func (c *CLI) executeShare(cmd *ShareCmd) error {
	cl, err := c.lookup(cmd.ID)
	if err != nil {
		return err
	}
	link, err := c.shareLink(cl, cmd.BaseURL)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, link)
	return nil
}

// shareLink builds the share URL from the override or the configured base
func (c *CLI) shareLink(cl clip.Clip, override *string) (string, error) {
	base := c.cfg.ShareBaseURL
	if override != nil {
		base = *override
	}
	if base == "" {
		return "", fmt.Errorf("share-base-url is not configured (set it with 'clipstash config set share-base-url <url>')")
	}
	return clip.ShareURL(base, cl.Content)
}

// executeQR handles 'clipstash qr'
func (c *CLI) executeQR(cmd *QRCmd) error {
	cl, err := c.lookup(cmd.ID)
	if err != nil {
		return err
	}

	payload := cl.Content
	if cmd.Link {
		if payload, err = c.shareLink(cl, cmd.BaseURL); err != nil {
			return err
		}
	}

	if cmd.PNG != nil {
		data, err := clip.QRPNG(payload, cmd.Size)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*cmd.PNG, data, 0o644); err != nil {
			return fmt.Errorf("failed to write QR image: %w", err)
		}
		fmt.Fprintf(c.out, "Wrote QR code for %s to %s\n", cl.ID, *cmd.PNG)
		return nil
	}

	code, err := clip.QRText(payload, cmd.Invert)
	if err != nil {
		return err
	}
	fmt.Fprint(c.out, code)
	return nil
}

// executeTheme handles 'clipstash theme'
func (c *CLI) executeTheme(cmd *ThemeCmd) error {
	if cmd.Mode == nil {
		fmt.Fprintln(c.out, theme.Name(c.prefs.DarkMode()))
		return nil
	}

	var (
		dark bool
		err  error
	)
	switch strings.ToLower(*cmd.Mode) {
	case "toggle":
		dark, err = c.prefs.Toggle()
	default:
		dark = strings.EqualFold(*cmd.Mode, "dark")
		err = c.prefs.SetDarkMode(dark)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Theme set to %s\n", theme.Name(dark))
	return nil
}

// executeConfig handles 'clipstash config'
func (c *CLI) executeConfig(cmd *ConfigCmd) error {
	if c.configs == nil {
		return errors.New("no config file in use")
	}

	switch {
	case cmd.Get != nil:
		value, err := c.configs.Get(cmd.Get.Key)
		if err != nil {
			return fmt.Errorf("failed to get config value: %w", err)
		}
		fmt.Fprintln(c.out, value)
	case cmd.Set != nil:
		if err := c.configs.Update(cmd.Set.Key, cmd.Set.Value); err != nil {
			return fmt.Errorf("failed to set config value: %w", err)
		}
		fmt.Fprintf(c.out, "Set %s = %s\n", cmd.Set.Key, cmd.Set.Value)
	case cmd.List != nil:
		values, err := c.configs.List()
		if err != nil {
			return fmt.Errorf("failed to list config values: %w", err)
		}
		fmt.Fprintf(c.out, "Configuration (%s):\n", c.configs.GetConfigPath())
		for _, key := range config.Keys() {
			fmt.Fprintf(c.out, "  %s = %s\n", key, values[key])
		}
	}
	return nil
}

// executeUI opens the browser with the background tasks running
func (c *CLI) executeUI(ctx context.Context) error {
	stop := c.startBackground(ctx)
	defer stop()

	return c.runUI(ctx, tui.Deps{Repo: c.repo, Board: c.board, Theme: c.prefs})
}

// lookup finds a clip by id
func (c *CLI) lookup(id string) (clip.Clip, error) {
	cl, ok := c.repo.Get(id)
	if !ok {
		return clip.Clip{}, fmt.Errorf("clip %s not found", id)
	}
	return cl, nil
}

// persisted surfaces a failed write as a warning on the output
func (c *CLI) persisted() error {
	if err := c.repo.Err(); err != nil {
		fmt.Fprintf(c.out, "Warning: changes were not saved: %v\n", err)
	}
	return nil
}
