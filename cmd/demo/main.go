package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/yiblet/clipstash/internal/capture"
	"github.com/yiblet/clipstash/internal/clip"
	"github.com/yiblet/clipstash/internal/clipboard/mockboard"
	"github.com/yiblet/clipstash/internal/clock"
	"github.com/yiblet/clipstash/internal/history"
	"github.com/yiblet/clipstash/internal/query"
	"github.com/yiblet/clipstash/internal/retention"
	"github.com/yiblet/clipstash/internal/store/memstore"
	"go.uber.org/zap"
)

func main() {
	fmt.Println("clipstash History Demo")

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// In-memory store and a clock we can move forward
	kv := memstore.NewMemoryStore()
	defer kv.Close()
	clk := clock.NewManual(time.Now())
	repo := history.Open(kv,
		history.WithClock(clk),
		history.WithIDSource(&clip.SequenceSource{Prefix: "clip-"}),
		history.WithLogger(logger))

	cancel := repo.Subscribe(func(clips []clip.Clip) {
		fmt.Printf("  (history now holds %d clip(s))\n", len(clips))
	})
	defer cancel()

	samples := []struct {
		content string
		tags    []string
	}{
		{"Hello, World! This is the first clip.", []string{"greeting"}},
		{"package main\n\nimport \"fmt\"\n\nfunc main() {\n    fmt.Println(\"Hello, Go!\")\n}", []string{"code", "go"}},
		{"SELECT * FROM users WHERE created_at > '2023-01-01' ORDER BY created_at DESC LIMIT 10;", []string{"code", "sql"}},
		{"Lorem ipsum dolor sit amet, consectetur adipiscing elit.", nil},
	}

	fmt.Println("\nAdding clips:")
	for _, s := range samples {
		c, outcome := repo.Create(s.content, s.tags, false)
		fmt.Printf("%s %s: %s\n", outcome, c.ID, clip.Preview(c.Content, 50))
		clk.Advance(time.Minute)
	}

	fmt.Println("\nAdding the first clip again refreshes it:")
	c, outcome := repo.Create(samples[0].content, nil, false)
	fmt.Printf("%s %s\n", outcome, c.ID)

	repo.TogglePin("clip-2")

	show := func(title string, opts query.Options) {
		fmt.Printf("\n%s:\n", title)
		for i, c := range query.Run(repo.Snapshot(), opts) {
			pin := " "
			if c.IsPinned {
				pin = "*"
			}
			fmt.Printf("%d. %s [%s] %-8s %s  (%s)\n", i, pin, c.Time().Format("15:04:05"), c.ID,
				clip.Preview(c.Content, 40), clip.JoinTags(c.Tags))
		}
	}
	show("Newest first", query.Options{})
	show("Pinned first", query.Options{Sort: query.SortPinned})
	show("Tagged code", query.Options{Tags: []string{"code"}})
	show("Search \"hello\"", query.Options{Search: "hello"})

	// Capture from a fake clipboard
	board := mockboard.New()
	poller := capture.New(repo, board, capture.WithLogger(logger))
	board.SetText("copied from another app")
	if c, ok := poller.Poll(); ok {
		fmt.Printf("\nCaptured %s tagged %s\n", c.ID, clip.JoinTags(c.Tags))
	}
	if _, ok := poller.Poll(); !ok {
		fmt.Println("Second poll skipped: content already stored")
	}

	// A day later only the pinned clip and recent ones survive
	clk.Advance(24*time.Hour + 2*time.Minute)
	sweeper := retention.New(repo, retention.WithClock(clk), retention.WithLogger(logger))
	fmt.Printf("\nA day later the sweeper removed %d clip(s)\n", sweeper.Sweep())
	show("Remaining", query.Options{})

	// Run the poller on its real schedule briefly
	ctx, stop := context.WithTimeout(context.Background(), 2500*time.Millisecond)
	defer stop()
	task := poller.Start(ctx)
	board.SetText("captured by the background poller")
	<-ctx.Done()
	task.Stop()
	fmt.Printf("\nAfter %s of polling: %d clip(s)\n", poller.Interval(), repo.Len())
}
