package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexflint/go-arg"
	"github.com/yiblet/clipstash/internal/cli"
)

func main() {
	// Parse command-line arguments
	var args cli.Args
	parser := arg.MustParse(&args)

	// No subcommand opens the browser
	if !args.HasCommand() {
		args.UI = &cli.UICmd{}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cliHandler, err := cli.NewWithArgs(&args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	err = cliHandler.Execute(ctx, &args)
	if cerr := cliHandler.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		// Argument validation errors get the usage line
		if args.Validate() != nil {
			fmt.Fprintln(os.Stderr)
			parser.WriteUsage(os.Stderr)
		}
		stop()
		os.Exit(1)
	}
}
