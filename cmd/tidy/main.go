package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/idilsaglam/tidy/internal/cli"
)

func main() {
	// Root flags (apply to every subcommand)
	dir := flag.String("dir", ".", "directory holding the state file")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	os.Exit(cli.Run(args, cli.Options{Dir: *dir}))
}
