// Package main implements diceware, a command-line Diceware passphrase
// generator.
//
// Passphrases are assembled by drawing words uniformly from a 7776-entry
// Diceware word list using the operating system randomness facility, with
// optional special-character substitutions to satisfy password composition
// rules. Word lists are downloaded per language on first use and cached
// locally.
//
// Usage:
//
//	diceware -n 6 -s 2
//	diceware -g -l fi
//	diceware -f my-wordlist.txt -p "-"
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/mkarhu/diceware/internal/cache"
	"github.com/mkarhu/diceware/internal/config"
	"github.com/mkarhu/diceware/internal/entropy"
	"github.com/mkarhu/diceware/internal/logging"
	"github.com/mkarhu/diceware/internal/passphrase"
	"github.com/mkarhu/diceware/internal/ui"
	"github.com/mkarhu/diceware/internal/wordlist"
)

var version = "dev"

// printUsage prints the command-line usage information.
func printUsage() {
	prog := os.Args[0]
	fmt.Fprintln(os.Stderr, "Usage:", prog, "[-g] [-n N] [-s M] [-l LANG | -f FILE] [-p SEP]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "-g          Generate an NxN grid of words instead of a single line;")
	fmt.Fprintln(os.Stderr, "            this makes shoulder-surfing harder")
	fmt.Fprintln(os.Stderr, "-n N        Generate N words (default: 5)")
	fmt.Fprintln(os.Stderr, "-s M        Insert M special characters (default: 0)")
	fmt.Fprintln(os.Stderr, "-l LANG     Use the word list for LANG ("+strings.Join(wordlist.Languages(), ", ")+")")
	fmt.Fprintln(os.Stderr, "-f FILE     Read the word list from FILE, overriding -l")
	fmt.Fprintln(os.Stderr, "-p SEP      Separator between words (default: space)")
	fmt.Fprintln(os.Stderr, "-prefetch   Download and cache the word lists for all languages, then exit")
	fmt.Fprintln(os.Stderr, "-no-color   Disable styled output")
	fmt.Fprintln(os.Stderr, "-v          Verbose logging")
	fmt.Fprintln(os.Stderr, "-version    Print version and exit")
}

func main() {
	settings, paths, err := config.Resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var (
		grid        bool
		prefetch    bool
		verbose     bool
		noColor     bool
		showVersion bool
	)
	flag.BoolVar(&grid, "g", false, "Generate an NxN grid of words")
	flag.BoolVar(&grid, "grid", false, "Generate an NxN grid of words")
	flag.IntVar(&settings.Words, "n", settings.Words, "Generate N words")
	flag.IntVar(&settings.Words, "words", settings.Words, "Generate N words")
	flag.IntVar(&settings.Special, "s", settings.Special, "Insert M special characters")
	flag.IntVar(&settings.Special, "special", settings.Special, "Insert M special characters")
	flag.StringVar(&settings.Lang, "l", settings.Lang, "Language of the word list")
	flag.StringVar(&settings.Lang, "lang", settings.Lang, "Language of the word list")
	flag.StringVar(&settings.File, "f", settings.File, "Read the word list from FILE")
	flag.StringVar(&settings.File, "file", settings.File, "Read the word list from FILE")
	flag.StringVar(&settings.Separator, "p", settings.Separator, "Separator between words")
	flag.StringVar(&settings.Separator, "separator", settings.Separator, "Separator between words")
	flag.BoolVar(&prefetch, "prefetch", false, "Download and cache all word lists, then exit")
	flag.BoolVar(&noColor, "no-color", false, "Disable styled output")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Usage = printUsage
	flag.Parse()

	if showVersion {
		fmt.Println(version)
		return
	}

	// Positional arguments are never valid.
	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "error: unexpected argument %q\n\n", flag.Arg(0))
		printUsage()
		os.Exit(2)
	}

	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n\n", err)
		printUsage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(logging.NewHandler(os.Stderr, level))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if prefetch {
		manager, closeStore, err := openManager(paths, logger)
		if err != nil {
			fatal(logger, err)
		}
		defer closeStore()
		if err := manager.Prefetch(ctx); err != nil {
			fatal(logger, err)
		}
		return
	}

	list, err := loadList(ctx, settings, paths, logger)
	if err != nil {
		fatal(logger, err)
	}

	// One entropy source per invocation; grid rows reuse it sequentially.
	gen := passphrase.NewGenerator(list, entropy.NewSystem())

	color := !noColor && term.IsTerminal(int(os.Stdout.Fd()))
	printer := ui.NewPrinter(os.Stdout, settings.Separator, color)

	if grid {
		g, err := gen.GenerateGrid(settings.Words, settings.Special)
		if err != nil {
			fatal(logger, err)
		}
		printer.Grid(g, settings.Special)
		return
	}

	p, err := gen.Generate(settings.Words, settings.Special)
	if err != nil {
		fatal(logger, err)
	}
	printer.Passphrase(p, settings.Special)
}

// loadList resolves the word list: a local file when -f is set, the cached
// (or freshly downloaded) list for the selected language otherwise.
func loadList(ctx context.Context, settings config.Settings, paths config.Paths, logger *slog.Logger) (wordlist.List, error) {
	if settings.File != "" {
		f, err := os.Open(settings.File)
		if err != nil {
			return nil, fmt.Errorf("unable to open word list file %q: %w", settings.File, err)
		}
		defer f.Close()

		list, err := wordlist.Parse(f)
		if err != nil {
			return nil, fmt.Errorf("word list file %q: %w", settings.File, err)
		}
		return list, nil
	}

	manager, closeStore, err := openManager(paths, logger)
	if err != nil {
		return nil, err
	}
	defer closeStore()
	return manager.Get(ctx, settings.Lang)
}

// openManager opens the wordlist cache and wires the download manager.
func openManager(paths config.Paths, logger *slog.Logger) (*cache.Manager, func(), error) {
	store, err := cache.OpenStore(paths.CacheDB, logger)
	if err != nil {
		return nil, nil, err
	}
	manager := cache.NewManager(store, cache.NewFetcher(logger), logger)
	return manager, func() { store.Close() }, nil
}

// fatal logs the error and terminates without emitting any partial output.
func fatal(logger *slog.Logger, err error) {
	logger.Error(err.Error())
	os.Exit(1)
}
