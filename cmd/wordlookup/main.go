// Command wordlookup is the terminal dictionary widget.
//
// Without -word it opens the interactive UI. With -word it looks up one
// word, prints the result and exits.
//
// Exit codes: 0 = success, 1 = error or word not found, 2 = bad flags.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/wordlookup/internal/app"
	"github.com/heartmarshall/wordlookup/internal/config"
	"github.com/heartmarshall/wordlookup/internal/transport/tui"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to YAML config (default: $CONFIG_PATH or ./config.yaml)")
	word := flag.String("word", "", "look up a single word and exit")
	theme := flag.String("theme", "", "theme override: auto, dark or light")
	font := flag.String("font", "", "font override: sans, serif or mono")
	width := flag.Int("width", 80, "wrap width for -word output")
	debugLog := flag.String("debug-log", "", "append logs to this file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(app.BuildVersion())
		return 0
	}

	// A missing .env is normal.
	_ = godotenv.Load()

	path := *configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "wordlookup:", err)
		return 1
	}
	if *theme != "" {
		cfg.UI.Theme = *theme
	}
	if *font != "" {
		cfg.UI.Font = *font
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "wordlookup:", err)
		return 2
	}

	logger, closeLog, err := openLogger(*debugLog, cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "wordlookup:", err)
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, _ := app.NewLookupService(cfg, logger)
	prefs := tui.DetectPreferences(cfg.UI.Theme, cfg.UI.DefaultFont())

	if *word != "" {
		err := tui.Once(ctx, os.Stdout, svc, *word, prefs, *width)
		switch {
		case err == nil:
			return 0
		case errors.Is(err, tui.ErrLookupFailed):
			logger.Debug("word not found", slog.String("word", *word))
			return 1
		default:
			fmt.Fprintln(os.Stderr, "wordlookup:", err)
			return 1
		}
	}

	if err := tui.Run(ctx, logger, svc, prefs); err != nil {
		fmt.Fprintln(os.Stderr, "wordlookup:", err)
		return 1
	}
	return 0
}

// openLogger logs to path when given and discards otherwise; the screen
// belongs to the UI.
func openLogger(path string, cfg config.LogConfig) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	if cfg.Format == "" {
		cfg.Format = "text"
	}
	return app.NewLoggerTo(f, cfg), func() { f.Close() }, nil
}
