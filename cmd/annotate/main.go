// Package main is the entry point for the annotate replay tool.
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

	"github.com/dshills/annotate/internal/config"
	"github.com/dshills/annotate/internal/engine"
	"github.com/dshills/annotate/internal/logging"
	"github.com/dshills/annotate/internal/replay"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	logLevel   string
	logFormat  string
	output     string
	script     string
	watch      bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.LoadAll(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.Logging.Format = opts.logFormat
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	log := logging.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	script, err := replay.Load(opts.script)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner, err := replay.NewRunner(log, engine.WithConfig(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.watch {
		watchConfig(ctx, log, runner.Engine(), opts.configPath)
	}
	report, runErr := runner.Run(ctx, script)
	if runErr != nil {
		log.Error("replay stopped", "script", opts.script, "error", runErr)
	}

	var out io.Writer = os.Stdout
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer f.Close()
		out = f
	}
	if report != nil {
		if err := report.Write(out); err != nil {
			fmt.Fprintf(os.Stderr, "Error: writing report: %v\n", err)
			return 1
		}
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		return 1
	}
	return 0
}

// watchConfig applies edits to the config file while the replay runs.
func watchConfig(ctx context.Context, log *slog.Logger, e *engine.Engine, path string) {
	if path == "" {
		log.Warn("watch requires a config file")
		return
	}
	w, err := e.WatchConfig(path)
	if err != nil {
		log.Warn("config watch disabled", "path", path, "error", err)
		return
	}
	go func() {
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Warn("config watch stopped", "path", path, "error", err)
		}
	}()
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file (TOML or YAML)")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFormat, "log-format", "", "Log format (text, json)")
	flag.StringVar(&opts.output, "output", "", "Write the report to a file instead of stdout")
	flag.StringVar(&opts.output, "o", "", "Write the report to a file (shorthand)")
	flag.BoolVar(&opts.watch, "watch", false, "Reload the configuration file when it changes")
	flag.BoolVar(&opts.watch, "w", false, "Reload the configuration file when it changes (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "annotate - replay annotation editing sessions\n\n")
		fmt.Fprintf(os.Stderr, "Usage: annotate [options] script.yaml\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		fmt.Fprintf(os.Stderr, "  ANNOTATE_LOG_LEVEL, ANNOTATE_LOG_FORMAT, ANNOTATE_HISTORY_MAX_ENTRIES,\n")
		fmt.Fprintf(os.Stderr, "  ANNOTATE_HISTORY_MERGE_ENABLED, ANNOTATE_HISTORY_MERGE_WINDOW\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  annotate drag.yaml                  Replay and print the result\n")
		fmt.Fprintf(os.Stderr, "  annotate -c annotate.toml s.toml    Replay with settings\n")
		fmt.Fprintf(os.Stderr, "  annotate -log-level debug s.yaml    Log every command\n")
		fmt.Fprintf(os.Stderr, "  annotate -c annotate.toml -w s.yaml Apply config edits during the replay\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("annotate %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	opts.script = flag.Arg(0)

	return opts
}
