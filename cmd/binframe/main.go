// Command binframe is the entrypoint for the BinFrame capture-file CLI.
// It parses flags, validates config and paths, and either runs the system
// check (--check) or one batch operation: colors, stills, or video.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/backmassage/binframe/internal/check"
	"github.com/backmassage/binframe/internal/config"
	"github.com/backmassage/binframe/internal/display"
	"github.com/backmassage/binframe/internal/logging"
	"github.com/backmassage/binframe/internal/pipeline"
)

// version and commit are set at build time via -ldflags (e.g. Makefile).
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// 1. Load config from env defaults and CLI flags; exit on parse or
	// validation error.
	cfg, err := config.DefaultConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "binframe: %v\n", err)
		return 1
	}
	if err := config.ParseFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "binframe: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "binframe: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "binframe: %v\n", err)
		return 1
	}
	defer log.Close()

	display.PrintBanner()

	// 2. If user asked for a system check, run it and exit successfully.
	if cfg.CheckOnly {
		check.RunCheck(&cfg, log)
		return 0
	}

	// 3. Validate paths: input must exist, output location is created if
	// needed.
	info, err := os.Stat(cfg.InputDir)
	if err != nil || !info.IsDir() {
		log.Error("Input directory not found: %s", cfg.InputDir)
		return 1
	}
	if err := ensureOutput(&cfg); err != nil {
		log.Error("%v", err)
		return 1
	}

	log.Info("=== BinFrame v%s (%s) ===", version, commit)
	log.Info("Op:  %s", cfg.Op)
	log.Info("In:  %s", cfg.InputDir)
	log.Info("Out: %s", cfg.Output)
	log.Info("")

	// 4. The video operation needs a working encoder; fail fast otherwise.
	if cfg.Op == config.OpVideo {
		if err := check.CheckDeps(&cfg); err != nil {
			log.Error("%v", err)
			return 1
		}
	}

	// 5. Run the batch. SIGINT/SIGTERM cancel the context; the pipeline
	// finishes the current file (or kills the encoder) and reports partial
	// counts instead of dying mid-write.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := pipeline.Run(ctx, &cfg, log, nil); err != nil {
		log.Error("%v", err)
		return 1
	}
	return 0
}

// ensureOutput creates the directory the output lands in: the output
// directory itself for stills, the parent directory for the colors CSV and
// the video file.
func ensureOutput(cfg *config.Config) error {
	dir := cfg.Output
	if cfg.Op != config.OpStills {
		dir = filepath.Dir(cfg.Output)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create output directory %s: %w", dir, err)
	}
	return nil
}
