package pipeline

import (
	"context"
	"fmt"

	"github.com/backmassage/binframe/internal/config"
	"github.com/backmassage/binframe/internal/logging"
)

// Run is the top-level batch entry point. It discovers and orders the
// capture files, then executes the configured operation over them.
// Per-file errors in the colors and stills operations are logged and counted
// but do not abort the batch; any video-session error aborts the run, since
// a partially streamed video is not a usable output.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, obs Observer) (RunStats, error) {
	var stats RunStats

	op, err := BuildOp(cfg)
	if err != nil {
		return stats, err
	}

	files, err := Discover(cfg.InputDir)
	if err != nil {
		return stats, fmt.Errorf("discover capture files: %w", err)
	}
	stats.Total = len(files)

	log.Info("Found %d capture files in %s", stats.Total, cfg.InputDir)
	log.Info("Geometry: %s, depth: %s", cfg.Geometry(), cfg.Depth())

	switch op := op.(type) {
	case ColorsOp:
		err = runColors(ctx, cfg, log, op, files, notifier(obs), &stats)
	case StillsOp:
		err = runStills(ctx, cfg, log, op, files, notifier(obs), &stats)
	case VideoOp:
		err = runVideo(ctx, cfg, log, op, files, notifier(obs), &stats)
	}
	return stats, err
}
