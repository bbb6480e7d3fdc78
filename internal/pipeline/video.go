package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/backmassage/binframe/internal/config"
	"github.com/backmassage/binframe/internal/display"
	"github.com/backmassage/binframe/internal/ffmpeg"
	"github.com/backmassage/binframe/internal/frame"
	"github.com/backmassage/binframe/internal/logging"
)

// runVideo streams every ordered frame into one encoder session. Unlike the
// colors and stills operations there is no per-file recovery: a decode or
// write failure mid-stream would leave a gap in the output, so the session
// is cancelled and the error aborts the run. Context cancellation is not an
// error; the session is killed and the partial count reported.
func runVideo(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	op VideoOp,
	files []string,
	obs Observer,
	stats *RunStats,
) error {
	if len(files) == 0 {
		return fmt.Errorf("no capture files in %s", cfg.InputDir)
	}

	session, err := ffmpeg.Start(cfg)
	if err != nil {
		return err
	}
	defer session.Cancel()

	log.Info("Encoder session %s: %s at %d fps, %s profile",
		session.ID, cfg.Depth(), cfg.FrameRate, cfg.ColorProfile)

	for i, path := range files {
		stats.Current = i + 1
		base := filepath.Base(path)

		if ctx.Err() != nil {
			session.Cancel()
			stats.Streamed = session.Frames()
			log.Warn("Cancelled after %d of %d frames", stats.Streamed, stats.Total)
			return nil
		}

		data, err := frame.DecodeStream(path, cfg.Geometry(), cfg.Depth())
		if err != nil {
			session.Cancel()
			return fmt.Errorf("%s: %w", base, err)
		}

		if err := session.WriteFrame(data); err != nil {
			stats.Streamed = session.Frames()
			return err
		}

		stats.Streamed = session.Frames()
		log.Debug("[%d/%d] %s streamed", stats.Current, stats.Total, base)
		obs(stats.Current, stats.Total, fmt.Sprintf("%s streamed", base))
	}

	if err := session.Finish(); err != nil {
		return err
	}

	log.Success("Encoded %d frames", stats.Streamed)
	if info, err := os.Stat(op.OutputPath); err == nil {
		log.Info("Saved to %s (%s)", op.OutputPath, display.FormatBytes(info.Size()))
	} else {
		log.Info("Saved to %s", op.OutputPath)
	}
	return nil
}
