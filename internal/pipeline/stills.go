package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/backmassage/binframe/internal/config"
	"github.com/backmassage/binframe/internal/frame"
	"github.com/backmassage/binframe/internal/imaging"
	"github.com/backmassage/binframe/internal/logging"
)

// runStills decodes every ordered file at full resolution and hands each
// buffer to the TIFF collaborator, one .tif per source file.
func runStills(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	op StillsOp,
	files []string,
	obs Observer,
	stats *RunStats,
) error {
	for i, path := range files {
		stats.Current = i + 1

		if ctx.Err() != nil {
			log.Warn("Interrupted after %d of %d files", i, stats.Total)
			break
		}

		base := filepath.Base(path)
		img, err := frame.DecodeImage(path, cfg.Geometry(), cfg.Depth())
		if err != nil {
			log.Error("[%d/%d] %s: %v", stats.Current, stats.Total, base, err)
			stats.Failed++
			obs(stats.Current, stats.Total, fmt.Sprintf("%s: decode failed", base))
			continue
		}

		outPath := filepath.Join(op.OutputDir, tiffName(base))
		if err := imaging.WriteTIFF(outPath, img); err != nil {
			log.Error("[%d/%d] %s: %v", stats.Current, stats.Total, base, err)
			stats.Failed++
			obs(stats.Current, stats.Total, fmt.Sprintf("%s: export failed", base))
			continue
		}

		stats.Exported++
		log.Info("[%d/%d] %s -> %s", stats.Current, stats.Total, base, filepath.Base(outPath))
		obs(stats.Current, stats.Total, fmt.Sprintf("%s -> %s", base, filepath.Base(outPath)))
	}

	log.Success("Exported %d stills, %d failed", stats.Exported, stats.Failed)
	return nil
}

// tiffName swaps a capture file's extension for .tif.
func tiffName(base string) string {
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".tif"
}
