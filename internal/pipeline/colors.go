package pipeline

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/backmassage/binframe/internal/config"
	"github.com/backmassage/binframe/internal/dominant"
	"github.com/backmassage/binframe/internal/frame"
	"github.com/backmassage/binframe/internal/logging"
	"github.com/backmassage/binframe/internal/pixel"
)

// runColors extracts the dominant color of every ordered file, drops
// near-duplicate frames when dedup is on, and writes the kept colors to CSV
// in processing order.
func runColors(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	op ColorsOp,
	files []string,
	obs Observer,
	stats *RunStats,
) error {
	var filter *dominant.DedupFilter
	if op.Dedup {
		filter = dominant.NewDedupFilter(op.Tolerance)
	}

	results := make([]pixel.RGB, 0, len(files))
	for i, path := range files {
		stats.Current = i + 1

		if ctx.Err() != nil {
			log.Warn("Interrupted after %d of %d files", i, stats.Total)
			break
		}

		base := filepath.Base(path)
		h, err := frame.DecodeHistogram(path, cfg.Geometry(), cfg.Depth())
		if err != nil {
			log.Error("[%d/%d] %s: %v", stats.Current, stats.Total, base, err)
			stats.Failed++
			obs(stats.Current, stats.Total, fmt.Sprintf("%s: decode failed", base))
			continue
		}

		color, err := dominant.Extract(h, cfg.Depth())
		if err != nil {
			log.Error("[%d/%d] %s: %v", stats.Current, stats.Total, base, err)
			stats.Failed++
			obs(stats.Current, stats.Total, fmt.Sprintf("%s: extract failed", base))
			continue
		}

		if filter != nil && !filter.ShouldKeep(color) {
			stats.Skipped++
			msg := "skip (duplicate)"
			if op.Tolerance > 0 {
				msg = fmt.Sprintf("skip (similar, tolerance=%d)", op.Tolerance)
			}
			log.Debug("[%d/%d] %s: %s", stats.Current, stats.Total, base, msg)
			obs(stats.Current, stats.Total, fmt.Sprintf("%s: %s", base, msg))
			continue
		}

		results = append(results, color)
		stats.Kept++
		log.Info("[%d/%d] %s -> R=%d, G=%d, B=%d",
			stats.Current, stats.Total, base, color.R, color.G, color.B)
		obs(stats.Current, stats.Total,
			fmt.Sprintf("%s: R=%d, G=%d, B=%d", base, color.R, color.G, color.B))
	}

	if err := writeCSV(op.CSVPath, results); err != nil {
		return err
	}

	log.Success("Extracted %d colors, skipped %d duplicates, %d failed",
		stats.Kept, stats.Skipped, stats.Failed)
	log.Info("Saved to %s", op.CSVPath)
	return nil
}

// writeCSV writes the kept colors, one row per frame in processing order,
// under an R,G,B header.
func writeCSV(path string, colors []pixel.RGB) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create CSV: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"R", "G", "B"}); err != nil {
		f.Close()
		return err
	}
	for _, c := range colors {
		row := []string{
			strconv.Itoa(int(c.R)),
			strconv.Itoa(int(c.G)),
			strconv.Itoa(int(c.B)),
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
