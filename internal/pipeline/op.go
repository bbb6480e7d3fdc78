package pipeline

import (
	"fmt"

	"github.com/backmassage/binframe/internal/config"
)

// Op is the closed set of batch operations. Each variant carries its own
// typed parameters; Run dispatches on the variant exactly once per batch.
type Op interface {
	isOp()
}

// ColorsOp extracts per-file dominant colors into a CSV.
type ColorsOp struct {
	CSVPath   string
	Dedup     bool
	Tolerance int
}

// StillsOp exports every frame as a full-resolution TIFF.
type StillsOp struct {
	OutputDir string
}

// VideoOp encodes the ordered frame sequence into one video file.
// Frame rate and color profile travel in the Config, which the encoder
// profile builder reads directly.
type VideoOp struct {
	OutputPath string
}

func (ColorsOp) isOp() {}
func (StillsOp) isOp() {}
func (VideoOp) isOp()  {}

// BuildOp maps the validated configuration onto an operation variant.
func BuildOp(cfg *config.Config) (Op, error) {
	switch cfg.Op {
	case config.OpColors:
		return ColorsOp{CSVPath: cfg.Output, Dedup: cfg.Dedup, Tolerance: cfg.DedupTolerance}, nil
	case config.OpStills:
		return StillsOp{OutputDir: cfg.Output}, nil
	case config.OpVideo:
		return VideoOp{OutputPath: cfg.Output}, nil
	}
	return nil, fmt.Errorf("unknown operation %q", cfg.Op)
}
