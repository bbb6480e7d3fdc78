// Package config holds runtime configuration: environment defaults, CLI flag
// parsing, and validation. Every batch run receives its configuration as an
// explicit value; there is no process-wide mutable state.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/backmassage/binframe/internal/frame"
	"github.com/backmassage/binframe/internal/pixel"
)

// --- Enum types for validated string fields ---

// Operation selects which derived output a run produces.
type Operation string

const (
	OpColors Operation = "colors" // per-file dominant colors to CSV
	OpStills Operation = "stills" // full-resolution TIFF per file
	OpVideo  Operation = "video"  // encode the frame sequence via ffmpeg
)

// ColorProfile selects the color metadata tags for 10-bit video encodes.
type ColorProfile string

const (
	ColorSDR ColorProfile = "sdr" // Rec.709 standard-gamut tags (default)
	ColorHDR ColorProfile = "hdr" // Rec.2020 + PQ transfer tags
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings for one invocation. Defaults come from
// [DefaultConfig] (env-overridable via BINFRAME_* variables), then
// [ParseFlags] applies CLI overrides before the value is passed to the
// packages that need it.
type Config struct {
	// Positional args.
	InputDir string
	Output   string // CSV path (colors), directory (stills), or video file (video)

	Op Operation

	// Capture geometry and bit depth, constant for a whole run.
	Width    int `env:"BINFRAME_WIDTH"     envDefault:"1280"`
	Height   int `env:"BINFRAME_HEIGHT"    envDefault:"720"`
	BitDepth int `env:"BINFRAME_BIT_DEPTH" envDefault:"10"`

	// Dedup settings (colors operation).
	Dedup          bool // Default: true. Cleared by --no-dedup.
	DedupTolerance int  `env:"BINFRAME_DEDUP_TOLERANCE" envDefault:"0"`

	// Video operation.
	FrameRate    int          `env:"BINFRAME_FRAME_RATE"    envDefault:"30"`
	ColorProfile ColorProfile `env:"BINFRAME_COLOR_PROFILE" envDefault:"sdr"`
	FFmpegBinary string       `env:"BINFRAME_FFMPEG"        envDefault:"ffmpeg"`

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode `env:"BINFRAME_COLOR"    envDefault:"auto"`
	LogFile   string    `env:"BINFRAME_LOG_FILE"`
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config populated from the BINFRAME_* environment
// variables, falling back to the documented defaults.
func DefaultConfig() (Config, error) {
	cfg := Config{Dedup: true}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("environment config: %w", err)
	}
	return cfg, nil
}

// Geometry returns the configured frame geometry.
func (c *Config) Geometry() frame.Geometry {
	return frame.Geometry{Width: c.Width, Height: c.Height}
}

// Depth returns the configured bit depth.
func (c *Config) Depth() pixel.BitDepth { return pixel.BitDepth(c.BitDepth) }

// Validate rejects invalid configuration before any processing starts.
func (c *Config) Validate() error {
	if !c.Geometry().Valid() {
		return fmt.Errorf("invalid size %dx%d (width and height must be positive)", c.Width, c.Height)
	}
	if !c.Depth().Valid() {
		return fmt.Errorf("invalid bit depth %d (use 8 or 10)", c.BitDepth)
	}
	if c.DedupTolerance < 0 {
		return fmt.Errorf("invalid dedup tolerance %d (must be non-negative)", c.DedupTolerance)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("invalid frame rate %d (must be positive)", c.FrameRate)
	}

	switch c.ColorProfile {
	case ColorSDR, ColorHDR:
		// valid
	default:
		return errors.New("invalid color profile (use 'sdr' or 'hdr')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.CheckOnly {
		return nil
	}

	switch c.Op {
	case OpColors, OpStills, OpVideo:
		// valid
	default:
		return errors.New("invalid operation (use 'colors', 'stills' or 'video')")
	}
	if c.InputDir == "" {
		return errors.New("need an input directory")
	}
	if c.FFmpegBinary == "" {
		return errors.New("ffmpeg binary path must not be empty")
	}
	return nil
}
