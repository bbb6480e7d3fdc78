package config

// This file implements CLI flag parsing and help text.
// Flag values override the env-derived defaults from DefaultConfig.

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/backmassage/binframe/internal/frame"
)

// ParseFlags parses os.Args into cfg. On --help or --version it prints and
// exits. On error it returns non-nil (unknown flag, bad value, missing
// positional args).
func ParseFlags(cfg *Config, version string) error {
	fs := flag.NewFlagSet("binframe", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	var (
		sizeArg  string
		noDedup  bool
		forceCol bool
		noColor  bool
		showVer  bool
		showHelp bool
	)

	fs.StringVar(&sizeArg, "size", "", "Frame geometry as WxH (default: 1280x720)")
	fs.StringVar(&sizeArg, "s", "", "Same as --size")
	fs.IntVar(&cfg.BitDepth, "bit-depth", cfg.BitDepth, "Capture bit depth: 8 | 10")
	fs.IntVar(&cfg.BitDepth, "b", cfg.BitDepth, "Same as --bit-depth")

	fs.BoolVar(&noDedup, "no-dedup", false, "Keep every frame (colors op only)")
	fs.IntVar(&cfg.DedupTolerance, "dedup-tolerance", cfg.DedupTolerance,
		"Per-channel diff <= N treated as a duplicate frame")
	fs.IntVar(&cfg.DedupTolerance, "t", cfg.DedupTolerance, "Same as --dedup-tolerance")

	fs.IntVar(&cfg.FrameRate, "fps", cfg.FrameRate, "Output frame rate (video op)")
	fs.IntVar(&cfg.FrameRate, "r", cfg.FrameRate, "Same as --fps")
	fs.Var(&colorProfileValue{&cfg.ColorProfile}, "color-profile", "Video color metadata: sdr | hdr (10-bit only)")
	fs.StringVar(&cfg.FFmpegBinary, "ffmpeg", cfg.FFmpegBinary, "Path to the ffmpeg executable")

	fs.BoolVar(&forceCol, "color", false, "Force colored logs")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")

	fs.BoolVar(&showVer, "version", false, "Print version and exit")
	fs.BoolVar(&showVer, "V", false, "Same as --version")
	fs.BoolVar(&showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&showHelp, "h", false, "Same as --help")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	if showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if showVer {
		fmt.Fprintln(os.Stdout, "binframe v"+version)
		os.Exit(0)
	}

	if noDedup {
		cfg.Dedup = false
	}
	if noColor {
		cfg.ColorMode = ColorNever
	} else if forceCol {
		cfg.ColorMode = ColorAlways
	}

	if sizeArg != "" {
		geom, err := frame.ParseGeometry(sizeArg)
		if err != nil {
			return err
		}
		cfg.Width, cfg.Height = geom.Width, geom.Height
	}

	return parsePositionalArgs(fs, cfg)
}

// parsePositionalArgs sets Op, InputDir, and Output from the positional
// arguments, applying the per-operation default output path when omitted.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("need <colors|stills|video> <input_dir> [output]")
	}

	cfg.Op = Operation(strings.ToLower(args[0]))
	cfg.InputDir = NormalizeDirArg(args[1])
	if len(args) == 3 {
		cfg.Output = args[2]
	} else {
		cfg.Output = defaultOutput(cfg.Op, cfg.InputDir)
	}
	return nil
}

// defaultOutput mirrors the conventional output locations: CSV and video
// land next to the source files, stills go into the input directory itself.
func defaultOutput(op Operation, inputDir string) string {
	switch op {
	case OpColors:
		return filepath.Join(inputDir, "output.csv")
	case OpVideo:
		return filepath.Join(inputDir, "output.mp4")
	default:
		return inputDir
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 30
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "binframe v" + version + " - raw capture sequence toolkit"},
		{"", ""},
		{"  binframe [OPTIONS] colors <input_dir> [output.csv]", ""},
		{"  binframe [OPTIONS] stills <input_dir> [output_dir]", ""},
		{"  binframe [OPTIONS] video  <input_dir> [output.mp4]", ""},
		{"", ""},
		{"Input", ""},
		{"  -s, --size <WxH>", "Frame geometry (default: 1280x720)"},
		{"  -b, --bit-depth <8|10>", "Capture bit depth (default: 10)"},
		{"", ""},
		{"Colors", ""},
		{"  --no-dedup", "Keep every frame, even duplicates"},
		{"  -t, --dedup-tolerance <N>", "Per-channel diff <= N is a duplicate (default: 0)"},
		{"", ""},
		{"Video", ""},
		{"  -r, --fps <N>", "Output frame rate (default: 30)"},
		{"  --color-profile <sdr|hdr>", "Color metadata for 10-bit encodes (default: sdr)"},
		{"  --ffmpeg <path>", "ffmpeg executable (default: ffmpeg on PATH)"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "System diagnostics (ffmpeg, x264, x265, rgb48le)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapter so the ColorProfile enum can be used with flag.Var.

type colorProfileValue struct{ p *ColorProfile }

func (c *colorProfileValue) String() string {
	if c.p == nil {
		return ""
	}
	return string(*c.p)
}

func (c *colorProfileValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "sdr":
		*c.p = ColorSDR
	case "hdr":
		*c.p = ColorHDR
	default:
		return fmt.Errorf("invalid color profile %q (use 'sdr' or 'hdr')", s)
	}
	return nil
}
