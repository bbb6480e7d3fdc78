// Package ffmpeg drives the external video encoder: it builds the invocation
// profile from the configured bit depth, streams raw frames to the process's
// stdin, and concurrently drains its stderr.
package ffmpeg

import (
	"strconv"

	"github.com/backmassage/binframe/internal/config"
	"github.com/backmassage/binframe/internal/pixel"
)

// crf is the fixed quality parameter shared by both codec profiles.
const crf = 18

// hdrMasterDisplay is the x265 mastering-display metadata string for the
// wide-gamut profile: Display P3 primaries in 0.00002 units with
// 10000/0.0001 nits luminance bounds.
const hdrMasterDisplay = "G(13250,34500)B(7500,3000)R(34000,16000)WP(15635,16450)L(10000000,1)"

// BuildArgs constructs the complete ffmpeg argument slice (without the
// binary name) for one encode session. The raw input section matches the
// byte layout produced by frame.DecodeStream; the codec section is selected
// by bit depth: 8-bit captures encode as H.264 yuv420p, 10-bit captures as
// H.265 yuv420p10le with an hvc1 tag for hardware player compatibility.
func BuildArgs(cfg *config.Config) []string {
	args := make([]string, 0, 48)

	// --- Preamble ---
	args = append(args, "-hide_banner", "-y")
	if cfg.Verbose {
		args = append(args, "-loglevel", "info", "-stats")
	} else {
		args = append(args, "-loglevel", "error")
	}

	// --- Raw frame input on stdin ---
	args = append(args,
		"-f", "rawvideo",
		"-pix_fmt", inputPixFmt(cfg.Depth()),
		"-s", cfg.Geometry().String(),
		"-r", strconv.Itoa(cfg.FrameRate),
		"-i", "-",
	)

	// --- Video codec ---
	args = appendVideoCodec(args, cfg)

	// --- Color metadata ---
	args = appendColorMetadata(args, cfg)

	// --- Container opts ---
	args = append(args, "-movflags", "+faststart")

	// --- Output ---
	args = append(args, cfg.Output)

	return args
}

// inputPixFmt returns the rawvideo pixel format matching the decode output:
// interleaved 8-bit RGB or little-endian 16-bit RGB with the ten significant
// bits in the high positions.
func inputPixFmt(depth pixel.BitDepth) string {
	if depth == pixel.Depth8 {
		return "rgb24"
	}
	return "rgb48le"
}

// appendVideoCodec adds the codec-specific arguments for the video stream.
func appendVideoCodec(args []string, cfg *config.Config) []string {
	if cfg.Depth() == pixel.Depth8 {
		return append(args,
			"-c:v", "libx264",
			"-crf", strconv.Itoa(crf),
			"-preset", "medium",
			"-pix_fmt", "yuv420p",
		)
	}

	args = append(args,
		"-c:v", "libx265",
		"-crf", strconv.Itoa(crf),
		"-preset", "medium",
		"-pix_fmt", "yuv420p10le",
		"-tag:v", "hvc1",
	)

	params := "log-level=error"
	if cfg.ColorProfile == config.ColorHDR {
		params += ":hdr10=1:repeat-headers=1" +
			":master-display=" + hdrMasterDisplay +
			":max-cll=1000,400"
	}
	return append(args, "-x265-params", params)
}

// appendColorMetadata tags the output stream. The HDR profile only applies
// to 10-bit encodes; 8-bit and 10-bit SDR both carry Rec.709 tags.
func appendColorMetadata(args []string, cfg *config.Config) []string {
	if cfg.Depth() == pixel.Depth10 && cfg.ColorProfile == config.ColorHDR {
		return append(args,
			"-color_primaries", "bt2020",
			"-color_trc", "smpte2084",
			"-colorspace", "bt2020nc",
		)
	}
	return append(args,
		"-color_primaries", "bt709",
		"-color_trc", "bt709",
		"-colorspace", "bt709",
	)
}
