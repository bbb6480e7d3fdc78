// Package check provides system diagnostics (--check mode) and pre-run
// dependency validation for the external encoder and the two codec profiles.
package check

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/backmassage/binframe/internal/config"
	"github.com/backmassage/binframe/internal/ffmpeg"
	"github.com/backmassage/binframe/internal/pixel"
)

// Sentinel errors returned by CheckDeps when a required encoder is unusable.
var (
	ErrX264Unusable = errors.New("libx264 test encode failed (needed for 8-bit video)")
	ErrX265Unusable = errors.New("libx265 test encode failed (needed for 10-bit video)")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the interactive --check flow: encoder presence and version,
// rawvideo rgb48le input support, and test encodes for both codec profiles.
// This is informational only; it does not stop on failure.
func RunCheck(cfg *config.Config, log Logger) {
	log.Info("=== System Check ===")

	checkVersion(cfg.FFmpegBinary, log)
	checkRawInputFormats(cfg.FFmpegBinary, log)
	checkCodec(cfg.FFmpegBinary, "libx264", log)
	checkCodec(cfg.FFmpegBinary, "libx265", log)
}

// checkVersion verifies the encoder is runnable and logs its version line.
func checkVersion(bin string, log Logger) {
	if _, err := exec.LookPath(bin); err != nil {
		log.Error("%q not found", bin)
		return
	}
	out, err := exec.Command(bin, "-version").Output()
	if err != nil {
		log.Warn("%q found but -version failed: %v", bin, err)
		return
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("encoder: %s", firstLine)
}

// checkRawInputFormats verifies the rawvideo input formats both bit depths
// rely on are known to the encoder build.
func checkRawInputFormats(bin string, log Logger) {
	out, err := exec.Command(bin, "-hide_banner", "-pix_fmts").Output()
	if err != nil {
		log.Warn("could not list pixel formats: %v", err)
		return
	}
	for _, fmtName := range []string{"rgb24", "rgb48le"} {
		if strings.Contains(string(out), fmtName) {
			log.Success("raw input %s supported", fmtName)
		} else {
			log.Error("raw input %s not supported by this encoder build", fmtName)
		}
	}
}

// checkCodec runs a minimal test encode with the given video codec.
func checkCodec(bin, codec string, log Logger) {
	log.Info("Testing %s...", codec)
	if runSilent(bin, codecTestArgs(codec)...) {
		log.Success("%s works", codec)
	} else {
		log.Error("%s test encode failed", codec)
	}
}

// CheckDeps is the pre-run validation for the video operation: the encoder
// binary must be locatable and the codec for the configured bit depth must
// pass a short test encode. Returns a sentinel error on failure.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.FFmpegBinary); err != nil {
		return fmt.Errorf("%w: %q", ffmpeg.ErrEncoderUnavailable, cfg.FFmpegBinary)
	}

	if cfg.Depth() == pixel.Depth8 {
		if !runSilent(cfg.FFmpegBinary, codecTestArgs("libx264")...) {
			return ErrX264Unusable
		}
		return nil
	}
	if !runSilent(cfg.FFmpegBinary, codecTestArgs("libx265")...) {
		return ErrX265Unusable
	}
	return nil
}

// codecTestArgs returns the arguments for a minimal synthetic test encode.
func codecTestArgs(codec string) []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
		"-c:v", codec,
		"-f", "null", "-",
	}
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
