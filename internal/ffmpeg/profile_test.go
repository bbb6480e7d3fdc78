package ffmpeg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/binframe/internal/config"
)

func videoConfig(depth int, profile config.ColorProfile) *config.Config {
	return &config.Config{
		InputDir:     "/captures",
		Output:       "/captures/output.mp4",
		Op:           config.OpVideo,
		Width:        1280,
		Height:       720,
		BitDepth:     depth,
		FrameRate:    30,
		ColorProfile: profile,
		FFmpegBinary: "ffmpeg",
	}
}

// argValue returns the value following the first occurrence of flag.
func argValue(t *testing.T, args []string, flag string) string {
	t.Helper()
	for i, a := range args {
		if a == flag {
			require.Less(t, i+1, len(args), "flag %s has no value", flag)
			return args[i+1]
		}
	}
	t.Fatalf("flag %s not present in %v", flag, args)
	return ""
}

func TestBuildArgs_8Bit(t *testing.T) {
	args := BuildArgs(videoConfig(8, config.ColorSDR))

	assert.Equal(t, "rawvideo", argValue(t, args, "-f"))
	assert.Equal(t, "rgb24", argValue(t, args, "-pix_fmt"))
	assert.Equal(t, "1280x720", argValue(t, args, "-s"))
	assert.Equal(t, "30", argValue(t, args, "-r"))
	assert.Equal(t, "libx264", argValue(t, args, "-c:v"))
	assert.Equal(t, "18", argValue(t, args, "-crf"))
	assert.Equal(t, "bt709", argValue(t, args, "-color_primaries"))
	assert.Contains(t, args, "-i")
	assert.NotContains(t, args, "-tag:v")
	assert.Equal(t, "/captures/output.mp4", args[len(args)-1])

	// The codec-side pixel format is the second -pix_fmt occurrence.
	joined := strings.Join(args, " ")
	assert.Contains(t, joined, "-pix_fmt yuv420p ")
}

func TestBuildArgs_10BitSDR(t *testing.T) {
	args := BuildArgs(videoConfig(10, config.ColorSDR))

	assert.Equal(t, "rgb48le", argValue(t, args, "-pix_fmt"))
	assert.Equal(t, "libx265", argValue(t, args, "-c:v"))
	assert.Equal(t, "hvc1", argValue(t, args, "-tag:v"))
	assert.Equal(t, "bt709", argValue(t, args, "-color_primaries"))
	assert.Equal(t, "bt709", argValue(t, args, "-colorspace"))

	params := argValue(t, args, "-x265-params")
	assert.Contains(t, params, "log-level=error")
	assert.NotContains(t, params, "hdr10")

	joined := strings.Join(args, " ")
	assert.Contains(t, joined, "-pix_fmt yuv420p10le")
}

func TestBuildArgs_10BitHDR(t *testing.T) {
	args := BuildArgs(videoConfig(10, config.ColorHDR))

	assert.Equal(t, "bt2020", argValue(t, args, "-color_primaries"))
	assert.Equal(t, "smpte2084", argValue(t, args, "-color_trc"))
	assert.Equal(t, "bt2020nc", argValue(t, args, "-colorspace"))

	params := argValue(t, args, "-x265-params")
	assert.Contains(t, params, "hdr10=1")
	assert.Contains(t, params, "repeat-headers=1")
	assert.Contains(t, params, "master-display="+hdrMasterDisplay)
}

func TestBuildArgs_VerboseLoglevel(t *testing.T) {
	cfg := videoConfig(10, config.ColorSDR)
	cfg.Verbose = true
	args := BuildArgs(cfg)
	assert.Equal(t, "info", argValue(t, args, "-loglevel"))
	assert.Contains(t, args, "-stats")
}
