package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg, err := DefaultConfig()
	require.NoError(t, err)

	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, 720, cfg.Height)
	assert.Equal(t, 10, cfg.BitDepth)
	assert.True(t, cfg.Dedup)
	assert.Equal(t, 0, cfg.DedupTolerance)
	assert.Equal(t, 30, cfg.FrameRate)
	assert.Equal(t, ColorSDR, cfg.ColorProfile)
	assert.Equal(t, "ffmpeg", cfg.FFmpegBinary)
	assert.Equal(t, ColorAuto, cfg.ColorMode)
}

func TestDefaultConfig_EnvOverrides(t *testing.T) {
	t.Setenv("BINFRAME_WIDTH", "640")
	t.Setenv("BINFRAME_HEIGHT", "480")
	t.Setenv("BINFRAME_BIT_DEPTH", "8")
	t.Setenv("BINFRAME_COLOR_PROFILE", "hdr")

	cfg, err := DefaultConfig()
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 480, cfg.Height)
	assert.Equal(t, 8, cfg.BitDepth)
	assert.Equal(t, ColorHDR, cfg.ColorProfile)
}

func validConfig() Config {
	return Config{
		InputDir:     "/captures",
		Output:       "/captures/output.csv",
		Op:           OpColors,
		Width:        1280,
		Height:       720,
		BitDepth:     10,
		Dedup:        true,
		FrameRate:    30,
		ColorProfile: ColorSDR,
		ColorMode:    ColorAuto,
		FFmpegBinary: "ffmpeg",
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "zero width", mutate: func(c *Config) { c.Width = 0 }, wantErr: "invalid size"},
		{name: "negative height", mutate: func(c *Config) { c.Height = -1 }, wantErr: "invalid size"},
		{name: "bad depth", mutate: func(c *Config) { c.BitDepth = 12 }, wantErr: "bit depth"},
		{name: "negative tolerance", mutate: func(c *Config) { c.DedupTolerance = -1 }, wantErr: "tolerance"},
		{name: "zero fps", mutate: func(c *Config) { c.FrameRate = 0 }, wantErr: "frame rate"},
		{name: "bad profile", mutate: func(c *Config) { c.ColorProfile = "vivid" }, wantErr: "color profile"},
		{name: "bad color mode", mutate: func(c *Config) { c.ColorMode = "sometimes" }, wantErr: "color mode"},
		{name: "bad op", mutate: func(c *Config) { c.Op = "transcode" }, wantErr: "invalid operation"},
		{name: "missing input", mutate: func(c *Config) { c.InputDir = "" }, wantErr: "input directory"},
		{
			name:   "check mode skips op validation",
			mutate: func(c *Config) { c.CheckOnly = true; c.Op = ""; c.InputDir = "" },
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := validConfig()
			c.mutate(&cfg)
			err := cfg.Validate()
			if c.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), c.wantErr)
			}
		})
	}
}

func TestNormalizeDirArg(t *testing.T) {
	assert.Equal(t, "/data/bins", NormalizeDirArg("/data/bins/"))
	assert.Equal(t, "/data/bins", NormalizeDirArg("/data/bins"))
	assert.Equal(t, "/", NormalizeDirArg("/"))
}

func TestDefaultOutput(t *testing.T) {
	assert.Equal(t, "/in/output.csv", defaultOutput(OpColors, "/in"))
	assert.Equal(t, "/in/output.mp4", defaultOutput(OpVideo, "/in"))
	assert.Equal(t, "/in", defaultOutput(OpStills, "/in"))
}
