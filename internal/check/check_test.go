package check

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/binframe/internal/config"
	"github.com/backmassage/binframe/internal/ffmpeg"
)

func TestCheckDeps_MissingBinary(t *testing.T) {
	cfg := &config.Config{
		BitDepth:     10,
		FFmpegBinary: filepath.Join(t.TempDir(), "missing-encoder"),
	}
	err := CheckDeps(cfg)
	assert.ErrorIs(t, err, ffmpeg.ErrEncoderUnavailable)
}

func TestCheckDeps_CodecFailure(t *testing.T) {
	// A stub that always fails stands in for a build without the codec.
	path := filepath.Join(t.TempDir(), "fake-ffmpeg")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 1\n"), 0o755))

	cfg := &config.Config{BitDepth: 10, FFmpegBinary: path}
	assert.ErrorIs(t, CheckDeps(cfg), ErrX265Unusable)

	cfg.BitDepth = 8
	assert.ErrorIs(t, CheckDeps(cfg), ErrX264Unusable)
}

func TestCheckDeps_OK(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake-ffmpeg")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755))

	cfg := &config.Config{BitDepth: 10, FFmpegBinary: path}
	assert.NoError(t, CheckDeps(cfg))
}
