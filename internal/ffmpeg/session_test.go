package ffmpeg

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/binframe/internal/config"
)

// stubEncoder writes a shell script standing in for ffmpeg and returns a
// config pointing at it.
func stubEncoder(t *testing.T, script string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-ffmpeg")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))

	cfg := videoConfig(10, config.ColorSDR)
	cfg.FFmpegBinary = path
	cfg.Output = filepath.Join(t.TempDir(), "out.mp4")
	return cfg
}

func testFrame() []byte { return bytes.Repeat([]byte{0xAB}, 64) }

func TestSession_Completed(t *testing.T) {
	cfg := stubEncoder(t, "cat > /dev/null\nexit 0\n")

	s, err := Start(cfg)
	require.NoError(t, err)
	assert.Equal(t, StateStreaming, s.State())
	assert.NotEmpty(t, s.ID)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.WriteFrame(testFrame()))
	}
	require.NoError(t, s.Finish())
	assert.Equal(t, StateCompleted, s.State())
	assert.Equal(t, 3, s.Frames())
}

func TestSession_NonZeroExitCarriesDiagnostics(t *testing.T) {
	cfg := stubEncoder(t, "cat > /dev/null\necho 'encoder exploded' >&2\nexit 3\n")

	s, err := Start(cfg)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.WriteFrame(testFrame()))
	}

	err = s.Finish()
	require.Error(t, err)
	assert.Equal(t, StateFailed, s.State())

	var pe *ProcessError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 3, pe.Frames)
	assert.Contains(t, pe.Stderr, "encoder exploded")
	assert.Contains(t, pe.Error(), "encoder exploded")
}

func TestSession_Cancel(t *testing.T) {
	cfg := stubEncoder(t, "cat > /dev/null\n")

	s, err := Start(cfg)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.WriteFrame(testFrame()))
	}

	s.Cancel()
	assert.Equal(t, StateCancelled, s.State())
	assert.Equal(t, 5, s.Frames())

	// Terminal: further writes refuse, repeated cancel is a no-op.
	assert.Error(t, s.WriteFrame(testFrame()))
	s.Cancel()
	assert.Equal(t, StateCancelled, s.State())
}

func TestStart_EncoderUnavailable(t *testing.T) {
	cfg := videoConfig(10, config.ColorSDR)
	cfg.FFmpegBinary = filepath.Join(t.TempDir(), "no-such-encoder")

	_, err := Start(cfg)
	assert.ErrorIs(t, err, ErrEncoderUnavailable)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "streaming", StateStreaming.String())
	assert.Equal(t, "cancelled", StateCancelled.String())
	assert.True(t, StateFailed.Terminal())
	assert.False(t, StateStreaming.Terminal())
}
