package ffmpeg

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/google/uuid"

	"github.com/backmassage/binframe/internal/config"
)

// ErrEncoderUnavailable is returned when the external encoder executable
// cannot be located. Checked before any frame is processed.
var ErrEncoderUnavailable = errors.New("encoder executable not found")

// State tracks an encode session through its lifecycle.
type State int

const (
	StateIdle State = iota
	StateConfiguring
	StateStreaming
	StateCompleted
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConfiguring:
		return "configuring"
	case StateStreaming:
		return "streaming"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Terminal reports whether the session has reached a final state.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateCancelled || s == StateFailed
}

// ProcessError reports an encoder process that exited non-zero or closed its
// input early. It carries the full captured stderr so the failure is
// actionable without re-running.
type ProcessError struct {
	SessionID string
	Frames    int
	Stderr    string
	Err       error
}

func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("encode session %s failed after %d frames: %v", e.SessionID, e.Frames, e.Err)
	if tail := stderrTail(e.Stderr, 5); tail != "" {
		msg += "; encoder said: " + tail
	}
	return msg
}

func (e *ProcessError) Unwrap() error { return e.Err }

// stderrTail returns the last n non-empty lines of captured stderr, joined.
func stderrTail(stderr string, n int) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, " | "))
}

// Session is one end-to-end invocation of the external encoder. It is owned
// exclusively by a single batch run: the only concurrency is the stderr
// drain goroutine, which the session always joins before reporting a
// terminal state. Every exit path closes stdin, awaits the process, and
// joins the drain, so no zombie process or dangling reader survives a
// session in any outcome.
type Session struct {
	ID string

	cmd     *exec.Cmd
	stdin   io.WriteCloser
	stderr  bytes.Buffer
	drained chan struct{}

	frames  int
	state   State
	waited  bool
	waitErr error
}

// Start locates the encoder executable, builds its argument list from cfg,
// and launches it with the stderr drain running. Returns
// ErrEncoderUnavailable (wrapped) before any frame work when the binary is
// missing.
func Start(cfg *config.Config) (*Session, error) {
	s := &Session{
		ID:      uuid.NewString(),
		state:   StateConfiguring,
		drained: make(chan struct{}),
	}

	bin, err := exec.LookPath(cfg.FFmpegBinary)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrEncoderUnavailable, cfg.FFmpegBinary)
	}

	s.cmd = exec.Command(bin, BuildArgs(cfg)...)

	stdin, err := s.cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stderr, err := s.cmd.StderrPipe()
	if err != nil {
		return nil, err
	}

	if err := s.cmd.Start(); err != nil {
		return nil, fmt.Errorf("start encoder: %w", err)
	}
	s.stdin = stdin

	// The encoder's stderr has a bounded OS buffer. Without a reader that
	// keeps up, a verbose encoder blocks on stderr and stops consuming
	// stdin, and the pipeline deadlocks on its next frame write. The drain
	// runs until the process closes stderr, i.e. until it exits.
	go func() {
		_, _ = io.Copy(&s.stderr, stderr)
		close(s.drained)
	}()

	s.state = StateStreaming
	return s, nil
}

// WriteFrame streams one raw frame to the encoder. A write error means the
// encoder exited early (broken pipe); the session awaits the process and
// surfaces the captured diagnostics instead of the raw pipe error.
func (s *Session) WriteFrame(data []byte) error {
	if s.state != StateStreaming {
		return fmt.Errorf("cannot write frame: session is %s", s.state)
	}
	if _, err := s.stdin.Write(data); err != nil {
		return s.fail(err)
	}
	s.frames++
	return nil
}

// Finish closes the encoder's input, awaits process exit, and checks its
// status. A non-zero exit becomes a ProcessError carrying the captured
// stderr and the frame count.
func (s *Session) Finish() error {
	if s.state != StateStreaming {
		return fmt.Errorf("cannot finish: session is %s", s.state)
	}
	s.closeStdin()
	if err := s.wait(); err != nil {
		s.state = StateFailed
		return s.processError(err)
	}
	s.state = StateCompleted
	return nil
}

// Cancel terminates the session: input closed, process killed and awaited,
// drain joined. Safe to call on an already-terminal session (no-op), which
// lets drivers defer it as a cleanup guard. Cancellation is never an error
// state; Frames reports how many frames were streamed before it.
func (s *Session) Cancel() {
	if s.state.Terminal() {
		return
	}
	s.closeStdin()
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	_ = s.wait()
	s.state = StateCancelled
}

// Frames returns the number of frames successfully written to the encoder.
func (s *Session) Frames() int { return s.frames }

// State returns the session's current lifecycle state.
func (s *Session) State() State { return s.state }

// Stderr returns the captured diagnostic output. Only meaningful once the
// session is terminal (the drain has been joined).
func (s *Session) Stderr() string { return s.stderr.String() }

// fail finalizes the session after a frame-write error.
func (s *Session) fail(cause error) error {
	s.closeStdin()
	if err := s.wait(); err != nil {
		cause = err
	}
	s.state = StateFailed
	return s.processError(cause)
}

func (s *Session) processError(cause error) error {
	return &ProcessError{
		SessionID: s.ID,
		Frames:    s.frames,
		Stderr:    s.stderr.String(),
		Err:       cause,
	}
}

func (s *Session) closeStdin() {
	if s.stdin != nil {
		_ = s.stdin.Close()
		s.stdin = nil
	}
}

// wait joins the stderr drain and reaps the process exactly once.
// Joining first is required: Wait closes the pipe under the reader
// otherwise, and the captured stderr must be complete before any terminal
// state is reported.
func (s *Session) wait() error {
	<-s.drained
	if !s.waited {
		s.waitErr = s.cmd.Wait()
		s.waited = true
	}
	return s.waitErr
}
