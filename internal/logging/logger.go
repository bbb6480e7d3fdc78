// Package logging provides the leveled, optionally colored logger used by
// every batch operation. It is a thin façade over zap: a console core for
// interactive output plus an optional plain-text file sink.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/backmassage/binframe/internal/config"
	"github.com/backmassage/binframe/internal/term"
)

// Logger wraps a zap sugared logger behind printf-style level methods.
type Logger struct {
	s    *zap.SugaredLogger
	file *os.File
}

// NewLogger configures terminal colors from cfg and builds the logger.
// When cfg.LogFile is set, log lines are additionally appended (uncolored)
// to that file; call Close when done. Verbose enables Debug output.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)

	encCfg := zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		MessageKey:       "msg",
		ConsoleSeparator: " ",
		EncodeTime:       zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05"),
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeDuration:   zapcore.SecondsDurationEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
	}
	if term.Enabled() {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	level := zapcore.InfoLevel
	if cfg.Verbose {
		level = zapcore.DebugLevel
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stdout), level),
	}

	var file *os.File
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		file = f

		fileCfg := encCfg
		fileCfg.EncodeLevel = zapcore.CapitalLevelEncoder // never color the file sink
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(fileCfg), zapcore.AddSync(f), level))
	}

	return &Logger{
		s:    zap.New(zapcore.NewTee(cores...)).Sugar(),
		file: file,
	}, nil
}

// Close flushes buffered entries and closes the log file if one was opened.
func (l *Logger) Close() error {
	_ = l.s.Sync() // stdout sync fails on some platforms; the file sink is unbuffered
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.s.Infof(format, args...)
}

// Success logs at INFO level with the message highlighted green.
func (l *Logger) Success(format string, args ...interface{}) {
	l.s.Infof(term.Green+format+term.NC, args...)
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.s.Warnf(format, args...)
}

// Error logs at ERROR level.
func (l *Logger) Error(format string, args ...interface{}) {
	l.s.Errorf(format, args...)
}

// Debug logs at DEBUG level; emitted only when Verbose was set.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.s.Debugf(format, args...)
}
