package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"keyrelay/config"
)

// Logger wraps zerolog behind the small surface the usecases and
// repositories log through. The zero value is a no-op logger, which keeps
// tests that don't care about output simple.
type Logger struct {
	zl *zerolog.Logger
}

func NewLogger(cfg *config.Config) (*Logger, error) {
	level, err := zerolog.ParseLevel(cfg.LoggerMode.Level)
	if err != nil || cfg.LoggerMode.Level == "" {
		level = zerolog.InfoLevel
	}

	var zl zerolog.Logger
	if cfg.LoggerMode.Development {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			Level(level).
			With().
			Timestamp().
			Logger()
	} else {
		zl = zerolog.New(os.Stdout).
			Level(level).
			With().
			Timestamp().
			Logger()
	}

	return &Logger{zl: &zl}, nil
}

func (l Logger) Debug(msg string, keyvals ...any) { l.emit(zerolog.DebugLevel, msg, keyvals) }
func (l Logger) Info(msg string, keyvals ...any)  { l.emit(zerolog.InfoLevel, msg, keyvals) }
func (l Logger) Warn(msg string, keyvals ...any)  { l.emit(zerolog.WarnLevel, msg, keyvals) }
func (l Logger) Error(msg string, keyvals ...any) { l.emit(zerolog.ErrorLevel, msg, keyvals) }

func (l Logger) Debugf(format string, args ...any) { l.emitf(zerolog.DebugLevel, format, args) }
func (l Logger) Infof(format string, args ...any)  { l.emitf(zerolog.InfoLevel, format, args) }
func (l Logger) Warnf(format string, args ...any)  { l.emitf(zerolog.WarnLevel, format, args) }
func (l Logger) Errorf(format string, args ...any) { l.emitf(zerolog.ErrorLevel, format, args) }

// Zerolog exposes the underlying logger for the HTTP middleware.
func (l Logger) Zerolog() zerolog.Logger {
	if l.zl == nil {
		return zerolog.Nop()
	}
	return *l.zl
}

func (l Logger) emit(level zerolog.Level, msg string, keyvals []any) {
	if l.zl == nil {
		return
	}
	e := l.zl.WithLevel(level)
	for i := 0; i+1 < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, keyvals[i+1])
	}
	e.Msg(msg)
}

func (l Logger) emitf(level zerolog.Level, format string, args []any) {
	if l.zl == nil {
		return
	}
	l.zl.WithLevel(level).Msgf(format, args...)
}
