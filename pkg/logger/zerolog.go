package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

const fileAppendFlags = os.O_APPEND | os.O_CREATE | os.O_WRONLY

// ZerologLogger writes structured JSON log lines through zerolog.
// It is the backend used when the dashboard is running.
type ZerologLogger struct {
	log    zerolog.Logger
	closer io.Closer
}

// NewZerologLogger creates a logger writing to w. The caller keeps
// ownership of w; Close does not touch it.
func NewZerologLogger(w io.Writer, component string) *ZerologLogger {
	return &ZerologLogger{
		log: zerolog.New(w).With().
			Timestamp().
			Str("component", component).
			Logger(),
	}
}

// NewFileLogger opens (or creates) the log file at path on fs in append
// mode and returns a logger owning it. Parent directories are created as
// needed. Close releases the file.
func NewFileLogger(fs afero.Fs, path, component string) (*ZerologLogger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	f, err := fs.OpenFile(path, fileAppendFlags, 0644)
	if err != nil {
		return nil, err
	}
	l := NewZerologLogger(f, component)
	l.closer = f
	return l, nil
}

// Info logs an informational message.
func (z *ZerologLogger) Info(format string, args ...interface{}) {
	z.log.Info().Msgf(format, args...)
}

// Warning logs a warning message.
func (z *ZerologLogger) Warning(format string, args ...interface{}) {
	z.log.Warn().Msgf(format, args...)
}

// Error logs an error message.
func (z *ZerologLogger) Error(format string, args ...interface{}) {
	z.log.Error().Msgf(format, args...)
}

// Close releases the log file if this logger owns one.
func (z *ZerologLogger) Close() error {
	if z.closer == nil {
		return nil
	}
	c := z.closer
	z.closer = nil
	return c.Close()
}

var _ Logger = (*ZerologLogger)(nil)
