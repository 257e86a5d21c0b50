package log

import (
	"context"
	"io"
	"log"
	"os"
)

type CslLogger struct {
	out *log.Logger
}

func NewCslLogger() (*CslLogger, error) {
	return &CslLogger{out: log.New(os.Stderr, "", log.LstdFlags)}, nil
}

// NewCslLoggerTo writes to the given sink instead of stderr. Tests use it to
// capture output.
func NewCslLoggerTo(w io.Writer) *CslLogger {
	return &CslLogger{out: log.New(w, "", log.LstdFlags)}
}

func (l *CslLogger) Info(ctx context.Context, format string, args ...interface{}) {
	l.out.Printf("[INFO] "+format, args...)
}

func (l *CslLogger) Warn(ctx context.Context, format string, args ...interface{}) {
	l.out.Printf("[WARN] "+format, args...)
}

func (l *CslLogger) Error(ctx context.Context, format string, args ...interface{}) {
	l.out.Printf("[ERROR] "+format, args...)
}

func (l *CslLogger) Debug(ctx context.Context, format string, args ...interface{}) {
	l.out.Printf("[DEBUG] "+format, args...)
}
