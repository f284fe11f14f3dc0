// Package logging builds the process logger: a console handler for the
// operator and a daily rotated file that keeps everything down to TRACE.
// Both sinks sit behind the credential-redacting handler.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/flemzord/tgrelay/internal/security"
	"github.com/robfig/cron/v3"
)

// DefaultRetention is how long rotated log archives are kept.
const DefaultRetention = 7 * 24 * time.Hour

// rotateSchedule fires at local midnight.
const rotateSchedule = "0 0 * * *"

// Options configures New.
type Options struct {
	// Console receives operator-facing output. Defaults to os.Stdout.
	Console io.Writer

	// Level is the initial console level. Defaults to slog.LevelInfo.
	Level slog.Level

	// Dir holds the daily log files. Empty disables the file sink.
	Dir string

	// Retention for rotated archives. Defaults to DefaultRetention.
	Retention time.Duration

	// Redactor scrubs secrets from every record. A fresh one is created when nil.
	Redactor *security.Redactor
}

// Logger is an slog.Logger that owns its file sink and rotation job.
type Logger struct {
	*slog.Logger

	level *slog.LevelVar
	file  *DailyFile
	cron  *cron.Cron
}

// New creates the logger. Callers must Close it to stop rotation and flush
// the log file.
func New(opts Options) (*Logger, error) {
	if opts.Console == nil {
		opts.Console = os.Stdout
	}
	if opts.Retention <= 0 {
		opts.Retention = DefaultRetention
	}
	if opts.Redactor == nil {
		opts.Redactor = security.NewRedactor()
	}

	l := &Logger{level: new(slog.LevelVar)}
	l.level.Set(opts.Level)

	handlers := fanout{
		slog.NewTextHandler(opts.Console, &slog.HandlerOptions{
			Level:       l.level,
			ReplaceAttr: replaceAttr(time.TimeOnly),
		}),
	}

	if opts.Dir != "" {
		file, err := OpenDailyFile(opts.Dir, opts.Retention)
		if err != nil {
			return nil, err
		}
		l.file = file
		handlers = append(handlers, slog.NewTextHandler(file, &slog.HandlerOptions{
			Level:       LevelTrace,
			ReplaceAttr: replaceAttr(time.TimeOnly),
		}))
	}

	l.Logger = slog.New(security.NewRedactingHandler(handlers, opts.Redactor))

	if l.file != nil {
		parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
		l.cron = cron.New(cron.WithParser(parser))
		if _, err := l.cron.AddFunc(rotateSchedule, l.rotate); err != nil {
			_ = l.file.Close()
			return nil, fmt.Errorf("logging: scheduling rotation: %w", err)
		}
		l.cron.Start()
	}

	return l, nil
}

func (l *Logger) rotate() {
	if err := l.file.Rotate(); err != nil {
		l.Error("log rotation failed", "error", err)
		return
	}
	l.Log(context.Background(), LevelTrace, "log file rotated", "path", l.file.Path())
}

// SetLevel changes the console level. The file sink always keeps TRACE.
func (l *Logger) SetLevel(level slog.Level) {
	l.level.Set(level)
}

// Close stops the rotation job, waiting for a running rotation, and closes
// the log file.
func (l *Logger) Close() error {
	var errs []error
	if l.cron != nil {
		<-l.cron.Stop().Done()
	}
	if l.file != nil {
		errs = append(errs, l.file.Close())
	}
	return errors.Join(errs...)
}
