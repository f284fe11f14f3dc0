package logging

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const dayLayout = "2006-01-02"

// DailyFile is an io.Writer appending to <dir>/<YYYY-MM-DD>.log. Rotate
// switches to the current day's file, zips the previous one and prunes
// archives older than the retention window.
type DailyFile struct {
	mu        sync.Mutex
	dir       string
	retention time.Duration
	now       func() time.Time
	day       string
	file      *os.File
}

// OpenDailyFile creates dir if needed and opens today's log file.
func OpenDailyFile(dir string, retention time.Duration) (*DailyFile, error) {
	return openDailyFile(dir, retention, time.Now)
}

func openDailyFile(dir string, retention time.Duration, now func() time.Time) (*DailyFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: creating %s: %w", dir, err)
	}
	d := &DailyFile{dir: dir, retention: retention, now: now}
	if err := d.open(now().Format(dayLayout)); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *DailyFile) open(day string) error {
	f, err := os.OpenFile(filepath.Join(d.dir, day+".log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("logging: opening log file: %w", err)
	}
	d.file = f
	d.day = day
	return nil
}

// Write implements io.Writer.
func (d *DailyFile) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.file == nil {
		return 0, os.ErrClosed
	}
	return d.file.Write(p)
}

// Path returns the file currently written to.
func (d *DailyFile) Path() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return filepath.Join(d.dir, d.day+".log")
}

// Rotate is a no-op while the day has not changed.
func (d *DailyFile) Rotate() error {
	d.mu.Lock()
	today := d.now().Format(dayLayout)
	if d.file == nil || today == d.day {
		d.mu.Unlock()
		return nil
	}
	previous := d.file.Name()
	closeErr := d.file.Close()
	d.file = nil
	openErr := d.open(today)
	d.mu.Unlock()

	if err := errors.Join(closeErr, openErr); err != nil {
		return err
	}
	if err := compress(previous); err != nil {
		return err
	}
	return d.prune()
}

// Close closes the current file. Later writes fail with os.ErrClosed.
func (d *DailyFile) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

// compress writes path into path.zip and removes the original.
func compress(path string) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("logging: compress: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(path+".zip", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("logging: compress: %w", err)
	}

	zw := zip.NewWriter(dst)
	w, err := zw.Create(filepath.Base(path))
	if err == nil {
		_, err = io.Copy(w, src)
	}
	err = errors.Join(err, zw.Close(), dst.Close())
	if err != nil {
		_ = os.Remove(path + ".zip")
		return fmt.Errorf("logging: compress %s: %w", path, err)
	}
	_ = src.Close()
	return os.Remove(path)
}

// prune deletes rotated files whose day is older than the retention window.
func (d *DailyFile) prune() error {
	if d.retention <= 0 {
		return nil
	}
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return fmt.Errorf("logging: prune: %w", err)
	}
	cutoff := d.now().Add(-d.retention)

	var errs []error
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".log.zip") {
			continue
		}
		day, err := time.ParseInLocation(dayLayout, strings.TrimSuffix(name, ".log.zip"), time.Local)
		if err != nil {
			continue
		}
		if day.Before(cutoff) {
			if err := os.Remove(filepath.Join(d.dir, name)); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
