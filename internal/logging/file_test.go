package logging

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestDailyFile_RotateSameDay(t *testing.T) {
	dir := t.TempDir()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)}

	d, err := openDailyFile(dir, DefaultRetention, clock.now)
	if err != nil {
		t.Fatalf("openDailyFile() error: %v", err)
	}
	defer d.Close()

	if err := d.Rotate(); err != nil {
		t.Fatalf("Rotate() error: %v", err)
	}
	if got, want := d.Path(), filepath.Join(dir, "2026-03-01.log"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestDailyFile_RotateCompressesPreviousDay(t *testing.T) {
	dir := t.TempDir()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 23, 59, 0, 0, time.Local)}

	d, err := openDailyFile(dir, DefaultRetention, clock.now)
	if err != nil {
		t.Fatalf("openDailyFile() error: %v", err)
	}
	defer d.Close()

	if _, err := d.Write([]byte("yesterday\n")); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	clock.t = clock.t.Add(2 * time.Minute)
	if err := d.Rotate(); err != nil {
		t.Fatalf("Rotate() error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "2026-03-01.log")); !os.IsNotExist(err) {
		t.Errorf("previous log should be removed after compression, stat err = %v", err)
	}

	zr, err := zip.OpenReader(filepath.Join(dir, "2026-03-01.log.zip"))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer zr.Close()
	if len(zr.File) != 1 || zr.File[0].Name != "2026-03-01.log" {
		t.Errorf("unexpected archive contents: %v", zr.File)
	}

	if got, want := d.Path(), filepath.Join(dir, "2026-03-02.log"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestDailyFile_PrunesOldArchives(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"2026-02-01.log.zip", "2026-02-27.log.zip", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)}
	d, err := openDailyFile(dir, DefaultRetention, clock.now)
	if err != nil {
		t.Fatalf("openDailyFile() error: %v", err)
	}
	defer d.Close()

	clock.t = clock.t.Add(24 * time.Hour)
	if err := d.Rotate(); err != nil {
		t.Fatalf("Rotate() error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "2026-02-01.log.zip")); !os.IsNotExist(err) {
		t.Error("archive older than retention should be pruned")
	}
	for _, keep := range []string{"2026-02-27.log.zip", "2026-03-01.log.zip", "notes.txt"} {
		if _, err := os.Stat(filepath.Join(dir, keep)); err != nil {
			t.Errorf("%s should be kept: %v", keep, err)
		}
	}
}

func TestDailyFile_WriteAfterClose(t *testing.T) {
	d, err := OpenDailyFile(t.TempDir(), DefaultRetention)
	if err != nil {
		t.Fatalf("OpenDailyFile() error: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if _, err := d.Write([]byte("late")); err == nil {
		t.Error("expected error writing to closed file")
	}
}
