package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/flemzord/tgrelay/internal/logging"
	"github.com/flemzord/tgrelay/internal/prompt"
)

var (
	// ErrReset means the rejected document was backed up and replaced with
	// the default. The process should exit successfully so the operator can
	// edit the new file before restarting.
	ErrReset = errors.New("config: replaced with default configuration")

	// ErrDeclined means the operator refused the reset, or could not be asked.
	ErrDeclined = errors.New("config: reset declined")
)

// Recovery offers to replace a rejected document with the packaged default.
type Recovery struct {
	Path     string
	Default  []byte
	Prompter prompt.Prompter
	Logger   *slog.Logger
}

// Run logs cause and asks for consent to reset. It returns ErrReset after a
// successful reset, ErrDeclined when consent is not given, or the I/O error
// that aborted the reset. It never retries parsing.
func (r *Recovery) Run(cause error) error {
	r.Logger.Error("configuration rejected", "path", r.Path, "error", cause)

	question := fmt.Sprintf("Would you like to create a new config file? "+
		"If your config file already exists, it will be renamed to %s (y/n) ", filepath.Base(BackupPath(r.Path)))
	answer, err := r.Prompter.Ask(question)
	if err != nil {
		r.Logger.Error("could not ask for a config reset, exiting", "error", err)
		return fmt.Errorf("%w: %w", ErrDeclined, err)
	}
	if !prompt.IsYes(answer) {
		r.Logger.Error("Exiting...")
		return ErrDeclined
	}

	backedUp, err := Reset(r.Path, r.Default)
	if err != nil {
		r.Logger.Error("config reset failed", "error", err)
		return err
	}

	if backedUp {
		r.Logger.Log(context.Background(), logging.LevelSuccess, "created new default config file",
			"path", r.Path, "backup", BackupPath(r.Path))
	} else {
		r.Logger.Log(context.Background(), logging.LevelSuccess, "created new default config file", "path", r.Path)
	}
	r.Logger.Info("please edit the config file to your liking, then restart", "path", r.Path)
	return ErrReset
}

// BackupPath is where Reset moves the previous document.
func BackupPath(path string) string {
	return path + ".bak"
}

// Reset renames the document at path to BackupPath(path), when there is
// one, and writes def in its place. An older backup is overwritten.
func Reset(path string, def []byte) (backedUp bool, err error) {
	switch err := os.Rename(path, BackupPath(path)); {
	case err == nil:
		backedUp = true
	case errors.Is(err, fs.ErrNotExist):
	default:
		return false, fmt.Errorf("config: backing up %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return backedUp, fmt.Errorf("config: creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, def, 0o600); err != nil {
		return backedUp, fmt.Errorf("config: writing default to %s: %w", path, err)
	}
	return backedUp, nil
}
