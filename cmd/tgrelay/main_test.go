package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flemzord/tgrelay/internal/buildinfo"
	"github.com/flemzord/tgrelay/internal/config"
	"github.com/flemzord/tgrelay/internal/defaults"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd(args)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, buildinfo.Version) {
		t.Errorf("output = %q", out)
	}
}

func TestConfigCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, defaults.ConfigTOML, 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "config", "check", path)
	if err != nil {
		t.Fatalf("config check: %v", err)
	}
	if !strings.Contains(out, "Configuration OK") {
		t.Errorf("output = %q", out)
	}
}

func TestConfigCheckPrintRedacts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	doc := strings.Replace(string(defaults.ConfigTOML), `token = ""`, `token = "very-secret"`, 1)
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "config", "check", "--print", path)
	if err != nil {
		t.Fatalf("config check: %v", err)
	}
	if strings.Contains(out, "very-secret") {
		t.Errorf("printed tree leaks the token: %s", out)
	}
	if !strings.Contains(out, "explicit-control:") {
		t.Errorf("printed tree missing sections: %s", out)
	}
}

func TestConfigCheckRejects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("config-version = 99999\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, "config", "check", path)
	if !errors.Is(err, config.ErrVersionMismatch) {
		t.Fatalf("config check error = %v, want ErrVersionMismatch", err)
	}
}

func TestConfigReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("broken ="), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "config", "reset", "--yes", path)
	if err != nil {
		t.Fatalf("config reset: %v", err)
	}
	if !strings.Contains(out, config.BackupPath(path)) {
		t.Errorf("output = %q", out)
	}
	backup, err := os.ReadFile(config.BackupPath(path))
	if err != nil || string(backup) != "broken =" {
		t.Errorf("backup = %q, err %v", backup, err)
	}
}

func TestConfigResetNoInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	_, err := execute(t, "config", "reset", "--no-input", path)
	if err == nil {
		t.Fatal("reset without --yes and without input should fail")
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
		t.Error("reset wrote a file without confirmation")
	}
}
