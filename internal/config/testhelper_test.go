package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

const testVersion = 123

const validTOML = `
config-version = 123
token = "T"

[explicit-control]
enabled = true
type = "web"
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
