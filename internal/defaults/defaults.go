// Package defaults provides the embedded default configuration written by
// the config reset flow and the `config reset` subcommand.
package defaults

import (
	_ "embed"
	"path/filepath"
	"strings"
)

//go:embed config.toml
var ConfigTOML []byte

//go:embed config.yaml
var ConfigYAML []byte

// For returns the default document in the format the loader expects for
// path: YAML for .yaml and .yml, TOML otherwise.
func For(path string) []byte {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ConfigYAML
	default:
		return ConfigTOML
	}
}
