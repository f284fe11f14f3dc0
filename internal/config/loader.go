package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load reads the document at path, parses it into a generic mapping and
// validates it against version, the normalized build version.
//
// Every failure is an *Error whose kind is one of ErrParse, ErrMissing,
// ErrVersionMismatch or ErrSchemaInvalid. A missing file counts as
// ErrMissing so the caller can offer the same reset flow as for a broken one.
func Load(path string, version int64) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(ErrMissing, path, err)
		}
		return nil, newError(ErrParse, path, fmt.Errorf("reading: %w", err))
	}

	tree, err := decode(path, raw)
	if err != nil {
		return nil, newError(ErrParse, path, err)
	}
	if len(tree) == 0 {
		return nil, newError(ErrMissing, path, errors.New("document is empty"))
	}

	return validate(path, tree, version)
}

// decode picks the format from the file extension: YAML for .yaml and .yml,
// TOML otherwise.
func decode(path string, raw []byte) (map[string]any, error) {
	tree := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &tree); err != nil {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
	default:
		if err := toml.Unmarshal(raw, &tree); err != nil {
			return nil, fmt.Errorf("parsing toml: %w", err)
		}
	}
	return tree, nil
}

// Tree parses the document at path without validating it. It backs the
// `config check --print` output, which must work on rejected documents too.
func Tree(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	tree, err := decode(path, raw)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return tree, nil
}
