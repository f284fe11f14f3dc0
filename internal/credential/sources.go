package credential

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/flemzord/tgrelay/internal/config"
	"github.com/joho/godotenv"
)

// TokenFlag introduces the token on the command line. It is only honoured
// as the very first argument.
const TokenFlag = "--token"

// Key is the variable name looked up in the environment and the secrets file.
const Key = "KEY"

// DefaultSecretsPath is the dotenv file consulted by the third tier.
const DefaultSecretsPath = ".env"

// Params configures Sources.
type Params struct {
	// Args are the process arguments without the program name.
	Args []string

	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)

	// SecretsPath defaults to DefaultSecretsPath.
	SecretsPath string

	// Config is the validated document. A nil document disables the last tier.
	Config *config.Document

	Logger *slog.Logger
}

// Sources returns the precedence chain: command line, environment, secrets
// file, config document.
func Sources(p Params) []Source {
	if p.LookupEnv == nil {
		p.LookupEnv = os.LookupEnv
	}
	if p.SecretsPath == "" {
		p.SecretsPath = DefaultSecretsPath
	}
	if p.Logger == nil {
		p.Logger = slog.Default()
	}
	return []Source{
		ArgsSource{Args: p.Args},
		EnvSource{Key: Key, LookupEnv: p.LookupEnv},
		SecretsFileSource{Path: p.SecretsPath, Key: Key, Logger: p.Logger},
		ConfigSource{Doc: p.Config},
	}
}

// ArgsSource reads `--token <value>` from the first two arguments. The flag
// anywhere else is ignored.
type ArgsSource struct {
	Args []string
}

// Name implements Source.
func (ArgsSource) Name() string { return "command line argument " + TokenFlag }

// Lookup implements Source.
func (s ArgsSource) Lookup() (string, bool) {
	if len(s.Args) < 2 || s.Args[0] != TokenFlag {
		return "", false
	}
	return s.Args[1], s.Args[1] != ""
}

// EnvSource reads a process environment variable.
type EnvSource struct {
	Key       string
	LookupEnv func(string) (string, bool)
}

// Name implements Source.
func (s EnvSource) Name() string { return "environment variable " + s.Key }

// Lookup implements Source.
func (s EnvSource) Lookup() (string, bool) {
	v, ok := s.LookupEnv(s.Key)
	return v, ok && v != ""
}

// SecretsFileSource reads one entry of a dotenv file. The file is parsed on
// every Lookup, so it is only touched when higher tiers came up empty.
type SecretsFileSource struct {
	Path   string
	Key    string
	Logger *slog.Logger
}

// Name implements Source.
func (s SecretsFileSource) Name() string { return "secrets file " + s.Path + " entry " + s.Key }

// Lookup implements Source. A missing file is skipped silently, an
// unreadable one with a warning.
func (s SecretsFileSource) Lookup() (string, bool) {
	values, err := godotenv.Read(s.Path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.Logger.Warn("ignoring unreadable secrets file", "path", s.Path, "error", err)
		}
		return "", false
	}
	v := values[s.Key]
	return v, v != ""
}

// ConfigSource reads the token field of the validated config document.
type ConfigSource struct {
	Doc *config.Document
}

// Name implements Source.
func (ConfigSource) Name() string { return "config file token" }

// Lookup implements Source.
func (s ConfigSource) Lookup() (string, bool) {
	if s.Doc == nil {
		return "", false
	}
	return s.Doc.Token, s.Doc.Token != ""
}
