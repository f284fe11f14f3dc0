// Package bootstrap turns the process inputs into the one immutable Result
// the rest of the bot runs on: config document, then credential, then mode.
package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/flemzord/tgrelay/internal/buildinfo"
	"github.com/flemzord/tgrelay/internal/config"
	"github.com/flemzord/tgrelay/internal/credential"
	"github.com/flemzord/tgrelay/internal/defaults"
	"github.com/flemzord/tgrelay/internal/mode"
	"github.com/flemzord/tgrelay/internal/prompt"
	"github.com/flemzord/tgrelay/internal/security"
)

// Params are the process inputs. Zero values fall back to the process
// environment and the packaged defaults.
type Params struct {
	ConfigPath  string
	SecretsPath string

	// Args are the process arguments without the program name.
	Args      []string
	LookupEnv func(string) (string, bool)

	// Version is the running build version, normalized before comparing it
	// with config-version.
	Version string

	// Default is written by the reset flow. Defaults to the embedded
	// document matching the ConfigPath extension.
	Default []byte

	Prompter prompt.Prompter
	Logger   *slog.Logger

	// Redactor learns the resolved token. May be nil.
	Redactor *security.Redactor
}

// Result is the outcome of a successful bootstrap. It is not modified after
// Run returns.
type Result struct {
	Credential credential.Credential
	Config     *config.Document
	Mode       mode.Mode
}

// Run loads and validates the config, resolves the credential and selects
// the mode. A rejected config goes through config.Recovery, so the error is
// then config.ErrReset, config.ErrDeclined or the reset I/O failure.
// Other failures are credential.ErrUnresolved or a prompter error.
func Run(p Params) (*Result, error) {
	p = withDefaults(p)

	version, err := buildinfo.NormalizeVersion(p.Version)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	doc, err := config.Load(p.ConfigPath, version)
	if err != nil {
		if !config.Recoverable(err) {
			return nil, err
		}
		rec := &config.Recovery{
			Path:     p.ConfigPath,
			Default:  p.Default,
			Prompter: p.Prompter,
			Logger:   p.Logger,
		}
		return nil, rec.Run(err)
	}
	p.Logger.Debug("config loaded", "path", p.ConfigPath, "config_version", doc.ConfigVersion)

	resolver := credential.NewResolver(p.Logger, credential.Sources(credential.Params{
		Args:        p.Args,
		LookupEnv:   p.LookupEnv,
		SecretsPath: p.SecretsPath,
		Config:      doc,
		Logger:      p.Logger,
	})...)
	cred, err := resolver.Resolve()
	if err != nil {
		return nil, err
	}
	if p.Redactor != nil {
		p.Redactor.AddLiteral(cred.Value())
	}

	selector := &mode.Selector{Prompter: p.Prompter, Logger: p.Logger}
	m, err := selector.Select(doc)
	if err != nil {
		return nil, err
	}
	p.Logger.Info("running in "+string(m)+" mode")

	return &Result{Credential: cred, Config: doc, Mode: m}, nil
}

func withDefaults(p Params) Params {
	if p.ConfigPath == "" {
		p.ConfigPath = config.DefaultPath
	}
	if p.Version == "" {
		p.Version = buildinfo.Version
	}
	if p.Default == nil {
		p.Default = defaults.For(p.ConfigPath)
	}
	if p.Prompter == nil {
		p.Prompter = prompt.Disabled{}
	}
	if p.Logger == nil {
		p.Logger = slog.Default()
	}
	return p
}
