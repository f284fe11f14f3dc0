// Package credential resolves the single bot token used for the lifetime of
// the process from an ordered list of sources.
package credential

import (
	"errors"
	"log/slog"

	"github.com/flemzord/tgrelay/internal/security"
)

// ErrUnresolved is returned when no source yields a token.
var ErrUnresolved = errors.New("credential: no bot token found (tried --token, KEY environment variable, secrets file, config token)")

// Credential is an opaque bot token. It prints and logs redacted; use
// Value to obtain the token itself.
type Credential string

// Value returns the raw token.
func (c Credential) Value() string {
	return string(c)
}

// String implements fmt.Stringer.
func (c Credential) String() string {
	return security.RedactPlaceholder
}

// LogValue implements slog.LogValuer.
func (c Credential) LogValue() slog.Value {
	return slog.StringValue(security.RedactPlaceholder)
}

// Source is one tier of the precedence chain.
type Source interface {
	// Name describes the tier in log output.
	Name() string
	// Lookup returns the token and true when the tier supplies a non-empty one.
	Lookup() (string, bool)
}

// Resolver tries its sources in order and returns the first token found.
// Values from different sources are never merged.
type Resolver struct {
	sources []Source
	logger  *slog.Logger
}

// NewResolver creates a Resolver over sources, highest precedence first.
func NewResolver(logger *slog.Logger, sources ...Source) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{sources: sources, logger: logger}
}

// Resolve returns the token of the first source that has one. The source
// name is logged; the token never is.
func (r *Resolver) Resolve() (Credential, error) {
	for _, src := range r.sources {
		if token, ok := src.Lookup(); ok {
			r.logger.Info("bot token resolved", "source", src.Name())
			return Credential(token), nil
		}
		r.logger.Debug("no bot token", "source", src.Name())
	}
	return "", ErrUnresolved
}
