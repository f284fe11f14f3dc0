// Package mode picks the operating mode from the config document or, when
// explicit control is off, from the operator.
package mode

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/flemzord/tgrelay/internal/config"
	"github.com/flemzord/tgrelay/internal/prompt"
)

// Mode is the operating mode.
type Mode string

const (
	// Web serves the HTTP relay and polls the bot.
	Web Mode = "web"
	// CLI is the terminal panel.
	CLI Mode = "cli"
)

// ErrInvalid is returned by Parse for anything but web or cli.
var ErrInvalid = errors.New("mode: invalid mode")

const (
	question          = "Enter 'web' for web mode, 'cli' for cli (terminal) mode: "
	invalidInputMsg   = "Invalid input, please enter 'web' or 'cli'"
	invalidDeclareMsg = "Invalid explicit control mode, using cli (terminal) mode"
)

// Parse matches s against the mode names, ignoring case and surrounding
// whitespace.
func Parse(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case Web, CLI:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalid, s)
	}
}

// Selector resolves the mode for a validated document.
type Selector struct {
	Prompter prompt.Prompter
	Logger   *slog.Logger
}

// Select returns the declared mode when explicit control is enabled, falling
// back to CLI for an unknown name. Otherwise it asks until the answer is
// valid. Only a prompter failure ends the loop with an error.
func (s *Selector) Select(doc *config.Document) (Mode, error) {
	if doc.ExplicitControl.Enabled {
		s.Logger.Info("explicit control enabled")
		m, err := Parse(doc.ExplicitControl.Type)
		if err != nil {
			s.Logger.Warn(invalidDeclareMsg, "type", doc.ExplicitControl.Type)
			return CLI, nil
		}
		return m, nil
	}

	s.Logger.Info("explicit control disabled")
	for {
		answer, err := s.Prompter.Ask(question)
		if err != nil {
			return "", fmt.Errorf("mode: asking for mode: %w", err)
		}
		m, err := Parse(answer)
		if err == nil {
			return m, nil
		}
		s.Logger.Warn(invalidInputMsg)
	}
}
