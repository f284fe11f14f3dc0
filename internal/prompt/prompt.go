// Package prompt isolates interactive questions behind a single-method
// interface so bootstrap code never reads standard input directly.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// ErrNoInput is returned by Disabled and wraps every failure to obtain an
// answer (closed stdin, aborted form).
var ErrNoInput = errors.New("prompt: no input available")

// Prompter asks the operator a question and returns the raw answer.
type Prompter interface {
	Ask(question string) (string, error)
}

// Default returns the prompter for the current process. With noInput set,
// every question fails immediately so unattended runs exit instead of hanging.
// A terminal on both stdin and stdout gets a huh form, anything else reads lines.
func Default(noInput bool) Prompter {
	if noInput {
		return Disabled{}
	}
	if isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd()) {
		return FormPrompter{}
	}
	return NewLinePrompter(os.Stdin, os.Stdout)
}

// LinePrompter writes the question to out and reads one line from in.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a LinePrompter.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Ask implements Prompter. A final line without a trailing newline is still
// returned; a read with nothing left fails with ErrNoInput.
func (p *LinePrompter) Ask(question string) (string, error) {
	if _, err := fmt.Fprint(p.out, question); err != nil {
		return "", fmt.Errorf("prompt: writing question: %w", err)
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", fmt.Errorf("%w: %w", ErrNoInput, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// FormPrompter renders each question as a single huh input field.
type FormPrompter struct{}

// Ask implements Prompter.
func (FormPrompter) Ask(question string) (string, error) {
	var answer string
	err := huh.NewInput().
		Title(strings.TrimSpace(question)).
		Value(&answer).
		Run()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoInput, err)
	}
	return answer, nil
}

// Disabled refuses every question.
type Disabled struct{}

// Ask implements Prompter.
func (Disabled) Ask(string) (string, error) {
	return "", ErrNoInput
}

// IsYes reports whether answer is an affirmative y or yes, ignoring case and
// surrounding whitespace.
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
