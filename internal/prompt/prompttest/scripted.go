// Package prompttest provides a scripted prompt.Prompter for tests.
package prompttest

import (
	"sync"

	"github.com/flemzord/tgrelay/internal/prompt"
)

// Scripted replays a fixed list of answers and records every question.
// Once the script is exhausted Ask fails with prompt.ErrNoInput.
type Scripted struct {
	mu        sync.Mutex
	answers   []string
	questions []string
}

// Compile-time check.
var _ prompt.Prompter = (*Scripted)(nil)

// New creates a Scripted prompter that answers in order.
func New(answers ...string) *Scripted {
	return &Scripted{answers: answers}
}

// Ask implements prompt.Prompter.
func (s *Scripted) Ask(question string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.questions = append(s.questions, question)
	if len(s.answers) == 0 {
		return "", prompt.ErrNoInput
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

// Questions returns the questions asked so far.
func (s *Scripted) Questions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.questions...)
}
