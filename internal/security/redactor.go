// Package security scrubs bot credentials from log output and from values
// shown back to the operator.
package security

import (
	"regexp"
	"strings"
	"sync"
)

// RedactPlaceholder is the replacement string for redacted secrets.
const RedactPlaceholder = "***REDACTED***"

// secretKeyPattern matches map keys that likely contain secrets.
var secretKeyPattern = regexp.MustCompile(`(?i)(secret|token|password|key|credential)`)

// Redactor replaces secret values in strings and maps with a redaction placeholder.
// It supports both regex pattern matching (for the Bot API token format) and
// literal value matching (for the credential resolved at startup).
// All methods are safe for concurrent use.
type Redactor struct {
	mu       sync.RWMutex
	patterns []*regexp.Regexp
	literals []string
}

// NewRedactor creates a Redactor pre-loaded with DefaultPatterns.
func NewRedactor() *Redactor {
	return &Redactor{
		patterns: DefaultPatterns(),
	}
}

// MinLiteralLength is the shortest literal AddLiteral accepts. Shorter
// values would match ordinary words; real bot tokens are caught by
// DefaultPatterns anyway.
const MinLiteralLength = 8

// AddLiteral adds a literal secret value that should be redacted on sight.
// Values shorter than MinLiteralLength and duplicates are ignored.
func (r *Redactor) AddLiteral(secret string) {
	if len(secret) < MinLiteralLength {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, lit := range r.literals {
		if lit == secret {
			return
		}
	}
	r.literals = append(r.literals, secret)
}

// Redact replaces all known secret patterns and literal values in s
// with RedactPlaceholder.
func (r *Redactor) Redact(s string) string {
	if s == "" {
		return s
	}

	r.mu.RLock()
	patterns := r.patterns
	literals := r.literals
	r.mu.RUnlock()

	// Literals first: a registered token may not match the generic pattern.
	for _, lit := range literals {
		if strings.Contains(s, lit) {
			s = strings.ReplaceAll(s, lit, RedactPlaceholder)
		}
	}

	for _, p := range patterns {
		s = p.ReplaceAllString(s, RedactPlaceholder)
	}

	return s
}

// RedactMap walks a map and replaces values whose keys match common secret
// key names (secret, token, password, key, credential).
// This is used when printing a parsed config document.
func (r *Redactor) RedactMap(m map[string]any) {
	for k, v := range m {
		if secretKeyPattern.MatchString(k) {
			if s, ok := v.(string); ok && s != "" {
				m[k] = RedactPlaceholder
				continue
			}
			// Fall through to handle nested maps/slices under secret-named keys.
		}
		switch val := v.(type) {
		case map[string]any:
			r.RedactMap(val)
		case []any:
			for _, item := range val {
				if sub, ok := item.(map[string]any); ok {
					r.RedactMap(sub)
				}
			}
		case string:
			if redacted := r.Redact(val); redacted != val {
				m[k] = redacted
			}
		}
	}
}

// DefaultPatterns returns compiled regex patterns for Telegram Bot API
// tokens, bare or embedded in a request URL.
func DefaultPatterns() []*regexp.Regexp {
	return []*regexp.Regexp{
		// https://api.telegram.org/bot<token>/method
		regexp.MustCompile(`/bot[0-9]{5,}:[A-Za-z0-9_-]+`),
		// <bot id>:<35 char hash>
		regexp.MustCompile(`\b[0-9]{5,}:[A-Za-z0-9_-]{30,}`),
	}
}
