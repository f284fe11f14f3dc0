package config

import (
	"errors"
	"fmt"
	"math"
	"net"
	"net/url"
	"strings"

	"github.com/flemzord/tgrelay/internal/logging"
)

// validate checks the version first: a document from another release is
// reported as ErrVersionMismatch even when its fields are also wrong.
// Schema violations are collected and joined into a single ErrSchemaInvalid.
func validate(path string, tree map[string]any, version int64) (*Document, error) {
	if err := checkVersion(tree, version); err != nil {
		return nil, newError(ErrVersionMismatch, path, err)
	}

	s := &schema{tree: tree}
	doc := &Document{
		ConfigVersion: version,
		Token:         s.requiredString(KeyToken),
		ExplicitControl: ExplicitControl{
			Enabled: s.requiredBool(KeyExplicitControlEnabled),
			Type:    s.requiredString(KeyExplicitControlType),
		},
		Web: WebConfig{
			Bind:      s.optionalString(KeyWebBind, DefaultWebBind),
			AuthToken: s.optionalString(KeyWebAuthToken, ""),
		},
		Telegram: TelegramConfig{
			APIURL:         s.optionalString(KeyTelegramAPIURL, DefaultTelegramAPIURL),
			PollingTimeout: int(s.optionalInt(KeyTelegramPollingTimeout, DefaultPollingTimeout)),
		},
		Log: LogConfig{
			Level: s.optionalString(KeyLogLevel, DefaultLogLevel),
		},
	}

	if len(s.errs) == 0 {
		s.errs = append(s.errs, validateValues(doc)...)
	}
	if err := errors.Join(s.errs...); err != nil {
		return nil, newError(ErrSchemaInvalid, path, err)
	}
	return doc, nil
}

func checkVersion(tree map[string]any, version int64) error {
	v, ok := tree[KeyConfigVersion]
	if !ok {
		return fmt.Errorf("%s is missing", KeyConfigVersion)
	}
	got, ok := asInt(v)
	if !ok {
		return fmt.Errorf("%s: expected integer, got %s", KeyConfigVersion, typeName(v))
	}
	if got != version {
		return fmt.Errorf("%s is %d, this build expects %d", KeyConfigVersion, got, version)
	}
	return nil
}

// validateValues checks constraints on well-typed optional fields.
func validateValues(doc *Document) []error {
	var errs []error

	if _, _, err := net.SplitHostPort(doc.Web.Bind); err != nil {
		errs = append(errs, fmt.Errorf("%s: invalid address %q", KeyWebBind, doc.Web.Bind))
	}

	u, err := url.Parse(doc.Telegram.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("%s: must be a valid http/https URL, got %q", KeyTelegramAPIURL, doc.Telegram.APIURL))
	}

	if doc.Telegram.PollingTimeout < 0 || doc.Telegram.PollingTimeout > 50 {
		errs = append(errs, fmt.Errorf("%s: must be 0-50, got %d", KeyTelegramPollingTimeout, doc.Telegram.PollingTimeout))
	}

	if _, err := logging.ParseLevel(doc.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeyLogLevel, err))
	}

	return errs
}

// schema reads typed values out of the generic tree and records every
// violation instead of stopping at the first one.
type schema struct {
	tree map[string]any
	errs []error
}

func (s *schema) requiredString(key string) string {
	v, ok := lookup(s.tree, key)
	if !ok {
		s.errs = append(s.errs, fmt.Errorf("%s is missing", key))
		return ""
	}
	str, ok := v.(string)
	if !ok {
		s.errs = append(s.errs, fmt.Errorf("%s: expected string, got %s", key, typeName(v)))
	}
	return str
}

func (s *schema) requiredBool(key string) bool {
	v, ok := lookup(s.tree, key)
	if !ok {
		s.errs = append(s.errs, fmt.Errorf("%s is missing", key))
		return false
	}
	b, ok := v.(bool)
	if !ok {
		s.errs = append(s.errs, fmt.Errorf("%s: expected boolean, got %s", key, typeName(v)))
	}
	return b
}

func (s *schema) optionalString(key, def string) string {
	v, ok := lookup(s.tree, key)
	if !ok {
		return def
	}
	str, ok := v.(string)
	if !ok {
		s.errs = append(s.errs, fmt.Errorf("%s: expected string, got %s", key, typeName(v)))
		return def
	}
	return str
}

func (s *schema) optionalInt(key string, def int64) int64 {
	v, ok := lookup(s.tree, key)
	if !ok {
		return def
	}
	n, ok := asInt(v)
	if !ok || n > math.MaxInt32 || n < math.MinInt32 {
		s.errs = append(s.errs, fmt.Errorf("%s: expected integer, got %s", key, typeName(v)))
		return def
	}
	return n
}

// lookup resolves a dotted key through nested tables.
func lookup(tree map[string]any, key string) (any, bool) {
	parts := strings.Split(key, ".")
	var cur any = tree
	for _, part := range parts {
		table, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = table[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// asInt accepts the integer types produced by the TOML and YAML decoders.
// Floats are rejected even when integral.
func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int64, uint64:
		return "integer"
	case float64:
		return "float"
	case map[string]any:
		return "table"
	case []any, []map[string]any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
