package security

import (
	"testing"
)

func TestRedactor_DefaultPatterns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare bot token",
			input: "token is 123456789:AAHdqTcvCH1vGWJxfSeofSAs0K5PALDsaw0",
			want:  "token is " + RedactPlaceholder,
		},
		{
			name:  "token in api url",
			input: `Post "https://api.telegram.org/bot123456789:AAHdqTcv/getUpdates": timeout`,
			want:  `Post "https://api.telegram.org` + RedactPlaceholder + `/getUpdates": timeout`,
		},
		{
			name:  "chat id and text",
			input: "sent to 123456789: hello",
			want:  "sent to 123456789: hello",
		},
		{
			name:  "no secrets",
			input: "this is a normal message",
			want:  "this is a normal message",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	r := NewRedactor()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := r.Redact(tt.input)
			if got != tt.want {
				t.Errorf("Redact(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRedactor_Literals(t *testing.T) {
	t.Parallel()

	r := NewRedactor()
	r.AddLiteral("my-super-secret-value")
	r.AddLiteral("my-super-secret-value")
	r.AddLiteral("")
	r.AddLiteral("T")
	r.AddLiteral("short")

	if len(r.literals) != 1 {
		t.Errorf("got %d literals, want 1", len(r.literals))
	}

	got := r.Redact("the token is my-super-secret-value here")
	want := "the token is " + RedactPlaceholder + " here"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := r.Redact("Telegram started, short reply"); got != "Telegram started, short reply" {
		t.Errorf("short literals must not be redacted, got %q", got)
	}
}

func TestRedactor_RedactMap(t *testing.T) {
	t.Parallel()

	r := NewRedactor()
	r.AddLiteral("literal-secret")

	m := map[string]any{
		"config-version": int64(1),
		"token":          "fake-test-value", //nolint:gosec // not a real token
		"data":           "has literal-secret inside",
		"empty_key":      "",
		"explicit-control": map[string]any{
			"enabled": true,
			"type":    "web",
		},
		"list": []any{
			map[string]any{
				"secret": "list-secret",
			},
		},
	}

	r.RedactMap(m)

	if m["token"] != RedactPlaceholder {
		t.Errorf("token = %v, want redacted", m["token"])
	}
	if m["data"] != "has "+RedactPlaceholder+" inside" {
		t.Errorf("data = %v, want literal redacted", m["data"])
	}
	if m["config-version"] != int64(1) {
		t.Errorf("config-version = %v, want 1", m["config-version"])
	}
	if m["empty_key"] != "" {
		t.Errorf("empty_key = %v, want empty", m["empty_key"])
	}

	ec := m["explicit-control"].(map[string]any)
	if ec["type"] != "web" || ec["enabled"] != true {
		t.Errorf("explicit-control = %v, want untouched", ec)
	}

	item := m["list"].([]any)[0].(map[string]any)
	if item["secret"] != RedactPlaceholder {
		t.Errorf("list[0].secret = %v, want redacted", item["secret"])
	}
}

func FuzzRedactor(f *testing.F) {
	f.Add("normal text")
	f.Add("123456789:AAHdqTcvCH1vGWJxfSeofSAs0K5PALDsaw0")
	f.Add("/bot1:x")
	f.Add("")

	r := NewRedactor()
	r.AddLiteral("literal-secret")

	f.Fuzz(func(t *testing.T, input string) {
		out := r.Redact(input)
		if out == "" && input != "" {
			t.Errorf("Redact(%q) returned empty output", input)
		}
	})
}
