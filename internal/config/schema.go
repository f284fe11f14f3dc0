// Package config loads the bot configuration document, checks it against the
// running build's version and schema, and drives the backup-and-reset flow
// when a document is rejected.
package config

// Keys of the configuration document. Nested keys are dotted paths.
const (
	KeyConfigVersion          = "config-version"
	KeyToken                  = "token"
	KeyExplicitControlEnabled = "explicit-control.enabled"
	KeyExplicitControlType    = "explicit-control.type"
	KeyWebBind                = "web.bind"
	KeyWebAuthToken           = "web.auth-token"
	KeyTelegramAPIURL         = "telegram.api-url"
	KeyTelegramPollingTimeout = "telegram.polling-timeout"
	KeyLogLevel               = "log.level"
)

// Defaults for the optional sections.
const (
	DefaultPath           = "user/config.toml"
	DefaultWebBind        = "0.0.0.0:7171"
	DefaultTelegramAPIURL = "https://api.telegram.org"
	DefaultPollingTimeout = 30
	DefaultLogLevel       = "info"
)

// Document is a fully validated configuration. It is never handed out
// partially filled.
type Document struct {
	// ConfigVersion equals the normalized build version the document was
	// validated against.
	ConfigVersion int64

	// Token is the credential source of last resort.
	Token string

	ExplicitControl ExplicitControl
	Web             WebConfig
	Telegram        TelegramConfig
	Log             LogConfig
}

// ExplicitControl selects automatic or interactive mode selection.
type ExplicitControl struct {
	Enabled bool
	// Type is the declared mode name, matched case-insensitively.
	Type string
}

// WebConfig configures the relay HTTP server.
type WebConfig struct {
	Bind string
	// AuthToken, when set, must be sent as a bearer token to the send route.
	AuthToken string
}

// TelegramConfig configures the Bot API client.
type TelegramConfig struct {
	APIURL string
	// PollingTimeout is the getUpdates long-poll timeout in seconds.
	PollingTimeout int
}

// LogConfig configures the console log level.
type LogConfig struct {
	Level string
}

// Map renders the document back into the nested key layout of the file.
func (d *Document) Map() map[string]any {
	return map[string]any{
		KeyConfigVersion: d.ConfigVersion,
		KeyToken:         d.Token,
		"explicit-control": map[string]any{
			"enabled": d.ExplicitControl.Enabled,
			"type":    d.ExplicitControl.Type,
		},
		"web": map[string]any{
			"bind":       d.Web.Bind,
			"auth-token": d.Web.AuthToken,
		},
		"telegram": map[string]any{
			"api-url":         d.Telegram.APIURL,
			"polling-timeout": d.Telegram.PollingTimeout,
		},
		"log": map[string]any{
			"level": d.Log.Level,
		},
	}
}
