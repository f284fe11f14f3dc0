package logging

import (
	"fmt"
	"log/slog"
	"strings"
)

// LevelTrace sits below [slog.LevelDebug] and is only written to the log
// file by default.
const LevelTrace = slog.Level(-8)

// LevelSuccess sits between info and warn. It marks completed operations
// the operator should notice, such as a config reset.
const LevelSuccess = slog.Level(2)

// ParseLevel converts a case-insensitive level name to an [slog.Level].
//
// Accepted values: "trace", "debug", "info" (or ""), "success",
// "warn" (or "warning") and "error".
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "trace":
		return LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "success":
		return LevelSuccess, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (valid: trace, debug, info, success, warn, error)", s)
	}
}

// LevelName renders the custom levels by name. Without it slog would print
// LevelTrace as "DEBUG-4" and LevelSuccess as "INFO+2".
func LevelName(level slog.Level) string {
	switch level {
	case LevelTrace:
		return "TRACE"
	case LevelSuccess:
		return "SUCCESS"
	default:
		return level.String()
	}
}

// replaceAttr renames custom levels and, when timeFormat is set, formats the
// record time with it.
func replaceAttr(timeFormat string) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) > 0 {
			return a
		}
		switch a.Key {
		case slog.LevelKey:
			if level, ok := a.Value.Any().(slog.Level); ok {
				a.Value = slog.StringValue(LevelName(level))
			}
		case slog.TimeKey:
			if timeFormat != "" && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().Format(timeFormat))
			}
		}
		return a
	}
}
