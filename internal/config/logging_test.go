package config

import (
	"log/slog"
	"testing"
)

func TestNormalizeLogLevel(t *testing.T) {
	cases := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"  warn  ", LogLevelWarn},
		{"error", LogLevelError},
		{"nope", LogLevelInfo},
		{"", LogLevelInfo},
	}
	for _, c := range cases {
		if got := NormalizeLogLevel(c.in); got != c.want {
			t.Errorf("NormalizeLogLevel(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLogLevelSlog(t *testing.T) {
	cases := []struct {
		in   LogLevel
		want slog.Level
	}{
		{LogLevelDebug, slog.LevelDebug},
		{LogLevelInfo, slog.LevelInfo},
		{LogLevelWarn, slog.LevelWarn},
		{LogLevelError, slog.LevelError},
		{LogLevel("bogus"), slog.LevelInfo},
	}
	for _, c := range cases {
		if got := c.in.Slog(); got != c.want {
			t.Errorf("%q.Slog() = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNormalizeLogFormat(t *testing.T) {
	cases := []struct {
		in   string
		want LogFormat
	}{
		{"json", LogFormatJSON},
		{"JSON", LogFormatJSON},
		{"text", LogFormatText},
		{"xml", LogFormatText},
		{"", LogFormatText},
	}
	for _, c := range cases {
		if got := NormalizeLogFormat(c.in); got != c.want {
			t.Errorf("NormalizeLogFormat(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
