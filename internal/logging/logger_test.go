package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		raw  string
		want zapcore.Level
		ok   bool
	}{
		{"debug", zapcore.DebugLevel, true},
		{"info", zapcore.InfoLevel, true},
		{"", zapcore.InfoLevel, true},
		{"WARN", zapcore.WarnLevel, true},
		{"warning", zapcore.WarnLevel, true},
		{"error", zapcore.ErrorLevel, true},
		{"loud", zapcore.InfoLevel, false},
	}
	for _, tc := range cases {
		level, err := ParseLevel(tc.raw)
		if (err == nil) != tc.ok {
			t.Fatalf("ParseLevel(%q) error = %v, want ok=%v", tc.raw, err, tc.ok)
		}
		if err == nil && level != tc.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tc.raw, level, tc.want)
		}
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(Config{Level: "loud"}); err == nil {
		t.Fatalf("unknown level must fail")
	}
}

func TestNewTestLoggerIsSilent(t *testing.T) {
	logger := NewTestLogger()
	//1.- Must not panic or write anywhere.
	logger.Info("quiet")
	logger.Debug("quiet")
}
