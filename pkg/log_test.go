package pkg

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// withBufferLogger installs a text logger writing to buf for the duration of t.
func withBufferLogger(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	original := DefaultLogger
	originalLevel := GetLogLevel()
	t.Cleanup(func() {
		SetLogger(original)
		SetLogLevel(originalLevel)
	})
	SetLogLevel(level)
	SetLogger(NewLogger(&buf, nil))
	return &buf
}

func TestSetLogLevel(t *testing.T) {
	original := GetLogLevel()
	defer SetLogLevel(original)

	tests := []struct {
		name  string
		level slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetLogLevel(tt.level)
			if got := GetLogLevel(); got != tt.level {
				t.Errorf("GetLogLevel() = %v, want %v", got, tt.level)
			}
		})
	}
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger.Info("image assembled")
	if !strings.Contains(buf.String(), `"msg":"image assembled"`) {
		t.Errorf("JSON log output missing message: %s", buf.String())
	}
}

func TestLogComponents(t *testing.T) {
	tests := []struct {
		name      string
		log       func(Component, string, ...any)
		component Component
		level     slog.Level
	}{
		{"debug", LogDebug, ComponentSchema, slog.LevelDebug},
		{"info", LogInfo, ComponentAssembler, slog.LevelInfo},
		{"warn", LogWarn, ComponentConfig, slog.LevelWarn},
		{"error", LogError, ComponentEncoder, slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := withBufferLogger(t, slog.LevelDebug)
			tt.log(tt.component, tt.name+" message", "config", 0)
			output := buf.String()
			if !strings.Contains(output, tt.name+" message") {
				t.Errorf("log missing message: %s", output)
			}
			if !strings.Contains(output, "component="+string(tt.component)) {
				t.Errorf("log missing component: %s", output)
			}
		})
	}
}

func TestLogBelowLevelSuppressed(t *testing.T) {
	buf := withBufferLogger(t, slog.LevelWarn)
	LogDebug(ComponentEmit, "hidden")
	LogInfo(ComponentEmit, "hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output below warn, got %q", buf.String())
	}
}
