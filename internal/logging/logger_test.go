package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "default config",
			cfg:  DefaultConfig(),
		},
		{
			name: "development debug",
			cfg:  Config{Level: "debug", Development: true},
		},
		{
			name: "production error",
			cfg:  Config{Level: "error", OutputPaths: []string{"stderr"}},
		},
		{
			name:    "invalid level",
			cfg:     Config{Level: "loud"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.cfg)

			if tt.wantErr {
				if err == nil {
					t.Fatal("NewLogger() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewLogger() unexpected error = %v", err)
			}
			if logger == nil {
				t.Fatal("NewLogger() returned nil logger")
			}

			// Should not panic
			logger.Debug("test debug message")
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != "warn" {
		t.Errorf("Expected default level 'warn', got %s", cfg.Level)
	}
	if cfg.Development {
		t.Error("Expected JSON output by default")
	}
	if len(cfg.OutputPaths) != 1 || cfg.OutputPaths[0] != "stderr" {
		t.Errorf("Expected output paths [stderr], got %v", cfg.OutputPaths)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
		hasError bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"info", zapcore.InfoLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"DEBUG", zapcore.DebugLevel, false},
		{" Info ", zapcore.InfoLevel, false},
		{"", zapcore.WarnLevel, false},
		{"invalid", zapcore.DebugLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)

			if tt.hasError {
				if err == nil {
					t.Errorf("Expected error for input %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error for input %q: %v", tt.input, err)
			}
			if level != tt.expected {
				t.Errorf("Expected level %v, got %v", tt.expected, level)
			}
		})
	}
}

func TestFromContext_NoLogger(t *testing.T) {
	logger := FromContext(context.Background())
	if logger == nil {
		t.Fatal("Expected no-op logger when none exists in context")
	}

	// Should not panic
	logger.Info("test message")
}

func TestAddFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := WithLogger(context.Background(), zap.New(core))

	ctx = AddFields(ctx, zap.String(FieldOperation, "tag"))
	FromContext(ctx).Info("tagging")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()[FieldOperation]; got != "tag" {
		t.Errorf("Expected operation field 'tag', got %v", got)
	}
}
