package logging

import (
	"log/slog"
	"testing"
)

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		level   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"DEBUG", slog.LevelDebug, false},
		{"verbose", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			err := SetLogLevel(tt.level)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for level %q", tt.level)
				}
				return
			}
			if err != nil {
				t.Fatalf("SetLogLevel(%q) returned error: %v", tt.level, err)
			}
			if got := GetLogLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLoggerRejectsInvalidLevel(t *testing.T) {
	if _, err := NewLogger("nope"); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestFilterAttrRedactsSensitiveKeys(t *testing.T) {
	for _, key := range []string{"password", "secret", "token", "apiKey"} {
		a := filterAttr(nil, slog.String(key, "value"))
		if !a.Equal(slog.Attr{}) {
			t.Errorf("attribute %q should be filtered", key)
		}
	}

	a := filterAttr(nil, slog.String("subject", "Anystring"))
	if a.Equal(slog.Attr{}) {
		t.Error("non-sensitive attribute should pass through")
	}
}

func TestTraceIDsAreUnique(t *testing.T) {
	if NewTraceID() == NewTraceID() {
		t.Error("trace IDs should be unique")
	}
	if NewSpanID() == NewSpanID() {
		t.Error("span IDs should be unique")
	}
}
