package config

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLoggerTo(t *testing.T) {
	tests := []struct {
		name      string
		env       string
		level     string
		wantDebug bool
		wantInfo  bool
		wantJSON  bool
	}{
		{name: "development logs debug as text", env: "development", wantDebug: true, wantInfo: true},
		{name: "production logs info as json", env: "production", wantInfo: true, wantJSON: true},
		{name: "level override in production", env: "production", level: "debug", wantDebug: true, wantInfo: true, wantJSON: true},
		{name: "level override silences info", env: "development", level: "error"},
		{name: "unknown level keeps env default", env: "production", level: "loud", wantInfo: true, wantJSON: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLoggerTo(&buf, tt.env, tt.level)

			logger.Debug("debug line")
			logger.Info("info line")
			out := buf.String()

			if got := strings.Contains(out, "debug line"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "info line"); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v", got, tt.wantInfo)
			}
			if !tt.wantInfo {
				return
			}

			lines := strings.Split(strings.TrimSpace(out), "\n")
			last := lines[len(lines)-1]
			if tt.wantJSON {
				var record map[string]any
				if err := json.Unmarshal([]byte(last), &record); err != nil {
					t.Fatalf("expected JSON record, got %q: %v", last, err)
				}
				if record["service"] != serviceName {
					t.Errorf("service = %v, want %s", record["service"], serviceName)
				}
			} else if !strings.Contains(last, "service="+serviceName) {
				t.Errorf("text record %q missing service attribute", last)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	for _, level := range []string{"debug", "INFO", "warn", "Error"} {
		if _, err := ParseLevel(level); err != nil {
			t.Errorf("ParseLevel(%q) unexpected error: %v", level, err)
		}
	}
	if _, err := ParseLevel("trace"); err == nil {
		t.Error("ParseLevel(trace) expected error")
	}
}
