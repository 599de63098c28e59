package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer

	logger := New(Config{
		Level:     DEBUG,
		Format:    JSONFormat,
		Output:    &buf,
		Component: "test",
	})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message", nil)

	output := buf.String()
	lines := strings.Split(strings.TrimSpace(output), "\n")

	if len(lines) != 4 {
		t.Errorf("Expected 4 log lines, got %d", len(lines))
	}

	for i, line := range lines {
		var entry LogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Errorf("Line %d is not valid JSON: %v", i+1, err)
		}
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	logger := New(Config{
		Level:  WARN,
		Format: JSONFormat,
		Output: &buf,
	})

	logger.Debug("should be filtered")
	logger.Info("should be filtered")
	logger.Warn("should appear")
	logger.Error("should appear", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Errorf("Expected 2 log lines after filtering, got %d", len(lines))
	}
}

func TestLoggerComponent(t *testing.T) {
	var buf bytes.Buffer

	logger := New(Config{
		Level:  INFO,
		Format: JSONFormat,
		Output: &buf,
	})

	datafeed := logger.WithComponent("datafeed")
	datafeed.Info("refresh complete")

	var entry LogEntry
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry); err != nil {
		t.Fatalf("Log line is not valid JSON: %v", err)
	}

	if entry.Component != "datafeed" {
		t.Errorf("Expected component 'datafeed', got '%s'", entry.Component)
	}
	if entry.Message != "refresh complete" {
		t.Errorf("Expected message 'refresh complete', got '%s'", entry.Message)
	}
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer

	logger := New(Config{
		Level:  INFO,
		Format: JSONFormat,
		Output: &buf,
	})

	logger.Info("station lookup", map[string]interface{}{
		"icao": "KSFO",
	})

	var entry LogEntry
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry); err != nil {
		t.Fatalf("Log line is not valid JSON: %v", err)
	}

	if entry.Fields["icao"] != "KSFO" {
		t.Errorf("Expected field icao=KSFO, got %v", entry.Fields["icao"])
	}
}

func TestLoggerTextFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := New(Config{
		Level:     INFO,
		Format:    TextFormat,
		Output:    &buf,
		Component: "server",
	})

	logger.Info("listening")

	output := buf.String()
	if !strings.Contains(output, "INFO") {
		t.Errorf("Expected text output to contain level, got: %s", output)
	}
	if !strings.Contains(output, "[server]") {
		t.Errorf("Expected text output to contain component, got: %s", output)
	}
	if !strings.Contains(output, "listening") {
		t.Errorf("Expected text output to contain message, got: %s", output)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"warning", WARN},
		{"Error", ERROR},
		{"fatal", FATAL},
		{"nope", -1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLogLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
