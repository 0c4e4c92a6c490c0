package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/preston-bernstein/nba-explorer/internal/config"
)

func TestMainSkipsWhenEnvSet(t *testing.T) {
	t.Setenv("SKIP_SERVER_RUN", "1")
	main()
}

func TestNewLoggerCarriesServiceAndVersion(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Config{LogLevel: "info", LogFormat: "json"}
	cfg.Metrics.ServiceName = "nba-explorer"

	newLogger(cfg, &buf).Info("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json log line, got %q: %v", buf.String(), err)
	}
	if entry["service"] != "nba-explorer" || entry["version"] != appVersion {
		t.Fatalf("expected service and version attrs, got %v", entry)
	}
}

func TestLogStartupReportsEnvFile(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Config{Provider: "fixture", PlayerPolicy: "roster", Port: "8080", LogFormat: "text"}
	logger := newLogger(cfg, &buf)

	logStartup(logger, cfg, ".env", nil)
	if out := buf.String(); !strings.Contains(out, "loaded env file") || !strings.Contains(out, "provider=fixture") {
		t.Fatalf("unexpected startup log %q", out)
	}

	buf.Reset()
	logStartup(logger, cfg, "", errors.New("bad line"))
	if out := buf.String(); !strings.Contains(out, "env file ignored") || !strings.Contains(out, "bad line") {
		t.Fatalf("expected env warning, got %q", out)
	}
}
