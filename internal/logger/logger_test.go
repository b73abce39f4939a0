package logger

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInitWriterEmitsJSONAndFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	log := InitWriter("info", &buf)

	log.DebugObj("hidden", "k", 1)
	log.InfoObj("visible", "job", map[string]any{"id": "j1"})
	if err := Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug entry should be filtered: %s", out)
	}
	if !strings.Contains(out, `"msg":"visible"`) || !strings.Contains(out, `"job":{"id":"j1"}`) {
		t.Fatalf("unexpected output: %s", out)
	}
	if !strings.Contains(out, `"ts":`) {
		t.Fatalf("expected ts key: %s", out)
	}
}
