package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLogger_TextFormat_SortedKeysAndLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatText, App: "test", Out: &buf})

	l.Debug("hidden", nil)
	l.Info("snapshot loaded", map[string]any{"rows": 3})

	out := strings.TrimSpace(buf.String())
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug entry should be filtered, got %q", out)
	}
	if !strings.Contains(out, "app=test") || !strings.Contains(out, "rows=3") {
		t.Fatalf("expected fields in output, got %q", out)
	}
	if strings.Index(out, "app=") > strings.Index(out, "rows=") {
		t.Fatalf("expected sorted keys, got %q", out)
	}
}

func TestLogger_JSONFormat_WithMergesFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Debug, Format: FormatJSON, Out: &buf}).
		With(map[string]any{"component": "animals", "": "ignored"})

	l.Warn("store slow", map[string]any{"op": "read"})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json line, got %q: %v", buf.String(), err)
	}
	if entry["component"] != "animals" || entry["op"] != "read" || entry["level"] != "warn" {
		t.Fatalf("unexpected entry %#v", entry)
	}
	if _, ok := entry[""]; ok {
		t.Fatalf("empty keys must be dropped: %#v", entry)
	}
}

func TestParseLevel_Defaults(t *testing.T) {
	cases := map[string]Level{
		"":        Info,
		"DEBUG":   Debug,
		"warning": Warn,
		"error":   Error,
		"bogus":   Info,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
