package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	charmlog "github.com/charmbracelet/log"
)

func TestLogLevel_ToCharmlogLevel(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  charmlog.Level
	}{
		{DebugLevel, charmlog.DebugLevel},
		{InfoLevel, charmlog.InfoLevel},
		{WarnLevel, charmlog.WarnLevel},
		{ErrorLevel, charmlog.ErrorLevel},
		{DisabledLevel, disabledCharmLevel},
		{LogLevel("unknown"), charmlog.InfoLevel},
	}
	for _, tt := range tests {
		if got := tt.level.ToCharmlogLevel(); got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	if lvl, err := ParseLevel(" WARN "); err != nil || lvl != WarnLevel {
		t.Fatalf("ParseLevel = %q, %v", lvl, err)
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&Config{Level: WarnLevel, Output: &buf})
	l.Info("hidden")
	l.Warn("shown", "file", "Taskfile.yml")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info leaked through warn level:\n%s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "Taskfile.yml") {
		t.Errorf("missing warn line:\n%s", out)
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&Config{Level: DebugLevel, Output: &buf, JSON: true}).With("stage", "parse")
	l.Debug("formatted", "changed", true)

	var rec map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec); err != nil {
		t.Fatalf("not JSON: %v\n%s", err, buf.String())
	}
	if rec["msg"] != "formatted" || rec["stage"] != "parse" || rec["changed"] != true {
		t.Fatalf("record = %v", rec)
	}
}

func TestNewLogger_Disabled(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&Config{Level: DisabledLevel, Output: &buf})
	l.Error("nothing")
	if buf.Len() != 0 {
		t.Fatalf("disabled logger wrote %q", buf.String())
	}
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	want := NewLogger(&Config{Level: InfoLevel, Output: &buf})
	ctx := WithLogger(context.Background(), want)
	if got := FromContext(ctx); got != want {
		t.Fatalf("FromContext returned %v", got)
	}

	if FromContext(context.Background()) == nil {
		t.Fatal("missing logger must fall back to the default")
	}
	wrong := context.WithValue(context.Background(), ctxKey{}, "not a logger")
	if FromContext(wrong) == nil {
		t.Fatal("wrong type must fall back to the default")
	}
	NewNopLogger().With("k", "v").Info("dropped")
}

func TestSetup(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	if err := Setup("bogus", false); err == nil {
		t.Fatal("expected error")
	}
	if err := Setup("debug", true); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if _, ok := Default().(*loggerImpl); !ok {
		t.Fatalf("default = %T", Default())
	}
	SetDefault(nil)
	if _, ok := Default().(nopLogger); !ok {
		t.Fatalf("nil default = %T", Default())
	}
}
