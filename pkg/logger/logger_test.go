package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)
	l.Debug().Msg("hidden")
	l.Info().Str("step", "connect").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message written at info level: %s", out)
	}
	if !strings.Contains(out, `"step":"connect"`) || !strings.Contains(out, "shown") {
		t.Errorf("info message missing: %s", out)
	}
	if New(&buf, true).GetLevel() != DebugLevel {
		t.Error("debug logger is not at debug level")
	}
}

func TestExtend(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)
	l.Extend(l.With().Str("backend", "glx")).Info().Msg("x")
	if !strings.Contains(buf.String(), `"backend":"glx"`) {
		t.Errorf("extended field missing: %s", buf.String())
	}
}
