package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLogger_VerboseGating(t *testing.T) {
	var buf bytes.Buffer
	verbose := false
	log := NewWithWriter("test", &callbackChecker{callback: func() bool { return verbose }}, &buf)

	log.Debug("hidden %d", 1)
	log.Info("hidden too")
	if buf.Len() != 0 {
		t.Fatalf("Expected no output when not verbose, got %q", buf.String())
	}

	log.Warn("shown")
	if !strings.Contains(buf.String(), "WARN [test] shown") {
		t.Errorf("Expected warning line, got %q", buf.String())
	}

	verbose = true
	buf.Reset()
	log.Debug("now %s", "visible")
	if !strings.Contains(buf.String(), "DEBUG [test] now visible") {
		t.Errorf("Expected debug line, got %q", buf.String())
	}
}

func TestLogger_ErrorWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("", nil, &buf)

	log.ErrorWithFields("scan failed", []Field{Provider("mock"), Status(502), Error(errors.New("boom"))})

	line := buf.String()
	for _, want := range []string{"ERROR [main] scan failed", "provider=mock", "status=502", "error=boom"} {
		if !strings.Contains(line, want) {
			t.Errorf("Expected %q in %q", want, line)
		}
	}
}

func TestLogger_PercentWithoutArgs(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("ui", nil, &buf)

	log.Warn("confidence 92%")
	if !strings.Contains(buf.String(), "confidence 92%") {
		t.Errorf("Expected literal percent sign, got %q", buf.String())
	}
}

func TestLogger_WithComponentSharesWriter(t *testing.T) {
	var buf bytes.Buffer
	root := NewWithWriter("root", nil, &buf)
	child := root.WithComponent("child")

	child.Error("oops")
	if !strings.Contains(buf.String(), "[child] oops") {
		t.Errorf("Expected child component in output, got %q", buf.String())
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Error("dropped")
	log.WithComponent("x").Warn("dropped")
}
