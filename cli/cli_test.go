package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogTo(t *testing.T) {
	var buf bytes.Buffer
	LogTo(&buf, "test message")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("expected output to contain 'test message', got: %s", output)
	}
	if !strings.Contains(output, prefix) {
		t.Errorf("expected output to contain %q, got: %s", prefix, output)
	}
}

func TestLogWarningTo(t *testing.T) {
	var buf bytes.Buffer
	LogWarningTo(&buf, "warning")

	output := buf.String()
	if !strings.Contains(output, "warning") {
		t.Errorf("expected output to contain 'warning', got: %s", output)
	}
	if !strings.Contains(output, prefix) {
		t.Errorf("expected output to contain %q, got: %s", prefix, output)
	}
}

func TestLogErrorTo(t *testing.T) {
	var buf bytes.Buffer
	LogErrorTo(&buf, "error")

	output := buf.String()
	if !strings.Contains(output, "error") {
		t.Errorf("expected output to contain 'error', got: %s", output)
	}
	if !strings.Contains(output, prefix) {
		t.Errorf("expected output to contain %q, got: %s", prefix, output)
	}
}

func TestLogDimTo(t *testing.T) {
	var buf bytes.Buffer
	LogDimTo(&buf, "dimmed")

	output := buf.String()
	if !strings.Contains(output, "dimmed") {
		t.Errorf("expected output to contain 'dimmed', got: %s", output)
	}
	if strings.Contains(output, prefix) {
		t.Errorf("expected dim output not to carry the prefix, got: %s", output)
	}
}

func TestFormatting(t *testing.T) {
	var buf bytes.Buffer
	LogTo(&buf, "value: %d", 42)

	output := buf.String()
	if !strings.Contains(output, "value: 42") {
		t.Errorf("expected formatted output, got: %s", output)
	}
}

func TestPrefixAppliedPerLine(t *testing.T) {
	var buf bytes.Buffer
	LogErrorTo(&buf, "first line\nsecond line")

	output := buf.String()
	count := strings.Count(output, prefix)
	if count != 2 {
		t.Errorf("expected prefix to appear twice (once per line), got %d in %q", count, output)
	}
}

func TestNoColorWhenNotATerminal(t *testing.T) {
	var buf bytes.Buffer
	LogErrorTo(&buf, "plain")

	output := buf.String()
	if strings.Contains(output, "\x1b[") {
		t.Errorf("expected no ANSI escapes when writing to a non-terminal buffer, got: %q", output)
	}
}

func TestTitle(t *testing.T) {
	title := Title("My Title")
	if title == "" {
		t.Error("expected non-empty title")
	}
	if !strings.Contains(title, "My Title") {
		t.Errorf("expected title to contain text, got: %s", title)
	}
}
