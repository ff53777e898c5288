// Package cli renders yamis' diagnostic output: every line printed by the
// Log* functions other than LogDim is prefixed with "[YAMIS]" and, on a
// terminal, colored by severity.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const prefix = "[YAMIS]"

var (
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// isTTY reports whether w is a character device, the same check
// configshow.Show uses to decide whether to color its output.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// prefixLines prepends "[YAMIS] " to every line of msg, so a multi-line
// message stays identifiable line by line instead of just at its start.
func prefixLines(msg string) string {
	lines := strings.Split(msg, "\n")
	for i, line := range lines {
		lines[i] = prefix + " " + line
	}
	return strings.Join(lines, "\n")
}

func render(w io.Writer, style lipgloss.Style, msg string) string {
	out := prefixLines(msg)
	if isTTY(w) {
		out = style.Render(out)
	}
	return out
}

// Log prints an informational message to stderr.
func Log(format string, args ...any) {
	LogTo(os.Stderr, format, args...)
}

// LogTo prints an informational message to w.
func LogTo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, render(w, infoStyle, fmt.Sprintf(format, args...)))
}

// LogWarning prints a warning message to stderr.
func LogWarning(format string, args ...any) {
	LogWarningTo(os.Stderr, format, args...)
}

// LogWarningTo prints a warning message to w.
func LogWarningTo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, render(w, warnStyle, fmt.Sprintf(format, args...)))
}

// LogError prints an error message to stderr.
func LogError(format string, args ...any) {
	LogErrorTo(os.Stderr, format, args...)
}

// LogErrorTo prints an error message to w.
func LogErrorTo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, render(w, errorStyle, fmt.Sprintf(format, args...)))
}

// LogDim prints a low-priority message to stderr, without the prefix.
func LogDim(format string, args ...any) {
	LogDimTo(os.Stderr, format, args...)
}

// LogDimTo prints a low-priority message to w, without the prefix.
func LogDimTo(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if isTTY(w) {
		msg = dimStyle.Render(msg)
	}
	fmt.Fprintln(w, msg)
}

// Title returns s styled as a heading.
func Title(s string) string {
	return titleStyle.Render(s)
}
