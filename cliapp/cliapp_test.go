package cliapp

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/adrianmrit/yamis-go/task"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

func TestResolveTaskByDiscovery(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "yamis.yml"), "tasks:\n  hi: { script: \"echo hi\" }\n")

	cf, tk, err := resolveTask(dir, "", "hi")
	if err != nil {
		t.Fatal(err)
	}
	if tk.Name != "hi" {
		t.Fatalf("got task name %q", tk.Name)
	}
	if cf.Directory() != dir {
		t.Fatalf("got config dir %q, want %q", cf.Directory(), dir)
	}
}

func TestResolveTaskNotFound(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "yamis.yml"), "tasks: {}\n")

	_, _, err := resolveTask(dir, "", "missing")
	if err == nil {
		t.Fatal("expected an error for a missing task")
	}
}

// A private task is hidden only from task.GetPublicTask; it can still be
// invoked directly by its exact name, matching the original
// config_files.rs's get_task (used by the CLI) vs get_public_task
// distinction.
func TestResolveTaskPrivateTaskStillRunnableByName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.yml")
	writeFile(t, path, "tasks:\n  secret: { script: \"echo no\", private: true }\n")

	_, tk, err := resolveTask(dir, path, "secret")
	if err != nil {
		t.Fatal(err)
	}
	if tk.Name != "secret" {
		t.Fatalf("got task name %q", tk.Name)
	}
}

func TestListConfigsWritesDiscoveredPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "yamis.root.yml"), "tasks: {}\n")

	var buf bytes.Buffer
	if err := listConfigs(dir, "", &buf); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected at least one discovered path")
	}
}

func TestListConfigsExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.yml")
	writeFile(t, path, "tasks: {}\n")

	var buf bytes.Buffer
	if err := listConfigs(dir, path, &buf); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected the explicit path to be printed")
	}
}

func TestPrintTaskHelpFallsBackWhenEmpty(t *testing.T) {
	var buf bytes.Buffer
	printTaskHelp(&buf, &task.Task{Name: "x"})
	if buf.String() != "x: no help available\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestPrintTaskHelpPrefersHelpOverDescription(t *testing.T) {
	var buf bytes.Buffer
	printTaskHelp(&buf, &task.Task{Name: "x", Help: "the help", Description: "the description"})
	if buf.String() != "the help\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestDispatchNoTaskGiven(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	rootCmd := newRootCmdForTest(t)
	code, err := dispatch(context.Background(), rootCmd, nil, nil, &bytes.Buffer{}, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected an error")
	}
	if code != 1 {
		t.Fatalf("got code %d", code)
	}
}

// newRootCmdForTest builds a root command with its flags parsed against an
// empty argument list, giving dispatch a cmd.Flags() it can query.
func newRootCmdForTest(t *testing.T) *cobra.Command {
	t.Helper()
	exitCode := 0
	cmd := newRootCmd(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{}, &exitCode)
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatal(err)
	}
	return cmd
}
