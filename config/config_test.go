package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestDiscoverPathsPriorityAndRootMarker(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "yamis.root.yml"), "tasks:\n  hello_project:\n    script: echo hello project\n")
	writeFile(t, filepath.Join(tmpDir, "yamis.yaml"), "tasks:\n  hello:\n    script: echo hello\n")
	writeFile(t, filepath.Join(tmpDir, "yamis.private.yaml"), "tasks:\n  hello_local:\n    script: echo hello local\n")

	paths := DiscoverPaths(tmpDir)
	if len(paths) != 3 {
		t.Fatalf("expected 3 config paths, got %d: %v", len(paths), paths)
	}
	want := []string{
		filepath.Join(tmpDir, "yamis.private.yaml"),
		filepath.Join(tmpDir, "yamis.yaml"),
		filepath.Join(tmpDir, "yamis.root.yml"),
	}
	for i, w := range want {
		if paths[i] != w {
			t.Fatalf("paths[%d] = %q, want %q", i, paths[i], w)
		}
	}
}

func TestDiscoverPathsStopsAtRootMarker(t *testing.T) {
	tmpDir := t.TempDir()
	child := filepath.Join(tmpDir, "child")
	writeFile(t, filepath.Join(tmpDir, "yamis.root.yml"), "tasks: {}\n")
	writeFile(t, filepath.Join(child, "yamis.yml"), "tasks: {}\n")

	paths := DiscoverPaths(child)
	for _, p := range paths {
		if d := filepath.Dir(p); d != child && d != tmpDir {
			t.Fatalf("expected no ascent past root marker, but found %q", p)
		}
	}
}

func TestExplicitPathGivenFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sample.yamis.yml")
	writeFile(t, path, "tasks:\n  hello_project:\n    script: echo hello project\n")

	abs, err := ExplicitPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if abs != path {
		t.Fatalf("got %q", abs)
	}

	if _, err := ExplicitPath(filepath.Join(tmpDir, "nope.yml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadYAML(t *testing.T) {
	ClearCache()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "yamis.yml")
	writeFile(t, path, "wd: sub\ntasks:\n  hello:\n    script: echo hello\n")

	cf, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cf.Tasks["hello"]; !ok {
		t.Fatal("expected hello task to be present")
	}
	wd, ok := cf.WorkingDirectory()
	if !ok || wd != filepath.Join(tmpDir, "sub") {
		t.Fatalf("got wd=%q ok=%v", wd, ok)
	}
}

func TestLoadTOML(t *testing.T) {
	ClearCache()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "yamis.toml")
	writeFile(t, path, "[tasks.hello]\nscript = \"echo hello\"\n")

	cf, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cf.Tasks["hello"]; !ok {
		t.Fatal("expected hello task to be present")
	}
}

func TestLoadUnknownExtension(t *testing.T) {
	ClearCache()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "yamis.ini")
	writeFile(t, path, "tasks = {}")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	ClearCache()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "yamis.yml")
	writeFile(t, path, "bogus_field: 1\ntasks:\n  hello:\n    script: echo hello\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown top-level field")
	}
}

func TestLoadEnvFileDoesNotOverrideExplicitEnv(t *testing.T) {
	ClearCache()
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".env"), "FROM_FILE=file_value\nSHARED=file_wins_if_unset\n")
	path := filepath.Join(tmpDir, "yamis.yml")
	writeFile(t, path, "env_file: .env\nenv:\n  SHARED: explicit_wins\ntasks:\n  hello:\n    script: echo hello\n")

	cf, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cf.Env["FROM_FILE"] != "file_value" {
		t.Fatalf("got %q", cf.Env["FROM_FILE"])
	}
	if cf.Env["SHARED"] != "explicit_wins" {
		t.Fatalf("expected explicit env to win, got %q", cf.Env["SHARED"])
	}
}

func TestFindTaskFirstConfigWins(t *testing.T) {
	ClearCache()
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "yamis.root.yml"), "tasks:\n  shared:\n    script: echo from root\n")
	child := filepath.Join(tmpDir, "child")
	writeFile(t, filepath.Join(child, "yamis.yml"), "tasks:\n  shared:\n    script: echo from child\n")

	cf, t2, err := FindTask(child, "shared")
	if err != nil {
		t.Fatal(err)
	}
	if cf == nil || t2 == nil {
		t.Fatal("expected a match")
	}
	if t2.Script != "echo from child" {
		t.Fatalf("expected closest config to win, got %q", t2.Script)
	}
}

func TestFindTaskNotFound(t *testing.T) {
	ClearCache()
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "yamis.root.yml"), "tasks:\n  hello:\n    script: echo hi\n")

	cf, t2, err := FindTask(tmpDir, "nonexistent")
	if err != nil {
		t.Fatal(err)
	}
	if cf != nil || t2 != nil {
		t.Fatal("expected no match")
	}
}
