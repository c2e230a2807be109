package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// chdir changes into dir for the duration of the test; it stands in for
// t.Chdir, which requires Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("chdir back: %v", err)
		}
	})
}

const branchScript = `let x = 10;
x = x + 5;
if x == 15 {
    print(1, 2, 3);
} else {
    print(4, 5, 6);
}
`

const countScript = `let x = 0;
while x < 3 {
    x = x + 1;
    print(x);
}
`

func TestVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), cliToolVersion) {
		t.Fatalf("unexpected version output %q", stdout.String())
	}
}

func TestHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--help"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stdout.String(), "usage: mini") {
		t.Fatalf("unexpected help output %q", stdout.String())
	}
}

func TestNoArgsPrintsUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(nil, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "usage: mini") {
		t.Fatalf("expected usage on stderr, got %q", stderr.String())
	}
}

func TestRunScriptFile(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "branch.mini")
	writeFile(t, script, branchScript)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"run", script}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr.String())
	}
	if got := stdout.String(); got != "1 2 3 \n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRunBareScriptPath(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "count.mini")
	writeFile(t, script, countScript)

	var stdout, stderr bytes.Buffer
	if code := run([]string{script}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr.String())
	}
	if got := stdout.String(); got != "1 \n2 \n3 \n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRunDefaultTargetFromManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "script.yml"), `
name: demo
targets:
  main: scripts/branch.mini
`)
	writeFile(t, filepath.Join(dir, "scripts", "branch.mini"), branchScript)
	chdir(t, dir)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"run"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr.String())
	}
	if got := stdout.String(); got != "1 2 3 \n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRunNamedTarget(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "script.yml"), `
name: demo
targets:
  main: scripts/branch.mini
  count: scripts/count.mini
`)
	writeFile(t, filepath.Join(dir, "scripts", "branch.mini"), branchScript)
	writeFile(t, filepath.Join(dir, "scripts", "count.mini"), countScript)
	chdir(t, dir)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"run", "count"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr.String())
	}
	if got := stdout.String(); got != "1 \n2 \n3 \n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRunWithoutManifestOrFile(t *testing.T) {
	chdir(t, t.TempDir())
	var stdout, stderr bytes.Buffer
	if code := run([]string{"run"}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "script.yml not found") {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestRunParseErrorExitsNonzero(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "bad.mini")
	writeFile(t, script, "while x < 5 {\n    if x == 1 {\n    }\n}\n")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"run", script}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "invalid statement") {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestRunMissingFileExitsNonzero(t *testing.T) {
	chdir(t, t.TempDir())
	var stdout, stderr bytes.Buffer
	if code := run([]string{"run", "nope.mini"}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "failed to read") {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestUnexpectedArguments(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"run", "a.mini", "b.mini"}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "unexpected arguments") {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}
