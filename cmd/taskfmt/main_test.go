package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskfmt/internal/driver"
	"taskfmt/internal/version"
)

const messyTaskfile = "tasks:\n  build_app:\n    cmds:\n      - echo \"{{ .X }}\"\nversion: \"3\"\n"

const cleanTaskfile = "version: \"3\"\n\ntasks:\n  build-app:\n    cmds:\n      - echo \"{{.X}}\"\n"

// execute runs the root command with every fmt flag reset to a known value.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func fmtArgs(cfg string, extra ...string) []string {
	args := []string{
		"fmt", "--config", cfg, "--color", "off", "--ui", "off", "--no-cache",
		"--check=false", "--stdout=false", "--format", "text", "--quiet=false", "--timings=false",
	}
	return append(args, extra...)
}

func setupProject(t *testing.T) (dir, cfg string) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir = t.TempDir()
	cfg = filepath.Join(dir, ".taskfmt.toml")
	if err := os.WriteFile(cfg, []byte("[format]\nui = \"off\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "Taskfile.yml"), []byte(messyTaskfile), 0o644); err != nil {
		t.Fatalf("write taskfile: %v", err)
	}
	return dir, cfg
}

func TestFmtCommand_CheckThenWrite(t *testing.T) {
	dir, cfg := setupProject(t)
	path := filepath.Join(dir, "Taskfile.yml")

	out, _, err := execute(t, "", fmtArgs(cfg, "--check", dir)...)
	if err == nil || !strings.Contains(err.Error(), "formatting changes required") {
		t.Fatalf("check err = %v", err)
	}
	if !strings.Contains(out, path) {
		t.Fatalf("check output %q must name %s", out, path)
	}

	out, _, err = execute(t, "", fmtArgs(cfg, dir)...)
	if err != nil {
		t.Fatalf("fmt: %v", err)
	}
	if !strings.Contains(out, "reformatted "+path) {
		t.Fatalf("output = %q", out)
	}
	data, _ := os.ReadFile(path)
	if string(data) != cleanTaskfile {
		t.Fatalf("file:\n%s", data)
	}

	if _, _, err := execute(t, "", fmtArgs(cfg, "--check", dir)...); err != nil {
		t.Fatalf("second check: %v", err)
	}
}

func TestFmtCommand_JSON(t *testing.T) {
	dir, cfg := setupProject(t)

	out, _, err := execute(t, "", fmtArgs(cfg, "--check", "--format", "json", dir)...)
	if err == nil {
		t.Fatal("expected changes-required error")
	}
	var payload struct {
		Files []struct {
			Path    string `json:"path"`
			Changed bool   `json:"changed"`
		} `json:"files"`
		Diagnostics struct {
			Count int `json:"count"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(payload.Files) != 1 || !payload.Files[0].Changed || payload.Diagnostics.Count != 1 {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestFmtCommand_Stdin(t *testing.T) {
	_, cfg := setupProject(t)

	out, _, err := execute(t, messyTaskfile, fmtArgs(cfg, "-")...)
	if err != nil {
		t.Fatalf("fmt -: %v", err)
	}
	if out != cleanTaskfile {
		t.Fatalf("stdout = %q", out)
	}

	_, stderr, err := execute(t, "tasks: [\n", fmtArgs(cfg, "-")...)
	if err == nil {
		t.Fatal("expected failure for invalid YAML")
	}
	if !strings.Contains(stderr, "Invalid YAML") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestFmtCommand_FlagConflicts(t *testing.T) {
	dir, cfg := setupProject(t)
	if _, _, err := execute(t, "", fmtArgs(cfg, "--check", "--stdout", dir)...); err == nil {
		t.Fatal("--check with --stdout must fail")
	}
	if _, _, err := execute(t, "", fmtArgs(cfg, "--format", "xml", dir)...); err == nil {
		t.Fatal("unknown format must fail")
	}
}

func TestInitCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "new")
	out, _, err := execute(t, "", "init", dir)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out, filepath.Join(dir, ".taskfmt.toml")) {
		t.Fatalf("output = %q", out)
	}
	if _, _, err := execute(t, "", "init", dir); err == nil {
		t.Fatal("second init must refuse to overwrite")
	}
}

func TestCleanCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	out, _, err := execute(t, "", "clean")
	if err != nil || !strings.Contains(out, "not found") {
		t.Fatalf("clean without cache = %q, %v", out, err)
	}

	dir, err := driver.CacheDir(cacheApp)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := driver.NewCleanCache(dir); err != nil {
		t.Fatal(err)
	}
	out, _, err = execute(t, "", "clean")
	if err != nil || !strings.Contains(out, "removed") {
		t.Fatalf("clean = %q, %v", out, err)
	}
}

func TestRenderVersion(t *testing.T) {
	info := version.Info{Version: "1.2.3", GitCommit: "abc"}

	var buf bytes.Buffer
	renderVersionPretty(&buf, info, versionOptions{showHash: true})
	if !strings.Contains(buf.String(), "taskfmt 1.2.3") || !strings.Contains(buf.String(), "commit:  abc") {
		t.Fatalf("pretty = %q", buf.String())
	}

	buf.Reset()
	if err := renderVersionJSON(&buf, info, versionOptions{showDate: true}); err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Tool != "taskfmt" || payload.BuildDate != "unknown" || payload.GitCommit != "" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"AUTO", uiModeAuto, false},
		{" on ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("readUIMode(%q) = %q, %v", tt.in, got, err)
		}
	}
	if !shouldUseTUI(uiModeOn) || shouldUseTUI(uiModeOff) {
		t.Fatal("explicit modes must win")
	}
}
