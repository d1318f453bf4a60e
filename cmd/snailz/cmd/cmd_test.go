package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SNAILZ_CONFIG", "")
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { astSexpr = false })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestASTCommand(t *testing.T) {
	got, err := execute(t, "ast", "--sexpr", "1 + 2 * 3")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(got) != "(statement_expr (+ 1 (* 2 3)))" {
		t.Errorf("got %q", got)
	}
}

func TestASTCommandYAML(t *testing.T) {
	got, err := execute(t, "ast", "x = 1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "type: assignment") {
		t.Errorf("got %q", got)
	}
}

func TestASTCommandSyntaxError(t *testing.T) {
	if _, err := execute(t, "ast", "1 <"); err == nil {
		t.Error("expected syntax error")
	}
}

func TestVersionCommand(t *testing.T) {
	got, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "snailz v"+Version) {
		t.Errorf("got %q", got)
	}
}

func TestBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[eval]\nsort = \"quick\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { cfgFile = "" })
	if _, err := execute(t, "--config", path, "version"); err == nil {
		t.Error("expected config validation error")
	}
}

func TestRunMissingFileReportsOnce(t *testing.T) {
	got, err := execute(t, "run", filepath.Join(t.TempDir(), "missing.snz"))
	if err == nil {
		t.Fatal("expected error for missing source")
	}
	if !strings.Contains(err.Error(), "cannot open source") {
		t.Errorf("err = %v", err)
	}
	if got != "" {
		t.Errorf("command wrote %q; errors are left to the caller", got)
	}
}
