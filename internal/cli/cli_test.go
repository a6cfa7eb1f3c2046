package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/sandeepkv93/selesai/internal/commands"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, name := range []string{"SELESAI_STATE_FILE", "SELESAI_BACKEND", "SELESAI_LOG_FILE", "SELESAI_LOG_LEVEL"} {
		t.Setenv(name, "")
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd("test")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("selesai %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func TestAddListToggleRemove(t *testing.T) {
	isolateEnv(t)
	state := filepath.Join(t.TempDir(), "state.json")

	if out := mustRun(t, "--state", state, "add", "Buy", "milk"); out != "added #1: Buy milk\n" {
		t.Fatalf("unexpected add output: %q", out)
	}
	mustRun(t, "--state", state, "add", "Walk dog")
	if out := mustRun(t, "--state", state, "list"); out != "2\t[ ] Walk dog\n1\t[ ] Buy milk\n" {
		t.Fatalf("unexpected list output: %q", out)
	}

	if out := mustRun(t, "--state", state, "toggle", "1"); out != "checked #1: Buy milk\n" {
		t.Fatalf("unexpected toggle output: %q", out)
	}
	if out := mustRun(t, "--state", state, "done", "2"); out != "checked #2: Walk dog\nall done!\n" {
		t.Fatalf("expected celebration line: %q", out)
	}
	if out := mustRun(t, "--state", state, "list"); out != "" {
		t.Fatalf("pending list should be empty: %q", out)
	}
	if out := mustRun(t, "--state", state, "list", "--completed"); out != "2\t[x] Walk dog\n1\t[x] Buy milk\n" {
		t.Fatalf("unexpected completed list: %q", out)
	}

	if out := mustRun(t, "--state", state, "rm", "2"); out != "removed #2: Walk dog\n" {
		t.Fatalf("unexpected rm output: %q", out)
	}
	mustRun(t, "--state", state, "add", "Call mum")
	if out := mustRun(t, "--state", state, "list"); out != "3\t[ ] Call mum\n" {
		t.Fatalf("ids should keep increasing: %q", out)
	}
}

func TestRejectionsAreSilent(t *testing.T) {
	isolateEnv(t)
	state := filepath.Join(t.TempDir(), "state.json")

	for _, args := range [][]string{
		{"add", "   "},
		{"toggle", "42"},
		{"rm", "42"},
	} {
		out := mustRun(t, append([]string{"--state", state}, args...)...)
		if out != "" {
			t.Fatalf("selesai %v should print nothing, got %q", args, out)
		}
	}
	if out := mustRun(t, "--state", state, "list"); out != "" {
		t.Fatalf("list should stay empty: %q", out)
	}
}

func TestMalformedIDIsAnError(t *testing.T) {
	isolateEnv(t)
	state := filepath.Join(t.TempDir(), "state.json")

	_, err := runCLI(t, "--state", state, "toggle", "abc")
	var ce *commands.CommandError
	if !errors.As(err, &ce) || ce.Code != commands.ErrCodeInvalidArgument {
		t.Fatalf("expected invalid argument error, got %v", err)
	}
}

func TestListMarkdown(t *testing.T) {
	isolateEnv(t)
	state := filepath.Join(t.TempDir(), "state.json")
	mustRun(t, "--state", state, "add", "Buy milk")

	out := ansi.Strip(mustRun(t, "--state", state, "list", "--markdown"))
	if !strings.Contains(out, "Pending") || !strings.Contains(out, "Buy milk") {
		t.Fatalf("unexpected markdown output: %q", out)
	}
}

func TestReset(t *testing.T) {
	isolateEnv(t)
	state := filepath.Join(t.TempDir(), "state.json")
	mustRun(t, "--state", state, "add", "Buy milk")
	mustRun(t, "--state", state, "reset")
	if out := mustRun(t, "--state", state, "list"); out != "" {
		t.Fatalf("list should be empty after reset: %q", out)
	}
}

func TestSQLiteBackend(t *testing.T) {
	isolateEnv(t)
	state := filepath.Join(t.TempDir(), "state.db")
	mustRun(t, "--backend", "sqlite", "--state", state, "add", "Buy milk")
	mustRun(t, "--backend", "sqlite", "--state", state, "toggle", "1")
	if out := mustRun(t, "--backend", "sqlite", "--state", state, "list", "--completed"); out != "1\t[x] Buy milk\n" {
		t.Fatalf("unexpected sqlite list: %q", out)
	}
}

func TestUnknownBackend(t *testing.T) {
	isolateEnv(t)
	if _, err := runCLI(t, "--backend", "redis", "list"); err == nil {
		t.Fatal("expected unknown backend error")
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	envState := filepath.Join(dir, "env.json")
	flagState := filepath.Join(dir, "flag.json")
	t.Setenv("SELESAI_STATE_FILE", envState)

	mustRun(t, "add", "from env")
	mustRun(t, "--state", flagState, "add", "from flag")

	if out := mustRun(t, "list"); out != "1\t[ ] from env\n" {
		t.Fatalf("env state should hold only its own item: %q", out)
	}
	if out := mustRun(t, "--state", flagState, "list"); out != "1\t[ ] from flag\n" {
		t.Fatalf("flag state should hold only its own item: %q", out)
	}
}

func TestLogFileReceivesEntries(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	logPath := filepath.Join(dir, "selesai.log")
	mustRun(t, "--state", filepath.Join(dir, "state.json"), "--log-file", logPath, "--log-level", "debug", "add", "Buy milk")

	raw, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !bytes.Contains(raw, []byte("session opened")) || !bytes.Contains(raw, []byte("list updated")) {
		t.Fatalf("unexpected log contents: %s", raw)
	}
}

func TestVerboseLogsToStderr(t *testing.T) {
	isolateEnv(t)
	state := filepath.Join(t.TempDir(), "state.json")

	root := NewRootCmd("test")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"--state", state, "-v", "add", "Buy milk"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out.String() != "added #1: Buy milk\n" {
		t.Fatalf("stdout should only carry the result: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "session opened") || !strings.Contains(errOut.String(), "list updated") {
		t.Fatalf("expected debug logs on stderr: %q", errOut.String())
	}
}

func TestIDsStayRetiredAcrossInvocations(t *testing.T) {
	isolateEnv(t)
	state := filepath.Join(t.TempDir(), "state.json")
	mustRun(t, "--state", state, "add", "one")
	mustRun(t, "--state", state, "add", "two")
	mustRun(t, "--state", state, "rm", "2")
	if out := mustRun(t, "--state", state, "add", "three"); out != "added #3: three\n" {
		t.Fatalf("removed id must not come back: %q", out)
	}
	// A stale script removing #2 again touches nothing.
	mustRun(t, "--state", state, "rm", "2")
	if out := mustRun(t, "--state", state, "list"); out != "3\t[ ] three\n1\t[ ] one\n" {
		t.Fatalf("unexpected list: %q", out)
	}
}
