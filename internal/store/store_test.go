package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cchistory/internal/claude"
)

func writeSession(t *testing.T, dir, name, content string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write session file: %v", err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("set mtime: %v", err)
	}
	return path
}

func bashSessionLine(id, command string) string {
	return `{"type":"assistant","cwd":"/tmp/project","message":{"content":[{"type":"tool_use","id":"` + id + `","name":"Bash","input":{"command":"` + command + `"}}]}}` + "\n"
}

func TestProjectCommands_ChronologicalOrder(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)

	// Lexically later name but older mtime: must come out first.
	writeSession(t, dir, "zz-older.jsonl", bashSessionLine("t1", "first"), base)
	writeSession(t, dir, "aa-newer.jsonl", bashSessionLine("t2", "second"), base.Add(time.Hour))

	var cmds []claude.Command
	for cmd := range ProjectCommands(dir, nil) {
		cmds = append(cmds, cmd)
	}

	if len(cmds) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(cmds))
	}
	if cmds[0].Command != "first" || cmds[1].Command != "second" {
		t.Fatalf("commands out of mtime order: %+v", cmds)
	}
}

func TestProjectCommands_SkipsNonSessionFiles(t *testing.T) {
	dir := t.TempDir()
	base := time.Now()

	writeSession(t, dir, "session.jsonl", bashSessionLine("t1", "ls"), base)
	writeSession(t, dir, "notes.txt", bashSessionLine("t9", "rm -rf /"), base)

	var cmds []claude.Command
	for cmd := range ProjectCommands(dir, nil) {
		cmds = append(cmds, cmd)
	}

	if len(cmds) != 1 || cmds[0].Command != "ls" {
		t.Fatalf("expected only the .jsonl command, got %+v", cmds)
	}
}

func TestProjectCommands_MissingDir(t *testing.T) {
	var warnings []error
	warn := func(err error) { warnings = append(warnings, err) }

	count := 0
	for range ProjectCommands(filepath.Join(t.TempDir(), "absent"), warn) {
		count++
	}

	if count != 0 {
		t.Fatalf("expected empty sequence, got %d commands", count)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
}

func TestProjectCommands_EarlyBreak(t *testing.T) {
	dir := t.TempDir()
	base := time.Now()
	writeSession(t, dir, "a.jsonl", bashSessionLine("t1", "one")+bashSessionLine("t2", "two"), base)

	count := 0
	for range ProjectCommands(dir, nil) {
		count++
		break
	}
	if count != 1 {
		t.Fatalf("expected a single pulled command, got %d", count)
	}
}

func TestProjectRoot(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)

	// Oldest file has no cwd; discovery moves on to the next file.
	writeSession(t, dir, "older.jsonl", `{"type":"user","message":{"content":"hi"}}`+"\n", base)
	writeSession(t, dir, "newer.jsonl", `{"type":"user","cwd":"/home/dev/app","message":{"content":"hi"}}`+"\n", base.Add(time.Hour))

	root := ProjectRoot(dir, nil)
	if root != "/home/dev/app" {
		t.Fatalf("unexpected project root: %q", root)
	}
}

func TestProjectRoot_Missing(t *testing.T) {
	var warnings []error
	root := ProjectRoot(filepath.Join(t.TempDir(), "absent"), func(err error) { warnings = append(warnings, err) })
	if root != "" {
		t.Fatalf("expected empty root, got %q", root)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
}

func TestProjectLogDir(t *testing.T) {
	got := ProjectLogDir("/base", "/Users/dev/my_app.v2")
	want := filepath.Join("/base", "-Users-dev-my-app-v2")
	if got != want {
		t.Fatalf("unexpected log dir: %q != %q", got, want)
	}
}
