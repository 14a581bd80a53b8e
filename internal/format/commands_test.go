package format

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"cchistory/internal/claude"
)

func sampleCommands() []claude.Command {
	return []claude.Command{
		{
			Timestamp:   time.Date(2025, 1, 5, 10, 0, 1, 0, time.UTC),
			Command:     "make build",
			Source:      claude.SourceBash,
			Success:     true,
			Description: "Build the project",
		},
		{
			Timestamp: time.Date(2025, 1, 5, 10, 0, 5, 0, time.UTC),
			Command:   "make test",
			Source:    claude.SourceBash,
			Success:   false,
		},
		{
			Timestamp: time.Date(2025, 1, 5, 10, 0, 20, 0, time.UTC),
			Command:   "git status",
			Source:    claude.SourceUser,
			Success:   true,
		},
	}
}

func TestWriteCommandsPlain(t *testing.T) {
	var buf bytes.Buffer

	if err := WriteCommands(&buf, sampleCommands(), Options{Format: "plain", IncludeHeader: true}); err != nil {
		t.Fatalf("WriteCommands plain returned error: %v", err)
	}

	expected := strings.Join([]string{
		"timestamp\tsource\tsuccess\tcommand\tdescription",
		"2025-01-05T10:00:01Z\tbash\ttrue\tmake build\tBuild the project",
		"2025-01-05T10:00:05Z\tbash\tfalse\tmake test\t",
		"2025-01-05T10:00:20Z\tuser\ttrue\tgit status\t",
	}, "\n") + "\n"

	if got := buf.String(); got != expected {
		t.Fatalf("plain output mismatch:\nexpected: %q\nactual:   %q", expected, got)
	}
}

func TestWriteCommandsTable(t *testing.T) {
	var buf bytes.Buffer

	if err := WriteCommands(&buf, sampleCommands(), Options{Format: "table", IncludeHeader: true}); err != nil {
		t.Fatalf("WriteCommands table returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "COMMAND") || !strings.Contains(out, "OK") {
		t.Fatalf("table header missing expected columns:\n%s", out)
	}
	if !strings.Contains(out, "make build") || !strings.Contains(out, "git status") {
		t.Fatalf("table rows missing commands:\n%s", out)
	}
	if !strings.Contains(out, "✓") || !strings.Contains(out, "✗") {
		t.Fatalf("table missing success marks:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("table colored without color enabled:\n%s", out)
	}
}

func TestWriteCommandsTable_Empty(t *testing.T) {
	var buf bytes.Buffer

	if err := WriteCommands(&buf, nil, Options{Format: "table", IncludeHeader: true}); err != nil {
		t.Fatalf("WriteCommands table returned error: %v", err)
	}

	if !strings.Contains(buf.String(), "(no commands)") {
		t.Fatalf("empty table missing placeholder:\n%s", buf.String())
	}
}

func TestWriteCommandsJSONL(t *testing.T) {
	var buf bytes.Buffer
	cmds := sampleCommands()

	if err := WriteCommands(&buf, cmds, Options{Format: "jsonl"}); err != nil {
		t.Fatalf("WriteCommands jsonl returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(cmds) {
		t.Fatalf("expected %d lines, got %d", len(cmds), len(lines))
	}
	if !strings.Contains(lines[0], `"command":"make build"`) || !strings.Contains(lines[0], `"success":true`) {
		t.Fatalf("first jsonl line unexpected: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"success":false`) {
		t.Fatalf("second jsonl line unexpected: %s", lines[1])
	}
}

func TestWriteCommandsInvalidFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCommands(&buf, sampleCommands(), Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestSuccessMarkColor(t *testing.T) {
	if got := successMark(true, false); got != "✓" {
		t.Fatalf("unexpected mark: %q", got)
	}
	if got := successMark(false, true); !strings.Contains(got, "✗") || !strings.Contains(got, "\x1b[") {
		t.Fatalf("expected colored failure mark, got %q", got)
	}
}
