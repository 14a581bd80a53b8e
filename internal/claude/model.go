// Package claude parses Claude Code session logs and reconstructs the shell
// commands they record.
package claude

import "time"

// EntryType represents the top-level "type" field values in Claude Code JSONL logs.
type EntryType string

const (
	EntryTypeUser      EntryType = "user"
	EntryTypeAssistant EntryType = "assistant"
)

// CommandSource identifies how a command entered the session.
type CommandSource string

const (
	// SourceBash marks commands the assistant ran through the Bash tool.
	SourceBash CommandSource = "bash"
	// SourceUser marks commands the user typed at the bash-input prompt.
	SourceUser CommandSource = "user"
)

// LogEntry is one decoded line of a session log. Message content is polymorphic
// on the wire: either a plain string or an ordered array of content blocks.
// BlockContent records which form was present, since an empty block array and
// missing text are otherwise indistinguishable.
type LogEntry struct {
	Kind         EntryType
	Timestamp    time.Time
	CWD          string
	Text         string
	Blocks       []ContentBlock
	BlockContent bool
}

// ContentBlock is one element of block-array message content. Only the fields
// relevant to command reconstruction are decoded; unknown block types keep their
// Type and are otherwise empty.
type ContentBlock struct {
	Type        string
	ID          string
	Name        string
	Command     string
	Description string
	ToolUseID   string
	IsError     bool
}

// Command is one reconstructed shell command. Success is always set before a
// Command leaves the correlation layer.
type Command struct {
	Timestamp   time.Time     `json:"timestamp"`
	Command     string        `json:"command"`
	Source      CommandSource `json:"source"`
	Success     bool          `json:"success"`
	Description string        `json:"description,omitempty"`
	ProjectPath string        `json:"project_path,omitempty"`
}

// WarnFunc receives non-fatal diagnostics (malformed lines, unreadable files).
// A nil WarnFunc discards them.
type WarnFunc func(error)
