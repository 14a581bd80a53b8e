package claude

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Markers checked by the line classifier. Deliberately loose (no surrounding
// JSON quoting) so an unusual encoding can only cost a wasted decode, never a
// missed event.
var (
	markerBash       = []byte("Bash")
	markerToolResult = []byte("tool_result")
	markerBashInput  = []byte("<bash-input>")
)

// lineMayContainCommand is a cheap pre-filter: it returns true when the raw
// line could hold a Bash tool invocation, a tool result, or a user bash-input
// marker. False positives are fine; false negatives are not.
func lineMayContainCommand(line []byte) bool {
	return bytes.Contains(line, markerBash) ||
		bytes.Contains(line, markerToolResult) ||
		bytes.Contains(line, markerBashInput)
}

type rawEntry struct {
	Type      string          `json:"type"`
	Timestamp string          `json:"timestamp"`
	CWD       string          `json:"cwd"`
	Message   json.RawMessage `json:"message"`
}

type messagePayload struct {
	Content json.RawMessage `json:"content"`
}

type contentBlock struct {
	Type      string     `json:"type"`
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Input     *toolInput `json:"input"`
	ToolUseID string     `json:"tool_use_id"`
	IsError   bool       `json:"is_error"`
}

type toolInput struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

// decodeLine parses one JSONL line into a LogEntry.
func decodeLine(line []byte) (LogEntry, error) {
	var raw rawEntry
	if err := json.Unmarshal(line, &raw); err != nil {
		return LogEntry{}, fmt.Errorf("unmarshal entry: %w", err)
	}

	entry := LogEntry{
		Kind: EntryType(raw.Type),
		CWD:  raw.CWD,
	}

	if raw.Timestamp != "" {
		ts, err := parseTimestamp(raw.Timestamp)
		if err != nil {
			return LogEntry{}, err
		}
		entry.Timestamp = ts
	}

	if len(raw.Message) > 0 {
		var msg messagePayload
		if err := json.Unmarshal(raw.Message, &msg); err != nil {
			return LogEntry{}, fmt.Errorf("unmarshal message: %w", err)
		}
		decodeContent(msg.Content, &entry)
	}

	return entry, nil
}

// decodeContent fills the entry's Text or Blocks from the polymorphic content
// field: a plain string for simple messages, an array of typed blocks otherwise.
func decodeContent(raw json.RawMessage, entry *LogEntry) {
	if len(raw) == 0 {
		return
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		entry.Text = asString
		return
	}

	var blocks []contentBlock
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return
	}
	entry.BlockContent = true
	entry.Blocks = make([]ContentBlock, 0, len(blocks))
	for _, block := range blocks {
		decoded := ContentBlock{
			Type:      block.Type,
			ID:        block.ID,
			Name:      block.Name,
			ToolUseID: block.ToolUseID,
			IsError:   block.IsError,
		}
		if block.Input != nil {
			decoded.Command = block.Input.Command
			decoded.Description = block.Input.Description
		}
		entry.Blocks = append(entry.Blocks, decoded)
	}
}

func parseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("missing timestamp")
	}

	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts, nil
	}

	return time.Parse(time.RFC3339, value)
}
