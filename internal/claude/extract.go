package claude

import (
	"regexp"
	"strings"
)

var bashInputPattern = regexp.MustCompile(`(?s)<bash-input>(.*?)</bash-input>`)

// bashCommand is a command extracted from a tool_use block, together with the
// block id it will be correlated under. The id may be empty.
type bashCommand struct {
	cmd Command
	id  string
}

// extractBashCommand returns the first Bash tool_use block of an assistant
// entry as a pending-shaped command. Non-Bash tools are never extracted.
func extractBashCommand(entry LogEntry) (bashCommand, bool) {
	if entry.Kind != EntryTypeAssistant {
		return bashCommand{}, false
	}
	for _, block := range entry.Blocks {
		if block.Type != "tool_use" || block.Name != "Bash" {
			continue
		}
		return bashCommand{
			cmd: Command{
				Timestamp:   entry.Timestamp,
				Command:     NormalizeCommand(block.Command),
				Source:      SourceBash,
				Description: block.Description,
				ProjectPath: entry.CWD,
			},
			id: block.ID,
		}, true
	}
	return bashCommand{}, false
}

// toolResult is the outcome half of a tool_use/tool_result pair.
type toolResult struct {
	toolUseID string
	isError   bool
}

// extractToolResult returns the first tool_result block of a user entry whose
// content is in block-array form. is_error defaults to false when absent.
func extractToolResult(entry LogEntry) (toolResult, bool) {
	if entry.Kind != EntryTypeUser || !entry.BlockContent {
		return toolResult{}, false
	}
	for _, block := range entry.Blocks {
		if block.Type != "tool_result" || block.ToolUseID == "" {
			continue
		}
		return toolResult{toolUseID: block.ToolUseID, isError: block.IsError}, true
	}
	return toolResult{}, false
}

// extractUserCommand returns the command a user typed at the bash-input prompt,
// taken from the first <bash-input> tag of a plain-text user entry.
func extractUserCommand(entry LogEntry) (Command, bool) {
	if entry.Kind != EntryTypeUser || entry.BlockContent {
		return Command{}, false
	}
	match := bashInputPattern.FindStringSubmatch(entry.Text)
	if match == nil {
		return Command{}, false
	}
	text := strings.TrimSpace(match[1])
	if text == "" {
		return Command{}, false
	}
	return Command{
		Timestamp:   entry.Timestamp,
		Command:     NormalizeCommand(text),
		Source:      SourceUser,
		ProjectPath: entry.CWD,
	}, true
}

// NormalizeCommand collapses multi-line command text into a single line: each
// line is trimmed, empty lines are dropped, and the remainder is rejoined with
// the literal two characters `\n`. Idempotent.
func NormalizeCommand(text string) string {
	lines := strings.Split(text, "\n")
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, `\n`)
}
