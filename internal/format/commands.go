// Package format renders reconstructed command records in the supported
// output formats.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"cchistory/internal/claude"
)

// Options controls rendering.
type Options struct {
	Format        string // table, plain, json, or jsonl
	IncludeHeader bool
	Color         bool // color the success column (table format only)
	Width         int  // terminal width; 0 means no command column cap
}

// WriteCommands writes command records to w in the requested format.
func WriteCommands(w io.Writer, cmds []claude.Command, opts Options) error {
	switch strings.ToLower(opts.Format) {
	case "", "table":
		return writeCommandsTable(w, cmds, opts)
	case "plain":
		return writeCommandsPlain(w, cmds, opts.IncludeHeader)
	case "json":
		return writeCommandsJSON(w, cmds)
	case "jsonl":
		return writeCommandsJSONL(w, cmds)
	default:
		return fmt.Errorf("unsupported format: %s", opts.Format)
	}
}

func writeCommandsPlain(w io.Writer, cmds []claude.Command, includeHeader bool) error {
	if includeHeader {
		if _, err := fmt.Fprintln(w, "timestamp\tsource\tsuccess\tcommand\tdescription"); err != nil {
			return err
		}
	}

	for _, cmd := range cmds {
		line := fmt.Sprintf(
			"%s\t%s\t%t\t%s\t%s",
			formatTimestamp(cmd.Timestamp),
			cmd.Source,
			cmd.Success,
			cmd.Command,
			cmd.Description,
		)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeCommandsJSON(w io.Writer, cmds []claude.Command) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(cmds)
}

func writeCommandsJSONL(w io.Writer, cmds []claude.Command) error {
	enc := json.NewEncoder(w)
	for _, cmd := range cmds {
		if err := enc.Encode(cmd); err != nil {
			return err
		}
	}
	return nil
}

func writeCommandsTable(w io.Writer, cmds []claude.Command, opts Options) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateRows = false
	tw.Style().Options.SeparateHeader = true
	tw.Style().Options.DrawBorder = true

	commandWidth := 80
	if opts.Width > 0 {
		// Leave room for the fixed-width columns and borders.
		if avail := opts.Width - 50; avail > 20 {
			commandWidth = avail
		} else {
			commandWidth = 20
		}
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignCenter, AlignHeader: text.AlignCenter},
		{Number: 3, Align: text.AlignCenter, AlignHeader: text.AlignCenter},
		{Number: 4, Align: text.AlignLeft, AlignHeader: text.AlignCenter, WidthMax: commandWidth},
		{Number: 5, Align: text.AlignLeft, AlignHeader: text.AlignCenter, WidthMax: 40},
	})

	if opts.IncludeHeader {
		tw.AppendHeader(table.Row{"Timestamp", "Source", "OK", "Command", "Description"})
	}

	for _, cmd := range cmds {
		tw.AppendRow(table.Row{
			formatTimestamp(cmd.Timestamp),
			string(cmd.Source),
			successMark(cmd.Success, opts.Color),
			cmd.Command,
			cmd.Description,
		})
	}

	if len(cmds) == 0 {
		tw.AppendRow(table.Row{"-", "-", "-", "(no commands)", "-"})
	}

	_ = tw.Render()
	return nil
}

const (
	ansiReset   = "\x1b[0m"
	ansiSuccess = "\x1b[32m"
	ansiFailure = "\x1b[31m"
)

func colorize(enabled bool, code string, mark string) string {
	if !enabled {
		return mark
	}
	return code + mark + ansiReset
}

func successMark(success, color bool) string {
	if success {
		return colorize(color, ansiSuccess, "✓")
	}
	return colorize(color, ansiFailure, "✗")
}

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Format(time.RFC3339)
}

// ResolveColor decides whether to emit ANSI colors, honoring explicit
// overrides before NO_COLOR and terminal detection.
func ResolveColor(forceColor, forceNoColor bool, out *os.File) bool {
	if forceColor {
		return true
	}
	if forceNoColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return out != nil && isTerminal(out.Fd())
}

// ResolveWidth reports the terminal width of out, or 0 when out is not a
// terminal.
func ResolveWidth(out *os.File) int {
	if out == nil || !isTerminal(out.Fd()) {
		return 0
	}
	if w, _, err := term.GetSize(int(out.Fd())); err == nil && w > 0 {
		return w
	}
	return 0
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
