// Package main provides the cchistory CLI for reconstructing the shell
// command history of Claude Code sessions.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cchistory/internal/claude"
	"cchistory/internal/format"
	"cchistory/internal/store"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "cchistory",
	Short:   "Reconstruct shell commands from Claude Code session logs",
	Version: version,
}

func init() {
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newRootCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cchistory: %v\n", err)
		os.Exit(1)
	}
}

func newListCmd() *cobra.Command {
	var (
		projectsDir  string
		project      string
		sourceFlag   string
		failedOnly   bool
		limit        int
		formatFlag   string
		noHeader     bool
		forceColor   bool
		forceNoColor bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List commands run in a project's sessions, oldest session first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if forceColor && forceNoColor {
				return errors.New("--color and --no-color cannot be used together")
			}

			var source claude.CommandSource
			switch strings.ToLower(sourceFlag) {
			case "", "all":
			case "bash":
				source = claude.SourceBash
			case "user":
				source = claude.SourceUser
			default:
				return fmt.Errorf("invalid --source value: %s", sourceFlag)
			}

			dir, err := resolveProjectDir(projectsDir, project)
			if err != nil {
				return err
			}

			errs := cmd.ErrOrStderr()
			warn := func(err error) {
				fmt.Fprintf(errs, "warning: %v\n", err) //nolint:errcheck
			}

			var cmds []claude.Command
			for c := range store.ProjectCommands(dir, warn) {
				if source != "" && c.Source != source {
					continue
				}
				if failedOnly && c.Success {
					continue
				}
				cmds = append(cmds, c)
				if limit > 0 && len(cmds) >= limit {
					break
				}
			}

			out := cmd.OutOrStdout()
			outFile, _ := out.(*os.File)
			return format.WriteCommands(out, cmds, format.Options{
				Format:        formatFlag,
				IncludeHeader: !noHeader,
				Color:         format.ResolveColor(forceColor, forceNoColor, outFile),
				Width:         format.ResolveWidth(outFile),
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&projectsDir, "projects-dir", "", "override the Claude Code projects directory (default: ~/.claude/projects, env: CCHISTORY_PROJECTS_DIR)")
	flags.StringVar(&project, "project", "", "project path whose sessions to read (default: current directory)")
	flags.StringVar(&sourceFlag, "source", "all", "filter by command source: bash, user, or all")
	flags.BoolVar(&failedOnly, "failed", false, "show only commands that failed")
	flags.IntVar(&limit, "limit", 0, "stop after N commands (0 means no limit)")
	flags.StringVar(&formatFlag, "format", "table", "output format: table, plain, json, or jsonl")
	flags.BoolVar(&noHeader, "no-header", false, "omit the header row")
	flags.BoolVar(&forceColor, "color", false, "force-enable ANSI colors even when stdout is not a TTY")
	flags.BoolVar(&forceNoColor, "no-color", false, "disable ANSI colors regardless of terminal detection")

	return cmd
}

func newRootCmd() *cobra.Command {
	var (
		projectsDir string
		project     string
	)

	cmd := &cobra.Command{
		Use:   "root",
		Short: "Print the project root recorded in a project's session logs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := resolveProjectDir(projectsDir, project)
			if err != nil {
				return err
			}

			errs := cmd.ErrOrStderr()
			warn := func(err error) {
				fmt.Fprintf(errs, "warning: %v\n", err) //nolint:errcheck
			}

			root := store.ProjectRoot(dir, warn)
			if root == "" {
				return errors.New("no project root recorded in session logs")
			}
			fmt.Fprintln(cmd.OutOrStdout(), root) //nolint:errcheck
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&projectsDir, "projects-dir", "", "override the Claude Code projects directory (default: ~/.claude/projects, env: CCHISTORY_PROJECTS_DIR)")
	flags.StringVar(&project, "project", "", "project path whose sessions to read (default: current directory)")

	return cmd
}

// resolveProjectDir maps the flags to the log directory holding the project's
// session files.
func resolveProjectDir(projectsDir, project string) (string, error) {
	if projectsDir == "" {
		projectsDir = store.DefaultProjectsDir()
	}
	if project == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determine current directory: %w", err)
		}
		project = wd
	}
	return store.ProjectLogDir(projectsDir, project), nil
}
