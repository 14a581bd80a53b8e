// Package store locates Claude Code project log directories and composes
// per-file command streams into one chronological sequence.
package store

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"cchistory/internal/claude"
)

// rootScanLines bounds how deep into each file project-root discovery looks.
const rootScanLines = 10

// sessionFile pairs a log file path with its modification time for sorting.
type sessionFile struct {
	path    string
	modTime time.Time
}

// ProjectCommands streams every resolved command of a project log directory:
// session files are processed in ascending modification-time order and their
// streams concatenated, so commands come out in session-creation order. An
// unreadable file is warned about and skipped; an unreadable directory yields
// an empty sequence plus one warning.
func ProjectCommands(dir string, warn claude.WarnFunc) iter.Seq[claude.Command] {
	return func(yield func(claude.Command) bool) {
		files, err := sessionFiles(dir)
		if err != nil {
			if warn != nil {
				warn(err)
			}
			return
		}
		for _, f := range files {
			for cmd := range claude.Commands(f.path, warn) {
				if !yield(cmd) {
					return
				}
			}
		}
	}
}

// ProjectRoot discovers the project's working directory by scanning the first
// few lines of each session file for a cwd field. Returns "" when no file
// carries one.
func ProjectRoot(dir string, warn claude.WarnFunc) string {
	files, err := sessionFiles(dir)
	if err != nil {
		if warn != nil {
			warn(err)
		}
		return ""
	}
	for _, f := range files {
		cwd, err := claude.FirstWorkingDir(f.path, rootScanLines)
		if err != nil {
			if warn != nil {
				warn(err)
			}
			continue
		}
		if cwd != "" {
			return cwd
		}
	}
	return ""
}

// sessionFiles lists the .jsonl files directly inside dir, oldest first.
func sessionFiles(dir string) ([]sessionFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read project directory %s: %w", dir, err)
	}

	files := make([]sessionFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jsonl") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// File disappeared between listing and stat; skip it.
			continue
		}
		files = append(files, sessionFile{
			path:    filepath.Join(dir, entry.Name()),
			modTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime.Before(files[j].modTime)
	})

	return files, nil
}

// DefaultProjectsDir returns the directory Claude Code keeps per-project
// session logs under, honoring the CCHISTORY_PROJECTS_DIR override.
func DefaultProjectsDir() string {
	if dir := os.Getenv("CCHISTORY_PROJECTS_DIR"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".claude", "projects")
}

// ProjectLogDir maps a project path to its log directory name, using the same
// encoding Claude Code applies: '/', '.' and '_' each become '-'.
func ProjectLogDir(projectsDir, projectPath string) string {
	encoded := strings.NewReplacer("/", "-", ".", "-", "_", "-").Replace(projectPath)
	return filepath.Join(projectsDir, encoded)
}
