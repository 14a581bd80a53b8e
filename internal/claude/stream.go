package claude

import (
	"bufio"
	"bytes"
	"fmt"
	"iter"
	"os"
)

// Commands streams the resolved shell commands of one session file, lazily:
// lines are read and correlated only as the consumer pulls. Malformed lines
// and read errors go to warn and never stop the stream; the file handle is
// released on every exit path, including an early break by the consumer.
func Commands(path string, warn WarnFunc) iter.Seq[Command] {
	return func(yield func(Command) bool) {
		file, err := os.Open(path)
		if err != nil {
			warnErr(warn, fmt.Errorf("open session file %s: %w", path, err))
			return
		}
		defer file.Close() //nolint:errcheck

		cor := newCorrelator()
		scanner := newScanner(file)
		lineNo := 0
		for scanner.Scan() {
			lineNo++
			line := scanner.Bytes()
			if len(bytes.TrimSpace(line)) != 0 && lineMayContainCommand(line) {
				entry, err := decodeLine(line)
				if err != nil {
					warnErr(warn, fmt.Errorf("%s:%d: %w", path, lineNo, err))
				} else {
					for _, cmd := range cor.observe(entry) {
						if !yield(cmd) {
							return
						}
					}
				}
			}

			// The flush check counts every line, blank or not.
			if lineNo%flushCheckInterval == 0 {
				for _, cmd := range cor.flushIfOverloaded() {
					if !yield(cmd) {
						return
					}
				}
			}
		}
		if err := scanner.Err(); err != nil {
			warnErr(warn, fmt.Errorf("scan session file %s: %w", path, err))
		}

		for _, cmd := range cor.flush() {
			if !yield(cmd) {
				return
			}
		}
	}
}

// FirstWorkingDir scans at most maxLines lines of a session file for the first
// entry carrying a cwd field. Returns "" when none is found.
func FirstWorkingDir(path string, maxLines int) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open session file %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck

	scanner := newScanner(file)
	for lineNo := 0; lineNo < maxLines && scanner.Scan(); lineNo++ {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		entry, err := decodeLine(line)
		if err != nil {
			continue
		}
		if entry.CWD != "" {
			return entry.CWD, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scan session file %s: %w", path, err)
	}
	return "", nil
}

func newScanner(file *os.File) *bufio.Scanner {
	scanner := bufio.NewScanner(file)
	// Allow large payloads
	const maxCapacity = 8 * 1024 * 1024
	buf := make([]byte, 1024)
	scanner.Buffer(buf, maxCapacity)
	return scanner
}

func warnErr(warn WarnFunc, err error) {
	if warn != nil {
		warn(err)
	}
}
