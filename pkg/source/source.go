// Package source handles loading review-automation log text from its three
// supported input forms: a file path, an in-memory blob, and a pre-split
// ordered sequence of lines.
package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads the log file at path and returns its lines in order. A path
// that cannot be read is surfaced to the caller as a wrapped error; no
// partial result is produced.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read log file %q: %w", path, err)
	}
	return Split(string(data)), nil
}

// Split splits a text blob into lines. A trailing newline does not produce a
// synthetic empty final line, and carriage returns from CRLF logs are
// stripped, so analyzing a blob and analyzing its pre-split lines always see
// the same sequence.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Scanner yields log lines one at a time so that very large logs can be
// processed without holding the full text in memory. Line splitting matches
// Split.
type Scanner struct {
	inner *bufio.Scanner
}

// NewScanner wraps r in a line scanner. The buffer tolerates the long
// single-line validator payloads that show up in automation logs.
func NewScanner(r io.Reader) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Scanner{inner: sc}
}

// Scan advances to the next line, returning false at end of input.
func (s *Scanner) Scan() bool {
	return s.inner.Scan()
}

// Line returns the current line with any trailing carriage return removed.
func (s *Scanner) Line() string {
	return strings.TrimSuffix(s.inner.Text(), "\r")
}

// Err returns the first error encountered while reading, if any.
func (s *Scanner) Err() error {
	return s.inner.Err()
}
