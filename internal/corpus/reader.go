// Package corpus streams lexical entries out of newline-delimited JSON
// corpora, optionally gzip-compressed.
package corpus

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/ohler55/ojg/oj"

	"github.com/lexigraph/etymograph/internal/lexicon"
)

// Source is a corpus file holding one JSON entry per line. Names ending in
// .gz are read through gzip. Each call to Each opens the file fresh, so a
// Source can be scanned any number of times.
type Source struct {
	fs   billy.Filesystem
	path string

	// Skipped counts the undecodable lines of the most recent Each call:
	// lines that fail to parse, or whose top level is not an object.
	Skipped int
}

// NewSource wraps a corpus file on the given filesystem.
func NewSource(fs billy.Filesystem, path string) *Source {
	return &Source{fs: fs, path: path}
}

// Each streams entries to fn in file order. Blank lines are ignored,
// undecodable lines are counted and skipped, and an error from fn aborts
// the scan. Lines of any length are accepted.
func (s *Source) Each(fn func(lexicon.Entry) error) error {
	f, err := s.fs.Open(s.path)
	if err != nil {
		return fmt.Errorf("open corpus %s: %w", s.path, err)
	}
	defer func() { _ = f.Close() }() // safe to ignore

	var r io.Reader = f
	if strings.HasSuffix(s.path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("gunzip %s: %w", s.path, err)
		}
		defer func() { _ = gz.Close() }() // safe to ignore
		r = gz
	}

	s.Skipped = 0
	br := bufio.NewReaderSize(r, 1<<20)
	for {
		line, readErr := br.ReadBytes('\n')
		if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
			entry, ok := decodeLine(trimmed)
			if !ok {
				s.Skipped++
			} else if err := fn(entry); err != nil {
				return err
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("read corpus %s: %w", s.path, readErr)
		}
	}
}

// decodeLine parses one corpus line. Lines that are not a JSON object are
// not entries.
func decodeLine(line []byte) (lexicon.Entry, bool) {
	parsed, err := oj.Parse(line)
	if err != nil {
		return nil, false
	}
	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, false
	}
	return lexicon.Entry(obj), true
}
