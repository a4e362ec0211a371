// Package auditlog provides the flat append-only log files that the
// maintenance jobs write their audit lines to. Operators consume these
// files directly, so line formats are part of the external contract and
// structured logging is deliberately not used here.
package auditlog

import (
	"fmt"
	"os"
)

// Sink appends single lines to an audit log.
type Sink interface {
	Append(line string) error
}

// FileSink appends lines to a text file, creating it on first write.
// Each Append opens, writes and closes so that a long-running scheduler
// never pins a stale file handle, and O_APPEND keeps prior lines intact.
type FileSink struct {
	path string
}

func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

func (s *FileSink) Append(line string) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("error opening audit log %s: %w", s.path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("error appending to audit log %s: %w", s.path, err)
	}
	return nil
}
