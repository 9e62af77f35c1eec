// Package audit provides audit sinks that persist operation outcomes
// outside the ledger.
package audit

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iho/tellerledger/internal/domain"
)

// FileMode is the permission used for new audit logs (rw-r--r--).
const FileMode fs.FileMode = 0o644

// FileSink appends one line per audited call to a file and syncs it to
// disk before returning.
type FileSink struct {
	file *os.File
	mu   sync.Mutex
}

// OpenFileSink opens or creates the audit log at path in append mode.
func OpenFileSink(path string) (*FileSink, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, FileMode)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	return &FileSink{file: file}, nil
}

// Record implements usecase.AuditSink.
func (s *FileSink) Record(_ context.Context, record *domain.AuditRecord) error {
	line := FormatLine(record)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.file.WriteString(line); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return s.file.Sync()
}

// Close closes the underlying file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

// FormatLine renders a record as
//
//	[2025-03-10T09:00:00Z] deposit(account_number=1, amount=10.00, customer_key=111) => applied
//
// Arguments are sorted by name. The line ends with a newline.
func FormatLine(record *domain.AuditRecord) string {
	keys := make([]string, 0, len(record.Arguments))
	for k := range record.Arguments {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]string, len(keys))
	for i, k := range keys {
		args[i] = k + "=" + record.Arguments[k]
	}

	return fmt.Sprintf("[%s] %s(%s) => %s\n",
		record.At.UTC().Format(time.RFC3339Nano),
		record.Operation,
		strings.Join(args, ", "),
		record.Outcome,
	)
}
