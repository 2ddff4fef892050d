package telemetry

import (
	"fmt"
	"os"
	"sync"

	"github.com/gocarina/gocsv"
)

// CSVLog appends gocsv-tagged records to a file. The header is written with
// the first batch. It is safe for concurrent use.
type CSVLog struct {
	mu            sync.Mutex
	file          *os.File
	headerWritten bool
}

// CreateCSVLog creates or truncates path.
func CreateCSVLog(path string) (*CSVLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return &CSVLog{file: f}, nil
}

// Append writes records, which must be a slice of tagged structs.
func (l *CSVLog) Append(records any) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.headerWritten {
		return gocsv.MarshalWithoutHeaders(records, l.file)
	}
	if err := gocsv.Marshal(records, l.file); err != nil {
		return err
	}
	l.headerWritten = true
	return nil
}

// Path returns the file name.
func (l *CSVLog) Path() string {
	return l.file.Name()
}

// Close closes the file.
func (l *CSVLog) Close() error {
	return l.file.Close()
}
