package logger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
)

// Entry is one decoded JSON log record.
type Entry map[string]any

// Message returns the record's msg field.
func (e Entry) Message() string {
	msg, _ := e[messageKey].(string)
	return msg
}

const messageKey = "msg"

// CaptureBuffer collects JSON log output so tests can assert on individual
// records. It is safe for use by concurrent loggers.
type CaptureBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (c *CaptureBuffer) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

func (c *CaptureBuffer) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

// Entries decodes every non-empty line written so far.
func (c *CaptureBuffer) Entries() ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(bytes.NewReader([]byte(c.String())))
	for line := 1; scanner.Scan(); line++ {
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, fmt.Errorf("log line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
	return entries, scanner.Err()
}
