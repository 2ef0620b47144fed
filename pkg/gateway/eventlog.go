package gateway

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// TimestampLayout is DD/MM/YY HH:MM:SS.
const TimestampLayout = "02/01/06 15:04:05"

const eventLogBuffer = 256

// Recorder receives every raw record read from the event stream.
type Recorder interface {
	Append(record string)
}

// EventLog appends raw gateway records to a text file for operators.
// Appends are queued to a single writer goroutine and never block the caller;
// when the queue is full the line is dropped with a warning.
type EventLog struct {
	path string
	loc  *time.Location
	now  func() time.Time

	lines chan string
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

// OpenEventLog opens (or creates) path for appending. Timestamps use loc.
func OpenEventLog(path string, loc *time.Location) (*EventLog, error) {
	if loc == nil {
		loc = time.UTC
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create event log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}

	l := &EventLog{
		path:  path,
		loc:   loc,
		now:   time.Now,
		lines: make(chan string, eventLogBuffer),
		done:  make(chan struct{}),
	}
	go l.writeLoop(f)
	return l, nil
}

// Path returns the log file path.
func (l *EventLog) Path() string {
	return l.path
}

// FormatLine renders one log line including the trailing newline.
func FormatLine(ts time.Time, record string) string {
	return ts.Format(TimestampLayout) + " -> " + record + "\n"
}

// Append queues record with the current time. Safe after Close, where it is a no-op.
func (l *EventLog) Append(record string) {
	line := FormatLine(l.now().In(l.loc), record)

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return
	}

	select {
	case l.lines <- line:
	default:
		log.Warn().Str("path", l.path).Msg("Event log queue full, dropping record")
	}
}

// Close flushes queued lines and closes the file.
func (l *EventLog) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	close(l.lines)
	l.mu.Unlock()

	<-l.done
	return nil
}

func (l *EventLog) writeLoop(f *os.File) {
	defer close(l.done)
	defer func() {
		if err := f.Close(); err != nil {
			log.Error().Err(err).Str("path", l.path).Msg("Failed to close event log")
		}
	}()

	for line := range l.lines {
		if _, err := f.WriteString(line); err != nil {
			log.Error().Err(err).Str("path", l.path).Msg("Failed to write event log")
		}
	}
}
