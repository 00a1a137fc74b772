package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultLogFilePath is the viewer log file, relative to the working directory.
const DefaultLogFilePath = "logs/viewer.txt"

// Logger keeps log lines in memory, appends them to a file on disk and mirrors them to an
// optional writer (stderr by default). It is the console sink for load lifecycle events.
type Logger struct {
	mu    sync.Mutex
	path  string
	out   io.Writer
	lines []string
	now   func() time.Time
}

// New returns a Logger writing to path (DefaultLogFilePath when empty) and stderr.
// The log directory is created if needed; failing to create it only disables the file.
func New(path string) *Logger {
	if path == "" {
		path = DefaultLogFilePath
	}
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	return &Logger{path: path, out: os.Stderr, now: time.Now}
}

// NewWriter returns a Logger that only writes to w (no file). Used by tests.
func NewWriter(w io.Writer) *Logger {
	return &Logger{out: w, now: time.Now}
}

// Log appends a line prefixed with [timestamp] using local time.
func (l *Logger) Log(line string) {
	stamped := "[" + l.now().Format("2006-01-02 15:04:05") + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	out := l.out
	l.mu.Unlock()

	if out != nil {
		_, _ = io.WriteString(out, stamped+"\n")
	}
	if l.path == "" {
		return
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Logf formats according to format and logs the result.
func (l *Logger) Logf(format string, args ...any) {
	l.Log(fmt.Sprintf(format, args...))
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
