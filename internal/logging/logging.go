// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Size limits for file logs. A file past MaxFileBytes is cut back to its
// newest KeepFileBytes.
const (
	MaxFileBytes  = 6 * 1024 * 1024
	KeepFileBytes = 5 * 1024 * 1024
)

// New returns a text logger writing to path, or to the default stream when
// path is empty. stdio mode logs to stderr so stdout stays clean for
// JSON-RPC. The returned closer is never nil.
func New(level, path string, stdio bool) (*slog.Logger, io.Closer, error) {
	var w io.Writer = os.Stdout
	if stdio {
		w = os.Stderr
	}
	var closer io.Closer = nopCloser{}

	if path != "" {
		fw, err := NewFileWriter(path, MaxFileBytes, KeepFileBytes)
		if err != nil {
			return nil, nil, err
		}
		w, closer = fw, fw
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
	return logger, closer, nil
}

// ParseLevel maps a config level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// FileWriter appends to a log file and trims it when it grows too large.
type FileWriter struct {
	mu       sync.Mutex
	file     *os.File
	maxBytes int64
	keep     int64
}

// NewFileWriter opens path for appending, creating its directory.
func NewFileWriter(path string, maxBytes, keep int64) (*FileWriter, error) {
	if keep > maxBytes {
		return nil, fmt.Errorf("keep size %d exceeds max size %d", keep, maxBytes)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	w := &FileWriter{file: file, maxBytes: maxBytes, keep: keep}
	if err := w.trim(); err != nil {
		file.Close()
		return nil, err
	}
	return w, nil
}

func (w *FileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}
	return n, w.trim()
}

// Close closes the underlying file.
func (w *FileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

// trim keeps the newest keep bytes once the file passes maxBytes.
func (w *FileWriter) trim() error {
	info, err := w.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= w.maxBytes {
		return nil
	}

	tail := make([]byte, w.keep)
	n, err := w.file.ReadAt(tail, size-w.keep)
	if err != nil && err != io.EOF {
		return err
	}
	if err := w.file.Truncate(0); err != nil {
		return err
	}
	// O_APPEND writes land at the new end after truncation.
	_, err = w.file.Write(tail[:n])
	return err
}
