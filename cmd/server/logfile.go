package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
)

const (
	maxLogBytes  = 6 << 20
	keepLogBytes = 5 << 20
)

// logFile appends to a file and, once it grows past maxLogBytes, trims it
// back to the newest keepLogBytes starting on a whole line.
type logFile struct {
	mu       sync.Mutex
	file     *os.File
	maxBytes int64
	keep     int64
}

func openLogFile(path string) (*logFile, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	lf := &logFile{file: file, maxBytes: maxLogBytes, keep: keepLogBytes}
	if err := lf.trim(); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("trimming %s: %w", path, err)
	}
	return lf, nil
}

func (l *logFile) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n, err := l.file.Write(p)
	if err != nil {
		return n, err
	}
	return n, l.trim()
}

func (l *logFile) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}

func (l *logFile) trim() error {
	info, err := l.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= l.maxBytes {
		return nil
	}

	tail := make([]byte, l.keep)
	n, err := l.file.ReadAt(tail, size-l.keep)
	if err != nil && err != io.EOF {
		return err
	}
	tail = tail[:n]
	if i := bytes.IndexByte(tail, '\n'); i >= 0 {
		tail = tail[i+1:]
	}

	if err := l.file.Truncate(0); err != nil {
		return err
	}
	// O_APPEND writes land at the new end regardless of the offset.
	_, err = l.file.Write(tail)
	return err
}
