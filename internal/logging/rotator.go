package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	logFileName = "moto.log"
	logFilePerm = 0o600
	logDirPerm  = 0o750
)

// FileSink is an io.Writer appending to moto.log. When the file grows past
// maxSize it is renamed with a timestamp suffix and a fresh file is opened.
// Rotated files older than maxAge are pruned on rotation and on open.
type FileSink struct {
	mu      sync.Mutex
	dir     string
	maxSize int64
	maxAge  time.Duration
	file    *os.File
	size    int64
}

// OpenFileSink opens (or creates) moto.log in dir.
func OpenFileSink(dir string, maxSizeMB, maxAgeDays int) (*FileSink, error) {
	if dir == "" {
		return nil, fmt.Errorf("log directory cannot be empty")
	}
	if err := os.MkdirAll(dir, logDirPerm); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	s := &FileSink{
		dir:     dir,
		maxSize: int64(maxSizeMB) << 20,
		maxAge:  time.Duration(maxAgeDays) * 24 * time.Hour,
	}
	s.prune(time.Now())
	if err := s.open(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the active log file path.
func (s *FileSink) Path() string {
	return filepath.Join(s.dir, logFileName)
}

func (s *FileSink) open() error {
	f, err := os.OpenFile(s.Path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerm)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("stat log file: %w", err)
	}
	s.file = f
	s.size = info.Size()
	return nil
}

func (s *FileSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return 0, os.ErrClosed
	}
	if s.maxSize > 0 && s.size+int64(len(p)) > s.maxSize {
		if err := s.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := s.file.Write(p)
	s.size += int64(n)
	return n, err
}

func (s *FileSink) rotate() error {
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	now := time.Now()
	rotated := fmt.Sprintf("%s.%s", s.Path(), now.Format("20060102-150405"))
	if err := os.Rename(s.Path(), rotated); err != nil {
		return fmt.Errorf("rotate log file: %w", err)
	}
	s.prune(now)
	return s.open()
}

func (s *FileSink) prune(now time.Time) {
	if s.maxAge <= 0 {
		return
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), logFileName+".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) > s.maxAge {
			_ = os.Remove(filepath.Join(s.dir, e.Name()))
		}
	}
}

// Close closes the underlying file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
