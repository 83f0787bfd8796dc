package logging

import (
	"os"
	"path/filepath"
	"sync"
)

// DefaultMaxSize is the size at which the log file is rotated.
const DefaultMaxSize = 5 * 1024 * 1024

// RotatingFile is an append-only log file that moves itself to <path>.old
// once it grows past its size limit. Only one old file is kept.
type RotatingFile struct {
	path    string
	maxSize int64

	mu   sync.Mutex
	file *os.File
	size int64
}

// RotateOption configures a RotatingFile.
type RotateOption func(*RotatingFile)

// WithMaxSize sets the rotation threshold in bytes.
func WithMaxSize(size int64) RotateOption {
	return func(r *RotatingFile) {
		r.maxSize = size
	}
}

// NewRotatingFile opens path for appending, creating its directory.
func NewRotatingFile(path string, opts ...RotateOption) (*RotatingFile, error) {
	r := &RotatingFile{path: path, maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(r)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RotatingFile) open() error {
	file, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return err
	}
	r.file = file
	r.size = info.Size()
	return nil
}

func (r *RotatingFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.size > 0 && r.size+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := r.file.Write(p)
	r.size += int64(n)
	return n, err
}

func (r *RotatingFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

func (r *RotatingFile) rotate() error {
	if err := r.file.Close(); err != nil {
		return err
	}
	if err := os.Rename(r.path, r.path+".old"); err != nil && !os.IsNotExist(err) {
		return err
	}
	return r.open()
}
