package repository

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/reshetovitsme/wa-capture-agent/internal/modules/message/domain"
	apperrors "github.com/reshetovitsme/wa-capture-agent/internal/shared/errors"
)

const filePerm = 0644

// FileStorage implements Repository with one lazily opened append-mode
// file per log target. Appends to the same file are serialized, appends
// to different files are not.
type FileStorage struct {
	files map[domain.LogTarget]*logFile
}

type logFile struct {
	path string

	mu sync.Mutex
	f  *os.File
}

// NewFileStorage creates a file-backed log writer. Paths are used as given;
// their parent directories are created on first append.
func NewFileStorage(paths map[domain.LogTarget]string) (Repository, error) {
	files := make(map[domain.LogTarget]*logFile, len(paths))
	for target, path := range paths {
		if !target.IsValid() || path == "" {
			return nil, apperrors.IO().With("target", target, "path", path).Errorf("invalid log target")
		}
		files[target] = &logFile{path: path}
	}
	return &FileStorage{files: files}, nil
}

// Append writes line to the target log in a single write call and syncs it
// before returning.
func (s *FileStorage) Append(ctx context.Context, target domain.LogTarget, line string) error {
	lf, ok := s.files[target]
	if !ok {
		return apperrors.IO().With("target", target).Errorf("no log configured for target")
	}
	if err := ctx.Err(); err != nil {
		return apperrors.IO().With("target", target).Wrap(err)
	}

	lf.mu.Lock()
	defer lf.mu.Unlock()

	if lf.f == nil {
		if err := lf.open(); err != nil {
			return err
		}
	}

	if _, err := lf.f.WriteString(line); err != nil {
		lf.reset()
		return apperrors.IO().With("path", lf.path).Wrapf(err, "failed to append log line")
	}
	if err := lf.f.Sync(); err != nil {
		lf.reset()
		return apperrors.IO().With("path", lf.path).Wrapf(err, "failed to sync log file")
	}
	return nil
}

// Close closes every open log file.
func (s *FileStorage) Close() error {
	var firstErr error
	for _, lf := range s.files {
		lf.mu.Lock()
		if lf.f != nil {
			if err := lf.f.Close(); err != nil && firstErr == nil {
				firstErr = apperrors.IO().With("path", lf.path).Wrapf(err, "failed to close log file")
			}
			lf.f = nil
		}
		lf.mu.Unlock()
	}
	return firstErr
}

func (lf *logFile) open() error {
	dir := filepath.Dir(lf.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.IO().With("dir", dir).Wrapf(err, "failed to create log directory")
	}
	f, err := os.OpenFile(lf.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return apperrors.IO().With("path", lf.path).Wrapf(err, "failed to open log file")
	}
	lf.f = f
	return nil
}

// reset drops a handle after a failed write so the next append reopens the file.
func (lf *logFile) reset() {
	if lf.f != nil {
		lf.f.Close()
		lf.f = nil
	}
}
