// Package storage keeps uploaded audio bytes under a configured local
// directory, one file per upload.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

var (
	ErrTooLarge = errors.New("file exceeds maximum allowed size")
	ErrMissing  = errors.New("file no longer exists on storage")
)

type Local struct {
	logger *zap.Logger
	root   string
}

func NewLocal(logger *zap.Logger, root string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	logger.Info("local storage ready", zap.String("dir", root))

	return &Local{logger: logger, root: root}, nil
}

// Path confines name to the storage root. Names are service-generated uuids,
// never user input.
func (l *Local) Path(name string) string {
	return filepath.Join(l.root, filepath.Base(name))
}

// Save streams r into name, enforcing max while copying so an oversized
// stream never lands fully on disk. Partial files are removed on any failure.
func (l *Local) Save(name string, r io.Reader, max int64) (int64, error) {
	path := l.Path(name)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}

	n, err := io.Copy(dst, io.LimitReader(r, max+1))
	if err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	if n > max {
		_ = dst.Close()
		_ = os.Remove(path)
		return 0, ErrTooLarge
	}
	if err = dst.Close(); err != nil {
		_ = os.Remove(path)
		return 0, err
	}

	return n, nil
}

// Stat reports whether the bytes for name are still present.
func (l *Local) Stat(name string) error {
	if _, err := os.Stat(l.Path(name)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrMissing
		}
		return err
	}
	return nil
}

func (l *Local) Remove(name string) error {
	if err := os.Remove(l.Path(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
