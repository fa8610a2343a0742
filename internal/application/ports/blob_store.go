package ports

import "io"

type BlobStore interface {
	// Save streams r into name, enforcing max bytes during the copy.
	Save(name string, r io.Reader, max int64) (int64, error)
	Path(name string) string
	Stat(name string) error
	Remove(name string) error
}
