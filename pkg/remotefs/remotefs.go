package remotefs

import "time"

type EntryType string

const (
	EntryTypeFile    EntryType = "file"
	EntryTypeDir     EntryType = "dir"
	EntryTypeSymlink EntryType = "symlink"
)

// Entry is a node in a remote directory tree. Directories carry their
// children when the listing was recursive.
type Entry struct {
	Path     string
	Type     EntryType
	Size     int64
	Mtime    time.Time
	Children []*Entry
}

func (e *Entry) IsDir() bool {
	return e.Type == EntryTypeDir
}

// Metadata describes a single remote file or directory.
type Metadata struct {
	Path  string
	Type  EntryType
	Size  int64
	Mtime time.Time
}

// Filesystem is the contract a remote object store has to satisfy for the
// connector: a metadata probe, a (possibly recursive) listing, and the two
// delete variants. Implementations issue blocking HTTP calls and do not
// retry; errors are returned to the caller unmodified.
type Filesystem interface {
	// GetMetadata stats a single path.
	GetMetadata(path string) (Metadata, error)

	// ListContents returns the tree rooted at path. With recursive set,
	// every subdirectory is expanded.
	ListContents(path string, recursive bool) (*Entry, error)

	// Delete removes a file. The path is expected to already be
	// URL-path-segment encoded by the caller.
	Delete(path string) error

	// DeleteDirectory removes a directory. Fails if the path is not a
	// directory or is not empty.
	DeleteDirectory(path string) error
}
