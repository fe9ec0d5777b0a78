package backend

import (
	"context"
	"io"

	"netstorctl/pkg/remotefs"
)

type Type string

const (
	Akamai Type = "akamai"
	S3     Type = "s3"
)

// Backend is the narrow contract every collection backend satisfies,
// regardless of the underlying store.
type Backend interface {
	// BackendType identifies the backend implementation.
	BackendType() Type

	// TestConnection probes the store with a lightweight existence check.
	// It does not retry and propagates client errors unmodified.
	TestConnection(ctx context.Context) error

	Close() error
}

// Connector is the full NetStorage surface a collection role exposes when it
// is Akamai-backed. Commands that need listing or bulk deletion assert a
// Backend down to this interface and report absence otherwise.
type Connector interface {
	Backend

	// FullDirectory is the working directory of the connector's role,
	// relative to the CP code root.
	FullDirectory() string

	// GetContentList returns the recursive listing rooted at FullDirectory.
	GetContentList() (*remotefs.Entry, error)

	// CollectAllPaths flattens the listing into decoded paths ordered
	// deepest-first, ending with FullDirectory itself.
	CollectAllPaths() ([]string, error)

	// RemoveAllFiles deletes every collected path in order, reporting
	// progress to out. Individual delete failures never abort the run.
	RemoveAllFiles(out io.Writer) error
}
