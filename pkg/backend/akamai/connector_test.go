package akamai

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netstorctl/pkg/remotefs"
)

type fakeFilesystem struct {
	metadata    remotefs.Metadata
	metadataErr error
	tree        *remotefs.Entry
	listErr     error

	deleteErr    error
	deleteDirErr error

	statted     []string
	deletedFile []string
	deletedDir  []string
}

func (f *fakeFilesystem) GetMetadata(path string) (remotefs.Metadata, error) {
	f.statted = append(f.statted, path)
	return f.metadata, f.metadataErr
}

func (f *fakeFilesystem) ListContents(path string, recursive bool) (*remotefs.Entry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.tree, nil
}

func (f *fakeFilesystem) Delete(path string) error {
	f.deletedFile = append(f.deletedFile, path)
	return f.deleteErr
}

func (f *fakeFilesystem) DeleteDirectory(path string) error {
	f.deletedDir = append(f.deletedDir, path)
	return f.deleteDirErr
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConnector(t *testing.T, options map[string]any) *Connector {
	t.Helper()
	c, err := NewConnector("media/storage", options, testLogger())
	require.NoError(t, err)
	return c
}

func exampleOptions() map[string]any {
	return map[string]any{
		"host":                "h",
		"cpCode":              "123",
		"restrictedDirectory": "root",
		"workingDirectory":    "storage",
	}
}

func TestNewConnectorRejectsUnknownOption(t *testing.T) {
	options := exampleOptions()
	options["compression"] = "gzip"

	_, err := NewConnector("media/storage", options, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"compression"`)
	assert.Contains(t, err.Error(), `"media/storage"`)
}

func TestNewConnectorIgnoresNullUnknownOption(t *testing.T) {
	options := exampleOptions()
	options["compression"] = nil

	_, err := NewConnector("media/storage", options, testLogger())
	require.NoError(t, err)
}

func TestNewConnectorAcceptsNumericCPCode(t *testing.T) {
	options := exampleOptions()
	options["cpCode"] = 123

	c := newTestConnector(t, options)
	assert.Equal(t, "h/123/root", c.RestrictedPath())
}

func TestPathAccessors(t *testing.T) {
	options := exampleOptions()
	options["staticHost"] = "static.example.com"
	c := newTestConnector(t, options)

	assert.Equal(t, "root", c.RestrictedDirectory())
	assert.Equal(t, "root/storage", c.FullDirectory())
	assert.Equal(t, "h/123/root", c.RestrictedPath())
	assert.Equal(t, "h/123/root/storage", c.FullPath())
	assert.Equal(t, "static.example.com/root/storage", c.FullStaticPath())
}

func TestTestConnectionProbesRestrictedDirectory(t *testing.T) {
	c := newTestConnector(t, exampleOptions())
	fs := &fakeFilesystem{}
	c.fs = fs

	require.NoError(t, c.TestConnection(context.Background()))
	assert.Equal(t, []string{"root"}, fs.statted)
}

func TestTestConnectionPropagatesError(t *testing.T) {
	c := newTestConnector(t, exampleOptions())
	probeErr := errors.New("auth rejected")
	c.fs = &fakeFilesystem{metadataErr: probeErr}

	err := c.TestConnection(context.Background())
	assert.ErrorIs(t, err, probeErr)
}

func TestDecodeRemotePath(t *testing.T) {
	// ASCII round-trips unchanged.
	assert.Equal(t, "root/storage/a.jpg", DecodeRemotePath("root/storage/a.jpg"))

	// ISO-8859-1 byte 0xE9 is "é".
	assert.Equal(t, "root/café/ä.jpg", DecodeRemotePath("root/caf\xe9/\xe4.jpg"))
}

func TestEncodePathKeepsSeparators(t *testing.T) {
	assert.Equal(t, "root/a%20b/c%3Fd.jpg", EncodePath("root/a b/c?d.jpg"))
}

func testTree() *remotefs.Entry {
	return &remotefs.Entry{
		Path: "root/storage",
		Type: remotefs.EntryTypeDir,
		Children: []*remotefs.Entry{
			{
				Path: "root/storage/sub",
				Type: remotefs.EntryTypeDir,
				Children: []*remotefs.Entry{
					{
						Path: "root/storage/sub/deep",
						Type: remotefs.EntryTypeDir,
						Children: []*remotefs.Entry{
							{Path: "root/storage/sub/deep/c.jpg", Type: remotefs.EntryTypeFile},
						},
					},
					{Path: "root/storage/sub/b.jpg", Type: remotefs.EntryTypeFile},
				},
			},
			{Path: "root/storage/a.jpg", Type: remotefs.EntryTypeFile},
		},
	}
}

func TestCollectAllPathsDeepestFirst(t *testing.T) {
	c := newTestConnector(t, exampleOptions())
	c.fs = &fakeFilesystem{tree: testTree()}

	paths, err := c.CollectAllPaths()
	require.NoError(t, err)

	index := make(map[string]int, len(paths))
	for i, p := range paths {
		index[p] = i
	}

	// Every node appears, and before any of its ancestors.
	assert.Less(t, index["root/storage/sub/deep/c.jpg"], index["root/storage/sub/deep"])
	assert.Less(t, index["root/storage/sub/deep"], index["root/storage/sub"])
	assert.Less(t, index["root/storage/sub/b.jpg"], index["root/storage/sub"])
	assert.Len(t, paths, 6)

	// The working directory itself is always last.
	assert.Equal(t, "root/storage", paths[len(paths)-1])
}

func TestCollectAllPathsDecodesSegments(t *testing.T) {
	c := newTestConnector(t, exampleOptions())
	c.fs = &fakeFilesystem{tree: &remotefs.Entry{
		Path: "root/storage",
		Type: remotefs.EntryTypeDir,
		Children: []*remotefs.Entry{
			{Path: "root/storage/caf\xe9.jpg", Type: remotefs.EntryTypeFile},
		},
	}}

	paths, err := c.CollectAllPaths()
	require.NoError(t, err)
	assert.Equal(t, []string{"root/storage/café.jpg", "root/storage"}, paths)
}

func TestCollectAllPathsPropagatesListError(t *testing.T) {
	c := newTestConnector(t, exampleOptions())
	listErr := errors.New("network down")
	c.fs = &fakeFilesystem{listErr: listErr}

	_, err := c.CollectAllPaths()
	assert.ErrorIs(t, err, listErr)
}

func TestRemovePathsNothingToRemove(t *testing.T) {
	c := newTestConnector(t, exampleOptions())
	fs := &fakeFilesystem{}
	c.fs = fs

	var out bytes.Buffer
	c.removePaths(&out, nil)

	assert.Contains(t, out.String(), "Nothing to remove.")
	assert.Empty(t, fs.deletedFile)
	assert.Empty(t, fs.deletedDir)
}

func TestRemoveAllFilesTriesBothDeletes(t *testing.T) {
	c := newTestConnector(t, exampleOptions())
	fs := &fakeFilesystem{
		tree: testTree(),
		// Every path is treated as a file: the directory attempt always
		// fails and must not stop the run.
		deleteDirErr: errors.New("not a directory"),
	}
	c.fs = fs

	var out bytes.Buffer
	require.NoError(t, c.RemoveAllFiles(&out))

	assert.Len(t, fs.deletedDir, 6)
	assert.Len(t, fs.deletedFile, 6)
	// Directory failures stay out of the progress output.
	assert.NotContains(t, out.String(), "not a directory")
}

func TestRemoveAllFilesReportsFileFailures(t *testing.T) {
	c := newTestConnector(t, exampleOptions())
	fs := &fakeFilesystem{
		tree:      testTree(),
		deleteErr: errors.New("permission denied"),
	}
	c.fs = fs

	var out bytes.Buffer
	require.NoError(t, c.RemoveAllFiles(&out))

	// Every path is still attempted and each failure is surfaced.
	assert.Len(t, fs.deletedFile, 6)
	assert.Contains(t, out.String(), "permission denied")
}

func TestRemoveAllFilesEncodesFileDeletePaths(t *testing.T) {
	c := newTestConnector(t, exampleOptions())
	fs := &fakeFilesystem{tree: &remotefs.Entry{
		Path: "root/storage",
		Type: remotefs.EntryTypeDir,
		Children: []*remotefs.Entry{
			{Path: "root/storage/a b.jpg", Type: remotefs.EntryTypeFile},
		},
	}}
	c.fs = fs

	require.NoError(t, c.RemoveAllFiles(io.Discard))

	assert.Contains(t, fs.deletedFile, "root/storage/a%20b.jpg")
	// The directory attempt uses the plain path.
	assert.Contains(t, fs.deletedDir, "root/storage/a b.jpg")
}

func TestRemoveAllFilesPropagatesListError(t *testing.T) {
	c := newTestConnector(t, exampleOptions())
	listErr := errors.New("listing failed")
	c.fs = &fakeFilesystem{listErr: listErr}

	err := c.RemoveAllFiles(io.Discard)
	assert.ErrorIs(t, err, listErr)
}
