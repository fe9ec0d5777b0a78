package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"netstorctl/pkg/remotefs"
)

func TestFormatTree(t *testing.T) {
	f := NewListingFormatter()
	root := &remotefs.Entry{
		Path: "root/storage",
		Type: remotefs.EntryTypeDir,
		Children: []*remotefs.Entry{
			{
				Path: "root/storage/sub",
				Type: remotefs.EntryTypeDir,
				Children: []*remotefs.Entry{
					{
						Path:  "root/storage/sub/b.jpg",
						Type:  remotefs.EntryTypeFile,
						Size:  2048,
						Mtime: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
					},
				},
			},
			{Path: "root/storage/a.jpg", Type: remotefs.EntryTypeFile, Size: 10},
		},
	}

	out := f.FormatTree(root)
	assert.Contains(t, out, "root/storage/sub")
	assert.Contains(t, out, "root/storage/sub/b.jpg")
	assert.Contains(t, out, "2.0 KB")
	assert.Contains(t, out, "2026-01-02 03:04:05")
	assert.Contains(t, out, "10 B")
}

func TestFormatTreeEmpty(t *testing.T) {
	f := NewListingFormatter()
	out := f.FormatTree(&remotefs.Entry{Path: "root/storage", Type: remotefs.EntryTypeDir})
	assert.Equal(t, "(empty)", out)
}

func TestFormatPaths(t *testing.T) {
	f := NewListingFormatter()
	assert.Equal(t, "a\nb", f.FormatPaths([]string{"a", "b"}))
	assert.Equal(t, "(empty)", f.FormatPaths(nil))
}

func TestTableAlignsColumns(t *testing.T) {
	table := NewTable("NAME", "TYPE")
	table.AddRow("a-very-long-name", "file")
	table.AddRow("x", "dir")

	out := table.String()
	assert.Contains(t, out, "| a-very-long-name | file |")
	assert.Contains(t, out, "| x                | dir  |")
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "N/A", FormatBytes(-1))
	assert.Equal(t, "0 B", FormatBytes(0))
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.5 KB", FormatBytes(1536))
	assert.Equal(t, "1.0 MB", FormatBytes(1024*1024))
}
