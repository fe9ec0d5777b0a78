package formatter

import (
	"fmt"
	"strings"

	"netstorctl/pkg/remotefs"
)

// ListingFormatter renders content listings and path lists for terminal
// output.
type ListingFormatter struct{}

func NewListingFormatter() *ListingFormatter {
	return &ListingFormatter{}
}

// FormatTree renders a recursive listing as a table, one row per node in
// listing order.
func (f *ListingFormatter) FormatTree(root *remotefs.Entry) string {
	table := NewTable("PATH", "TYPE", "SIZE", "MODIFIED")

	var walk func(entry *remotefs.Entry)
	walk = func(entry *remotefs.Entry) {
		for _, child := range entry.Children {
			size := FormatBytes(child.Size)
			if child.IsDir() {
				size = ""
			}
			modified := ""
			if !child.Mtime.IsZero() {
				modified = child.Mtime.Format("2006-01-02 15:04:05")
			}
			table.AddRow(child.Path, string(child.Type), size, modified)
			walk(child)
		}
	}
	walk(root)

	if len(table.rows) == 0 {
		return "(empty)"
	}
	return table.String()
}

// FormatPaths renders a flattened path list, one path per line.
func (f *ListingFormatter) FormatPaths(paths []string) string {
	if len(paths) == 0 {
		return "(empty)"
	}
	return strings.Join(paths, "\n")
}

// FormatRoleHeader renders the per-role section header used by the
// collection commands.
func (f *ListingFormatter) FormatRoleHeader(collection, role, backendType string) string {
	return FormatHeader(fmt.Sprintf("%s/%s (%s)", collection, role, backendType))
}

// FormatBytes renders a byte count in a compact human-readable form. A
// negative value means the size is unknown.
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		return "N/A"
	}

	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	sizes := []string{"KB", "MB", "GB", "TB", "PB", "EB"}
	if exp >= len(sizes) {
		return fmt.Sprintf("%d B", bytes)
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), sizes[exp])
}
