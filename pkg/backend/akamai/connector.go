package akamai

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"golang.org/x/text/encoding/charmap"

	"netstorctl/internal/backend/registry"
	"netstorctl/pkg/backend"
	"netstorctl/pkg/remotefs"
	"netstorctl/pkg/remotefs/netstorage"
)

func init() {
	registry.Register(backend.Akamai, registry.Registration{
		Initializer: initialize,
	})
}

func initialize(name string, options map[string]any, logger *slog.Logger) (backend.Backend, error) {
	c, err := NewConnector(name, options, logger)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Options are the recognized connector settings. Anything else in the raw
// option map is a configuration error unless its value is null.
type Options struct {
	Host                string `mapstructure:"host"`
	StaticHost          string `mapstructure:"staticHost"`
	CPCode              string `mapstructure:"cpCode"`
	RestrictedDirectory string `mapstructure:"restrictedDirectory"`
	WorkingDirectory    string `mapstructure:"workingDirectory"`
	Key                 string `mapstructure:"key"`
	KeyName             string `mapstructure:"keyName"`
}

// Connector holds one collection role's NetStorage configuration and exposes
// the listing, connectivity and bulk-delete operations on it. Configuration
// is immutable after construction.
type Connector struct {
	name   string
	opts   Options
	fs     remotefs.Filesystem
	logger *slog.Logger
}

var _ backend.Connector = (*Connector)(nil)

func NewConnector(name string, raw map[string]any, logger *slog.Logger) (*Connector, error) {
	var opts Options
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata:         &md,
		Result:           &opts,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid options for connector %q: %w", name, err)
	}
	for _, key := range md.Unused {
		if raw[key] != nil {
			return nil, fmt.Errorf("unsupported option %q on connector %q", key, name)
		}
	}

	c := &Connector{
		name:   name,
		opts:   opts,
		logger: logger,
	}
	// Stateless wiring: signing happens per request inside the kit, so one
	// filesystem per connector is enough.
	c.fs = netstorage.New(opts.Host, opts.KeyName, opts.Key, opts.CPCode)
	return c, nil
}

func (c *Connector) Name() string {
	return c.name
}

func (c *Connector) BackendType() backend.Type {
	return backend.Akamai
}

// RestrictedDirectory is the tenant path prefix below the CP code root.
func (c *Connector) RestrictedDirectory() string {
	return c.opts.RestrictedDirectory
}

// FullDirectory is the restricted directory plus the role-specific working
// directory. Plain concatenation, no normalization.
func (c *Connector) FullDirectory() string {
	return c.opts.RestrictedDirectory + "/" + c.opts.WorkingDirectory
}

func (c *Connector) RestrictedPath() string {
	return c.opts.Host + "/" + c.opts.CPCode + "/" + c.opts.RestrictedDirectory
}

func (c *Connector) FullPath() string {
	return c.opts.Host + "/" + c.opts.CPCode + "/" + c.FullDirectory()
}

// FullStaticPath is the public URL prefix content is served from.
func (c *Connector) FullStaticPath() string {
	return c.opts.StaticHost + "/" + c.FullDirectory()
}

// TestConnection stats the restricted directory. An existence probe, not a
// deep health check; any client failure propagates unmodified.
func (c *Connector) TestConnection(ctx context.Context) error {
	_, err := c.fs.GetMetadata(c.RestrictedDirectory())
	return err
}

func (c *Connector) GetContentList() (*remotefs.Entry, error) {
	return c.fs.ListContents(c.FullDirectory(), true)
}

// CollectAllPaths flattens the content listing into decoded paths ordered
// deepest-first, so a deletion pass can remove leaves before the directories
// containing them. The working directory itself is always the final entry.
// Sibling order follows the listing and is not guaranteed.
func (c *Connector) CollectAllPaths() ([]string, error) {
	root, err := c.GetContentList()
	if err != nil {
		return nil, err
	}

	var paths []string
	var walk func(entry *remotefs.Entry)
	walk = func(entry *remotefs.Entry) {
		for _, child := range entry.Children {
			walk(child)
			paths = append(paths, DecodeRemotePath(child.Path))
		}
	}
	walk(root)

	return append(paths, c.FullDirectory()), nil
}

// RemoveAllFiles deletes every collected path in deepest-first order,
// reporting progress to out. No failure aborts the loop.
func (c *Connector) RemoveAllFiles(out io.Writer) error {
	paths, err := c.CollectAllPaths()
	if err != nil {
		return err
	}
	c.removePaths(out, paths)
	return nil
}

func (c *Connector) removePaths(out io.Writer, paths []string) {
	if len(paths) == 0 {
		fmt.Fprintln(out, "Nothing to remove.")
		return
	}

	for _, path := range paths {
		fmt.Fprintf(out, "Removing %s\n", path)
		// A path is either a file or a directory and the listing does not
		// say which after decoding, so try both; exactly one attempt is
		// expected to fail.
		if err := c.fs.DeleteDirectory(path); err != nil {
			c.logger.Debug("directory delete failed", "path", path, "error", err)
		}
		if err := c.fs.Delete(EncodePath(path)); err != nil {
			fmt.Fprintf(out, "  could not remove file %s: %v\n", path, err)
		}
	}
}

func (c *Connector) Close() error {
	return nil
}

// DecodeRemotePath converts each /-separated segment of a NetStorage path
// from the service's legacy ISO-8859-1 encoding to UTF-8. Skipping this
// breaks every filename with non-ASCII characters.
func DecodeRemotePath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		decoded, err := charmap.ISO8859_1.NewDecoder().String(segment)
		if err != nil {
			continue
		}
		segments[i] = decoded
	}
	return strings.Join(segments, "/")
}

// EncodePath URL-encodes each path segment, keeping the separators.
func EncodePath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
