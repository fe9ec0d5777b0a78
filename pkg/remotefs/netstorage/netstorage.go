package netstorage

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	ns "github.com/akamai/netstoragekit-golang"

	"netstorctl/pkg/remotefs"
)

// api is the subset of the NetStorage kit the filesystem uses. The kit owns
// request signing and transport; responses carry the HTTP response plus the
// raw body.
type api interface {
	Stat(nsPath string) (*http.Response, string, error)
	Dir(nsPath string) (*http.Response, string, error)
	Delete(nsPath string) (*http.Response, string, error)
	Rmdir(nsPath string) (*http.Response, string, error)
}

// Filesystem adapts the NetStorage Usage API to remotefs.Filesystem. All
// paths it accepts are relative to the CP code root; the CP code prefix is
// applied here.
type Filesystem struct {
	api    api
	cpCode string
}

var _ remotefs.Filesystem = (*Filesystem)(nil)

func New(host, keyName, key, cpCode string) *Filesystem {
	return &Filesystem{
		api:    ns.NewNetstorage(host, keyName, key, true),
		cpCode: cpCode,
	}
}

func (f *Filesystem) nsPath(path string) string {
	return "/" + f.cpCode + "/" + strings.TrimPrefix(path, "/")
}

func (f *Filesystem) GetMetadata(path string) (remotefs.Metadata, error) {
	resp, body, err := f.api.Stat(f.nsPath(path))
	if err != nil {
		return remotefs.Metadata{}, fmt.Errorf("netstorage stat %s: %w", path, err)
	}
	if err := checkResponse("stat", path, resp, body); err != nil {
		return remotefs.Metadata{}, err
	}

	listing, err := parseListing(body)
	if err != nil {
		return remotefs.Metadata{}, fmt.Errorf("netstorage stat %s: %w", path, err)
	}
	if len(listing.Files) == 0 {
		return remotefs.Metadata{}, fmt.Errorf("netstorage stat %s: empty stat response", path)
	}

	entry := listing.Files[0]
	return remotefs.Metadata{
		Path:  path,
		Type:  entryType(entry.Type),
		Size:  entry.Size,
		Mtime: time.Unix(entry.Mtime, 0).UTC(),
	}, nil
}

func (f *Filesystem) ListContents(path string, recursive bool) (*remotefs.Entry, error) {
	root := &remotefs.Entry{
		Path: path,
		Type: remotefs.EntryTypeDir,
	}
	if err := f.listInto(root, recursive); err != nil {
		return nil, err
	}
	return root, nil
}

func (f *Filesystem) listInto(dir *remotefs.Entry, recursive bool) error {
	resp, body, err := f.api.Dir(f.nsPath(dir.Path))
	if err != nil {
		return fmt.Errorf("netstorage dir %s: %w", dir.Path, err)
	}
	if err := checkResponse("dir", dir.Path, resp, body); err != nil {
		return err
	}

	listing, err := parseListing(body)
	if err != nil {
		return fmt.Errorf("netstorage dir %s: %w", dir.Path, err)
	}

	for _, file := range listing.Files {
		child := &remotefs.Entry{
			Path:  dir.Path + "/" + file.Name,
			Type:  entryType(file.Type),
			Size:  file.Size,
			Mtime: time.Unix(file.Mtime, 0).UTC(),
		}
		if recursive && child.IsDir() {
			if err := f.listInto(child, true); err != nil {
				return err
			}
		}
		dir.Children = append(dir.Children, child)
	}
	return nil
}

func (f *Filesystem) Delete(path string) error {
	resp, body, err := f.api.Delete(f.nsPath(path))
	if err != nil {
		return fmt.Errorf("netstorage delete %s: %w", path, err)
	}
	return checkResponse("delete", path, resp, body)
}

func (f *Filesystem) DeleteDirectory(path string) error {
	resp, body, err := f.api.Rmdir(f.nsPath(path))
	if err != nil {
		return fmt.Errorf("netstorage rmdir %s: %w", path, err)
	}
	return checkResponse("rmdir", path, resp, body)
}

func checkResponse(op, path string, resp *http.Response, body string) error {
	if resp == nil {
		return fmt.Errorf("netstorage %s %s: no response", op, path)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("netstorage %s %s: %s: %s", op, path, resp.Status, strings.TrimSpace(body))
	}
	return nil
}

// The stat and dir actions share one XML shape:
//
//	<stat directory="/123/example">
//	    <file type="file" name="a.jpg" size="3" mtime="1700000000"/>
//	    <file type="dir" name="sub" mtime="1700000000"/>
//	</stat>
type listing struct {
	XMLName   xml.Name    `xml:"stat"`
	Directory string      `xml:"directory,attr"`
	Files     []fileEntry `xml:"file"`
}

type fileEntry struct {
	Type  string `xml:"type,attr"`
	Name  string `xml:"name,attr"`
	Size  int64  `xml:"size,attr"`
	Mtime int64  `xml:"mtime,attr"`
}

func parseListing(body string) (listing, error) {
	decoder := xml.NewDecoder(strings.NewReader(body))
	// The service declares ISO-8859-1 in the prolog. Bytes are passed
	// through untouched here; segment decoding is the caller's concern.
	decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	var l listing
	if err := decoder.Decode(&l); err != nil {
		return listing{}, fmt.Errorf("parsing listing response: %w", err)
	}
	return l, nil
}

func entryType(t string) remotefs.EntryType {
	switch t {
	case "dir":
		return remotefs.EntryTypeDir
	case "symlink":
		return remotefs.EntryTypeSymlink
	default:
		return remotefs.EntryTypeFile
	}
}
