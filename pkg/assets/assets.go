// Package assets maps front-end bundle names to the fingerprinted files a
// build produced.
//
// A build writes manifest.json next to the bundle:
//
//	{
//	  "app.js": "app.3f9c1a2b.js",
//	  "app.css": "app.77d0e41c.css"
//	}
//
// The page shell asks a Resolver for the URL of each entry point:
//
//	res, _ := assets.ForDir("web/dist", "/assets/")
//	res.Asset("app.js") // "/assets/app.3f9c1a2b.js"
//
// Without a manifest the names are served unchanged.
package assets

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ManifestFile is the manifest name looked up by ForDir.
const ManifestFile = "manifest.json"

// ErrInvalidEntry is returned for manifest entries that would escape the
// asset prefix.
var ErrInvalidEntry = errors.New("assets: invalid manifest entry")

// Manifest is an immutable mapping from bundle names to fingerprinted
// file names. It is safe for concurrent use.
type Manifest struct {
	entries map[string]string
}

// ParseManifest decodes a JSON manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("assets: parse manifest: %w", err)
	}
	for name, file := range entries {
		if !safeRelative(file) {
			return nil, fmt.Errorf("%w: %q -> %q", ErrInvalidEntry, name, file)
		}
	}
	return &Manifest{entries: entries}, nil
}

// LoadManifest reads and decodes the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseManifest(data)
}

// Lookup returns the fingerprinted file for name.
func (m *Manifest) Lookup(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	file, ok := m.entries[name]
	return file, ok
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

func safeRelative(file string) bool {
	if file == "" || strings.HasPrefix(file, "/") || strings.Contains(file, "\\") || strings.Contains(file, "://") {
		return false
	}
	for _, seg := range strings.Split(file, "/") {
		if seg == ".." {
			return false
		}
	}
	return true
}

// Resolver turns bundle names into URL paths under a prefix.
type Resolver struct {
	prefix   string
	manifest *Manifest
}

// NewResolver returns a resolver for m. A nil manifest passes names through.
func NewResolver(prefix string, m *Manifest) *Resolver {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &Resolver{prefix: prefix, manifest: m}
}

// ForDir builds a resolver from dir/manifest.json. A missing manifest is
// not an error; names are then served unchanged.
func ForDir(dir, prefix string) (*Resolver, error) {
	m, err := LoadManifest(filepath.Join(dir, ManifestFile))
	if errors.Is(err, fs.ErrNotExist) {
		return NewResolver(prefix, nil), nil
	}
	if err != nil {
		return nil, err
	}
	return NewResolver(prefix, m), nil
}

// Asset returns the URL path for name.
func (r *Resolver) Asset(name string) string {
	if file, ok := r.manifest.Lookup(name); ok {
		return r.prefix + file
	}
	return r.prefix + name
}

// Fingerprinted reports whether a manifest backs the resolver.
func (r *Resolver) Fingerprinted() bool {
	return r.manifest != nil
}
