// Package pack reads style packages from folders or zip archives into an
// in-memory file set and writes converted sets back out.
package pack

import (
	"path"
	"sort"
	"strings"
)

// Legacy and target file names
const (
	LegacyScript = "_style_js.js"
	TargetScript = "style.js"
	TargetStyle  = "style.css"
	Metadata     = "config.xml"
)

// File is one file of a style package
type File struct {
	Path string // slash-separated, relative to the package root
	Data []byte
}

// Size returns the file size in bytes
func (f File) Size() int64 {
	return int64(len(f.Data))
}

// FileSet is an in-memory style package keyed by slash-separated path
type FileSet struct {
	Name  string
	files map[string]File
}

// NewFileSet creates an empty file set
func NewFileSet(name string) *FileSet {
	return &FileSet{
		Name:  name,
		files: make(map[string]File),
	}
}

// Put adds or replaces a file
func (fs *FileSet) Put(p string, data []byte) {
	p = cleanPath(p)
	fs.files[p] = File{Path: p, Data: data}
}

// Get returns a file by path, matching case-insensitively when there is
// no exact match.
func (fs *FileSet) Get(p string) (File, bool) {
	p = cleanPath(p)
	if f, ok := fs.files[p]; ok {
		return f, true
	}
	for name, f := range fs.files {
		if strings.EqualFold(name, p) {
			return f, true
		}
	}
	return File{}, false
}

// Has reports whether a file exists
func (fs *FileSet) Has(p string) bool {
	_, ok := fs.Get(p)
	return ok
}

// Remove deletes a file if present
func (fs *FileSet) Remove(p string) {
	if f, ok := fs.Get(p); ok {
		delete(fs.files, f.Path)
	}
}

// Files returns all files sorted by path
func (fs *FileSet) Files() []File {
	out := make([]File, 0, len(fs.files))
	for _, f := range fs.files {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out
}

// Len returns the number of files
func (fs *FileSet) Len() int {
	return len(fs.files)
}

// Script returns the legacy script text, falling back to a style.js that
// is already present. A package without either yields an empty script.
func (fs *FileSet) Script() (string, string) {
	for _, name := range []string{LegacyScript, TargetScript} {
		if f, ok := fs.Get(name); ok {
			return f.Path, string(f.Data)
		}
	}
	return "", ""
}

// Stylesheets returns the root-level stylesheets: content.css and nav.css
// first, then the rest sorted by name.
func (fs *FileSet) Stylesheets() []File {
	var primary, rest []File
	for _, f := range fs.Files() {
		if strings.Contains(f.Path, "/") || !strings.EqualFold(path.Ext(f.Path), ".css") {
			continue
		}
		switch strings.ToLower(f.Path) {
		case "content.css", "nav.css":
			primary = append(primary, f)
		default:
			rest = append(rest, f)
		}
	}
	sort.Slice(primary, func(i, j int) bool {
		return strings.ToLower(primary[i].Path) < strings.ToLower(primary[j].Path)
	})
	return append(primary, rest...)
}

func cleanPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean("/" + p)
	return strings.TrimPrefix(p, "/")
}
