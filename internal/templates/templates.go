// Package templates provides the target-format style bundles that legacy
// styles are converted into. Bundles are embedded in the binary and can be
// overridden per name from a directory on disk.
package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Bundle file names
const (
	ScriptFile   = "style.js"
	StyleFile    = "style.css"
	MetadataFile = "config.xml"
	indexFile    = "index.yaml"
)

// ErrTemplateNotFound is returned when no bundle exists for a name
var ErrTemplateNotFound = errors.New("template not found")

//go:embed bundles
var embedded embed.FS

// Info describes a template bundle
type Info struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
	Source      string `yaml:"-"` // "embedded" or the override directory
}

// Index lists the available bundles
type Index struct {
	Templates []Info `yaml:"templates"`
}

// Bundle is the target-format text for one template
type Bundle struct {
	Info
	Script   string
	Style    string
	Metadata string
}

// Loader loads bundles from the embedded set, preferring bundles found in
// an override directory. Loaded bundles are cached; a Loader is safe for
// concurrent use.
type Loader struct {
	overrideDir string
	base        fs.FS

	mu    sync.Mutex
	index *Index
	cache map[string]*Bundle
}

// NewLoader creates a loader. overrideDir may be empty.
func NewLoader(overrideDir string) *Loader {
	sub, err := fs.Sub(embedded, "bundles")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return &Loader{
		overrideDir: overrideDir,
		base:        sub,
		cache:       make(map[string]*Bundle),
	}
}

// List returns information about every available bundle
func (l *Loader) List() ([]Info, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx, err := l.loadIndex()
	if err != nil {
		return nil, err
	}

	out := make([]Info, len(idx.Templates))
	for i, info := range idx.Templates {
		info.Source = l.sourceOf(info.Name)
		out[i] = info
	}
	return out, nil
}

// Load returns the bundle for a template name
func (l *Loader) Load(name string) (*Bundle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.cache[name]; ok {
		return b, nil
	}

	idx, err := l.loadIndex()
	if err != nil {
		return nil, err
	}

	info, ok := idx.find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	info.Source = l.sourceOf(name)

	fsys := l.fsFor(name)
	b := &Bundle{Info: info}
	for file, dst := range map[string]*string{
		ScriptFile:   &b.Script,
		StyleFile:    &b.Style,
		MetadataFile: &b.Metadata,
	} {
		data, err := fs.ReadFile(fsys, path.Join(name, file))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s of template %s: %w", file, name, err)
		}
		*dst = string(data)
	}

	l.cache[name] = b
	return b, nil
}

// Script returns the script text of a template
func (l *Loader) Script(name string) (string, error) {
	b, err := l.Load(name)
	if err != nil {
		return "", err
	}
	return b.Script, nil
}

// loadIndex reads the embedded index and appends any override-only bundles.
// Caller must hold l.mu.
func (l *Loader) loadIndex() (*Index, error) {
	if l.index != nil {
		return l.index, nil
	}

	data, err := fs.ReadFile(l.base, indexFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read template index: %w", err)
	}

	var idx Index
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("failed to parse template index: %w", err)
	}

	if l.overrideDir != "" {
		if data, err := os.ReadFile(filepath.Join(l.overrideDir, indexFile)); err == nil {
			var extra Index
			if err := yaml.Unmarshal(data, &extra); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", filepath.Join(l.overrideDir, indexFile), err)
			}
			idx.merge(extra)
		}
	}

	l.index = &idx
	return l.index, nil
}

// fsFor picks the override directory when it holds the named bundle
func (l *Loader) fsFor(name string) fs.FS {
	if l.sourceOf(name) != "embedded" {
		return os.DirFS(l.overrideDir)
	}
	return l.base
}

func (l *Loader) sourceOf(name string) string {
	if l.overrideDir == "" {
		return "embedded"
	}
	info, err := os.Stat(filepath.Join(l.overrideDir, name, ScriptFile))
	if err != nil || info.IsDir() {
		return "embedded"
	}
	return l.overrideDir
}

func (idx *Index) find(name string) (Info, bool) {
	for _, info := range idx.Templates {
		if info.Name == name {
			return info, true
		}
	}
	return Info{}, false
}

// merge adds or replaces entries from other; other takes precedence
func (idx *Index) merge(other Index) {
	for _, info := range other.Templates {
		replaced := false
		for i := range idx.Templates {
			if idx.Templates[i].Name == info.Name {
				idx.Templates[i] = info
				replaced = true
				break
			}
		}
		if !replaced {
			idx.Templates = append(idx.Templates, info)
		}
	}
}
