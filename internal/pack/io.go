package pack

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// UnsupportedInputError is returned for inputs that are neither a
// directory nor a zip archive.
type UnsupportedInputError struct {
	Path string
}

func (e *UnsupportedInputError) Error() string {
	return fmt.Sprintf("unsupported input %s: expected a directory or .zip file", e.Path)
}

// Load reads a style package from a directory or a .zip file
func Load(path string) (*FileSet, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		return LoadDir(path)
	}
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return LoadZip(path)
	}
	return nil, &UnsupportedInputError{Path: path}
}

// Name derives a style name from an input path
func Name(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// LoadDir reads every regular file under dir, skipping hidden entries
func LoadDir(dir string) (*FileSet, error) {
	set := NewFileSet(Name(dir))

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		set.Put(filepath.ToSlash(rel), data)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	return set, nil
}

// LoadZip reads a zipped style package. When every entry shares a single
// top-level folder that folder is stripped.
func LoadZip(path string) (*FileSet, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	set := NewFileSet(Name(path))
	var files []*zip.File
	for _, file := range r.File {
		if file.FileInfo().IsDir() || isHidden(file.Name) {
			continue
		}
		files = append(files, file)
	}

	prefix := commonRoot(files)
	for _, file := range files {
		data, err := readZipFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s from %s: %w", file.Name, path, err)
		}
		set.Put(strings.TrimPrefix(file.Name, prefix), data)
	}

	return set, nil
}

func readZipFile(file *zip.File) ([]byte, error) {
	fd, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return io.ReadAll(fd)
}

// commonRoot returns "dir/" when all files live under the same top-level dir
func commonRoot(files []*zip.File) string {
	root := ""
	for _, file := range files {
		name := strings.TrimPrefix(filepath.ToSlash(file.Name), "/")
		i := strings.Index(name, "/")
		if i < 0 {
			return ""
		}
		if root == "" {
			root = name[:i+1]
		} else if root != name[:i+1] {
			return ""
		}
	}
	return root
}

func isHidden(name string) bool {
	for _, part := range strings.Split(filepath.ToSlash(name), "/") {
		if strings.HasPrefix(part, ".") || part == "__MACOSX" {
			return true
		}
	}
	return false
}

// WriteDir writes the file set under dir, creating it if needed
func WriteDir(set *FileSet, dir string) error {
	for _, f := range set.Files() {
		dst := filepath.Join(dir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(dst, f.Data, 0644); err != nil {
			return err
		}
	}
	return nil
}

// WriteZip writes the file set as a zip archive at path
func WriteZip(set *FileSet, path string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	zw := zip.NewWriter(out)
	for _, f := range set.Files() {
		w, err := zw.Create(f.Path)
		if err != nil {
			zw.Close()
			return err
		}
		if _, err := w.Write(f.Data); err != nil {
			zw.Close()
			return err
		}
	}
	return zw.Close()
}
