// Package history keeps a YAML record of past conversions.
package history

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"stylemig/internal/convert"
)

// Manager handles history file operations
type Manager struct {
	path    string
	history *History
	now     func() time.Time
}

// NewManager creates a history manager for the file at path
func NewManager(path string) *Manager {
	return &Manager{
		path: path,
		now:  time.Now,
	}
}

// Load reads the history from disk. A missing file is an empty history.
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			m.history = NewHistory()
			return nil
		}
		return err
	}

	var h History
	if err := yaml.Unmarshal(data, &h); err != nil {
		return err
	}
	if h.Version == 0 {
		h.Version = 1
	}

	m.history = &h
	return nil
}

// Save writes the history to disk
func (m *Manager) Save() error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(m.Get())
	if err != nil {
		return err
	}

	return os.WriteFile(m.path, data, 0644)
}

// Get returns the current history
func (m *Manager) Get() *History {
	if m.history == nil {
		m.history = NewHistory()
	}
	return m.history
}

// Record appends a conversion outcome. rep may be nil when the conversion
// failed before producing a report.
func (m *Manager) Record(input string, rep *convert.Report, convErr error) {
	e := Entry{Input: input, ConvertedAt: m.now().UTC()}
	if rep != nil {
		e.Name = rep.Name
		e.Output = rep.Output
		e.Tier = rep.Tier
		e.Template = rep.Template
		e.Sections = rep.Spliced
		e.Warnings = len(rep.Warnings)
	}
	if e.Name == "" {
		e.Name = filepath.Base(input)
	}
	if convErr != nil {
		e.Error = convErr.Error()
	}

	h := m.Get()
	h.Conversions = append(h.Conversions, e)
	if n := len(h.Conversions); n > MaxEntries {
		h.Conversions = h.Conversions[n-MaxEntries:]
	}
}

// List returns all entries, newest first
func (m *Manager) List() []Entry {
	h := m.Get()
	out := make([]Entry, len(h.Conversions))
	for i, e := range h.Conversions {
		out[len(out)-1-i] = e
	}
	return out
}

// Latest returns the most recent entry for a style name
func (m *Manager) Latest(name string) (Entry, bool) {
	h := m.Get()
	for i := len(h.Conversions) - 1; i >= 0; i-- {
		if h.Conversions[i].Name == name {
			return h.Conversions[i], true
		}
	}
	return Entry{}, false
}

// Clear removes every entry and saves the empty history
func (m *Manager) Clear() error {
	m.history = NewHistory()
	return m.Save()
}
