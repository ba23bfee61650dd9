package history

import "time"

// MaxEntries bounds the history file; the oldest entries are dropped first
const MaxEntries = 500

// History represents the history file structure
type History struct {
	Version     int     `yaml:"version"`
	Conversions []Entry `yaml:"conversions"`
}

// Entry records one conversion
type Entry struct {
	Name        string    `yaml:"name" json:"name"`
	Input       string    `yaml:"input" json:"input"`
	Output      string    `yaml:"output,omitempty" json:"output,omitempty"`
	Tier        string    `yaml:"tier" json:"tier"`
	Template    string    `yaml:"template" json:"template"`
	Sections    []string  `yaml:"sections,omitempty" json:"sections,omitempty"`
	Warnings    int       `yaml:"warnings,omitempty" json:"warnings,omitempty"`
	Error       string    `yaml:"error,omitempty" json:"error,omitempty"`
	ConvertedAt time.Time `yaml:"converted_at" json:"converted_at"`
}

// Failed reports whether the conversion failed
func (e Entry) Failed() bool {
	return e.Error != ""
}

// NewHistory creates an empty history with defaults
func NewHistory() *History {
	return &History{
		Version: 1,
	}
}
