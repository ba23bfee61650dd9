// Package metadata migrates the config.xml theme description of a style.
package metadata

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// DefaultVersion is used when the legacy style declares none
const DefaultVersion = "1.0"

// Theme is the <theme> document of a style's config.xml
type Theme struct {
	XMLName       xml.Name `xml:"theme"`
	Name          string   `xml:"name"`
	Title         string   `xml:"title"`
	Version       string   `xml:"version"`
	Compatibility string   `xml:"compatibility"`
	Author        string   `xml:"author"`
	AuthorURL     string   `xml:"author-url"`
	License       string   `xml:"license"`
	LicenseURL    string   `xml:"license-url"`
	Description   string   `xml:"description"`
	ExtraHead     *Markup  `xml:"extra-head,omitempty"`
	Downloadable  string   `xml:"downloadable,omitempty"`
}

// Markup keeps the raw content of an element
type Markup struct {
	Inner string `xml:",innerxml"`
}

// Parse decodes a config.xml document
func Parse(data []byte) (*Theme, error) {
	var t Theme
	if err := xml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse config.xml: %w", err)
	}
	t.trim()
	return &t, nil
}

func (t *Theme) trim() {
	for _, f := range []*string{
		&t.Name, &t.Title, &t.Version, &t.Compatibility, &t.Author, &t.AuthorURL,
		&t.License, &t.LicenseURL, &t.Description, &t.Downloadable,
	} {
		*f = strings.TrimSpace(*f)
	}
	if t.ExtraHead != nil && strings.TrimSpace(t.ExtraHead.Inner) == "" {
		t.ExtraHead = nil
	}
}

// Marshal encodes the theme with an XML declaration
func (t *Theme) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "    ")
	if err := enc.Encode(t); err != nil {
		return nil, err
	}
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

// Result is a migrated config.xml
type Result struct {
	Theme    *Theme
	XML      []byte
	Warnings []string
	// Defaulted is set when no usable legacy config.xml was found
	Defaulted bool
}

// Migrate maps a legacy config.xml onto the template's metadata. legacy may
// be nil, in which case the style name is used for name and title. A
// legacy document that does not parse is treated the same way, with a
// warning.
func Migrate(legacy []byte, templateMetadata string, styleName string) (*Result, error) {
	tmpl, err := Parse([]byte(templateMetadata))
	if err != nil {
		return nil, fmt.Errorf("template metadata: %w", err)
	}

	res := &Result{}
	old := &Theme{}
	switch {
	case len(bytes.TrimSpace(legacy)) == 0:
		res.Defaulted = true
	default:
		parsed, err := Parse(legacy)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("legacy config.xml ignored: %v", err))
			res.Defaulted = true
		} else {
			old = parsed
		}
	}

	t := &Theme{
		Name:          first(old.Name, styleName),
		Version:       first(old.Version, DefaultVersion),
		Compatibility: tmpl.Compatibility,
		Author:        first(old.Author, tmpl.Author),
		AuthorURL:     first(old.AuthorURL, tmpl.AuthorURL),
		License:       first(old.License, tmpl.License),
		LicenseURL:    first(old.LicenseURL, tmpl.LicenseURL),
		Description:   first(old.Description, tmpl.Description),
		Downloadable:  first(tmpl.Downloadable, "1"),
	}
	t.Title = first(old.Title, t.Name)

	if old.ExtraHead != nil {
		res.Warnings = append(res.Warnings, "extra-head dropped: move custom <head> markup into style.js")
	}

	out, err := t.Marshal()
	if err != nil {
		return nil, fmt.Errorf("encode config.xml: %w", err)
	}
	res.Theme = t
	res.XML = out
	return res, nil
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
