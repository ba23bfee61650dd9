package metadata

import (
	"strings"
	"testing"
)

const templateXML = `<?xml version="1.0" encoding="UTF-8"?>
<theme>
    <name>base</name>
    <title>Base</title>
    <version>3.0.1</version>
    <compatibility>3.0</compatibility>
    <author></author>
    <author-url></author-url>
    <license>Creative Commons by-sa</license>
    <license-url>http://creativecommons.org/licenses/by-sa/3.0/</license-url>
    <description></description>
    <downloadable>1</downloadable>
</theme>`

const legacyXML = `<?xml version="1.0" encoding="UTF-8"?>
<theme>
  <name>ocean</name>
  <version>2.1</version>
  <compatibility>2.0</compatibility>
  <author>Jo Doe</author>
  <author-url>https://example.org</author-url>
  <license></license>
  <description>
    Blue and calm
  </description>
  <extra-head><script src="extra.js"></script></extra-head>
</theme>`

func TestMigrate(t *testing.T) {
	res, err := Migrate([]byte(legacyXML), templateXML, "ocean-folder")
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	got := res.Theme
	checks := map[string][2]string{
		"name":          {got.Name, "ocean"},
		"title":         {got.Title, "ocean"},
		"version":       {got.Version, "2.1"},
		"compatibility": {got.Compatibility, "3.0"},
		"author":        {got.Author, "Jo Doe"},
		"license":       {got.License, "Creative Commons by-sa"},
		"description":   {got.Description, "Blue and calm"},
		"downloadable":  {got.Downloadable, "1"},
	}
	for field, c := range checks {
		if c[0] != c[1] {
			t.Errorf("%s = %q, want %q", field, c[0], c[1])
		}
	}

	if got.ExtraHead != nil {
		t.Error("extra-head should be dropped")
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "extra-head") {
		t.Errorf("Warnings = %v", res.Warnings)
	}
	if strings.Contains(string(res.XML), "extra-head") {
		t.Errorf("output still contains extra-head:\n%s", res.XML)
	}
	if !strings.HasPrefix(string(res.XML), "<?xml") {
		t.Errorf("output lacks XML declaration:\n%s", res.XML)
	}
	if res.Defaulted {
		t.Error("Defaulted should be false")
	}
}

func TestMigrate_MissingLegacy(t *testing.T) {
	res, err := Migrate(nil, templateXML, "sunrise")
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if !res.Defaulted {
		t.Error("Defaulted should be true")
	}
	if res.Theme.Name != "sunrise" || res.Theme.Title != "sunrise" {
		t.Errorf("name/title = %q/%q, want sunrise", res.Theme.Name, res.Theme.Title)
	}
	if res.Theme.Version != DefaultVersion {
		t.Errorf("Version = %q, want %q", res.Theme.Version, DefaultVersion)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v", res.Warnings)
	}
}

func TestMigrate_MalformedLegacy(t *testing.T) {
	res, err := Migrate([]byte("<theme><name>broken"), templateXML, "broken-style")
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if !res.Defaulted || res.Theme.Name != "broken-style" {
		t.Errorf("expected defaults, got %+v", res.Theme)
	}
	if len(res.Warnings) != 1 {
		t.Errorf("Warnings = %v", res.Warnings)
	}
}

func TestMigrate_BadTemplate(t *testing.T) {
	if _, err := Migrate(nil, "not xml", "x"); err == nil {
		t.Error("expected error for malformed template metadata")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	res, err := Migrate([]byte(legacyXML), templateXML, "ocean")
	if err != nil {
		t.Fatal(err)
	}
	back, err := Parse(res.XML)
	if err != nil {
		t.Fatalf("Parse(output): %v", err)
	}
	if back.Name != "ocean" || back.Compatibility != "3.0" {
		t.Errorf("reparsed = %+v", back)
	}
}
