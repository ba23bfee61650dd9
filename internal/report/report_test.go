package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"stylemig/internal/batch"
	"stylemig/internal/convert"
	"stylemig/internal/history"
	"stylemig/internal/templates"
)

func sampleReport() *convert.Report {
	return &convert.Report{
		Input:           "in/ocean",
		Output:          "out/ocean",
		Name:            "ocean",
		Tier:            "complex",
		Template:        "page-title-aware",
		TemplateVersion: "3.0.1",
		ScriptSource:    "_style_js.js",
		Lines:           320,
		CodeLines:       317,
		Features:        []string{"phase decorator", "print helper", "shared initialization container"},
		Spliced:         []string{"print-helper", "shared-init"},
		Skipped:         []convert.Skip{{Feature: "phase decorator", Reason: "contained in shared initialization container"}},
		OtherFunctions:  []string{"fancyBox"},
		Assets:          []convert.AssetMove{{From: "logo.png", To: "img/logo.png", Category: "img", Size: 120000}},
		Stylesheets:     []string{"content.css"},
		SelectorRenames: 4,
		URLRewrites:     1,
		Warnings:        []string{"extra-head dropped"},
		Files:           6,
		Bytes:           130000,
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": Text, "text": Text, "YAML": YAML, "json": JSON} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestConversion_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := Conversion(&buf, sampleReport(), Text); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"Converted ocean → out/ocean",
		"page-title-aware 3.0.1",
		"_style_js.js, 320 lines (317 code)",
		"skipped: contained in shared initialization container",
		"spliced",
		"img/logo.png",
		"120 kB",
		"fancyBox",
		"extra-head dropped",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConversion_Machine(t *testing.T) {
	var buf bytes.Buffer
	if err := Conversion(&buf, sampleReport(), JSON); err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if decoded["tier"] != "complex" || decoded["template"] != "page-title-aware" {
		t.Errorf("decoded = %v", decoded)
	}

	buf.Reset()
	if err := Conversion(&buf, sampleReport(), YAML); err != nil {
		t.Fatal(err)
	}
	var y map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &y); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
	}
	if y["selector_renames"] != 4 {
		t.Errorf("selector_renames = %v", y["selector_renames"])
	}
}

func TestBatch(t *testing.T) {
	results := []batch.Result{
		{Input: "in/ocean", Report: sampleReport()},
		{Input: "in/broken", Err: errors.New("style package is empty")},
	}

	var buf bytes.Buffer
	if err := Batch(&buf, results, Text); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"ocean", "in/broken", "style package is empty", "1 converted, 1 failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := Batch(&buf, results, JSON); err != nil {
		t.Fatal(err)
	}
	var entries []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[1]["error"] != "style package is empty" {
		t.Errorf("entries = %v", entries)
	}
}

func TestTemplatesAndHistory(t *testing.T) {
	var buf bytes.Buffer
	err := Templates(&buf, []templates.Info{{Name: "base", Version: "3.0.1", Source: "embedded"}}, Text)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "base") || !strings.Contains(buf.String(), "embedded") {
		t.Errorf("templates output:\n%s", buf.String())
	}

	buf.Reset()
	if err := History(&buf, nil, Text); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No conversions recorded") {
		t.Errorf("empty history output: %q", buf.String())
	}

	buf.Reset()
	entries := []history.Entry{{
		Name:        "ocean",
		Tier:        "simple",
		Template:    "base",
		Error:       "boom",
		ConvertedAt: time.Now().Add(-2 * time.Hour),
	}}
	if err := History(&buf, entries, Text); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"ocean", "boom", "2 hours ago"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("history output missing %q:\n%s", want, buf.String())
		}
	}
}
