package templates

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Embedded(t *testing.T) {
	l := NewLoader("")

	for _, name := range []string{"base", "page-title-aware"} {
		b, err := l.Load(name)
		if err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
		if b.Source != "embedded" {
			t.Errorf("%s source = %q, want embedded", name, b.Source)
		}
		if !strings.Contains(b.Script, "setNavHeight: function()") {
			t.Errorf("%s script has no setNavHeight member", name)
		}
		if !strings.Contains(b.Metadata, "<compatibility>3.0</compatibility>") {
			t.Errorf("%s metadata missing compatibility", name)
		}
		if b.Style == "" || b.Version == "" {
			t.Errorf("%s bundle incomplete: %+v", name, b.Info)
		}
	}
}

func TestLoad_PageTitleAwareHasHelper(t *testing.T) {
	l := NewLoader("")

	base, _ := l.Script("base")
	aware, err := l.Script("page-title-aware")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(base, "movePageTitle") {
		t.Error("base template should not relocate the page title")
	}
	if !strings.Contains(aware, "movePageTitle: function()") {
		t.Error("page-title-aware template missing movePageTitle")
	}
}

func TestLoad_Missing(t *testing.T) {
	l := NewLoader("")

	_, err := l.Load("retro")
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestLoad_Override(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, "base", "var myTheme = { setNavHeight: function() {} };\n")
	writeBundle(t, dir, "retro", "var retro = {};\n")
	index := "templates:\n  - name: retro\n    version: \"0.1\"\n    description: Custom\n"
	if err := os.WriteFile(filepath.Join(dir, "index.yaml"), []byte(index), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(dir)

	b, err := l.Load("base")
	if err != nil {
		t.Fatal(err)
	}
	if b.Source != dir {
		t.Errorf("base source = %q, want %q", b.Source, dir)
	}
	if b.Version != "3.0.1" {
		t.Errorf("base version = %q, want embedded index version", b.Version)
	}

	retro, err := l.Script("retro")
	if err != nil {
		t.Fatal(err)
	}
	if retro != "var retro = {};\n" {
		t.Errorf("retro script = %q", retro)
	}

	infos, err := l.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 3 {
		t.Fatalf("expected 3 templates, got %d", len(infos))
	}
	if infos[1].Source != "embedded" {
		t.Errorf("page-title-aware source = %q, want embedded", infos[1].Source)
	}
}

func writeBundle(t *testing.T, dir, name, script string) {
	t.Helper()
	bundle := filepath.Join(dir, name)
	if err := os.MkdirAll(bundle, 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		ScriptFile:   script,
		StyleFile:    "body {}\n",
		MetadataFile: "<theme><name>" + name + "</name></theme>\n",
	}
	for file, content := range files {
		if err := os.WriteFile(filepath.Join(bundle, file), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}
