// Package report renders conversion results for people (styled text and
// tables) and for machines (YAML or JSON).
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"stylemig/internal/batch"
	"stylemig/internal/convert"
	"stylemig/internal/history"
	"stylemig/internal/templates"
	"stylemig/internal/tui/styles"
)

// Format selects the output encoding
type Format string

const (
	Text Format = "text"
	YAML Format = "yaml"
	JSON Format = "json"
)

// ParseFormat validates a --format value
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case Text, YAML, JSON:
		return f, nil
	case "":
		return Text, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, yaml or json)", s)
	}
}

// Encode writes v as YAML or JSON
func Encode(w io.Writer, v any, format Format) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %q is not a machine format", format)
	}
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

// Conversion writes the report of one conversion
func Conversion(w io.Writer, rep *convert.Report, format Format) error {
	if format != Text {
		return Encode(w, rep, format)
	}

	heading := "Analysis of " + rep.Name
	if rep.Output != "" {
		heading = fmt.Sprintf("Converted %s → %s", rep.Name, rep.Output)
	}
	fmt.Fprintln(w, styles.Title.Render(heading))

	t := newTable(w)
	t.AppendRow(table.Row{"Tier", styles.Tier(rep.Tier).Render(rep.Tier)})
	t.AppendRow(table.Row{"Template", rep.Template + " " + rep.TemplateVersion})
	script := rep.ScriptSource
	if script == "" {
		script = "(none)"
	}
	t.AppendRow(table.Row{"Script", fmt.Sprintf("%s, %d lines (%d code)", script, rep.Lines, rep.CodeLines)})
	t.AppendRow(table.Row{"Stylesheets", joinOrNone(rep.Stylesheets)})
	t.AppendRow(table.Row{"Selector renames", rep.SelectorRenames})
	t.AppendRow(table.Row{"URL rewrites", rep.URLRewrites})
	t.AppendRow(table.Row{"Files", fmt.Sprintf("%d (%s)", rep.Files, humanize.Bytes(uint64(rep.Bytes)))})
	if rep.MetadataDefaulted {
		t.AppendRow(table.Row{"Metadata", "defaults from folder name"})
	}
	t.Render()

	if len(rep.Features) > 0 || len(rep.Skipped) > 0 {
		fmt.Fprintln(w, styles.Section.Render("Custom code"))
		t := newTable(w)
		t.AppendHeader(table.Row{"Detected feature", "Result"})
		for _, f := range rep.Features {
			t.AppendRow(table.Row{f, sectionResult(rep, f)})
		}
		t.Render()
	}

	if len(rep.OtherFunctions) > 0 {
		fmt.Fprintln(w, styles.Subtitle.Render("Other functions (not migrated): "+strings.Join(rep.OtherFunctions, ", ")))
	}

	if len(rep.Assets) > 0 {
		fmt.Fprintln(w, styles.Section.Render("Assets"))
		t := newTable(w)
		t.AppendHeader(table.Row{"From", "To", "Category", "Size"})
		for _, a := range rep.Assets {
			t.AppendRow(table.Row{a.From, a.To, a.Category, humanize.Bytes(uint64(a.Size))})
		}
		t.Render()
	}

	for _, warn := range rep.Warnings {
		fmt.Fprintln(w, styles.WarningMsg.Render("! "+warn))
	}
	return nil
}

func sectionResult(rep *convert.Report, label string) string {
	for _, s := range rep.Skipped {
		if s.Feature == label {
			return "skipped: " + s.Reason
		}
	}
	return "spliced"
}

// batchEntry is the machine form of a batch result
type batchEntry struct {
	Input  string          `yaml:"input" json:"input"`
	Error  string          `yaml:"error,omitempty" json:"error,omitempty"`
	Report *convert.Report `yaml:"report,omitempty" json:"report,omitempty"`
}

// Batch writes a summary of a batch run
func Batch(w io.Writer, results []batch.Result, format Format) error {
	if format != Text {
		entries := make([]batchEntry, len(results))
		for i, r := range results {
			entries[i] = batchEntry{Input: r.Input, Report: r.Report}
			if r.Err != nil {
				entries[i].Error = r.Err.Error()
			}
		}
		return Encode(w, entries, format)
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"", "Style", "Tier", "Template", "Sections", "Result"})
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			name := r.Input
			if r.Report != nil {
				name = r.Report.Name
			}
			t.AppendRow(table.Row{styles.StatusFailed.String(), name, "", "", "", r.Err.Error()})
			continue
		}
		rep := r.Report
		t.AppendRow(table.Row{
			styles.StatusOK.String(),
			rep.Name,
			styles.Tier(rep.Tier).Render(rep.Tier),
			rep.Template,
			len(rep.Spliced),
			orDash(rep.Output),
		})
	}
	t.Render()

	summary := fmt.Sprintf("%d converted, %d failed", len(results)-failed, failed)
	if failed > 0 {
		fmt.Fprintln(w, styles.ErrorMsg.Render(summary))
	} else {
		fmt.Fprintln(w, styles.SuccessMsg.Render(summary))
	}
	return nil
}

// Templates lists template bundles
func Templates(w io.Writer, infos []templates.Info, format Format) error {
	if format != Text {
		return Encode(w, infos, format)
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"Name", "Version", "Source", "Description"})
	for _, info := range infos {
		t.AppendRow(table.Row{info.Name, info.Version, info.Source, info.Description})
	}
	t.Render()
	return nil
}

// History lists past conversions
func History(w io.Writer, entries []history.Entry, format Format) error {
	if format != Text {
		return Encode(w, entries, format)
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, styles.Muted.Render("No conversions recorded."))
		return nil
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"When", "Style", "Tier", "Template", "Sections", "Result"})
	for _, e := range entries {
		result := orDash(e.Output)
		if e.Failed() {
			result = styles.ErrorMsg.Render(e.Error)
		}
		t.AppendRow(table.Row{
			humanize.Time(e.ConvertedAt),
			e.Name,
			e.Tier,
			e.Template,
			strings.Join(e.Sections, ", "),
			result,
		})
	}
	t.Render()
	return nil
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
