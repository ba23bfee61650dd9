package script

import "fmt"

// TemplateSource supplies target template scripts by name
type TemplateSource interface {
	Script(name string) (string, error)
}

// Result is the outcome of converting one legacy script
type Result struct {
	Script         string
	Tier           Tier
	Template       string
	Features       []string
	Spliced        []string
	Skipped        []Skip
	OtherFunctions []string
	Lines          int
	CodeLines      int
}

// Convert classifies a legacy script, selects a template, extracts the
// custom sections and splices them into the template.
//
// A missing template is fatal. Sections that cannot be extracted are
// reported in Result.Skipped and the conversion continues.
func Convert(text string, templates TemplateSource) (*Result, error) {
	src := NewSource(text)

	var flags FeatureFlags
	if !src.Empty() {
		flags = Classify(src.Text)
	}

	sel := Select(flags, src.CodeLines())

	tmpl, err := templates.Script(sel.Template)
	if err != nil {
		return nil, fmt.Errorf("failed to load template %s: %w", sel.Template, err)
	}

	var extraction Extraction
	if flags.Any() {
		extraction = Extract(src.Text, flags)
	}

	out, err := Splice(tmpl, extraction.Sections)
	if err != nil {
		return nil, fmt.Errorf("failed to splice into template %s: %w", sel.Template, err)
	}

	return &Result{
		Script:         out,
		Tier:           sel.Tier,
		Template:       sel.Template,
		Features:       flags.Labels(),
		Spliced:        extraction.Names(),
		Skipped:        extraction.Skipped,
		OtherFunctions: flags.OtherFunctions,
		Lines:          src.Lines(),
		CodeLines:      src.CodeLines(),
	}, nil
}
