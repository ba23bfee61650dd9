package convert

import (
	"time"

	"stylemig/internal/assets"
	"stylemig/internal/script"
)

// Report describes one conversion
type Report struct {
	Input  string `yaml:"input" json:"input"`
	Output string `yaml:"output,omitempty" json:"output,omitempty"`
	Name   string `yaml:"name" json:"name"`

	Tier            string   `yaml:"tier" json:"tier"`
	Template        string   `yaml:"template" json:"template"`
	TemplateVersion string   `yaml:"template_version" json:"template_version"`
	ScriptSource    string   `yaml:"script_source,omitempty" json:"script_source,omitempty"`
	Lines           int      `yaml:"lines" json:"lines"`
	CodeLines       int      `yaml:"code_lines" json:"code_lines"`
	Features        []string `yaml:"features" json:"features"`
	Spliced         []string `yaml:"spliced" json:"spliced"`
	Skipped         []Skip   `yaml:"skipped,omitempty" json:"skipped,omitempty"`
	OtherFunctions  []string `yaml:"other_functions,omitempty" json:"other_functions,omitempty"`

	Assets     []AssetMove `yaml:"assets,omitempty" json:"assets,omitempty"`
	AssetsKept []string    `yaml:"assets_kept,omitempty" json:"assets_kept,omitempty"`

	Stylesheets     []string `yaml:"stylesheets,omitempty" json:"stylesheets,omitempty"`
	SelectorRenames int      `yaml:"selector_renames" json:"selector_renames"`
	URLRewrites     int      `yaml:"url_rewrites" json:"url_rewrites"`

	MetadataDefaulted bool     `yaml:"metadata_defaulted" json:"metadata_defaulted"`
	Warnings          []string `yaml:"warnings,omitempty" json:"warnings,omitempty"`

	Files    int           `yaml:"files" json:"files"`
	Bytes    int64         `yaml:"bytes" json:"bytes"`
	Duration time.Duration `yaml:"duration" json:"duration"`
}

// Skip is a detected feature that could not be extracted
type Skip struct {
	Feature string `yaml:"feature" json:"feature"`
	Reason  string `yaml:"reason" json:"reason"`
}

// AssetMove is one relocated asset
type AssetMove struct {
	From     string `yaml:"from" json:"from"`
	To       string `yaml:"to" json:"to"`
	Category string `yaml:"category" json:"category"`
	Size     int64  `yaml:"size" json:"size"`
}

func (r *Report) addScript(source string, res *script.Result) {
	r.ScriptSource = source
	r.Tier = res.Tier.String()
	r.Template = res.Template
	r.Lines = res.Lines
	r.CodeLines = res.CodeLines
	r.Features = res.Features
	r.Spliced = res.Spliced
	r.OtherFunctions = res.OtherFunctions
	for _, s := range res.Skipped {
		r.Skipped = append(r.Skipped, Skip{Feature: s.Feature.String(), Reason: s.Reason})
	}
}

func (r *Report) addAssets(plan assets.Plan) {
	for _, m := range plan.Moves {
		r.Assets = append(r.Assets, AssetMove{
			From:     m.From,
			To:       m.To,
			Category: string(m.Category),
			Size:     m.Size,
		})
	}
	r.AssetsKept = plan.Kept
}
