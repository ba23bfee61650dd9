// Package convert runs the full migration of one style package: assets,
// script, stylesheets and metadata, followed by validation and output.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"stylemig/internal/assets"
	"stylemig/internal/config"
	"stylemig/internal/logger"
	"stylemig/internal/metadata"
	"stylemig/internal/pack"
	"stylemig/internal/script"
	"stylemig/internal/stylesheet"
	"stylemig/internal/templates"
	"stylemig/internal/validate"
)

// ErrEmptyPackage is returned for an input without any files
var ErrEmptyPackage = errors.New("style package is empty")

// ErrOutputIsInput is returned when the output would overwrite the input
var ErrOutputIsInput = errors.New("output path is the input path")

// Options control where and how output is written
type Options struct {
	OutputDir     string
	Zip           bool
	DryRun        bool // analyze only, write nothing
	IconThreshold uint64
}

// Converter migrates style packages. It holds no per-run state and is
// safe for concurrent use.
type Converter struct {
	opts   Options
	loader *templates.Loader
	rules  *stylesheet.Rules
	log    logger.Logger
}

// New creates a converter
func New(opts Options, loader *templates.Loader, rules *stylesheet.Rules, log logger.Logger) *Converter {
	if log == nil {
		log = logger.NewNop()
	}
	return &Converter{opts: opts, loader: loader, rules: rules, log: log}
}

// FromConfig builds a converter from the runtime configuration
func FromConfig(cfg *config.Config, log logger.Logger) (*Converter, error) {
	rules, err := stylesheet.LoadRules(cfg.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load stylesheet rules: %w", err)
	}
	opts := Options{
		OutputDir:     cfg.OutputDir,
		Zip:           cfg.Zip,
		IconThreshold: cfg.IconThreshold,
	}
	return New(opts, templates.NewLoader(cfg.TemplateDir), rules, log), nil
}

// Options returns a copy of the converter options
func (c *Converter) Options() Options {
	return c.opts
}

// WithOptions returns a converter sharing templates and rules but using opts
func (c *Converter) WithOptions(opts Options) *Converter {
	return &Converter{opts: opts, loader: c.loader, rules: c.rules, log: c.log}
}

// Run converts the style package at input. On a validation failure the
// report is returned together with a *validate.Error.
func (c *Converter) Run(ctx context.Context, input string) (*Report, error) {
	start := time.Now()
	log := c.log.With(logger.String("input", input))

	set, err := pack.Load(input)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", input, err)
	}
	if set.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", input, ErrEmptyPackage)
	}
	log.Debug("Loaded package", logger.String("name", set.Name), logger.Int("files", set.Len()))

	rep := &Report{Input: input, Name: set.Name}

	// Assets move first so the stylesheet step can rewrite references.
	plan := assets.BuildPlan(set, c.opts.IconThreshold)
	plan.Apply(set)
	rep.addAssets(plan)
	log.Debug("Sorted assets", logger.Int("moved", len(plan.Moves)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scriptPath, text := set.Script()
	res, err := script.Convert(text, c.loader)
	if err != nil {
		return nil, fmt.Errorf("failed to convert script of %s: %w", input, err)
	}
	rep.addScript(scriptPath, res)
	for _, skip := range res.Skipped {
		log.Warn("Skipped custom section",
			logger.String("feature", skip.Feature.String()),
			logger.String("reason", skip.Reason))
	}
	log.Debug("Converted script",
		logger.String("tier", res.Tier.String()),
		logger.String("template", res.Template),
		logger.Strings("spliced", res.Spliced))

	bundle, err := c.loader.Load(res.Template)
	if err != nil {
		return nil, fmt.Errorf("failed to load template %s: %w", res.Template, err)
	}
	rep.TemplateVersion = bundle.Version

	sheets := set.Stylesheets()
	css, stats := c.rules.Build(bundle.Style, sheets, plan.Rewrites())
	rep.Stylesheets = stats.Sources
	rep.SelectorRenames = stats.Renames
	rep.URLRewrites = stats.URLRewrites

	var legacyMeta []byte
	if f, ok := set.Get(pack.Metadata); ok {
		legacyMeta = f.Data
	}
	meta, err := metadata.Migrate(legacyMeta, bundle.Metadata, set.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate metadata of %s: %w", input, err)
	}
	rep.MetadataDefaulted = meta.Defaulted
	rep.Warnings = append(rep.Warnings, meta.Warnings...)

	if scriptPath != "" {
		set.Remove(scriptPath)
	}
	for _, sheet := range sheets {
		set.Remove(sheet.Path)
	}
	set.Put(pack.TargetScript, []byte(res.Script))
	set.Put(pack.TargetStyle, []byte(css))
	set.Put(pack.Metadata, meta.XML)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	check := validate.Check(set)
	rep.Warnings = append(rep.Warnings, check.Warnings...)
	for _, w := range rep.Warnings {
		log.Warn("Conversion warning", logger.String("warning", w))
	}

	rep.Files = set.Len()
	for _, f := range set.Files() {
		rep.Bytes += f.Size()
	}

	out := c.outputPath(set.Name)
	if verr := check.Err(out); verr != nil {
		rep.Duration = time.Since(start)
		return rep, verr
	}

	if !c.opts.DryRun {
		if err := write(set, input, out, c.opts.Zip); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", out, err)
		}
		rep.Output = out
	}

	rep.Duration = time.Since(start)
	log.Info("Converted style",
		logger.String("output", out),
		logger.String("tier", rep.Tier),
		logger.Int("sections", len(rep.Spliced)),
		logger.Bool("dry_run", c.opts.DryRun),
		logger.Duration("elapsed", rep.Duration))
	return rep, nil
}

func (c *Converter) outputPath(name string) string {
	dir := c.opts.OutputDir
	if dir == "" {
		dir = config.DefaultOutputDir
	}
	if c.opts.Zip {
		return filepath.Join(dir, name+".zip")
	}
	return filepath.Join(dir, name)
}

// write replaces any previous output at out
func write(set *pack.FileSet, input, out string, zip bool) error {
	absIn, err := filepath.Abs(input)
	if err != nil {
		return err
	}
	absOut, err := filepath.Abs(out)
	if err != nil {
		return err
	}
	if absIn == absOut {
		return ErrOutputIsInput
	}

	if err := os.RemoveAll(out); err != nil {
		return err
	}
	if zip {
		return pack.WriteZip(set, out)
	}
	return pack.WriteDir(set, out)
}
