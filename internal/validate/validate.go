// Package validate checks a converted style package before it is written.
package validate

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"stylemig/internal/metadata"
	"stylemig/internal/pack"
	"stylemig/internal/script"
	"stylemig/internal/stylesheet"
)

// Error is returned when a converted package fails validation
type Error struct {
	Path     string
	Problems []string
}

func (e *Error) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("validation failed for %s: %s", e.Path, e.Problems[0])
	}
	return fmt.Sprintf("validation failed for %s: %d problems: %s",
		e.Path, len(e.Problems), strings.Join(e.Problems, "; "))
}

// Result holds the outcome of a check. Errors fail the conversion, warnings
// are only reported.
type Result struct {
	Errors   []string
	Warnings []string
}

// OK reports whether there were no errors
func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

// Err returns an *Error for the errors, or nil
func (r *Result) Err(p string) error {
	if r.OK() {
		return nil
	}
	return &Error{Path: p, Problems: r.Errors}
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

var container = regexp.MustCompile(`(?m)^var\s+myTheme\s*=\s*\{`)

// legacyFiles should not survive a conversion
var legacyFiles = []string{pack.LegacyScript, "content.css", "nav.css"}

// Check validates a converted file set
func Check(set *pack.FileSet) *Result {
	r := &Result{}

	for _, name := range []string{pack.TargetScript, pack.TargetStyle, pack.Metadata} {
		if !set.Has(name) {
			r.errorf("missing %s", name)
		}
	}

	if f, ok := set.Get(pack.TargetScript); ok {
		checkScript(r, string(f.Data))
	}
	if f, ok := set.Get(pack.Metadata); ok {
		checkMetadata(r, f.Data)
	}
	if f, ok := set.Get(pack.TargetStyle); ok {
		checkReferences(r, set, string(f.Data))
	}

	for _, name := range legacyFiles {
		if set.Has(name) {
			r.warnf("legacy file %s is still present", name)
		}
	}

	return r
}

func checkScript(r *Result, text string) {
	loc := container.FindStringIndex(text)
	if loc == nil {
		r.errorf("%s: container object myTheme not found", pack.TargetScript)
	} else if _, ok := script.Balanced(text, loc[0]); !ok {
		r.errorf("%s: container object braces do not balance", pack.TargetScript)
	}

	for _, marker := range []string{script.ContainerMarker, script.AppendMarker} {
		if n := countLines(text, marker); n > 1 {
			r.errorf("%s: %d %q markers, want at most one", pack.TargetScript, n, marker)
		}
	}
}

func checkMetadata(r *Result, data []byte) {
	theme, err := metadata.Parse(data)
	if err != nil {
		r.errorf("%s: %v", pack.Metadata, err)
		return
	}
	if theme.Name == "" {
		r.errorf("%s: name is empty", pack.Metadata)
	}
	if theme.Compatibility == "" {
		r.warnf("%s: compatibility is empty", pack.Metadata)
	}
}

// checkReferences warns about url() targets missing from the package. Legacy
// styles often ship with dangling references, so these are not errors.
func checkReferences(r *Result, set *pack.FileSet, css string) {
	seen := make(map[string]bool)
	for _, ref := range stylesheet.References(css) {
		if seen[ref] {
			continue
		}
		seen[ref] = true
		if !set.Has(path.Clean(ref)) {
			r.warnf("%s: url(%s) does not exist in the package", pack.TargetStyle, ref)
		}
	}
}

func countLines(text, marker string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == marker {
			n++
		}
	}
	return n
}
