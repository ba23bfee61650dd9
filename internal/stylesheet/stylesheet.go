// Package stylesheet rewrites legacy stylesheets for the new style format:
// selector renames and asset path prefixes for moved files.
package stylesheet

import (
	_ "embed"
	"fmt"
	"os"
	"path"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"stylemig/internal/pack"
)

//go:embed rules.yaml
var defaultRules []byte

// Rename maps a legacy selector token to its replacement
type Rename struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Rules is the stylesheet rewrite table
type Rules struct {
	Selectors []Rename `yaml:"selectors"`

	lookup map[string]string
}

// DefaultRules returns the embedded rule table
func DefaultRules() (*Rules, error) {
	return parseRules(defaultRules)
}

// LoadRules reads a rule table from a YAML file. An empty path returns the
// embedded rules.
func LoadRules(file string) (*Rules, error) {
	if file == "" {
		return DefaultRules()
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	rules, err := parseRules(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file, err)
	}
	return rules, nil
}

func parseRules(data []byte) (*Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	r.lookup = make(map[string]string, len(r.Selectors))
	for _, s := range r.Selectors {
		if selectorToken.FindString(s.From) != s.From {
			return nil, fmt.Errorf("selector %q must be a single #id or .class token", s.From)
		}
		r.lookup[s.From] = s.To
	}
	return &r, nil
}

var (
	selectorToken = regexp.MustCompile(`[#.][A-Za-z_][\w-]*`)
	urlRef        = regexp.MustCompile(`url\(\s*(['"]?)([^'")]+?)(['"]?)\s*\)`)
	comment       = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

// Stats counts what a rewrite changed
type Stats struct {
	Renames     int
	URLRewrites int
	Sources     []string
}

// Rewrite applies selector renames and asset path rewrites to one
// stylesheet. Comments are left untouched.
func (r *Rules) Rewrite(css string, assetPaths map[string]string) (string, Stats) {
	var st Stats

	var b strings.Builder
	last := 0
	for _, loc := range comment.FindAllStringIndex(css, -1) {
		b.WriteString(r.rewriteCode(css[last:loc[0]], assetPaths, &st))
		b.WriteString(css[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(r.rewriteCode(css[last:], assetPaths, &st))

	return b.String(), st
}

func (r *Rules) rewriteCode(code string, assetPaths map[string]string, st *Stats) string {
	// url() values first so file names are not mistaken for class tokens.
	var b strings.Builder
	last := 0
	for _, m := range urlRef.FindAllStringSubmatchIndex(code, -1) {
		b.WriteString(r.renameSelectors(code[last:m[0]], st))

		ref := code[m[4]:m[5]]
		if to, ok := resolveAsset(ref, assetPaths); ok {
			b.WriteString("url(" + code[m[2]:m[3]] + to + code[m[6]:m[7]] + ")")
			st.URLRewrites++
		} else {
			b.WriteString(code[m[0]:m[1]])
		}
		last = m[1]
	}
	b.WriteString(r.renameSelectors(code[last:], st))
	return b.String()
}

func (r *Rules) renameSelectors(code string, st *Stats) string {
	if len(r.lookup) == 0 {
		return code
	}
	return selectorToken.ReplaceAllStringFunc(code, func(tok string) string {
		if to, ok := r.lookup[tok]; ok {
			st.Renames++
			return to
		}
		return tok
	})
}

// resolveAsset maps a url() reference to the moved asset path. References
// to remote, data or absolute URLs are never rewritten.
func resolveAsset(ref string, assetPaths map[string]string) (string, bool) {
	ref = strings.TrimSpace(ref)
	lower := strings.ToLower(ref)
	if ref == "" || strings.HasPrefix(lower, "data:") || strings.HasPrefix(lower, "http:") ||
		strings.HasPrefix(lower, "https:") || strings.HasPrefix(ref, "//") || strings.HasPrefix(ref, "/") {
		return "", false
	}

	suffix := ""
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref, suffix = ref[:i], ref[i:]
	}
	clean := path.Clean(strings.TrimPrefix(ref, "./"))

	if to, ok := assetPaths[clean]; ok {
		return to + suffix, true
	}
	if to, ok := assetPaths[path.Base(clean)]; ok {
		return to + suffix, true
	}
	return "", false
}

// Build produces the new style.css: the template stylesheet followed by
// every rewritten legacy stylesheet under a banner naming its source.
func (r *Rules) Build(templateStyle string, sheets []pack.File, assetPaths map[string]string) (string, Stats) {
	var total Stats
	var b strings.Builder
	b.WriteString(strings.TrimRight(templateStyle, "\n"))
	b.WriteString("\n")

	for _, sheet := range sheets {
		css, st := r.Rewrite(string(sheet.Data), assetPaths)
		total.Renames += st.Renames
		total.URLRewrites += st.URLRewrites
		total.Sources = append(total.Sources, sheet.Path)

		fmt.Fprintf(&b, "\n/* Migrated from %s */\n", sheet.Path)
		b.WriteString(strings.TrimRight(css, "\n"))
		b.WriteString("\n")
	}

	return b.String(), total
}

// References returns every local url() reference in a stylesheet, for
// validation of the converted package.
func References(css string) []string {
	css = comment.ReplaceAllString(css, "")
	var out []string
	for _, m := range urlRef.FindAllStringSubmatch(css, -1) {
		ref := strings.TrimSpace(m[2])
		lower := strings.ToLower(ref)
		if strings.HasPrefix(lower, "data:") || strings.HasPrefix(lower, "http:") ||
			strings.HasPrefix(lower, "https:") || strings.HasPrefix(ref, "//") || strings.HasPrefix(ref, "/") {
			continue
		}
		if i := strings.IndexAny(ref, "?#"); i >= 0 {
			ref = ref[:i]
		}
		out = append(out, path.Clean(strings.TrimPrefix(ref, "./")))
	}
	return out
}
