package script

import (
	"regexp"

	"github.com/cloudflare/ahocorasick"
)

// Feature identifies one kind of custom code a legacy style may carry
type Feature int

const (
	IframeResize Feature = iota
	CharacterManager
	PhaseDecorator
	PrintHelper
	SharedInit
)

// detectionOrder is the order features are probed and reported in
var detectionOrder = []Feature{IframeResize, CharacterManager, PhaseDecorator, PrintHelper, SharedInit}

// String returns the human-readable feature label
func (f Feature) String() string {
	switch f {
	case IframeResize:
		return "iframe resize helper"
	case CharacterManager:
		return "learner character manager"
	case PhaseDecorator:
		return "phase decorator"
	case PrintHelper:
		return "print helper"
	case SharedInit:
		return "shared initialization container"
	default:
		return "unknown"
	}
}

// Key returns the short identifier used to name extracted sections
func (f Feature) Key() string {
	switch f {
	case IframeResize:
		return "iframe-resize"
	case CharacterManager:
		return "character-manager"
	case PhaseDecorator:
		return "phase-decorator"
	case PrintHelper:
		return "print-helper"
	case SharedInit:
		return "shared-init"
	default:
		return "unknown"
	}
}

// FeatureFlags records which custom features a legacy script contains
type FeatureFlags struct {
	IframeResize     bool
	CharacterManager bool
	PhaseDecorator   bool
	PrintHelper      bool
	SharedInit       bool

	// OtherFunctions lists custom top-level functions that belong to no
	// recognized feature, in order of appearance.
	OtherFunctions []string
}

// Has reports whether the given feature was detected
func (f FeatureFlags) Has(feature Feature) bool {
	switch feature {
	case IframeResize:
		return f.IframeResize
	case CharacterManager:
		return f.CharacterManager
	case PhaseDecorator:
		return f.PhaseDecorator
	case PrintHelper:
		return f.PrintHelper
	case SharedInit:
		return f.SharedInit
	}
	return false
}

func (f *FeatureFlags) set(feature Feature) {
	switch feature {
	case IframeResize:
		f.IframeResize = true
	case CharacterManager:
		f.CharacterManager = true
	case PhaseDecorator:
		f.PhaseDecorator = true
	case PrintHelper:
		f.PrintHelper = true
	case SharedInit:
		f.SharedInit = true
	}
}

// Any reports whether at least one feature was detected
func (f FeatureFlags) Any() bool {
	for _, feature := range detectionOrder {
		if f.Has(feature) {
			return true
		}
	}
	return false
}

// Detected returns the detected features in detection order
func (f FeatureFlags) Detected() []Feature {
	var out []Feature
	for _, feature := range detectionOrder {
		if f.Has(feature) {
			out = append(out, feature)
		}
	}
	return out
}

// Labels returns the labels of the detected features in detection order
func (f FeatureFlags) Labels() []string {
	detected := f.Detected()
	labels := make([]string, len(detected))
	for i, feature := range detected {
		labels[i] = feature.String()
	}
	return labels
}

// probe is a literal token whose presence marks a feature
type probe struct {
	token   string
	feature Feature
}

var probes = []probe{
	{token: "exeIframeResize", feature: IframeResize},
	{token: "exe-character", feature: CharacterManager},
	{token: "decoratePhases", feature: PhaseDecorator},
	{token: "phasesDecorated", feature: PhaseDecorator},
	{token: "printContent", feature: PrintHelper},
	{token: "myTheme.common", feature: SharedInit},
}

var (
	probeMatcher = newProbeMatcher()

	sharedInitDecl = regexp.MustCompile(`\bcommon\s*:\s*\{`)
	containerDecl  = regexp.MustCompile(`(?m)^[ \t]*var[ \t]+myTheme[ \t]*=[ \t]*\{`)
	namedFunction  = regexp.MustCompile(`(?m)^[ \t]*(?:function[ \t]+([A-Za-z_$][\w$]*)[ \t]*\(|([A-Za-z_$][\w$]*)[ \t]*:[ \t]*function[ \t]*\()`)
)

func newProbeMatcher() *ahocorasick.Matcher {
	tokens := make([]string, len(probes))
	for i, p := range probes {
		tokens[i] = p.token
	}
	return ahocorasick.NewStringMatcher(tokens)
}

// standardMembers are the functions every style template defines
var standardMembers = map[string]bool{
	"init":                 true,
	"hideMenu":             true,
	"toggleMenu":           true,
	"setNavHeight":         true,
	"getNavHeight":         true,
	"addNavigationButtons": true,
	"movePageTitle":        true,
}

// featureMembers are the members owned by a recognized feature
var featureMembers = map[string]bool{
	"printContent":   true,
	"decoratePhases": true,
	"common":         true,
}

// Classify scans a legacy script for the recognized custom features.
// Each feature is detected independently.
func Classify(text string) FeatureFlags {
	var flags FeatureFlags
	if text == "" {
		return flags
	}

	for _, idx := range probeMatcher.MatchThreadSafe([]byte(text)) {
		if idx < len(probes) {
			flags.set(probes[idx].feature)
		}
	}
	if sharedInitDecl.MatchString(text) {
		flags.SharedInit = true
	}

	flags.OtherFunctions = otherFunctions(text)
	return flags
}

// otherFunctions returns custom function names that no feature claims.
// Only top-level declarations and direct members of the container count;
// callbacks nested inside members and code inside feature blocks do not.
func otherFunctions(text string) []string {
	var names []string
	seen := make(map[string]bool)

	depths := braceDepths(text)
	container, haveContainer := containerSpan(text)
	owned := featureSpans(text)

	for _, m := range namedFunction.FindAllStringSubmatchIndex(text, -1) {
		var name Span
		var depth int
		switch {
		case m[2] >= 0:
			name, depth = Span{Start: m[2], End: m[3]}, 0
		case m[4] >= 0 && haveContainer:
			name, depth = Span{Start: m[4], End: m[5]}, 1
			if !container.Contains(name) {
				continue
			}
		default:
			continue
		}
		if depths[name.Start] != depth || insideAny(owned, name.Start) {
			continue
		}

		n := name.Text(text)
		if seen[n] || standardMembers[n] || featureMembers[n] {
			continue
		}
		seen[n] = true
		names = append(names, n)
	}

	return names
}

func containerSpan(text string) (Span, bool) {
	loc := containerDecl.FindStringIndex(text)
	if loc == nil {
		return Span{}, false
	}
	return Balanced(text, loc[0])
}

// featureSpans returns the code owned by recognized features
func featureSpans(text string) []Span {
	var spans []Span
	for _, key := range []*regexp.Regexp{printHelperKey, sharedInitKey} {
		if sp, ok := keyedBlock(text, key); ok {
			spans = append(spans, sp)
		}
	}
	for _, re := range []*regexp.Regexp{iframeBlock, phaseBlock} {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			spans = append(spans, Span{Start: loc[0], End: loc[1]})
		}
	}
	return spans
}

func insideAny(spans []Span, pos int) bool {
	for _, sp := range spans {
		if pos >= sp.Start && pos < sp.End {
			return true
		}
	}
	return false
}
