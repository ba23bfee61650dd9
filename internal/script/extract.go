package script

import (
	"regexp"
	"strings"
)

// Target says where an extracted section goes in the new script
type Target int

const (
	// ContainerInsert sections become members of the container object
	ContainerInsert Target = iota
	// AppendAfter sections are appended after the container
	AppendAfter
)

func (t Target) String() string {
	if t == AppendAfter {
		return "append-after"
	}
	return "container-insert"
}

// Section is a span of custom code pulled out of a legacy script
type Section struct {
	Name    string
	Feature Feature
	Code    string
	Target  Target
}

// Skip records a detected feature whose code could not be extracted
type Skip struct {
	Feature Feature
	Reason  string
}

// Extraction is the outcome of Extract
type Extraction struct {
	Sections []Section
	Skipped  []Skip
}

// Names returns the names of the extracted sections in order
func (e Extraction) Names() []string {
	names := make([]string, len(e.Sections))
	for i, s := range e.Sections {
		names[i] = s.Name
	}
	return names
}

// extractionOrder is the priority order sections are extracted and spliced in
var extractionOrder = []Feature{PrintHelper, SharedInit, CharacterManager, IframeResize, PhaseDecorator}

// These patterns describe code shapes that are stable across legacy styles.
// They are bounded approximations, not a parser.
var (
	printHelperKey = regexp.MustCompile(`printContent\s*:\s*function\s*\([^)]*\)\s*\{`)
	sharedInitKey  = regexp.MustCompile(`\bcommon\s*:\s*\{`)
	readyBlock     = regexp.MustCompile(`(?ms)^(?:\$|jQuery)\((?:document\)\.ready\()?function\s*\([^)]*\)\s*\{.*?^\}\);`)
	touchAssign    = regexp.MustCompile(`(?m)^[ \t]*(?:var[ \t]+)?[\w$.]*isTouch[\w$]*[ \t]*=[^;\n]*;`)
	iframeBlock    = regexp.MustCompile(`(?s)//[ \t]*Iframe resize[^\n]*\n.*?\}\)\(\);`)
	phaseBlock     = regexp.MustCompile(`(?s)//[ \t]*Phase decorator[^\n]*\n.*?phasesDecorated\s*=\s*true;\s*\}(?:[ \t]*,)?`)
)

// Extract pulls the code of every detected feature out of the legacy
// script. A feature whose code does not have the expected shape is recorded
// in Skipped and left out; extraction never fails as a whole.
func Extract(text string, flags FeatureFlags) Extraction {
	var out Extraction
	var sharedSpan Span
	haveShared := false

	for _, feature := range extractionOrder {
		if !flags.Has(feature) {
			continue
		}

		var (
			span   Span
			code   string
			ok     bool
			reason string
		)

		switch feature {
		case PrintHelper:
			span, ok = keyedBlock(text, printHelperKey)
			reason = "printContent member declaration not found or unbalanced"
		case SharedInit:
			span, ok = keyedBlock(text, sharedInitKey)
			reason = "common container declaration not found or unbalanced"
			if ok {
				sharedSpan, haveShared = span, true
			}
		case CharacterManager:
			code, ok = characterManager(text)
			reason = "character manager ready block and touch assignment not found"
		case IframeResize:
			span, ok = regexSpan(text, iframeBlock)
			reason = "iframe resize block not found"
		case PhaseDecorator:
			span, ok = regexSpan(text, phaseBlock)
			reason = "phase decorator block not found"
			if ok && haveShared && sharedSpan.Contains(span) {
				out.Skipped = append(out.Skipped, Skip{
					Feature: feature,
					Reason:  "contained in shared initialization container",
				})
				continue
			}
		}

		if !ok {
			out.Skipped = append(out.Skipped, Skip{Feature: feature, Reason: reason})
			continue
		}
		if code == "" {
			code = span.Text(text)
		}

		out.Sections = append(out.Sections, Section{
			Name:    feature.Key(),
			Feature: feature,
			Code:    code,
			Target:  targetOf(feature),
		})
	}

	return out
}

func targetOf(feature Feature) Target {
	switch feature {
	case CharacterManager, IframeResize:
		return AppendAfter
	default:
		return ContainerInsert
	}
}

// keyedBlock finds a "name: ... {" declaration and matches its braces.
// A comma directly after the closing brace belongs to the span.
func keyedBlock(text string, key *regexp.Regexp) (Span, bool) {
	loc := key.FindStringIndex(text)
	if loc == nil {
		return Span{}, false
	}

	span, ok := Balanced(text, loc[0])
	if !ok {
		return Span{}, false
	}

	i := span.End
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	if i < len(text) && text[i] == ',' {
		span.End = i + 1
	}
	return span, true
}

func regexSpan(text string, re *regexp.Regexp) (Span, bool) {
	loc := re.FindStringIndex(text)
	if loc == nil {
		return Span{}, false
	}
	return Span{Start: loc[0], End: loc[1]}, true
}

// characterManager joins the DOM-ready block that drives the character
// markup with the touch-device assignment it relies on.
func characterManager(text string) (string, bool) {
	var parts []string

	for _, loc := range readyBlock.FindAllStringIndex(text, -1) {
		block := text[loc[0]:loc[1]]
		if strings.Contains(block, "exe-character") {
			parts = append(parts, block)
			break
		}
	}

	if loc := touchAssign.FindStringIndex(text); loc != nil {
		parts = append(parts, strings.TrimLeft(text[loc[0]:loc[1]], " \t"))
	}

	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "\n\n"), true
}
