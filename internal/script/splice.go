package script

import (
	"errors"
	"regexp"
	"sort"
	"strings"
)

// Provenance markers delimit spliced custom code in the output
const (
	ProvenancePrefix = "// stylemig: migrated custom code"
	ContainerMarker  = ProvenancePrefix + " (container)"
	AppendMarker     = ProvenancePrefix + " (appended)"
)

// ErrAnchorNotFound is returned when a template has no setNavHeight member
// to insert container sections after.
var ErrAnchorNotFound = errors.New("template anchor setNavHeight not found")

// anchorKey locates the last standard member of the template container
var anchorKey = regexp.MustCompile(`(?m)^([ \t]*)setNavHeight\s*:\s*function\s*\([^)]*\)\s*\{`)

// Splice inserts extracted sections into a template script.
//
// ContainerInsert sections go right after the setNavHeight member, each
// ending in a comma so the object literal stays valid. AppendAfter sections
// go at the end of the file. Each non-empty group is preceded by a single
// provenance marker line. With no sections the template is returned as is.
func Splice(tmpl string, sections []Section) (string, error) {
	var container, appended []Section
	for _, s := range ordered(sections) {
		if s.Target == AppendAfter {
			appended = append(appended, s)
		} else {
			container = append(container, s)
		}
	}

	out := tmpl

	if len(container) > 0 {
		var err error
		out, err = insertIntoContainer(out, container)
		if err != nil {
			return "", err
		}
	}

	if len(appended) > 0 {
		codes := make([]string, len(appended))
		for i, s := range appended {
			codes[i] = s.Code
		}

		var b strings.Builder
		b.WriteString(strings.TrimRight(out, "\n"))
		b.WriteString("\n\n")
		b.WriteString(AppendMarker)
		b.WriteString("\n")
		b.WriteString(strings.Join(codes, "\n\n"))
		b.WriteString("\n")
		out = b.String()
	}

	return out, nil
}

func insertIntoContainer(tmpl string, sections []Section) (string, error) {
	loc := anchorKey.FindStringSubmatchIndex(tmpl)
	if loc == nil {
		return "", ErrAnchorNotFound
	}
	indent := tmpl[loc[2]:loc[3]]

	span, ok := Balanced(tmpl, loc[0])
	if !ok {
		return "", ErrAnchorNotFound
	}

	insertAt := span.End
	needComma := true
	i := span.End
	for i < len(tmpl) && (tmpl[i] == ' ' || tmpl[i] == '\t') {
		i++
	}
	if i < len(tmpl) && tmpl[i] == ',' {
		insertAt = i + 1
		needComma = false
	}

	var b strings.Builder
	if needComma {
		b.WriteString(",")
	}
	b.WriteString("\n\n")
	b.WriteString(indent)
	b.WriteString(ContainerMarker)
	for n, s := range sections {
		if n > 0 {
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(indent)
		b.WriteString(s.Code)
		if !strings.HasSuffix(strings.TrimRight(s.Code, " \t\r\n"), ",") {
			b.WriteString(",")
		}
	}

	return tmpl[:insertAt] + b.String() + tmpl[insertAt:], nil
}

// ordered returns sections in extraction priority order. Sections of the
// same feature keep their relative order.
func ordered(sections []Section) []Section {
	rank := make(map[Feature]int, len(extractionOrder))
	for i, f := range extractionOrder {
		rank[f] = i
	}

	out := make([]Section, len(sections))
	copy(out, sections)
	sort.SliceStable(out, func(i, j int) bool {
		return rank[out[i].Feature] < rank[out[j].Feature]
	})
	return out
}

// CountMarkers returns how many provenance marker lines a script contains
func CountMarkers(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), ProvenancePrefix) {
			count++
		}
	}
	return count
}
