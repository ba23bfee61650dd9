package script

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplice_NoSectionsReturnsTemplate(t *testing.T) {
	out, err := Splice(baseTemplate, nil)
	require.NoError(t, err)
	assert.Equal(t, baseTemplate, out)
	assert.Zero(t, CountMarkers(out))
}

func TestSplice_AllFeatures(t *testing.T) {
	ext := Extract(legacyFull, Classify(legacyFull))

	out, err := Splice(baseTemplate, ext.Sections)
	require.NoError(t, err)

	for _, s := range ext.Sections {
		assert.Contains(t, out, s.Code, s.Name)
	}

	assert.Equal(t, 1, strings.Count(out, ContainerMarker))
	assert.Equal(t, 1, strings.Count(out, AppendMarker))
	assert.Equal(t, 2, CountMarkers(out))

	// Container sections follow setNavHeight and precede getNavHeight.
	anchorEnd := strings.Index(out, `h + "px");`+"\n    },")
	container := strings.Index(out, ContainerMarker)
	printAt := strings.Index(out, "printContent: function(id)")
	commonAt := strings.Index(out, "common: {")
	getNav := strings.Index(out, "getNavHeight: function()")
	require.True(t, anchorEnd >= 0)
	assert.True(t, anchorEnd < container)
	assert.True(t, container < printAt)
	assert.True(t, printAt < commonAt)
	assert.True(t, commonAt < getNav)

	// Appended sections come after the template body, in priority order.
	appendAt := strings.Index(out, AppendMarker)
	readyAt := strings.Index(out, "$(function() {\n    myTheme.init();")
	characterAt := strings.Index(out, `$(".exe-character")`)
	iframeAt := strings.Index(out, "// Iframe resize")
	assert.True(t, readyAt < appendAt)
	assert.True(t, appendAt < characterAt)
	assert.True(t, characterAt < iframeAt)
	assert.True(t, strings.HasSuffix(out, "})();\n"))
}

func TestSplice_ContainerMembersEndWithComma(t *testing.T) {
	sections := []Section{
		{Name: "shared-init", Feature: SharedInit, Code: "common: {\n        ready: true\n    }", Target: ContainerInsert},
	}

	out, err := Splice(baseTemplate, sections)
	require.NoError(t, err)
	assert.Contains(t, out, "    "+ContainerMarker+"\n    common: {\n        ready: true\n    },\n    getNavHeight")
}

func TestSplice_AnchorWithoutComma(t *testing.T) {
	sections := []Section{
		{Name: "print-helper", Feature: PrintHelper, Code: "printContent: function() {\n        window.print();\n    },", Target: ContainerInsert},
	}

	out, err := Splice(lastMemberTemplate, sections)
	require.NoError(t, err)

	assert.Contains(t, out, `$("#siteNav").css("min-height", "100px");`+"\n    },\n\n    "+ContainerMarker)
	assert.True(t, strings.HasSuffix(out, "window.print();\n    },\n};\n"))
}

func TestSplice_OrdersByPriority(t *testing.T) {
	sections := []Section{
		{Name: "iframe-resize", Feature: IframeResize, Code: "// Iframe resize\n(function() {})();", Target: AppendAfter},
		{Name: "character-manager", Feature: CharacterManager, Code: "var isTouch = true;", Target: AppendAfter},
		{Name: "shared-init", Feature: SharedInit, Code: "common: {},", Target: ContainerInsert},
		{Name: "print-helper", Feature: PrintHelper, Code: "printContent: function() {},", Target: ContainerInsert},
	}

	out, err := Splice(baseTemplate, sections)
	require.NoError(t, err)

	assert.True(t, strings.Index(out, "printContent") < strings.Index(out, "common: {},"))
	assert.True(t, strings.Index(out, "var isTouch = true;") < strings.Index(out, "// Iframe resize"))
}

func TestSplice_OnlyAppendedSections(t *testing.T) {
	sections := []Section{
		{Name: "iframe-resize", Feature: IframeResize, Code: "// Iframe resize\n(function() {})();", Target: AppendAfter},
	}

	out, err := Splice(baseTemplate, sections)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, strings.TrimRight(baseTemplate, "\n")))
	assert.NotContains(t, out, ContainerMarker)
	assert.Equal(t, 1, CountMarkers(out))
}

func TestSplice_MissingAnchor(t *testing.T) {
	sections := []Section{
		{Name: "print-helper", Feature: PrintHelper, Code: "printContent: function() {},", Target: ContainerInsert},
	}

	_, err := Splice("var myTheme = {\n    init: function() {}\n};\n", sections)
	assert.ErrorIs(t, err, ErrAnchorNotFound)
}

func TestSplice_MissingAnchorIgnoredForAppendOnly(t *testing.T) {
	sections := []Section{
		{Name: "iframe-resize", Feature: IframeResize, Code: "(function() {})();", Target: AppendAfter},
	}

	out, err := Splice("var myTheme = {};\n", sections)
	require.NoError(t, err)
	assert.Equal(t, "var myTheme = {};\n\n"+AppendMarker+"\n(function() {})();\n", out)
}
