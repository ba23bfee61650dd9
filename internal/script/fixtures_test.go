package script

import (
	"fmt"
	"strings"
)

// legacyFull carries every recognized feature. The phase decorator lives
// inside the common container.
const legacyFull = `var myTheme = {
    init: function() {
        var ie = (navigator.userAgent.indexOf("MSIE") != -1);
        myTheme.addNavigationButtons();
    },
    hideMenu: function() {
        $("#siteNav").hide();
    },
    setNavHeight: function() {
        var h = $("#main").height();
        $("#siteNav").css("min-height", h + "px");
    },
    printContent: function(id) {
        var s = "a{b}c";
        if (id) {
            window.print();
        }
        return s;
    },
    common: {
        init: function() {
            myTheme.common.decoratePhases();
        },
        // Phase decorator
        decoratePhases: function() {
            $(".exe-phase").each(function() {
                $(this).addClass("decorated");
            });
            myTheme.phasesDecorated = true;
        },
    },
};
// Iframe resize
(function() {
    if (typeof exeIframeResize === "undefined") { return; }
    window.addEventListener("resize", function() {
        parent.postMessage({ height: document.body.scrollHeight }, "*");
    });
})();
$(function() {
    $(".exe-character").each(function() {
        $(this).attr("data-touch", myTheme.isTouchDevice);
    });
});
myTheme.isTouchDevice = ("ontouchstart" in window);
`

// legacyPhaseOutside has a phase decorator that is a direct container member
const legacyPhaseOutside = `var myTheme = {
    init: function() {
        myTheme.decoratePhases();
    },
    // Phase decorator
    decoratePhases: function() {
        $(".exe-phase").addClass("decorated");
        myTheme.phasesDecorated = true;
    },
    common: {
        ready: true
    }
};
`

// legacyRenamedPrint mentions the print helper but not as a container member
const legacyRenamedPrint = `var myTheme = {
    init: function() {
        $("#print").click(window.printContent);
    },
    common: {
        label: "print {page}"
    }
};
window.printContent = function(id) {
    window.print();
};
`

const baseTemplate = `var myTheme = {
    init: function() {
        myTheme.addNavigationButtons();
    },
    toggleMenu: function(e) {
        $("body").toggleClass("siteNav-hidden");
    },
    setNavHeight: function() {
        var h = $("#main").height();
        $("#siteNav").css("min-height", h + "px");
    },
    getNavHeight: function() {
        return $("#siteNav").height();
    }
};
$(function() {
    myTheme.init();
});
`

// lastMemberTemplate has setNavHeight as the final member without a comma
const lastMemberTemplate = `var myTheme = {
    init: function() {
        myTheme.setNavHeight();
    },
    setNavHeight: function() {
        $("#siteNav").css("min-height", "100px");
    }
};
`

// simpleLegacy builds a script with five short standard members and
// the requested number of code lines.
func simpleLegacy(lines int) string {
	members := []string{"init", "hideMenu", "toggleMenu", "setNavHeight", "getNavHeight"}

	var b strings.Builder
	b.WriteString("var myTheme = {\n")
	written := 2 // opening and closing lines
	for i, name := range members {
		fmt.Fprintf(&b, "    %s: function() {\n", name)
		written += 2
		body := (lines - 2 - len(members)*2) / len(members)
		if i == len(members)-1 {
			body = lines - written
		}
		for j := 0; j < body; j++ {
			fmt.Fprintf(&b, "        var v%d = %d;\n", j, j)
			written++
		}
		b.WriteString("    },\n")
	}
	b.WriteString("};\n")
	return b.String()
}

type mapTemplates map[string]string

func (m mapTemplates) Script(name string) (string, error) {
	s, ok := m[name]
	if !ok {
		return "", fmt.Errorf("no template %s", name)
	}
	return s, nil
}

// padFeatures grows legacyFull's init member with filler statements until
// the script has the requested number of code lines.
func padFeatures(lines int) string {
	const anchor = "    init: function() {\n"
	missing := lines - NewSource(legacyFull).CodeLines()

	var filler strings.Builder
	for i := 0; i < missing; i++ {
		fmt.Fprintf(&filler, "        var pad%d = %d;\n", i, i)
	}
	return strings.Replace(legacyFull, anchor, anchor+filler.String(), 1)
}
