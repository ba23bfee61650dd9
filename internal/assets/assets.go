// Package assets sorts the binary files of a style package into the
// category folders the new style format expects.
package assets

import (
	"path"
	"sort"
	"strconv"
	"strings"

	"stylemig/internal/pack"
)

// Category is the destination folder class of an asset
type Category string

const (
	Fonts Category = "fonts"
	Icons Category = "icons"
	Image Category = "img"
	// Text files are handled by the script, stylesheet and metadata steps.
	Text Category = "text"
	// Other files are kept where they are.
	Other Category = "other"
)

// DefaultIconThreshold is the size below which an image is treated as an icon
const DefaultIconThreshold = 50 * 1000

var extensions = map[string]Category{
	".woff":  Fonts,
	".woff2": Fonts,
	".ttf":   Fonts,
	".otf":   Fonts,
	".eot":   Fonts,
	".png":   Image,
	".jpg":   Image,
	".jpeg":  Image,
	".gif":   Image,
	".svg":   Image,
	".webp":  Image,
	".ico":   Image,
	".js":    Text,
	".css":   Text,
	".xml":   Text,
	".html":  Text,
	".htm":   Text,
}

// Classify returns the category of a file. Images smaller than
// iconThreshold bytes are icons; a zero threshold uses the default.
func Classify(name string, size int64, iconThreshold uint64) Category {
	if iconThreshold == 0 {
		iconThreshold = DefaultIconThreshold
	}
	cat, ok := extensions[strings.ToLower(path.Ext(name))]
	if !ok {
		return Other
	}
	if cat == Image && uint64(size) < iconThreshold {
		return Icons
	}
	return cat
}

// Move relocates one asset
type Move struct {
	From     string
	To       string
	Category Category
	Size     int64
}

// Plan is the set of asset moves for a package
type Plan struct {
	Moves []Move
	// Kept lists binary files left in place
	Kept []string
}

// BuildPlan decides where every binary asset of the package goes.
// Files already inside their category folder stay put.
func BuildPlan(set *pack.FileSet, iconThreshold uint64) Plan {
	var plan Plan
	taken := make(map[string]bool)

	// Files already in their category folder keep their path.
	for _, f := range set.Files() {
		if cat := Classify(f.Path, f.Size(), iconThreshold); cat != Text && cat != Other {
			if to := string(cat) + "/" + path.Base(f.Path); to == f.Path {
				taken[to] = true
			}
		}
	}

	for _, f := range set.Files() {
		cat := Classify(f.Path, f.Size(), iconThreshold)
		switch cat {
		case Text:
			continue
		case Other:
			plan.Kept = append(plan.Kept, f.Path)
			continue
		}

		to := string(cat) + "/" + path.Base(f.Path)
		if to == f.Path {
			continue
		}
		to = uniquePath(to, taken)
		taken[to] = true

		plan.Moves = append(plan.Moves, Move{
			From:     f.Path,
			To:       to,
			Category: cat,
			Size:     f.Size(),
		})
	}

	sort.Slice(plan.Moves, func(i, j int) bool {
		return plan.Moves[i].From < plan.Moves[j].From
	})
	return plan
}

// uniquePath suffixes a name when two assets would collide
func uniquePath(p string, taken map[string]bool) string {
	if !taken[p] {
		return p
	}
	ext := path.Ext(p)
	stem := strings.TrimSuffix(p, ext)
	for i := 2; ; i++ {
		candidate := stem + "-" + strconv.Itoa(i) + ext
		if !taken[candidate] {
			return candidate
		}
	}
}

// Apply performs the moves on the file set. All sources are removed
// before any target is written, so a move may target another move's source.
func (p Plan) Apply(set *pack.FileSet) {
	data := make(map[string][]byte, len(p.Moves))
	for _, m := range p.Moves {
		if f, ok := set.Get(m.From); ok {
			data[m.From] = f.Data
			set.Remove(m.From)
		}
	}
	for _, m := range p.Moves {
		if d, ok := data[m.From]; ok {
			set.Put(m.To, d)
		}
	}
}

// Rewrites maps every old asset path, and its bare file name, to the new
// path. Stylesheets reference assets either way.
func (p Plan) Rewrites() map[string]string {
	out := make(map[string]string, len(p.Moves)*2)
	for _, m := range p.Moves {
		out[m.From] = m.To
		base := path.Base(m.From)
		if _, exists := out[base]; !exists {
			out[base] = m.To
		}
	}
	return out
}

// Counts returns the number of moves per category
func (p Plan) Counts() map[Category]int {
	out := make(map[Category]int)
	for _, m := range p.Moves {
		out[m.Category]++
	}
	return out
}
