package htmlops

import (
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/docpolish/internal/patterns"
)

// RewriteInlineStyles replaces library-mapped inline style declarations with
// CSS classes across the document. Matched declarations are stripped from the
// style value; residual declarations the library does not map are preserved
// verbatim, and a style attribute left empty is removed. Existing class
// attributes are merged, never replaced.
//
// The returned count is the number of elements changed; a second run over the
// same document returns zero.
func RewriteInlineStyles(doc *Document, lib *patterns.Library) int {
	changed := 0
	walk(doc.Root(), func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		style, ok := getAttr(n, "style")
		if !ok {
			return
		}
		if strings.TrimSpace(style) == "" {
			// Leftover empty style attribute from an earlier rewrite.
			removeAttr(n, "style")
			changed++
			return
		}
		decls, err := patterns.ParseStyle(style)
		if err != nil {
			// Not parseable as declarations; never destroy what we cannot map.
			return
		}
		classes, residual := lib.Partition(decls)
		if len(classes) == 0 {
			return
		}
		mergeClasses(n, classes)
		if len(residual) == 0 {
			removeAttr(n, "style")
		} else {
			setAttr(n, "style", patterns.Serialize(residual))
		}
		changed++
	})
	return changed
}

// mergeClasses appends classes to the element's class attribute, skipping
// tokens already present.
func mergeClasses(n *html.Node, classes []string) {
	existing, _ := getAttr(n, "class")
	tokens := strings.Fields(existing)
	have := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		have[t] = true
	}
	for _, c := range classes {
		if !have[c] {
			have[c] = true
			tokens = append(tokens, c)
		}
	}
	setAttr(n, "class", strings.Join(tokens, " "))
}
