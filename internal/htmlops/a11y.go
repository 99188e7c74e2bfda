package htmlops

import (
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/docpolish/internal/patterns"
)

// FixAccessibility annotates elements matching the library's attribute
// patterns. An element lacking every required attribute gets all of them set
// to the pattern's label; elements already carrying any of them are left
// alone, so author-provided labels survive and a second run changes nothing.
func FixAccessibility(doc *Document, lib *patterns.Library) int {
	changed := 0
	walk(doc.Root(), func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		for _, p := range lib.Attributes {
			if !matchesShape(n, p) {
				continue
			}
			if hasAnyAttr(n, p.Attributes) {
				continue
			}
			for _, key := range p.Attributes {
				setAttr(n, key, p.Label)
			}
			changed++
		}
	})
	return changed
}

func matchesShape(n *html.Node, p patterns.AttributePattern) bool {
	if n.Data != p.Tag {
		return false
	}
	if p.Type == "" {
		return true
	}
	typ, _ := getAttr(n, "type")
	return strings.EqualFold(typ, p.Type)
}

func hasAnyAttr(n *html.Node, keys []string) bool {
	for _, key := range keys {
		if _, ok := getAttr(n, key); ok {
			return true
		}
	}
	return false
}
