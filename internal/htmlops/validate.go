package htmlops

import (
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/docpolish/internal/config"
	"git.home.luguber.info/inful/docpolish/internal/patterns"
)

// Violation is a single residual inline style found by the validation gate.
type Violation struct {
	Path    string // file the element was found in
	Snippet string // opening tag of the offending element
}

// ValidationResult is the pass/fail verdict for a set of documents.
type ValidationResult struct {
	Violations []Violation
}

// Pass reports whether no residual styles were found.
func (r *ValidationResult) Pass() bool { return len(r.Violations) == 0 }

// ScanStyles re-scans a document for inline styles the earlier stages should
// have removed. With ScopePatterns only declarations enumerated in the
// library are flagged; with ScopeAll any remaining style attribute is.
func ScanStyles(doc *Document, lib *patterns.Library, scope config.ValidateScope) []Violation {
	var violations []Violation
	walk(doc.Root(), func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		style, ok := getAttr(n, "style")
		if !ok {
			return
		}
		if scope != config.ScopeAll && !lib.MatchesAny(style) {
			return
		}
		violations = append(violations, Violation{Path: doc.Path, Snippet: startTag(n)})
	})
	return violations
}
