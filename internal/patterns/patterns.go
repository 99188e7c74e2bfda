// Package patterns holds the declarative pattern library driving the
// post-processing stages: which inline style declarations map to which CSS
// class, and which element shapes require accessibility attributes.
//
// The library is pure data plus matching predicates; it performs no I/O and
// never mutates documents itself.
package patterns

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// StylePattern maps inline style declarations to a semantic CSS class.
// A declaration matches when its property (case-insensitive) is one of
// Properties and, when Values is non-empty, its value is one of Values.
// Matching declarations are consumed by the pattern; the element gains
// Class instead. Declarations with a non-matching value stay residual so
// semantics the class cannot express are never destroyed.
type StylePattern struct {
	Name       string
	Properties []string
	Values     []string // empty means any value
	Class      string
}

// Matches reports whether the pattern consumes the given declaration.
func (p StylePattern) Matches(d *css.Declaration) bool {
	prop := strings.ToLower(strings.TrimSpace(d.Property))
	found := false
	for _, want := range p.Properties {
		if prop == want {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	if len(p.Values) == 0 {
		return true
	}
	val := strings.ToLower(strings.TrimSpace(d.Value))
	for _, want := range p.Values {
		if val == want {
			return true
		}
	}
	return false
}

// AttributePattern describes an element shape that must carry accessibility
// attributes. An element matches when its tag is Tag and, if Type is
// non-empty, its type attribute equals Type. Elements lacking all of the
// Attributes get each of them set to Label.
type AttributePattern struct {
	Name       string
	Tag        string
	Type       string
	Attributes []string
	Label      string
}

// Library is the ordered set of patterns. Ordering is first-match-wins per
// declaration, so more specific patterns must precede catch-all ones.
type Library struct {
	Styles     []StylePattern
	Attributes []AttributePattern
}

// Default returns the built-in library: page-break and clear related inline
// styles, and unlabeled checkbox inputs.
func Default() *Library {
	return &Library{
		Styles: []StylePattern{
			{
				Name:       "page-break-before",
				Properties: []string{"page-break-before", "break-before"},
				Class:      "page-break-before",
			},
			{
				Name:       "page-break-after",
				Properties: []string{"page-break-after", "break-after"},
				Class:      "page-break-after",
			},
			{
				Name:       "page-break-inside",
				Properties: []string{"page-break-inside", "break-inside"},
				Class:      "page-break-inside",
			},
			{
				Name:       "clear-both",
				Properties: []string{"clear"},
				Values:     []string{"both"},
				Class:      "clear-both",
			},
		},
		Attributes: []AttributePattern{
			{
				Name:       "checkbox-label",
				Tag:        "input",
				Type:       "checkbox",
				Attributes: []string{"aria-label", "title"},
				Label:      "Checkbox item",
			},
		},
	}
}

// ParseStyle parses a style attribute value into declarations.
func ParseStyle(style string) ([]*css.Declaration, error) {
	return parser.ParseDeclarations(style)
}

// Partition splits declarations into the classes gained from matched
// declarations and the residual declarations no pattern consumes. Class
// order follows library order; duplicates are collapsed.
func (l *Library) Partition(decls []*css.Declaration) (classes []string, residual []*css.Declaration) {
	seen := make(map[string]bool)
	for _, d := range decls {
		matched := false
		for _, p := range l.Styles {
			if p.Matches(d) {
				matched = true
				if !seen[p.Class] {
					seen[p.Class] = true
					classes = append(classes, p.Class)
				}
				break
			}
		}
		if !matched {
			residual = append(residual, d)
		}
	}
	return classes, residual
}

// MatchesAny reports whether any declaration in the parsed style value is
// consumed by the library. Unparseable values match nothing.
func (l *Library) MatchesAny(style string) bool {
	decls, err := ParseStyle(style)
	if err != nil {
		return false
	}
	for _, d := range decls {
		for _, p := range l.Styles {
			if p.Matches(d) {
				return true
			}
		}
	}
	return false
}

// Serialize renders declarations back into a style attribute value.
func Serialize(decls []*css.Declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, " ")
}
