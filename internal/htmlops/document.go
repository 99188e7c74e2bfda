// Package htmlops implements the post-processing transformations applied to
// generated HTML documents: inline-style rewriting, accessibility fixes,
// style-removal validation and cache-token injection.
//
// Documents are parsed once into a tree, rewritten structurally and
// serialized once, so attribute ordering, quoting and whitespace variants in
// the generator output cannot defeat the matching.
package htmlops

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// Document is a parsed HTML file processed in place across stages.
type Document struct {
	Path string
	root *html.Node
}

// Load reads and parses an HTML file.
func Load(path string) (*Document, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open HTML file %s: %w", path, err)
	}
	defer func() {
		_ = file.Close() // Ignore close errors on read-only operation
	}()

	doc, err := ParseReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML file %s: %w", path, err)
	}
	doc.Path = path
	return doc, nil
}

// ParseReader parses HTML from a reader into a Document without a path.
func ParseReader(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Document{root: root}, nil
}

// Root returns the document root node.
func (d *Document) Root() *html.Node { return d.root }

// Render serializes the document tree.
func (d *Document) Render() ([]byte, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, d.root); err != nil {
		return nil, fmt.Errorf("failed to render HTML: %w", err)
	}
	return buf.Bytes(), nil
}

// Save serializes the document and writes it back to its path.
func (d *Document) Save() error {
	data, err := d.Render()
	if err != nil {
		return err
	}
	if err := os.WriteFile(d.Path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write HTML file %s: %w", d.Path, err)
	}
	return nil
}

// walk visits every node in the tree in document order.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// setAttr sets or replaces an attribute value.
func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// removeAttr deletes an attribute if present.
func removeAttr(n *html.Node, key string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// startTag renders just the element's opening tag, used for diagnostics.
func startTag(n *html.Node) string {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(n.Data)
	for _, attr := range n.Attr {
		sb.WriteByte(' ')
		sb.WriteString(attr.Key)
		sb.WriteString(`="`)
		sb.WriteString(attr.Val)
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
	return sb.String()
}
