package htmlops

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// InjectCacheTokens appends the run-wide cache token as a query parameter to
// every local stylesheet and script reference in the document. References
// already carrying the parameter are left alone, so the stage is idempotent.
// Malformed references are left untouched and counted in skipped.
func InjectCacheTokens(doc *Document, param, token string) (injected, skipped int) {
	walk(doc.Root(), func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		var key string
		switch n.Data {
		case "script":
			key = "src"
		case "link":
			rel, _ := getAttr(n, "rel")
			if !strings.Contains(strings.ToLower(rel), "stylesheet") {
				return
			}
			key = "href"
		default:
			return
		}
		ref, ok := getAttr(n, key)
		if !ok || ref == "" {
			return
		}
		tokenized, err := appendToken(ref, param, token)
		if err != nil {
			skipped++
			return
		}
		if tokenized == "" {
			// External reference or already tokenized.
			return
		}
		setAttr(n, key, tokenized)
		injected++
	})
	return injected, skipped
}

// appendToken returns the tokenized reference, "" when the reference should
// be left as is, or an error for malformed references.
func appendToken(ref, param, token string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	// Only local assets participate in cache busting.
	if u.Scheme != "" || u.Host != "" || u.Path == "" {
		return "", nil
	}
	if u.RawQuery != "" {
		values, err := url.ParseQuery(u.RawQuery)
		if err != nil {
			return "", err
		}
		if values.Has(param) {
			return "", nil
		}
		u.RawQuery += "&" + param + "=" + url.QueryEscape(token)
	} else {
		u.RawQuery = param + "=" + url.QueryEscape(token)
	}
	return u.String(), nil
}
