package htmlops

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjectCacheTokens_StylesheetsAndScripts(t *testing.T) {
	doc := parseDoc(t, `<html><head>
<link rel="stylesheet" href="style.css"/>
<link rel="stylesheet" href="theme.css"/>
<script src="app.js"></script>
</head><body></body></html>`)

	injected, skipped := InjectCacheTokens(doc, "v", "20240101120000")

	assert.Equal(t, 3, injected)
	assert.Equal(t, 0, skipped)
	out := renderDoc(t, doc)
	assert.Contains(t, out, `href="style.css?v=20240101120000"`)
	assert.Contains(t, out, `href="theme.css?v=20240101120000"`)
	assert.Contains(t, out, `src="app.js?v=20240101120000"`)
}

func TestInjectCacheTokens_Idempotent(t *testing.T) {
	doc := parseDoc(t, `<link rel="stylesheet" href="style.css"/>`)

	injected, _ := InjectCacheTokens(doc, "v", "111")
	require.Equal(t, 1, injected)

	// Re-running with a different token must not append a second one.
	injected, _ = InjectCacheTokens(doc, "v", "222")
	assert.Equal(t, 0, injected)
	out := renderDoc(t, doc)
	assert.Contains(t, out, `href="style.css?v=111"`)
	assert.Equal(t, 1, strings.Count(out, "v="))
}

func TestInjectCacheTokens_PreservesExistingQuery(t *testing.T) {
	doc := parseDoc(t, `<script src="app.js?lang=en"></script>`)

	injected, _ := InjectCacheTokens(doc, "v", "123")

	assert.Equal(t, 1, injected)
	assert.Contains(t, renderDoc(t, doc), `src="app.js?lang=en&amp;v=123"`)
}

func TestInjectCacheTokens_SkipsExternalReferences(t *testing.T) {
	doc := parseDoc(t, `<link rel="stylesheet" href="https://cdn.example.com/style.css"/>
<script src="//cdn.example.com/app.js"></script>`)

	injected, skipped := InjectCacheTokens(doc, "v", "123")

	assert.Equal(t, 0, injected)
	assert.Equal(t, 0, skipped)
	assert.NotContains(t, renderDoc(t, doc), "v=123")
}

func TestInjectCacheTokens_CountsMalformedReferences(t *testing.T) {
	cases := []struct {
		name   string
		markup string
	}{
		{"bad query escape", `<script src="app.js?x=%zz"></script>`},
		{"bad path escape", `<link rel="stylesheet" href="%zz.css"/>`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := parseDoc(t, tc.markup)

			injected, skipped := InjectCacheTokens(doc, "v", "123")

			assert.Equal(t, 0, injected)
			assert.Equal(t, 1, skipped)
			assert.NotContains(t, renderDoc(t, doc), "v=123")
		})
	}
}

func TestInjectCacheTokens_IgnoresNonStylesheetLinks(t *testing.T) {
	doc := parseDoc(t, `<link rel="icon" href="favicon.ico"/>`)

	injected, _ := InjectCacheTokens(doc, "v", "123")

	assert.Equal(t, 0, injected)
}
