package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLibrary_CoversBreakAndClearProperties(t *testing.T) {
	lib := Default()

	cases := []struct {
		declaration string
		wantClass   string
	}{
		{"page-break-before: always;", "page-break-before"},
		{"break-before: page;", "page-break-before"},
		{"page-break-after: always;", "page-break-after"},
		{"break-after: page;", "page-break-after"},
		{"page-break-inside: avoid;", "page-break-inside"},
		{"break-inside: avoid;", "page-break-inside"},
		{"clear: both;", "clear-both"},
	}

	for _, tc := range cases {
		t.Run(tc.declaration, func(t *testing.T) {
			decls, err := ParseStyle(tc.declaration)
			require.NoError(t, err)
			require.Len(t, decls, 1)

			classes, residual := lib.Partition(decls)
			assert.Equal(t, []string{tc.wantClass}, classes)
			assert.Empty(t, residual)
		})
	}
}

func TestPartition_KeepsClearWithNonBothValue(t *testing.T) {
	lib := Default()

	// "clear: left" has no equivalent class; it must survive as residual
	// rather than be rewritten into clear-both.
	decls, err := ParseStyle("clear: left;")
	require.NoError(t, err)
	require.Len(t, decls, 1)

	classes, residual := lib.Partition(decls)
	assert.Empty(t, classes)
	require.Len(t, residual, 1)
	assert.Equal(t, "clear", residual[0].Property)
	assert.Equal(t, "left", residual[0].Value)
}

func TestPartition_ClearValueMatchIsCaseInsensitive(t *testing.T) {
	lib := Default()

	decls, err := ParseStyle("clear: Both;")
	require.NoError(t, err)

	classes, residual := lib.Partition(decls)
	assert.Equal(t, []string{"clear-both"}, classes)
	assert.Empty(t, residual)
}

func TestPartition_PreservesUnmappedDeclarations(t *testing.T) {
	lib := Default()

	decls, err := ParseStyle("page-break-before: always; color: red; margin: 0;")
	require.NoError(t, err)
	require.Len(t, decls, 3)

	classes, residual := lib.Partition(decls)
	assert.Equal(t, []string{"page-break-before"}, classes)
	require.Len(t, residual, 2)
	assert.Equal(t, "color", residual[0].Property)
	assert.Equal(t, "margin", residual[1].Property)
}

func TestPartition_CollapsesDuplicateClasses(t *testing.T) {
	lib := Default()

	// Both declarations map to the same class, as in generator output that
	// carries the legacy and modern property side by side.
	decls, err := ParseStyle("break-before: page; page-break-before: always;")
	require.NoError(t, err)

	classes, residual := lib.Partition(decls)
	assert.Equal(t, []string{"page-break-before"}, classes)
	assert.Empty(t, residual)
}

func TestPartition_PropertyMatchIsCaseInsensitive(t *testing.T) {
	lib := Default()

	decls, err := ParseStyle("PAGE-BREAK-BEFORE: always;")
	require.NoError(t, err)

	classes, _ := lib.Partition(decls)
	assert.Equal(t, []string{"page-break-before"}, classes)
}

func TestMatchesAny(t *testing.T) {
	lib := Default()

	assert.True(t, lib.MatchesAny("page-break-before: always;"))
	assert.True(t, lib.MatchesAny("color: red; clear: both"))
	assert.False(t, lib.MatchesAny("color: red;"))
	assert.False(t, lib.MatchesAny(""))
}

func TestSerialize_RoundTripsResidual(t *testing.T) {
	decls, err := ParseStyle("color: red; margin: 0;")
	require.NoError(t, err)

	out := Serialize(decls)
	assert.Equal(t, "color: red; margin: 0;", out)

	// Serialized residual must parse again for idempotent re-runs.
	again, err := ParseStyle(out)
	require.NoError(t, err)
	assert.Len(t, again, 2)
}

func TestDefaultLibrary_CheckboxAttributePattern(t *testing.T) {
	lib := Default()

	require.Len(t, lib.Attributes, 1)
	p := lib.Attributes[0]
	assert.Equal(t, "input", p.Tag)
	assert.Equal(t, "checkbox", p.Type)
	assert.Equal(t, []string{"aria-label", "title"}, p.Attributes)
	assert.Equal(t, "Checkbox item", p.Label)
}
