package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeQueries(t *testing.T) {
	for _, kind := range []NodeKind{Article, Category} {
		q, err := nodeQuery(kind)
		require.NoError(t, err)
		assert.Contains(t, q, "$nodes")
		assert.Contains(t, q, "MERGE")
		assert.Contains(t, q, string(kind))
	}

	_, err := nodeQuery(NodeKind("Bogus"))
	require.Error(t, err)
}

func TestRelQueries(t *testing.T) {
	for _, spec := range []RelSpec{LinksToSpec, BelongsToSpec, RedirectsToSpec} {
		q, err := relQuery(spec)
		require.NoError(t, err)
		assert.Contains(t, q, "$pairs")
		assert.Contains(t, q, string(spec.Kind))
		assert.Contains(t, q, "pair.from")
		assert.Contains(t, q, "pair.to")
	}
}

func TestRelQueryRejectsTamperedSpec(t *testing.T) {
	// The templates are fixed; a spec asking for different endpoint
	// matching must not silently get the stock query.
	spec := LinksToSpec
	spec.ToKey = "url"
	_, err := relQuery(spec)
	require.Error(t, err)

	_, err = relQuery(RelSpec{Kind: RelKind("KNOWS")})
	require.Error(t, err)
}

func TestQueriesAreParameterized(t *testing.T) {
	all := make([]string, 0, len(nodeQueries)+len(relQueries)+len(schemaQueries))
	for _, q := range nodeQueries {
		all = append(all, q)
	}
	for _, q := range relQueries {
		all = append(all, q)
	}
	all = append(all, schemaQueries...)

	for _, q := range all {
		// No printf-style holes waiting for interpolation.
		assert.NotContains(t, q, "%s")
		assert.NotContains(t, q, "%v")
	}
}

func TestPairParams(t *testing.T) {
	got := pairParams([]Pair{{From: int64(1), To: "B"}, {From: "x", To: "C"}})
	require.Len(t, got, 2)
	assert.Equal(t, map[string]any{"from": int64(1), "to": "B"}, got[0])
	assert.Equal(t, map[string]any{"from": "x", "to": "C"}, got[1])
}

func TestSchemaQueriesIdempotent(t *testing.T) {
	require.NotEmpty(t, schemaQueries)
	for _, q := range schemaQueries {
		assert.True(t, strings.Contains(q, "IF NOT EXISTS"),
			"schema statement must be create-if-absent: %s", q)
	}
}
