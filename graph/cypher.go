package graph

import "fmt"

// The whole query surface.  Labels, relationship types and match
// properties are literal in these templates; everything per-record
// arrives through $nodes / $pairs.

var nodeQueries = map[NodeKind]string{
	Article: `UNWIND $nodes AS node
MERGE (a:Article {id: node.id})
SET a.title = node.title, a.url = node.url`,

	Category: `UNWIND $nodes AS node
MERGE (c:Category {name: node.name})
ON CREATE SET c.depth = node.depth`,
}

var relQueries = map[RelKind]string{
	LinksTo: `UNWIND $pairs AS pair
MATCH (a:Article {id: pair.from})
MATCH (b:Article {title: pair.to})
MERGE (a)-[:LINKS_TO]->(b)`,

	BelongsTo: `UNWIND $pairs AS pair
MATCH (a:Article {id: pair.from})
MATCH (c:Category {name: pair.to})
MERGE (a)-[:BELONGS_TO]->(c)`,

	RedirectsTo: `UNWIND $pairs AS pair
MATCH (a:Article {id: pair.from})
MATCH (b:Article {title: pair.to})
MERGE (a)-[:REDIRECTS_TO]->(b)`,
}

// relSpecs is the whitelist UpsertRelationships validates against, so
// a hand-built RelSpec can't smuggle in unexpected matching.
var relSpecs = map[RelKind]RelSpec{
	LinksTo:     LinksToSpec,
	BelongsTo:   BelongsToSpec,
	RedirectsTo: RedirectsToSpec,
}

var schemaQueries = []string{
	"CREATE CONSTRAINT IF NOT EXISTS FOR (a:Article) REQUIRE a.id IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (c:Category) REQUIRE c.name IS UNIQUE",
	"CREATE INDEX IF NOT EXISTS FOR (a:Article) ON (a.title)",
	"CREATE INDEX IF NOT EXISTS FOR (c:Category) ON (c.name)",
}

func nodeQuery(kind NodeKind) (string, error) {
	q, ok := nodeQueries[kind]
	if !ok {
		return "", fmt.Errorf("unknown node kind %q", kind)
	}
	return q, nil
}

func relQuery(spec RelSpec) (string, error) {
	known, ok := relSpecs[spec.Kind]
	if !ok {
		return "", fmt.Errorf("unknown relationship kind %q", spec.Kind)
	}
	if spec != known {
		return "", fmt.Errorf("unsupported endpoint spec for %q: %+v", spec.Kind, spec)
	}
	return relQueries[spec.Kind], nil
}

func pairParams(pairs []Pair) []map[string]any {
	rv := make([]map[string]any, 0, len(pairs))
	for _, p := range pairs {
		rv = append(rv, map[string]any{"from": p.From, "to": p.To})
	}
	return rv
}
