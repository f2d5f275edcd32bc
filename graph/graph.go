// Package graph is the boundary to the graph store.
//
// Writer is the batched-write contract the import pipeline issues its
// operations against; Client implements it over the neo4j bolt
// driver.  All query text lives in a fixed set of parameterized
// templates selected by kind — runtime values are only ever bound as
// parameters, never spliced into labels or property names.
package graph

import "context"

// NodeKind is a node type label in the store.
type NodeKind string

const (
	Article  NodeKind = "Article"
	Category NodeKind = "Category"
)

// RelKind is a relationship type in the store.
type RelKind string

const (
	LinksTo     RelKind = "LINKS_TO"
	BelongsTo   RelKind = "BELONGS_TO"
	RedirectsTo RelKind = "REDIRECTS_TO"
)

// A RelSpec names a relationship kind together with the endpoint
// kinds and the properties endpoints are matched by.  The supported
// specs are fixed; see LinksToSpec and friends.
type RelSpec struct {
	Kind     RelKind
	FromKind NodeKind
	ToKind   NodeKind
	FromKey  string
	ToKey    string
}

var (
	// LinksToSpec merges (:Article)-[:LINKS_TO]->(:Article),
	// source matched by id, target by title.
	LinksToSpec = RelSpec{LinksTo, Article, Article, "id", "title"}

	// BelongsToSpec merges (:Article)-[:BELONGS_TO]->(:Category),
	// article matched by id, category by name.
	BelongsToSpec = RelSpec{BelongsTo, Article, Category, "id", "name"}

	// RedirectsToSpec merges (:Article)-[:REDIRECTS_TO]->(:Article),
	// source matched by id, target by title.
	RedirectsToSpec = RelSpec{RedirectsTo, Article, Article, "id", "title"}
)

// A Pair is one relationship to merge: the value the from-endpoint is
// matched by and the value the to-endpoint is matched by.
type Pair struct {
	From any
	To   any
}

// Writer is the batched-write contract the pipeline issues against
// the store.
//
// Both upsert verbs are no-ops for empty batches and idempotent for
// repeated ones.  Relationship pairs whose endpoints match no node
// silently yield nothing.  Store faults other than uniqueness
// violations propagate to the caller; retry is the caller's business.
type Writer interface {
	// EnsureSchema creates the uniqueness constraints and lookup
	// indexes if not already present.  Safe to call on every run.
	EnsureSchema(ctx context.Context) error

	// UpsertNodes merges one node per record under the kind's
	// label.  Records must share a property shape including the
	// kind's key property.
	UpsertNodes(ctx context.Context, kind NodeKind, records []map[string]any) error

	// UpsertRelationships merges one relationship per pair
	// according to the given spec.
	UpsertRelationships(ctx context.Context, spec RelSpec, pairs []Pair) error
}
