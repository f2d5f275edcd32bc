package wikigraph

import "strconv"

// An ArticleNode is one article destined for the graph store.
type ArticleNode struct {
	// ID is int64 when the dump id was numeric, otherwise the
	// original string unchanged.
	ID    any
	Title string
	URL   string
}

// Params flattens the node into the property map the batch writer
// sends.
func (n *ArticleNode) Params() map[string]any {
	return map[string]any{"id": n.ID, "title": n.Title, "url": n.URL}
}

// A CategoryNode is one category destined for the graph store.
type CategoryNode struct {
	Name  string
	Depth int
}

// Params flattens the node into the property map the batch writer
// sends.
func (n *CategoryNode) Params() map[string]any {
	return map[string]any{"name": n.Name, "depth": n.Depth}
}

// A Pair is one relationship endpoint pair: a source article id and a
// target title (or category name).  Targets are matched by
// title/name at write time; a target with no node yields no
// relationship.
type Pair struct {
	SourceID any
	Target   string
}

// coerceID turns integer-like dump ids into int64 and leaves
// everything else untouched.  Never fails.
func coerceID(id string) any {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return n
	}
	return id
}

func emptyID(id any) bool {
	switch v := id.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case int:
		return v == 0
	case int64:
		return v == 0
	}
	return false
}

// ToArticleNode builds an article node from a page.  Returns nil when
// the page lacks an id or title; that's a filtered-out input, not an
// error.
func ToArticleNode(p *Page) *ArticleNode {
	if p == nil || p.ID == "" || p.Title == "" {
		return nil
	}
	url := p.URL
	if url == "" {
		url = URLForTitle(p.Title)
	}
	return &ArticleNode{ID: coerceID(p.ID), Title: p.Title, URL: url}
}

// ToCategoryNode builds a category node for the given name.  Returns
// nil for an empty name.  Depth starts at 0.
func ToCategoryNode(name string) *CategoryNode {
	if name == "" {
		return nil
	}
	return &CategoryNode{Name: name}
}

// ToLinksTo builds a LINKS_TO endpoint pair.  Returns nil unless both
// endpoints are non-empty.
func ToLinksTo(sourceID any, targetTitle string) *Pair {
	return toPair(sourceID, targetTitle)
}

// ToBelongsTo builds a BELONGS_TO endpoint pair.  Returns nil unless
// both endpoints are non-empty.
func ToBelongsTo(articleID any, categoryTitle string) *Pair {
	return toPair(articleID, categoryTitle)
}

// ToRedirectsTo builds a REDIRECTS_TO endpoint pair.  Returns nil
// unless both endpoints are non-empty.
func ToRedirectsTo(sourceID any, targetTitle string) *Pair {
	return toPair(sourceID, targetTitle)
}

func toPair(id any, target string) *Pair {
	if emptyID(id) || target == "" {
		return nil
	}
	return &Pair{SourceID: id, Target: target}
}
