package wikigraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToArticleNode(t *testing.T) {
	assert.Nil(t, ToArticleNode(nil))
	assert.Nil(t, ToArticleNode(&Page{}))
	assert.Nil(t, ToArticleNode(&Page{Title: "X"}))
	assert.Nil(t, ToArticleNode(&Page{ID: "1"}))

	n := ToArticleNode(&Page{ID: "1", Title: "X"})
	assert.Equal(t, &ArticleNode{
		ID:    int64(1),
		Title: "X",
		URL:   "https://en.wikipedia.org/wiki/X",
	}, n)

	// Non-numeric ids survive unchanged; coercion never fails.
	n = ToArticleNode(&Page{ID: "x42", Title: "X"})
	assert.Equal(t, "x42", n.ID)

	// An explicit URL wins over the derived one.
	n = ToArticleNode(&Page{ID: "2", Title: "X", URL: "https://example.com/X"})
	assert.Equal(t, "https://example.com/X", n.URL)
}

func TestToCategoryNode(t *testing.T) {
	assert.Nil(t, ToCategoryNode(""))
	assert.Equal(t, &CategoryNode{Name: "Plants", Depth: 0}, ToCategoryNode("Plants"))
}

func TestRelationshipTransforms(t *testing.T) {
	for name, f := range map[string]func(any, string) *Pair{
		"links_to":     ToLinksTo,
		"belongs_to":   ToBelongsTo,
		"redirects_to": ToRedirectsTo,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Nil(t, f(nil, "B"))
			assert.Nil(t, f("", "B"))
			assert.Nil(t, f(0, "B"))
			assert.Nil(t, f(int64(0), "B"))
			assert.Nil(t, f(int64(1), ""))
			assert.Equal(t, &Pair{SourceID: int64(1), Target: "B"}, f(int64(1), "B"))
			assert.Equal(t, &Pair{SourceID: "x42", Target: "B"}, f("x42", "B"))
		})
	}
}

func TestNodeParams(t *testing.T) {
	a := &ArticleNode{ID: int64(1), Title: "X", URL: "u"}
	assert.Equal(t, map[string]any{"id": int64(1), "title": "X", "url": "u"}, a.Params())

	c := &CategoryNode{Name: "Plants"}
	assert.Equal(t, map[string]any{"name": "Plants", "depth": 0}, c.Params())
}
