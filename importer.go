package wikigraph

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dustin/go-wikigraph/graph"
)

// Stats counts what an import run produced.
type Stats struct {
	Pages       int64
	Articles    int64
	Categories  int64
	Links       int64
	Memberships int64
	Redirects   int64
}

// A PageSource emits pages until io.EOF.  Both Parser and
// IndexedParser qualify.
type PageSource interface {
	Next() (*Page, error)
}

// An Importer drives the whole pipeline: pages pulled from a source,
// grouped into batches, transformed into node and relationship
// records, flushed to the writer.
//
// Parsing runs concurrently with writing through a small bounded
// queue, but batches flush in order and within a batch every node
// upsert lands before any relationship that references it.  Aborting
// mid-run leaves the store valid, just incomplete: all writes are
// idempotent upserts.
type Importer struct {
	Writer    graph.Writer
	BatchSize int
	Log       *slog.Logger

	// Progress, when non-nil, is called after each flushed batch
	// with the running page count.
	Progress func(pages int64)
}

func (imp *Importer) logger() *slog.Logger {
	if imp.Log != nil {
		return imp.Log
	}
	return slog.Default()
}

// Run imports every page the source has to offer.  Returns the stats
// accumulated so far even on error.
func (imp *Importer) Run(ctx context.Context, src PageSource) (Stats, error) {
	if imp.Writer == nil {
		return Stats{}, errors.New("wikigraph: importer needs a writer")
	}
	size := imp.BatchSize
	if size < 1 {
		size = 100
	}

	var st Stats
	batches := make(chan []*Page, 4)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(batches)
		var srcErr error
		var seq iter.Seq[*Page] = func(yield func(*Page) bool) {
			for {
				pg, err := src.Next()
				if err == io.EOF {
					return
				}
				if err != nil {
					srcErr = err
					return
				}
				if !yield(pg) {
					return
				}
			}
		}
		for b := range Batch(seq, size) {
			select {
			case batches <- b:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return srcErr
	})

	g.Go(func() error {
		for b := range batches {
			if err := imp.flush(ctx, b, &st); err != nil {
				return err
			}
			st.Pages += int64(len(b))
			if imp.Progress != nil {
				imp.Progress(st.Pages)
			}
		}
		return nil
	})

	err := g.Wait()
	return st, err
}

// flush transforms one batch of pages and writes it out, nodes first.
func (imp *Importer) flush(ctx context.Context, pages []*Page, st *Stats) error {
	articles := make([]map[string]any, 0, len(pages))
	var cats []map[string]any
	catSeen := map[string]bool{}
	var links, members, redirects []graph.Pair

	for _, pg := range pages {
		n := ToArticleNode(pg)
		if n == nil {
			imp.logger().Debug("skipping page without id or title",
				"id", pg.ID, "title", pg.Title)
			continue
		}
		articles = append(articles, n.Params())

		for _, target := range pg.Links {
			if IsCategoryTitle(target) {
				// membership, not an article link
				continue
			}
			if pr := ToLinksTo(n.ID, target); pr != nil {
				links = append(links, graph.Pair{From: pr.SourceID, To: pr.Target})
			}
		}
		for _, name := range pg.Categories {
			cn := ToCategoryNode(name)
			if cn == nil {
				continue
			}
			if !catSeen[cn.Name] {
				catSeen[cn.Name] = true
				cats = append(cats, cn.Params())
			}
			if pr := ToBelongsTo(n.ID, cn.Name); pr != nil {
				members = append(members, graph.Pair{From: pr.SourceID, To: pr.Target})
			}
		}
		if pr := ToRedirectsTo(n.ID, pg.RedirectTo); pr != nil {
			redirects = append(redirects, graph.Pair{From: pr.SourceID, To: pr.Target})
		}
	}

	if err := imp.Writer.UpsertNodes(ctx, graph.Article, articles); err != nil {
		return err
	}
	if err := imp.Writer.UpsertNodes(ctx, graph.Category, cats); err != nil {
		return err
	}
	if err := imp.Writer.UpsertRelationships(ctx, graph.LinksToSpec, links); err != nil {
		return err
	}
	if err := imp.Writer.UpsertRelationships(ctx, graph.BelongsToSpec, members); err != nil {
		return err
	}
	if err := imp.Writer.UpsertRelationships(ctx, graph.RedirectsToSpec, redirects); err != nil {
		return err
	}

	st.Articles += int64(len(articles))
	st.Categories += int64(len(cats))
	st.Links += int64(len(links))
	st.Memberships += int64(len(members))
	st.Redirects += int64(len(redirects))
	return nil
}
