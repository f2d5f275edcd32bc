package wikigraph

import (
	"compress/bzip2"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"
)

type streamChunk struct {
	offset int64
	count  int
}

// An IndexedParser reads a bzip2 multistream dump together with its
// index, decoding several chunks concurrently.  Pages come out in
// chunk-completion order, not document order; use Parser when order
// matters.
type IndexedParser struct {
	pages chan *Page
	g     *errgroup.Group
	log   *slog.Logger
}

// NewIndexedParser gets a parser over the given multistream index and
// data files, decoding chunks on the given number of goroutines.
func NewIndexedParser(ctx context.Context, indexfn, datafn string, workers int) (*IndexedParser, error) {
	if workers < 1 {
		workers = 1
	}
	idx, err := os.Open(indexfn)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}
	isr, err := NewIndexSummaryReader(bzip2.NewReader(idx))
	if err != nil {
		idx.Close()
		return nil, fmt.Errorf("reading index: %w", err)
	}

	p := &IndexedParser{
		pages: make(chan *Page, 1000),
		log:   slog.Default(),
	}
	chunks := make(chan streamChunk, 1000)

	g, ctx := errgroup.WithContext(ctx)
	p.g = g

	g.Go(func() error {
		defer close(chunks)
		defer idx.Close()
		for {
			offset, count, err := isr.Next()
			select {
			case chunks <- streamChunk{offset, count}:
			case <-ctx.Done():
				return ctx.Err()
			}
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("reading index: %w", err)
			}
		}
	})

	workersDone := make(chan struct{})
	var wg errgroup.Group
	for i := 0; i < workers; i++ {
		wg.Go(func() error { return p.decodeChunks(ctx, datafn, chunks) })
	}
	g.Go(func() error {
		defer close(workersDone)
		return wg.Wait()
	})
	go func() {
		<-workersDone
		close(p.pages)
	}()

	return p, nil
}

// SetLogger replaces the logger used for skip diagnostics (defaults
// to slog.Default).
func (p *IndexedParser) SetLogger(l *slog.Logger) {
	if l != nil {
		p.log = l
	}
}

func (p *IndexedParser) decodeChunks(ctx context.Context, datafn string, chunks <-chan streamChunk) error {
	f, err := os.Open(datafn)
	if err != nil {
		return fmt.Errorf("opening dump: %w", err)
	}
	defer f.Close()

	for chunk := range chunks {
		if _, err := f.Seek(chunk.offset, io.SeekStart); err != nil {
			return fmt.Errorf("seeking to chunk at %d: %w", chunk.offset, err)
		}
		d := xml.NewDecoder(bzip2.NewReader(f))
		for i := 0; i < chunk.count; i++ {
			var pe pageElem
			err := d.Decode(&pe)
			if err == io.EOF {
				break
			}
			if err != nil {
				p.log.Warn("skipping undecodable page in chunk",
					"offset", chunk.offset, "error", err)
				continue
			}
			pg := buildPage(pe, p.log)
			if pg == nil {
				continue
			}
			select {
			case p.pages <- pg:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}

// Next gets the next page.  io.EOF signals that all chunks have been
// decoded; any worker failure surfaces here instead.
func (p *IndexedParser) Next() (*Page, error) {
	pg, ok := <-p.pages
	if !ok {
		if err := p.g.Wait(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	return pg, nil
}
