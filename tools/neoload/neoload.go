// Load a wikipedia dump into neo4j.
package main

import (
	"compress/bzip2"
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dustin/go-wikigraph"
	"github.com/dustin/go-wikigraph/graph"
)

var (
	batchSize  = flag.Int("batch", 100, "pages per write batch")
	configFile = flag.String("config", "", "optional yaml config file")
	indexFile  = flag.String("index", "", "multistream index file (enables parallel decode)")
	workers    = flag.Int("workers", runtime.GOMAXPROCS(0), "decode workers with -index")
	reportFreq = flag.Int64("report", 1000, "log progress every this many pages")
)

func openDump(path string) (io.Reader, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	if strings.HasSuffix(path, ".bz2") {
		return bzip2.NewReader(f), f.Close, nil
	}
	return f, f.Close, nil
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		slog.Error("usage: neoload [flags] dumpfile")
		os.Exit(64)
	}
	dumpfn := flag.Arg(0)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := graph.LoadConfig(*configFile)
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	client, err := graph.NewClient(ctx, cfg)
	if err != nil {
		slog.Error("connecting to graph store", "error", err)
		os.Exit(1)
	}
	defer client.Close(context.Background())

	if err := client.EnsureSchema(ctx); err != nil {
		slog.Error("ensuring schema", "error", err)
		os.Exit(1)
	}

	var src wikigraph.PageSource
	if *indexFile != "" {
		p, err := wikigraph.NewIndexedParser(ctx, *indexFile, dumpfn, *workers)
		if err != nil {
			slog.Error("opening multistream dump", "error", err)
			os.Exit(1)
		}
		src = p
	} else {
		r, closer, err := openDump(dumpfn)
		if err != nil {
			slog.Error("opening dump", "error", err)
			os.Exit(1)
		}
		defer closer()
		src = wikigraph.NewParser(r)
	}

	start := time.Now()
	prev := start
	imp := &wikigraph.Importer{
		Writer:    client,
		BatchSize: *batchSize,
		Progress: func(pages int64) {
			if pages%*reportFreq != 0 {
				return
			}
			now := time.Now()
			slog.Info("progress",
				"pages", humanize.Comma(pages),
				"rate", float64(*reportFreq)/now.Sub(prev).Seconds())
			prev = now
		},
	}

	st, err := imp.Run(ctx, src)
	if err != nil {
		slog.Error("import failed", "error", err, "pages", humanize.Comma(st.Pages))
		os.Exit(1)
	}
	slog.Info("import complete",
		"elapsed", time.Since(start),
		"pages", humanize.Comma(st.Pages),
		"articles", humanize.Comma(st.Articles),
		"categories", humanize.Comma(st.Categories),
		"links", humanize.Comma(st.Links),
		"memberships", humanize.Comma(st.Memberships),
		"redirects", humanize.Comma(st.Redirects))
}
