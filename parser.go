package wikigraph

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"regexp"
	"strings"
)

// pageElem mirrors the subset of a dump page element we care about.
// Unqualified names here match namespace-qualified dump elements by
// local name, so export-0.10 dumps and bare test documents decode
// identically.  Only the first direct child id is taken; the revision
// id lives a level down and doesn't collide.
type pageElem struct {
	Title    string `xml:"title"`
	ID       string `xml:"id"`
	Redirect struct {
		Title string `xml:"title,attr"`
	} `xml:"redirect"`
	Revision struct {
		Text string `xml:"text"`
	} `xml:"revision"`
}

// Same bounding the original importer used.  A literal "</page>"
// inside page text would mis-bound a fragment; the fragment then
// fails its own parse and is skipped, so the damage is a lost page,
// never a wrong one.
var pageFragRE = regexp.MustCompile(`(?s)<page.*?>.*?</page>`)

// A Parser emits pages from a wikipedia xml dump in a single forward
// pass.
//
// Well-formed dumps stream through encoding/xml one page element at a
// time, so memory stays bounded regardless of dump size.  If the
// document turns out not to be well-formed, the parser degrades to
// fragment recovery: the raw text is re-scanned for <page>...</page>
// substrings and each is parsed as a small standalone document.
// Sources that can Seek are rewound in place for recovery; anything
// else is spill-buffered as it is consumed.
type Parser struct {
	src  io.Reader
	seek io.Seeker
	raw  *bytes.Buffer
	d    *xml.Decoder
	log  *slog.Logger

	seen     map[string]bool
	frags    [][]byte
	fallback bool
	err      error
}

// NewParser gets a dump parser reading from the given reader.
func NewParser(r io.Reader) *Parser {
	p := &Parser{
		log:  slog.Default(),
		seen: map[string]bool{},
	}
	if s, ok := r.(io.ReadSeeker); ok {
		p.src = s
		p.seek = s
	} else {
		p.raw = &bytes.Buffer{}
		p.src = io.TeeReader(r, p.raw)
	}
	p.d = xml.NewDecoder(p.src)
	return p
}

// SetLogger replaces the logger used for skip diagnostics (defaults
// to slog.Default).
func (p *Parser) SetLogger(l *slog.Logger) {
	if l != nil {
		p.log = l
	}
}

// Next gets the next page from the dump.  io.EOF signals a clean end
// of the stream.  Pages missing an id or title are skipped, not
// returned as errors; a malformed document switches Next into
// fragment recovery rather than failing the run.
func (p *Parser) Next() (*Page, error) {
	if p.fallback {
		return p.nextFragment()
	}
	for {
		tok, err := p.d.Token()
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			return p.degrade(err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "page" {
			continue
		}
		var pe pageElem
		if err := p.d.DecodeElement(&pe, &se); err != nil {
			return p.degrade(err)
		}
		if pg := p.pageFrom(pe); pg != nil {
			return pg, nil
		}
	}
}

// degrade decides whether a decoder error is a structural fault worth
// falling back over, or a fatal read error to propagate.
func (p *Parser) degrade(err error) (*Page, error) {
	var syn *xml.SyntaxError
	if !errors.As(err, &syn) {
		return nil, err
	}
	p.log.Error("dump is not well-formed xml, switching to fragment recovery",
		"error", err)
	if ferr := p.beginFragments(); ferr != nil {
		return nil, ferr
	}
	p.fallback = true
	return p.nextFragment()
}

func (p *Parser) beginFragments() error {
	var content []byte
	if p.seek != nil {
		if _, err := p.seek.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("rewinding source for recovery: %w", err)
		}
		b, err := io.ReadAll(p.src)
		if err != nil {
			return fmt.Errorf("rereading source for recovery: %w", err)
		}
		content = b
	} else {
		// Drain whatever the decoder hadn't consumed yet so the
		// spill buffer holds the whole document.
		if _, err := io.Copy(io.Discard, p.src); err != nil {
			return fmt.Errorf("draining source for recovery: %w", err)
		}
		content = p.raw.Bytes()
	}
	p.frags = pageFragRE.FindAll(content, -1)
	return nil
}

func (p *Parser) nextFragment() (*Page, error) {
	for len(p.frags) > 0 {
		frag := p.frags[0]
		p.frags = p.frags[1:]

		var pe pageElem
		if err := xml.Unmarshal(frag, &pe); err != nil {
			p.log.Warn("skipping unparseable page fragment",
				"error", err, "fragment", excerpt(frag, 200))
			continue
		}
		if p.seen[strings.TrimSpace(pe.ID)] {
			continue
		}
		if pg := p.pageFrom(pe); pg != nil {
			return pg, nil
		}
	}
	return nil, io.EOF
}

func (p *Parser) pageFrom(pe pageElem) *Page {
	pg := buildPage(pe, p.log)
	if pg != nil {
		p.seen[pg.ID] = true
	}
	return pg
}

// buildPage converts a decoded page element into a Page, or nil when
// id or title is missing.
func buildPage(pe pageElem, log *slog.Logger) *Page {
	id := strings.TrimSpace(pe.ID)
	title := CleanTitle(pe.Title)
	if id == "" || title == "" {
		log.Debug("skipping page with missing id or title",
			"id", id, "title", title)
		return nil
	}
	return &Page{
		ID:         id,
		Title:      title,
		URL:        URLForTitle(title),
		Links:      FindLinks(pe.Revision.Text, title),
		Categories: FindCategories(pe.Revision.Text),
		RedirectTo: CleanTitle(pe.Redirect.Title),
	}
}

// All iterates the remaining pages of the dump.  Iteration ends at
// the end of the stream or on a fatal read error; check Err
// afterwards, bufio.Scanner style.
func (p *Parser) All() iter.Seq[*Page] {
	return func(yield func(*Page) bool) {
		for {
			pg, err := p.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				p.err = err
				return
			}
			if !yield(pg) {
				return
			}
		}
	}
}

// Err returns the fatal error that ended an All iteration, if any.
func (p *Parser) Err() error {
	return p.err
}

func excerpt(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
