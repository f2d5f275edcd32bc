package wikigraph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// An IndexEntry is one line of a multistream dump index: the bzip2
// stream offset, the page id, and the page title.
type IndexEntry struct {
	StreamOffset int64
	PageID       int64
	Title        string
}

func (e IndexEntry) String() string {
	return fmt.Sprintf("%v:%v:%v", e.StreamOffset, e.PageID, e.Title)
}

// An IndexReader reads entries from a multistream index.
//
// Offsets in some published index files were truncated to 32 bits.
// The reader assumes offsets were meant to be non-decreasing and
// re-widens them each time they wrap.
type IndexReader struct {
	s          *bufio.Scanner
	base       int64
	prevOffset int64
}

// NewIndexReader gets an index reader over the given stream of index
// lines.
func NewIndexReader(r io.Reader) *IndexReader {
	return &IndexReader{s: bufio.NewScanner(r)}
}

// Next gets the next entry from the index.
func (ir *IndexReader) Next() (IndexEntry, error) {
	if !ir.s.Scan() {
		if err := ir.s.Err(); err != nil {
			return IndexEntry{}, err
		}
		return IndexEntry{}, io.EOF
	}
	parts := strings.SplitN(ir.s.Text(), ":", 3)
	if len(parts) != 3 {
		return IndexEntry{}, fmt.Errorf("malformed index line %q", ir.s.Text())
	}
	offset, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return IndexEntry{}, err
	}
	pageID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return IndexEntry{}, err
	}
	if offset < ir.prevOffset {
		ir.base += 1 << 32
	}
	ir.prevOffset = offset

	return IndexEntry{
		StreamOffset: offset + ir.base,
		PageID:       pageID,
		Title:        parts[2],
	}, nil
}

// An IndexSummaryReader reduces an index to (stream offset, page
// count) runs: where each bzip2 chunk begins and how many pages it
// holds.  That's all the indexed parser needs.
type IndexSummaryReader struct {
	ir         *IndexReader
	prevOffset int64
	count      int
}

// NewIndexSummaryReader gets a summary reader over the given stream
// of index lines.
func NewIndexSummaryReader(r io.Reader) (*IndexSummaryReader, error) {
	isr := &IndexSummaryReader{ir: NewIndexReader(r)}
	first, err := isr.ir.Next()
	if err != nil {
		return nil, err
	}
	isr.prevOffset = first.StreamOffset
	isr.count = 1
	return isr, nil
}

// Next gets the next chunk offset and page count.  The final chunk
// comes back together with io.EOF.
func (isr *IndexSummaryReader) Next() (offset int64, count int, err error) {
	for {
		e, err := isr.ir.Next()
		if err != nil {
			offset, count = isr.prevOffset, isr.count
			isr.prevOffset, isr.count = 0, 0
			return offset, count, err
		}
		if e.StreamOffset != isr.prevOffset {
			offset, count = isr.prevOffset, isr.count
			isr.prevOffset, isr.count = e.StreamOffset, 1
			return offset, count, nil
		}
		isr.count++
	}
}
