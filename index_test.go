package wikigraph

import (
	"io"
	"strings"
	"testing"
)

const indexData = `499:10:AccessibleComputing
499:12:Anarchism
499:13:AfghanistanHistory
499:14:AfghanistanGeography
499:15:AfghanistanPeople
2147418907:2638569:William Earl Brown
2147418907:2638570:Lebuhraya Persekutuan
-2147469295:2638585:Philadelphia Bulletin
-2147469295:2638588:Zrínyi Miklós
`

const lastChunkOffset = 2147498001

func TestIndexReader(t *testing.T) {
	ir := NewIndexReader(strings.NewReader(indexData))

	e, err := ir.Next()
	if err != nil {
		t.Fatalf("error parsing first entry: %v", err)
	}
	if e.String() != "499:10:AccessibleComputing" {
		t.Errorf("error stringing first entry, got %v", e)
	}
	if e.PageID != 10 {
		t.Errorf("expected page id 10, got %v", e.PageID)
	}

	for {
		var tmp IndexEntry
		tmp, err = ir.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("error reading stream: %v", err)
		}
		e = tmp
	}
	if e.StreamOffset != lastChunkOffset {
		t.Fatalf("expected %v, got %v for the last chunk offset",
			int64(lastChunkOffset), e.StreamOffset)
	}
}

func TestIndexReaderMalformed(t *testing.T) {
	ir := NewIndexReader(strings.NewReader("no colons here\n"))
	if _, err := ir.Next(); err == nil {
		t.Fatalf("expected an error on a malformed line")
	}

	ir = NewIndexReader(strings.NewReader("x:10:Title\n"))
	if _, err := ir.Next(); err == nil {
		t.Fatalf("expected an error on a non-numeric offset")
	}
}

func TestIndexSummaryReader(t *testing.T) {
	isr, err := NewIndexSummaryReader(strings.NewReader(indexData))
	if err != nil {
		t.Fatalf("error creating summary reader: %v", err)
	}

	type chunk struct {
		offset int64
		count  int
	}
	var got []chunk
	for {
		offset, count, err := isr.Next()
		got = append(got, chunk{offset, count})
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("error reading summary: %v", err)
		}
	}

	want := []chunk{
		{499, 5},
		{2147418907, 2},
		{lastChunkOffset, 2},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %v chunks, got %v: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chunk %v: expected %v, got %v", i, want[i], got[i])
		}
	}
}
