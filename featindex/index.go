// Package featindex answers point and range queries against resolved
// transcripts: which transcripts cover a position, and whether the position
// is coding, exonic, or intronic in each of them.
package featindex

import (
	"fmt"
	"sort"

	store "github.com/biogo/store/interval"
	"github.com/grailbio/base/log"
	"github.com/grailbio/genefeat/genefeat"
	"github.com/grailbio/genefeat/interval"
)

// Class is the region a position falls into within one transcript.
type Class int

const (
	// Span means the position is inside the transcript's span but in none of
	// its resolved interval sets.
	Span Class = iota
	Intron
	Exon
	CDS
)

func (c Class) String() string {
	switch c {
	case Span:
		return "span"
	case Intron:
		return "intron"
	case Exon:
		return "exon"
	case CDS:
		return "CDS"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// Hit is one transcript covering a queried position.
type Hit struct {
	Transcript *genefeat.Transcript
	Class      Class
	// Region is the interval of class Class containing the position; for Span
	// it is the transcript span.
	Region interval.Interval
}

// entry is a transcript span stored in the tree.  ID is the transcript's
// position in the input, which is also the order results are reported in.
type entry struct {
	span interval.Interval
	id   uintptr
	t    *genefeat.Transcript
	// Endpoint sequences of the transcript's sets.
	cds, exons, introns []interval.PosType
}

func (e *entry) Overlap(b store.IntRange) bool {
	return int(e.span.End) > b.Start && int(e.span.Start) < b.End
}
func (e *entry) ID() uintptr { return e.id }
func (e *entry) Range() store.IntRange {
	return store.IntRange{Start: int(e.span.Start), End: int(e.span.End)}
}

// cursor classifies increasing positions against one entry.
type cursor struct {
	e                   *entry
	started             bool
	cds, exons, introns interval.EndpointIndex
}

func (c *cursor) seek(pos interval.PosType) {
	e := c.e
	if !c.started {
		c.cds = interval.NewEndpointIndex(pos, e.cds)
		c.exons = interval.NewEndpointIndex(pos, e.exons)
		c.introns = interval.NewEndpointIndex(pos, e.introns)
		c.started = true
		return
	}
	c.cds.Update(pos, e.cds)
	c.exons.Update(pos, e.exons)
	c.introns.Update(pos, e.introns)
}

// finished reports whether the last position sought is past every interval
// of the entry, and so past its span.
func (c *cursor) finished() bool {
	e := c.e
	return c.cds.Finished(e.cds) && c.exons.Finished(e.exons) && c.introns.Finished(e.introns)
}

func (c *cursor) hit() Hit {
	e := c.e
	switch {
	case c.cds.Contained():
		return Hit{Transcript: e.t, Class: CDS, Region: c.cds.Interval(e.cds)}
	case c.exons.Contained():
		return Hit{Transcript: e.t, Class: Exon, Region: c.exons.Interval(e.exons)}
	case c.introns.Contained():
		return Hit{Transcript: e.t, Class: Intron, Region: c.introns.Interval(e.introns)}
	}
	return Hit{Transcript: e.t, Class: Span, Region: e.span}
}

// query is a half-open range used to search the tree.
type query interval.Interval

func (q query) Overlap(b store.IntRange) bool {
	return int(q.End) > b.Start && int(q.Start) < b.End
}

// Index is an overlap index over a set of transcripts.  It is immutable once
// built and safe for concurrent queries.
type Index struct {
	trees map[string]*store.IntTree
	n     int
}

// New builds an index over ts.  The transcripts are referenced, not copied.
// Transcripts without any interval cover no position and are left out.
func New(ts []genefeat.Transcript) (*Index, error) {
	x := &Index{trees: map[string]*store.IntTree{}}
	for i := range ts {
		t := &ts[i]
		span, ok := t.Span()
		if !ok {
			log.Debug.Printf("featindex: %s has no intervals, not indexed", t.Name)
			continue
		}
		tree := x.trees[t.Chrom]
		if tree == nil {
			tree = &store.IntTree{}
			x.trees[t.Chrom] = tree
		}
		e := &entry{
			span:    span,
			id:      uintptr(i),
			t:       t,
			cds:     interval.Endpoints(t.CDS),
			exons:   interval.Endpoints(t.Exons),
			introns: interval.Endpoints(t.Introns),
		}
		if err := tree.Insert(e, true); err != nil {
			return nil, fmt.Errorf("featindex.New: %s %v: %v", t.Name, span, err)
		}
		x.n++
	}
	for _, tree := range x.trees {
		tree.AdjustRanges()
	}
	log.Debug.Printf("featindex: indexed %d transcripts on %d chromosomes", x.n, len(x.trees))
	return x, nil
}

// Len returns the number of indexed transcripts.
func (x *Index) Len() int { return x.n }

func (x *Index) get(chrom string, q query) []*entry {
	tree := x.trees[chrom]
	if tree == nil {
		return nil
	}
	found := tree.Get(q)
	es := make([]*entry, len(found))
	for i, f := range found {
		es[i] = f.(*entry)
	}
	sort.Slice(es, func(i, j int) bool { return es[i].id < es[j].id })
	return es
}

// Locate returns every transcript on chrom whose span contains the 0-based
// position pos, in input order, with the class of pos in each.
func (x *Index) Locate(chrom string, pos interval.PosType) []Hit {
	return x.LocateSorted(chrom, []interval.PosType{pos})[0]
}

// LocateSorted is Locate for a batch of positions on one chromosome.  The
// positions must be in nondecreasing order; result i holds the hits for
// positions[i].  The tree is searched once, and each transcript's interval
// sets are then walked forward instead of searched per position.
func (x *Index) LocateSorted(chrom string, positions []interval.PosType) [][]Hit {
	hits := make([][]Hit, len(positions))
	if len(positions) == 0 {
		return hits
	}
	for i := 1; i < len(positions); i++ {
		if positions[i] < positions[i-1] {
			log.Panicf("featindex.LocateSorted: position %d at %d follows %d", positions[i], i, positions[i-1])
		}
	}
	es := x.get(chrom, query{Start: positions[0], End: positions[len(positions)-1] + 1})
	active := make([]cursor, len(es))
	for i, e := range es {
		active[i].e = e
	}
	for i, pos := range positions {
		n := 0
		for _, c := range active {
			if pos < c.e.span.Start {
				active[n] = c
				n++
				continue
			}
			c.seek(pos)
			if c.finished() {
				// Later positions are no smaller.
				continue
			}
			hits[i] = append(hits[i], c.hit())
			active[n] = c
			n++
		}
		active = active[:n]
	}
	return hits
}

// Overlapping returns the transcripts on chrom whose span overlaps iv, in
// input order.
func (x *Index) Overlapping(chrom string, iv interval.Interval) []*genefeat.Transcript {
	es := x.get(chrom, query(iv))
	if len(es) == 0 {
		return nil
	}
	ts := make([]*genefeat.Transcript, len(es))
	for i, e := range es {
		ts[i] = e.t
	}
	return ts
}
