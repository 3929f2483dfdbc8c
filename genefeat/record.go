package genefeat

import (
	"fmt"
	"io"

	"github.com/grailbio/genefeat/interval"
)

// FeatureKind identifies which interval list of a group a record belongs to.
type FeatureKind uint8

const (
	// Exon records contribute to the exon set.
	Exon FeatureKind = iota + 1
	// CDS records (including start and stop codons) contribute to the coding
	// set.
	CDS
	// Intron records contribute to the explicit intron set.
	Intron
)

func (k FeatureKind) String() string {
	switch k {
	case Exon:
		return "exon"
	case CDS:
		return "CDS"
	case Intron:
		return "intron"
	}
	return fmt.Sprintf("FeatureKind(%d)", int(k))
}

// Record is one normalized annotation record.  The interval is 0-based and
// half-open.
type Record struct {
	// Key identifies the group (transcript or gene) the record belongs to.
	Key    string
	Chrom  string
	Strand byte
	Kind   FeatureKind
	interval.Interval
}

// Source is an ordered stream of records.  Read returns io.EOF after the last
// record.
type Source interface {
	Read() (Record, error)
}

// SliceSource is a Source reading from an in-memory slice.
type SliceSource struct {
	Records []Record
	next    int
}

// Read implements Source.
func (s *SliceSource) Read() (Record, error) {
	if s.next >= len(s.Records) {
		return Record{}, io.EOF
	}
	rec := s.Records[s.next]
	s.next++
	return rec, nil
}

// Group accumulates the raw intervals of one transcript in the order they
// were read.  Chrom and Strand are taken from the first record of the group.
type Group struct {
	Key     string
	Chrom   string
	Strand  byte
	Exons   []interval.Interval
	CDS     []interval.Interval
	Introns []interval.Interval
}

// Transcript is a finalized group.  Every interval list is in canonical form
// (sorted, disjoint, nontouching).  Which lists are populated depends on the
// Mode it was resolved with.
type Transcript struct {
	Name    string
	Chrom   string
	Strand  byte
	Exons   []interval.Interval
	CDS     []interval.Interval
	Introns []interval.Interval
}

// Span returns the smallest interval containing every exon, CDS, and intron
// interval of the transcript, or false if they are all empty.
func (t *Transcript) Span() (interval.Interval, bool) {
	var all []interval.Interval
	all = append(all, t.Exons...)
	all = append(all, t.CDS...)
	all = append(all, t.Introns...)
	s, err := interval.Span(all)
	return s, err == nil
}
