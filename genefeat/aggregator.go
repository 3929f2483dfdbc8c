package genefeat

import (
	"fmt"

	"github.com/grailbio/genefeat/interval"
)

// Aggregator groups records by key.  Groups are kept in the order their keys
// were first seen, independent of map iteration order.
//
// An Aggregator is not safe for concurrent use.
type Aggregator struct {
	mode   Mode
	maxPos interval.PosType
	strict bool

	groups map[string]*Group
	// order lists group keys in first-seen order.
	order []string
	nRead int
}

// NewAggregator returns an empty Aggregator.  Records of kinds that mode
// doesn't use are ignored.
func NewAggregator(mode Mode, maxPos interval.PosType, strict bool) *Aggregator {
	return &Aggregator{
		mode:   mode,
		maxPos: maxPos,
		strict: strict,
		groups: make(map[string]*Group),
	}
}

// Add appends rec's interval to its group, creating the group if rec.Key
// hasn't been seen before.
//
// An out-of-bounds or empty interval is rejected, and so is (when strict) a
// record that disagrees with its group's chromosome or strand.  Nothing is
// added in either case.
func (a *Aggregator) Add(rec Record) error {
	if !a.mode.accepts(rec.Kind) {
		return nil
	}
	if err := interval.Check(rec.Interval, a.maxPos); err != nil {
		return groupError(rec.Key, err)
	}
	g, ok := a.groups[rec.Key]
	if !ok {
		g = &Group{Key: rec.Key, Chrom: rec.Chrom, Strand: rec.Strand}
		a.groups[rec.Key] = g
		a.order = append(a.order, rec.Key)
	} else if a.strict && (g.Chrom != rec.Chrom || g.Strand != rec.Strand) {
		return &Error{
			Kind:  InconsistentGroup,
			Group: rec.Key,
			Msg: fmt.Sprintf("record on %s%c, group started on %s%c",
				rec.Chrom, rec.Strand, g.Chrom, g.Strand),
		}
	}
	switch rec.Kind {
	case Exon:
		g.Exons = append(g.Exons, rec.Interval)
	case CDS:
		g.CDS = append(g.CDS, rec.Interval)
	case Intron:
		g.Introns = append(g.Introns, rec.Interval)
	}
	a.nRead++
	return nil
}

// Len returns the number of groups.
func (a *Aggregator) Len() int {
	return len(a.order)
}

// NumRecords returns the number of records added to some group.
func (a *Aggregator) NumRecords() int {
	return a.nRead
}

// Groups returns the groups in first-seen order.
func (a *Aggregator) Groups() []*Group {
	groups := make([]*Group, len(a.order))
	for i, key := range a.order {
		groups[i] = a.groups[key]
	}
	return groups
}
