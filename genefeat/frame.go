package genefeat

import (
	"fmt"

	"github.com/grailbio/genefeat/interval"
)

// CorrectFrame trims cds so that its total length is a multiple of three.
// The overhang (total length mod 3) is removed from the end of the last
// interval on the '+' strand, and from the start of the first interval on any
// other strand.  The input slice is not modified.
//
// "First" and "last" refer to the order the intervals were read in, not to
// genomic order: the correction runs on the raw list, before the CDS is
// merged.  Output of annotation files that list CDS segments out of genomic
// order depends on this, so it must stay that way.
//
// It returns a DegenerateInput error if the trimmed interval would become
// empty.
func CorrectFrame(cds []interval.Interval, strand byte) ([]interval.Interval, error) {
	overhang := interval.PosType(interval.TotalLen(cds) % 3)
	if overhang == 0 {
		return cds, nil
	}
	out := append([]interval.Interval(nil), cds...)
	idx := 0
	if strand == '+' {
		idx = len(out) - 1
		out[idx].End -= overhang
	} else {
		out[idx].Start += overhang
	}
	if out[idx].End <= out[idx].Start {
		return nil, &Error{
			Kind: DegenerateInput,
			Msg: fmt.Sprintf("trimming %d base(s) from terminal CDS interval %v leaves nothing",
				overhang, cds[idx]),
		}
	}
	return out, nil
}
