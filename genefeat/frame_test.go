package genefeat

import (
	"testing"

	"github.com/grailbio/genefeat/interval"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func ivs(pairs ...interval.PosType) []interval.Interval {
	out := make([]interval.Interval, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, interval.Interval{Start: pairs[i], End: pairs[i+1]})
	}
	return out
}

func TestCorrectFrame(t *testing.T) {
	tests := []struct {
		name   string
		cds    []interval.Interval
		strand byte
		want   []interval.Interval
	}{
		{"plus", ivs(0, 10), '+', ivs(0, 9)},
		{"minus", ivs(0, 10), '-', ivs(1, 10)},
		{"in frame", ivs(2, 10, 20, 27), '+', ivs(2, 10, 20, 27)},
		{"empty", nil, '+', nil},
		{"plus overhang 2", ivs(0, 4, 10, 14), '+', ivs(0, 4, 10, 12)},
		{"minus overhang 2", ivs(0, 4, 10, 14), '-', ivs(2, 4, 10, 14)},
		// Append order, not genomic order, picks the trimmed interval.
		{"plus unsorted", ivs(10, 14, 0, 4), '+', ivs(10, 14, 0, 2)},
		{"minus unsorted", ivs(10, 14, 0, 4), '-', ivs(12, 14, 0, 4)},
		// Unknown strands are treated like '-'.
		{"unstranded", ivs(0, 10), '.', ivs(1, 10)},
	}
	for _, tt := range tests {
		got, err := CorrectFrame(tt.cds, tt.strand)
		assert.NoError(t, err, tt.name)
		expect.EQ(t, got, tt.want, tt.name)
		expect.EQ(t, interval.TotalLen(got)%3, 0, tt.name)
	}
}

func TestCorrectFrameDoesNotModifyInput(t *testing.T) {
	cds := ivs(0, 10)
	_, err := CorrectFrame(cds, '+')
	assert.NoError(t, err)
	expect.EQ(t, cds, ivs(0, 10))
}

func TestCorrectFrameDegenerate(t *testing.T) {
	// The last interval is a single base but the overhang is two.
	_, err := CorrectFrame(ivs(0, 4, 10, 11), '+')
	expect.EQ(t, errKind(err), DegenerateInput)
	// On the minus strand the first interval is trimmed from its start.
	_, err = CorrectFrame(ivs(0, 1, 10, 11), '-')
	expect.EQ(t, errKind(err), DegenerateInput)
	// A first interval longer than the overhang survives the trim.
	got, err := CorrectFrame(ivs(0, 2, 10, 15), '-')
	assert.NoError(t, err)
	expect.EQ(t, got, ivs(1, 2, 10, 15))
	_, err = CorrectFrame(ivs(0, 1), '+')
	expect.EQ(t, errKind(err), DegenerateInput)
}
