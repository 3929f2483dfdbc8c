package interval

import (
	"fmt"
	"math"
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestEndpointIndex(t *testing.T) {
	endpoints := Endpoints(ivs(5, 17, 20, 25))
	expect.EQ(t, endpoints, []PosType{5, 17, 20, 25})
	for pos, want := range map[PosType]bool{
		0: false, 4: false, 5: true, 16: true, 17: false,
		19: false, 20: true, 24: true, 25: false, 1000: false,
	} {
		expect.EQ(t, NewEndpointIndex(pos, endpoints).Contained(), want, fmt.Sprint("pos ", pos))
	}

	ei := NewEndpointIndex(6, endpoints)
	assert.True(t, ei.Contained())
	expect.EQ(t, ei.Interval(endpoints), Interval{5, 17})
	ei.Update(18, endpoints)
	expect.False(t, ei.Contained())
	ei.Update(21, endpoints)
	assert.True(t, ei.Contained())
	expect.EQ(t, ei.Interval(endpoints), Interval{20, 25})
	ei.Update(30, endpoints)
	expect.True(t, ei.Finished(endpoints))

	// Walking forward from the start agrees with a fresh search.
	var walk EndpointIndex
	for pos := PosType(0); pos < 40; pos++ {
		walk.Update(pos, endpoints)
		expect.EQ(t, walk, NewEndpointIndex(pos, endpoints), fmt.Sprint("pos ", pos))
		expect.EQ(t, ExpsearchPosType(endpoints, pos, 0), SearchPosTypes(endpoints, pos), fmt.Sprint("pos ", pos))
	}
}

func TestParseRegionString(t *testing.T) {
	tests := []struct {
		region  string
		chrName string
		start   PosType
		end     PosType
	}{
		{"chr1:1-1000", "chr1", 0, 1000},
		{"chr1:1,001-2,000", "chr1", 1000, 2000},
		{"chr1:1000", "chr1", 999, 1000},
		{"chr1", "chr1", 0, math.MaxInt32 - 1},
	}
	for _, tt := range tests {
		result, err := ParseRegionString(tt.region)
		expect.NoError(t, err)
		expect.EQ(t, result.ChrName, tt.chrName)
		expect.EQ(t, result.Start, tt.start)
		expect.EQ(t, result.End, tt.end)
	}

	for _, bad := range []string{"", ":1-5", "chr1:0-5", "chr1:10-5", "chr1:x"} {
		_, err := ParseRegionString(bad)
		expect.True(t, err != nil, bad)
	}
}

func TestRegionOverlaps(t *testing.T) {
	r, err := ParseRegionString("chr2:11-20")
	assert.NoError(t, err)
	expect.True(t, r.Overlaps("chr2", Interval{19, 30}))
	expect.False(t, r.Overlaps("chr2", Interval{20, 30}))
	expect.False(t, r.Overlaps("chr1", Interval{10, 20}))
	expect.EQ(t, r.String(), "chr2:11-20")
}
