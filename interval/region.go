package interval

import (
	"fmt"
	"strconv"
	"strings"
)

// Region is an interval on a named chromosome, with 0-based coordinates.
type Region struct {
	ChrName string
	Interval
}

// ParseRegionString parses a region string of one of the forms
//   [contig ID]:[1-based first pos]-[last pos]
//   [contig ID]:[1-based pos]
//   [contig ID]
// returning a contig ID and 0-based interval boundaries.  The interval
// [0, PosTypeMax - 1) is returned if there is no positional restriction.
func ParseRegionString(region string) (result Region, err error) {
	if len(region) == 0 {
		err = fmt.Errorf("interval.ParseRegionString: empty region string")
		return
	}
	colonPos := strings.IndexByte(region, ':')
	if colonPos == -1 {
		result.ChrName = region
		result.Start = 0
		result.End = PosTypeMax - 1
		return
	}
	if colonPos == 0 {
		err = fmt.Errorf("interval.ParseRegionString: empty contig ID")
		return
	}
	result.ChrName = region[0:colonPos]
	rangeStr := strings.Replace(region[colonPos+1:], ",", "", -1)
	dashPos := strings.IndexByte(rangeStr, '-')
	if dashPos == -1 {
		var pos1 int64
		if pos1, err = strconv.ParseInt(rangeStr, 10, 32); err != nil {
			return
		}
		if pos1 <= 0 {
			err = fmt.Errorf("interval.ParseRegionString: position %v in region string out of range", rangeStr)
			return
		}
		result.Start = PosType(pos1 - 1)
		result.End = PosType(pos1)
		return
	}
	start1Str := rangeStr[:dashPos]
	endStr := rangeStr[dashPos+1:]
	var start1 int
	if start1, err = strconv.Atoi(start1Str); err != nil {
		return
	}
	if start1 <= 0 {
		err = fmt.Errorf("interval.ParseRegionString: position %v in region string out of range", start1Str)
		return
	}
	var end0 int
	if end0, err = strconv.Atoi(endStr); err != nil {
		return
	}
	// A one-base region "chr1:5-5" is legal, so end0 == start1 is allowed.
	if end0 < start1 || end0 >= PosTypeMax {
		err = fmt.Errorf("interval.ParseRegionString: invalid range string %v", rangeStr)
		return
	}
	result.Start = PosType(start1 - 1)
	result.End = PosType(end0)
	return
}

// Overlaps returns whether the region shares a position with iv on chrName.
func (r Region) Overlaps(chrName string, iv Interval) bool {
	return r.ChrName == chrName && r.Interval.Overlaps(iv)
}

func (r Region) String() string {
	return fmt.Sprintf("%s:%d-%d", r.ChrName, r.Start+1, r.End)
}
