package interval

import (
	"sort"
)

// This file includes support datatypes and functions for representing a
// canonical interval list (as returned by Union and friends) as an []PosType
// containing the sorted sequence of interval endpoints, and answering
// membership queries against it.
//
// For example, the intervals
//   [5, 17)
//   [20, 25)
// are represented by the endpoint sequence
//   {5, 17, 20, 25}.
// Position p is inside the set iff SearchPosTypes(endpoints, p+1) is odd.

// Endpoints flattens a canonical interval list into its endpoint sequence.
// The input must be sorted and disjoint, as Union returns it.
func Endpoints(ivs []Interval) []PosType {
	endpoints := make([]PosType, 0, 2*len(ivs))
	for _, iv := range ivs {
		endpoints = append(endpoints, iv.Start, iv.End)
	}
	return endpoints
}

// SearchPosTypes returns the index of x in a[], or the position where x would
// be inserted if x isn't in a (this could be len(a)).  It's exactly the same
// as sort.SearchInts(), except for PosType.
func SearchPosTypes(a []PosType, x PosType) EndpointIndex {
	return EndpointIndex(sort.Search(len(a), func(i int) bool { return a[i] >= x }))
}

// ExpsearchPosType performs "exponential search"
// (https://en.wikipedia.org/wiki/Exponential_search ), checking a[idx], then
// a[idx + 1], then a[idx + 3], then a[idx + 7], etc., and finishing with
// binary search once it's either found an element larger than the target or
// has hit the end of the slice.  It's usually a better choice than
// SearchPosTypes when iterating.
func ExpsearchPosType(a []PosType, x PosType, idx EndpointIndex) EndpointIndex {
	nextIncr := EndpointIndex(1)
	startIdx := idx
	endIdx := EndpointIndex(len(a))
	for idx < endIdx {
		if a[idx] >= x {
			endIdx = idx
			break
		}
		startIdx = idx + 1
		idx += nextIncr
		nextIncr *= 2
	}
	for startIdx < endIdx {
		midIdx := EndpointIndex((uint(startIdx) + uint(endIdx)) >> 1)
		if a[midIdx] >= x {
			endIdx = midIdx
		} else {
			startIdx = midIdx + 1
		}
	}
	return startIdx
}

// EndpointIndex is intended to represent the result of
// SearchPosTypes(endpoints, pos+1).
// NOTE THE "+1"!  This is necessary to get SearchPosTypes to line up with our
// usual left-closed right-open intervals.
type EndpointIndex uint32

// NewEndpointIndex returns an EndpointIndex initialized to
// SearchPosTypes(endpoints, pos+1).
func NewEndpointIndex(pos PosType, endpoints []PosType) EndpointIndex {
	return SearchPosTypes(endpoints, pos+1)
}

// Contained returns whether we're inside an interval.
func (ei EndpointIndex) Contained() bool {
	return ei&1 != 0
}

// Finished returns whether we're past all the intervals.
func (ei EndpointIndex) Finished(endpoints []PosType) bool {
	return ei >= EndpointIndex(len(endpoints))
}

// Interval returns the interval containing the position this index was
// computed for.  It must only be called when Contained() is true.
func (ei EndpointIndex) Interval(endpoints []PosType) Interval {
	begin := ei &^ 1
	return Interval{Start: endpoints[begin], End: endpoints[begin+1]}
}

// Update updates the EndpointIndex to refer to newPos, which cannot be smaller
// than the previous position referred to by this EndpointIndex.  It is
// substantially faster than NewEndpointIndex when the position is increasing
// slowly.
func (ei *EndpointIndex) Update(newPos PosType, endpoints []PosType) {
	*ei = ExpsearchPosType(endpoints, newPos+1, *ei)
}
