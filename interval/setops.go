package interval

// Union returns the maximal disjoint intervals covering every position
// covered by some element of ivs.  ivs may be unsorted and may overlap.  Every
// interval must be nonempty and lie within [0, maxPos).
//
// The result is sorted, pairwise disjoint, and never contains two touching
// intervals.  The union of an empty list is empty.
func Union(ivs []Interval, maxPos PosType) ([]Interval, error) {
	if err := checkAll(ivs, maxPos); err != nil {
		return nil, err
	}
	if len(ivs) == 0 {
		return nil, nil
	}
	b := newBitmap(span(ivs))
	for _, iv := range ivs {
		b.set(iv)
	}
	return b.runs(), nil
}

// Complement returns the maximal disjoint intervals covering the positions in
// [min start, max end) of ivs that no element of ivs covers.
//
// The complement is taken relative to the input's own span, not to
// [0, maxPos): flanking positions before the first or after the last interval
// are never reported.  An empty ivs is a DegenerateInput error.
func Complement(ivs []Interval, maxPos PosType) ([]Interval, error) {
	if len(ivs) == 0 {
		return nil, newError(DegenerateInput, "complement of an empty interval list")
	}
	if err := checkAll(ivs, maxPos); err != nil {
		return nil, err
	}
	return complementWithin(ivs, span(ivs)), nil
}

// ComplementWithin is like Complement, but takes the complement relative to
// an explicit bound.  Parts of ivs outside the bound are ignored.
func ComplementWithin(ivs []Interval, bound Interval, maxPos PosType) ([]Interval, error) {
	if len(ivs) == 0 {
		return nil, newError(DegenerateInput, "complement of an empty interval list")
	}
	if err := checkAll(ivs, maxPos); err != nil {
		return nil, err
	}
	if err := Check(bound, maxPos); err != nil {
		return nil, err
	}
	return complementWithin(ivs, bound), nil
}

func complementWithin(ivs []Interval, bound Interval) []Interval {
	b := newBitmap(bound)
	for _, iv := range ivs {
		b.set(iv)
	}
	b.invert()
	return b.runs()
}

// Difference returns the maximal disjoint intervals covering the positions
// covered by a and not covered by b.
//
// The second bitmap is built from b's own intervals and then inverted, so the
// result is a AND NOT b.  An empty a yields an empty result.
func Difference(a, b []Interval, maxPos PosType) ([]Interval, error) {
	if err := checkAll(a, maxPos); err != nil {
		return nil, err
	}
	if err := checkAll(b, maxPos); err != nil {
		return nil, err
	}
	if len(a) == 0 {
		return nil, nil
	}
	window := span(a)
	bitsA := newBitmap(window)
	for _, iv := range a {
		bitsA.set(iv)
	}
	bitsB := newBitmap(window)
	for _, iv := range b {
		bitsB.set(iv)
	}
	bitsB.invert()
	bitsA.and(&bitsB)
	return bitsA.runs(), nil
}
