// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package interval

import (
	"math/rand"
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestBitmapWindow(t *testing.T) {
	// The window starts at an unaligned position and spans several words.
	window := Interval{Start: 1000, End: 1000 + 3*BitsPerWord + 5}
	b := newBitmap(window)
	expect.EQ(t, len(b.bits), 4)
	expect.EQ(t, b.runs(), []Interval(nil))

	b.set(Interval{Start: 0, End: 1002})
	b.set(Interval{Start: 1000 + BitsPerWord - 1, End: 1000 + BitsPerWord + 1})
	b.set(Interval{Start: window.End - 1, End: window.End + 100})
	expect.EQ(t, b.runs(), []Interval{
		{Start: 1000, End: 1002},
		{Start: 1000 + BitsPerWord - 1, End: 1000 + BitsPerWord + 1},
		{Start: window.End - 1, End: window.End},
	})
	expect.True(t, b.test(1001))
	expect.False(t, b.test(1002))
	expect.False(t, b.test(999))
	expect.False(t, b.test(window.End))

	b.invert()
	expect.EQ(t, b.runs(), []Interval{
		{Start: 1002, End: 1000 + BitsPerWord - 1},
		{Start: 1000 + BitsPerWord + 1, End: window.End - 1},
	})
	// Padding bits past the window stay clear.
	expect.EQ(t, b.nextSet(b.nBit-1), b.nBit)
	expect.EQ(t, b.nextClear(b.nBit-1), b.nBit-1)
}

func TestBitmapRandom(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for iter := 0; iter < 200; iter++ {
		start := PosType(r.Intn(1000))
		size := r.Intn(10*BitsPerWord) + 1
		window := Interval{Start: start, End: start + PosType(size)}
		b := newBitmap(window)
		want := make([]bool, size)
		for i := r.Intn(8); i > 0; i-- {
			s := r.Intn(size)
			e := s + r.Intn(size-s) + 1
			b.set(Interval{Start: start + PosType(s), End: start + PosType(e)})
			for j := s; j < e; j++ {
				want[j] = true
			}
		}
		for i := range want {
			if b.test(start+PosType(i)) != want[i] {
				t.Fatalf("iter %d: bit %d: got %v, want %v", iter, i, !want[i], want[i])
			}
		}
		var runs []Interval
		for i := 0; i < size; {
			if !want[i] {
				i++
				continue
			}
			j := i
			for j < size && want[j] {
				j++
			}
			runs = append(runs, Interval{Start: start + PosType(i), End: start + PosType(j)})
			i = j
		}
		expect.EQ(t, b.runs(), runs)
	}
}

func TestBitmapSetSpansWords(t *testing.T) {
	for _, offset := range []PosType{0, 7, BitsPerWord} {
		window := Interval{Start: offset, End: offset + 4*BitsPerWord + 10}
		for _, iv := range []Interval{
			{Start: offset + 5, End: offset + 3*BitsPerWord + 7},
			{Start: offset, End: offset + 2*BitsPerWord},
			{Start: offset + BitsPerWord, End: offset + 2*BitsPerWord},
			{Start: offset + BitsPerWord - 1, End: offset + BitsPerWord + 1},
			{Start: offset, End: window.End},
		} {
			b := newBitmap(window)
			b.set(iv)
			expect.EQ(t, b.runs(), []Interval{iv}, iv.String())
			b.invert()
			expect.EQ(t, TotalLen(b.runs()), window.Len()-iv.Len(), iv.String())
		}
	}
}
