package interval

import (
	"math/bits"

	"github.com/grailbio/base/bitset"
)

// BitsPerWord is the number of bits per bitmap word.
const BitsPerWord = bitset.BitsPerWord

// bitmap is a dense bit-per-position scratch representation of a subset of
// [offset, offset + nBit).  Bit i corresponds to position offset + i.  Bits at
// indexes >= nBit are always clear.
//
// Results are identical to those of a bitmap covering [0, maxPos); only the
// window spanned by the operation's inputs is allocated.
type bitmap struct {
	bits   []uintptr
	offset PosType
	nBit   int
}

func newBitmap(window Interval) bitmap {
	nBit := window.Len()
	return bitmap{
		bits:   make([]uintptr, (nBit+BitsPerWord-1)/BitsPerWord),
		offset: window.Start,
		nBit:   nBit,
	}
}

// set marks the part of iv that lies inside the bitmap window.
func (b *bitmap) set(iv Interval) {
	start := int(iv.Start - b.offset)
	end := int(iv.End - b.offset)
	if start < 0 {
		start = 0
	}
	if end > b.nBit {
		end = b.nBit
	}
	if start >= end {
		return
	}
	// Ragged head and tail bits are set one at a time, whole words at once.
	for ; start < end && start%BitsPerWord != 0; start++ {
		bitset.Set(b.bits, start)
	}
	for ; start+BitsPerWord <= end; start += BitsPerWord {
		b.bits[start/BitsPerWord] = ^uintptr(0)
	}
	for ; start < end; start++ {
		bitset.Set(b.bits, start)
	}
}

func (b *bitmap) test(pos PosType) bool {
	i := int(pos - b.offset)
	if i < 0 || i >= b.nBit {
		return false
	}
	return bitset.Test(b.bits, i)
}

// invert flips every bit in the window.
func (b *bitmap) invert() {
	for i, w := range b.bits {
		b.bits[i] = ^w
	}
	b.clearTail()
}

// and keeps only the bits of b that are also set in other.  Both bitmaps must
// share the same window.
func (b *bitmap) and(other *bitmap) {
	if b.offset != other.offset || b.nBit != other.nBit {
		panic("interval: bitmap window mismatch")
	}
	for i, w := range other.bits {
		b.bits[i] &= w
	}
}

func (b *bitmap) clearTail() {
	if rem := b.nBit % BitsPerWord; rem != 0 {
		b.bits[len(b.bits)-1] &= (uintptr(1) << uint(rem)) - 1
	}
}

// nextSet returns the index of the first set bit at or after i, or nBit if
// there is none.
func (b *bitmap) nextSet(i int) int {
	if i >= b.nBit {
		return b.nBit
	}
	wordIdx := i / BitsPerWord
	if w := b.bits[wordIdx] >> uint(i%BitsPerWord); w != 0 {
		return i + bits.TrailingZeros(uint(w))
	}
	for wordIdx++; wordIdx < len(b.bits); wordIdx++ {
		if w := b.bits[wordIdx]; w != 0 {
			return wordIdx*BitsPerWord + bits.TrailingZeros(uint(w))
		}
	}
	return b.nBit
}

// nextClear returns the index of the first clear bit at or after i, or nBit
// if there is none.
func (b *bitmap) nextClear(i int) int {
	if i >= b.nBit {
		return b.nBit
	}
	wordIdx := i / BitsPerWord
	result := b.nBit
	if w := (^b.bits[wordIdx]) >> uint(i%BitsPerWord); w != 0 {
		result = i + bits.TrailingZeros(uint(w))
	} else {
		for wordIdx++; wordIdx < len(b.bits); wordIdx++ {
			if w := ^b.bits[wordIdx]; w != 0 {
				result = wordIdx*BitsPerWord + bits.TrailingZeros(uint(w))
				break
			}
		}
	}
	if result > b.nBit {
		// Hit the padding at the end of the last word.
		result = b.nBit
	}
	return result
}

// runs returns the maximal runs of set bits as intervals, in increasing
// order.
func (b *bitmap) runs() []Interval {
	var out []Interval
	end := 0
	for {
		start := b.nextSet(end)
		if start == b.nBit {
			return out
		}
		end = b.nextClear(start)
		out = append(out, Interval{Start: b.offset + PosType(start), End: b.offset + PosType(end)})
	}
}
