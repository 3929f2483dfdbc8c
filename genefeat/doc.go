// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package genefeat derives per-transcript exon, coding (CDS), and intron
// regions from a stream of annotation records.
//
// Records are grouped by transcript (or gene) key in the order the keys are
// first seen.  Once the whole stream has been consumed, each group is
// finalized: exons are merged, CDS intervals are trimmed to a whole number of
// codons and merged, and introns are derived according to an IntronPolicy.
// The merging is done by the bitmap-backed set operations in package
// interval.
//
// Typical use:
//
//   r, err := genefeat.NewResolver(genefeat.DefaultOpts)
//   ...
//   s := r.Resolve(src)
//   for s.Scan() {
//     t := s.Transcript()
//     ...
//   }
//   if err := s.Err(); err != nil {
//     ...
//   }
package genefeat
