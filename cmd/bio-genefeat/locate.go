package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/genefeat/featindex"
	"github.com/grailbio/genefeat/interval"
)

// parsePosition parses "chr:pos", pos 1-based, into a chromosome and 0-based
// position.
func parsePosition(s string) (string, interval.PosType, error) {
	r, err := interval.ParseRegionString(s)
	if err != nil {
		return "", 0, err
	}
	if r.Len() != 1 {
		return "", 0, fmt.Errorf("position %q must have the form chr:pos", s)
	}
	return r.ChrName, r.Start, nil
}

func locate(ctx context.Context, stdin io.Reader, stdout io.Writer, flags *resolveFlags, path string, positions []string) error {
	type query struct {
		chrom string
		pos   interval.PosType
		hits  []featindex.Hit
	}
	queries := make([]query, len(positions))
	byChrom := map[string][]int{}
	var chroms []string
	for i, p := range positions {
		q := &queries[i]
		var err error
		if q.chrom, q.pos, err = parsePosition(p); err != nil {
			return err
		}
		if _, ok := byChrom[q.chrom]; !ok {
			chroms = append(chroms, q.chrom)
		}
		byChrom[q.chrom] = append(byChrom[q.chrom], i)
	}
	ts, err := loadTranscripts(ctx, stdin, flags, path)
	if err != nil {
		return err
	}
	idx, err := featindex.New(ts)
	if err != nil {
		return err
	}
	for _, chrom := range chroms {
		qi := byChrom[chrom]
		sort.SliceStable(qi, func(i, j int) bool { return queries[qi[i]].pos < queries[qi[j]].pos })
		sorted := make([]interval.PosType, len(qi))
		for i, j := range qi {
			sorted[i] = queries[j].pos
		}
		for i, hits := range idx.LocateSorted(chrom, sorted) {
			queries[qi[i]].hits = hits
		}
	}

	out, closeOut, err := createOutput(ctx, stdout, *flags.out)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(out)
	for _, q := range queries {
		if len(q.hits) == 0 {
			fmt.Fprintf(w, "%s\t%d\t.\t.\t.\n", q.chrom, q.pos+1)
		}
		for _, h := range q.hits {
			fmt.Fprintf(w, "%s\t%d\t%s\t%v\t%s:%d-%d\n", q.chrom, q.pos+1, h.Transcript.Name, h.Class,
				q.chrom, h.Region.Start+1, h.Region.End)
		}
	}
	once := errors.Once{}
	once.Set(w.Flush())
	once.Set(closeOut())
	return once.Err()
}
