package annotation

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/grailbio/genefeat/genefeat"
	"github.com/grailbio/genefeat/interval"
	"github.com/pkg/errors"
)

// BED12 column indexes.
const (
	bedChrom = iota
	bedChromStart
	bedChromEnd
	bedName
	bedScore
	bedStrand
	bedThickStart
	bedThickEnd
	bedItemRGB
	bedBlockCount
	bedBlockSizes
	bedBlockStarts
	bedNumCols
)

// getTokens identifies up to the first len(tokens) tokens from curLine,
// returning the number of tokens saved.  Any (group of) characters <= ' ' is
// treated as a delimiter.
func getTokens(tokens [][]byte, curLine []byte) int {
	posEnd := 0
	lineLen := len(curLine)
	for tokenIdx := range tokens {
		// These simple loops are better than any of the standard library
		// string-split functions for a dozen short tokens.
		pos := posEnd
		for ; pos != lineLen; pos++ {
			if curLine[pos] > ' ' {
				break
			}
		}
		if pos == lineLen {
			return tokenIdx
		}
		posEnd = pos
		for ; posEnd != lineLen; posEnd++ {
			if curLine[posEnd] <= ' ' {
				break
			}
		}
		tokens[tokenIdx] = curLine[pos:posEnd]
	}
	return len(tokens)
}

// bedSource reads records from a BED12 stream.  Each line is expanded into
// the exon and CDS records of one transcript, which are then handed out one
// at a time.
type bedSource struct {
	scanner *bufio.Scanner
	lineIdx int
	// Every line is its own group.  A name already used as a key gets the
	// first "_<n>" suffix, n >= 2, that is not a key either; names holds the
	// last n tried per name and keys every key handed out.
	names   map[string]int
	keys    map[string]bool
	pending []genefeat.Record
	tokens  [bedNumCols][]byte
}

func newBEDSource(r io.Reader) *bedSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), 16<<20)
	return &bedSource{scanner: scanner, names: make(map[string]int), keys: make(map[string]bool)}
}

// Read implements genefeat.Source.
func (s *bedSource) Read() (genefeat.Record, error) {
	for len(s.pending) == 0 {
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return genefeat.Record{}, err
			}
			return genefeat.Record{}, io.EOF
		}
		s.lineIdx++
		if err := s.parseLine(s.scanner.Bytes()); err != nil {
			return genefeat.Record{}, errors.Wrapf(err, "annotation: bed line %d", s.lineIdx)
		}
	}
	rec := s.pending[0]
	s.pending = s.pending[1:]
	return rec, nil
}

func isBEDHeader(line []byte) bool {
	l := gunsafe.BytesToString(line)
	return strings.HasPrefix(l, "#") || strings.HasPrefix(l, "track") || strings.HasPrefix(l, "browser")
}

func atoi(token []byte) (interval.PosType, error) {
	v, err := strconv.ParseInt(gunsafe.BytesToString(token), 10, 32)
	return interval.PosType(v), err
}

// parseIntList parses a comma-separated list such as "10,20,30," as found in
// the blockSizes and blockStarts columns.
func parseIntList(token []byte) ([]interval.PosType, error) {
	fields := strings.Split(strings.Trim(gunsafe.BytesToString(token), ","), ",")
	out := make([]interval.PosType, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 32)
		if err != nil {
			return nil, err
		}
		out[i] = interval.PosType(v)
	}
	return out, nil
}

func (s *bedSource) parseLine(line []byte) error {
	if isBEDHeader(line) {
		return nil
	}
	nToken := getTokens(s.tokens[:], line)
	if nToken == 0 {
		return nil
	}
	if nToken != bedNumCols {
		return fmt.Errorf("%d column(s), want %d (BED12)", nToken, bedNumCols)
	}
	tokens := s.tokens
	chromStart, err := atoi(tokens[bedChromStart])
	if err != nil {
		return err
	}
	thickStart, err := atoi(tokens[bedThickStart])
	if err != nil {
		return err
	}
	thickEnd, err := atoi(tokens[bedThickEnd])
	if err != nil {
		return err
	}
	blockCount, err := atoi(tokens[bedBlockCount])
	if err != nil {
		return err
	}
	blockSizes, err := parseIntList(tokens[bedBlockSizes])
	if err != nil {
		return err
	}
	blockStarts, err := parseIntList(tokens[bedBlockStarts])
	if err != nil {
		return err
	}
	if len(blockSizes) != int(blockCount) || len(blockStarts) != int(blockCount) {
		return fmt.Errorf("blockCount %d does not match %d size(s), %d start(s)",
			blockCount, len(blockSizes), len(blockStarts))
	}

	name := string(tokens[bedName])
	key := name
	for s.keys[key] {
		n := s.names[name] + 1
		if n < 2 {
			n = 2
		}
		s.names[name] = n
		key = fmt.Sprintf("%s_%d", name, n)
	}
	s.keys[key] = true
	base := genefeat.Record{
		Key:    key,
		Chrom:  string(tokens[bedChrom]),
		Strand: strandByte(gunsafe.BytesToString(tokens[bedStrand])),
	}
	for i, size := range blockSizes {
		start := chromStart + blockStarts[i]
		end := start + size
		exon := base
		exon.Kind = genefeat.Exon
		exon.Interval = interval.Interval{Start: start, End: end}
		s.pending = append(s.pending, exon)

		// Clip the block to the thick (coding) part.  Blocks that touch the
		// coding part only at a boundary yield nothing.
		cdsStart, cdsEnd := start, end
		if cdsStart < thickStart {
			cdsStart = thickStart
		}
		if cdsEnd > thickEnd {
			cdsEnd = thickEnd
		}
		if cdsStart < cdsEnd {
			cds := base
			cds.Kind = genefeat.CDS
			cds.Interval = interval.Interval{Start: cdsStart, End: cdsEnd}
			s.pending = append(s.pending, cds)
		}
	}
	return nil
}
