package annotation

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/genefeat/genefeat"
	"github.com/grailbio/genefeat/interval"
	"github.com/pkg/errors"
)

// gffRecord stores data read from one line of a GFF or GTF file.
type gffRecord struct {
	Chrom   string
	Source  string
	Feature string
	Start   int    // 1-based
	End     int    // closed
	Score   string // unused floating point value, but may be "."
	Strand  string
	Frame   string
	Group   string
}

// featureKinds maps the GFF feature column to record kinds.  Other feature
// types are skipped.
var featureKinds = map[string]genefeat.FeatureKind{
	"exon":        genefeat.Exon,
	"CDS":         genefeat.CDS,
	"start_codon": genefeat.CDS,
	"stop_codon":  genefeat.CDS,
	"intron":      genefeat.Intron,
}

// gffNumCols is the number of columns of a GFF line.  Extra trailing columns
// are ignored.
const gffNumCols = 9

// shortLineFilter drops data lines with fewer than gffNumCols tab-separated
// columns, so that tsv.Reader only sees lines it can decode into a gffRecord.
// Comment lines pass through.
type shortLineFilter struct {
	r       *bufio.Reader
	pending []byte
	err     error
	nDrop   int
}

func (f *shortLineFilter) Read(p []byte) (int, error) {
	for len(f.pending) == 0 {
		if f.err != nil {
			return 0, f.err
		}
		var line []byte
		line, f.err = f.r.ReadBytes('\n')
		if len(line) == 0 {
			continue
		}
		if line[0] != '#' && bytes.Count(line, []byte{'\t'})+1 < gffNumCols {
			f.nDrop++
			continue
		}
		f.pending = line
	}
	n := copy(p, f.pending)
	f.pending = f.pending[n:]
	return n, nil
}

// gffSource reads records from a GFF or GTF stream.
type gffSource struct {
	r       *tsv.Reader
	short   *shortLineFilter
	keyFunc KeyFunc
	line    gffRecord
	nLine   int
	nSkip   int
	done    bool
}

func newGFFSource(r io.Reader, opts Opts) *gffSource {
	short := &shortLineFilter{r: bufio.NewReaderSize(r, 64<<10)}
	reader := tsv.NewReader(short)
	reader.Comment = '#'
	reader.LazyQuotes = true
	// Lines may carry trailing columns after the attributes.
	reader.FieldsPerRecord = -1
	return &gffSource{r: reader, short: short, keyFunc: opts.keyFunc()}
}

// Read implements genefeat.Source.
func (s *gffSource) Read() (genefeat.Record, error) {
	for {
		if err := s.r.Read(&s.line); err != nil {
			if err == io.EOF {
				if !s.done {
					s.done = true
					log.Debug.Printf("annotation: read %d gff line(s), skipped %d of other feature types and %d with fewer than %d columns",
						s.nLine, s.nSkip, s.short.nDrop, gffNumCols)
				}
				return genefeat.Record{}, io.EOF
			}
			return genefeat.Record{}, errors.Wrapf(err, "annotation: gff record %d", s.nLine+1)
		}
		s.nLine++
		kind, ok := featureKinds[s.line.Feature]
		if !ok {
			s.nSkip++
			continue
		}
		if s.line.End > interval.PosTypeMax || s.line.Start < 1 {
			return genefeat.Record{}, &genefeat.Error{
				Kind:  genefeat.CoordinateBound,
				Group: s.keyFunc(s.line.Group),
				Msg:   fmt.Sprintf("gff record %d: coordinates %d-%d", s.nLine, s.line.Start, s.line.End),
			}
		}
		return genefeat.Record{
			Key:    s.keyFunc(s.line.Group),
			Chrom:  s.line.Chrom,
			Strand: strandByte(s.line.Strand),
			Kind:   kind,
			Interval: interval.Interval{
				Start: interval.PosType(s.line.Start - 1),
				End:   interval.PosType(s.line.End),
			},
		}, nil
	}
}

func strandByte(s string) byte {
	if len(s) != 1 {
		return '.'
	}
	return s[0]
}
