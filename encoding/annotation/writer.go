package annotation

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/biogo/biogo/io/featio/bed"
	"github.com/biogo/biogo/io/featio/gff"
	"github.com/biogo/biogo/seq"
	"github.com/grailbio/genefeat/genefeat"
	"github.com/grailbio/genefeat/interval"
)

// OutFormat identifies an output format for resolved transcripts.
type OutFormat int

const (
	// RegionBED writes one BED6+1 line per interval; the extra 7th column is
	// the region kind (CDS, intron, exon).
	RegionBED OutFormat = iota + 1
	// TranscriptBED writes one BED12 line per transcript, with the exons as
	// blocks and the CDS span as the thick part.
	TranscriptBED
	// GFFOut writes one GFF2 line per interval.
	GFFOut
)

var outFormatNames = map[OutFormat]string{
	RegionBED:     "bed",
	TranscriptBED: "bed12",
	GFFOut:        "gff",
}

func (f OutFormat) String() string {
	if s, ok := outFormatNames[f]; ok {
		return s
	}
	return "unknown"
}

// ParseOutFormat converts "bed", "bed12", or "gff" to an OutFormat.
func ParseOutFormat(s string) (OutFormat, error) {
	for f, name := range outFormatNames {
		if s == name {
			return f, nil
		}
	}
	return 0, &genefeat.Error{
		Kind: genefeat.ConfigurationError,
		Msg:  fmt.Sprintf("output format %q not in bed,bed12,gff", s),
	}
}

// Writer writes resolved transcripts.  Flush must be called after the last
// Write.
type Writer interface {
	Write(t *genefeat.Transcript) error
	Flush() error
}

// NewWriter returns a Writer producing format f on w.
func NewWriter(w io.Writer, f OutFormat) (Writer, error) {
	bw := bufio.NewWriterSize(w, 64<<10)
	switch f {
	case RegionBED:
		return &regionBEDWriter{w: bw}, nil
	case TranscriptBED:
		bedw, err := bed.NewWriter(bw, 12)
		if err != nil {
			return nil, err
		}
		return &transcriptBEDWriter{bw: bw, w: bedw}, nil
	case GFFOut:
		return &gffWriter{bw: bw, w: gff.NewWriter(bw, 60, true)}, nil
	}
	return nil, fmt.Errorf("annotation.NewWriter: unknown output format %v", f)
}

// regionSets lists the interval sets of a transcript in output order, the
// same order the resolver reports them in.
func regionSets(t *genefeat.Transcript) [3]struct {
	kind string
	ivs  []interval.Interval
} {
	return [3]struct {
		kind string
		ivs  []interval.Interval
	}{
		{"CDS", t.CDS},
		{"intron", t.Introns},
		{"exon", t.Exons},
	}
}

type regionBEDWriter struct {
	w *bufio.Writer
}

// Write writes each interval as a BED6 line followed by a kind column.
func (w *regionBEDWriter) Write(t *genefeat.Transcript) error {
	b := bed.Bed6{Chrom: t.Chrom, FeatName: t.Name, FeatStrand: seqStrand(t.Strand)}
	for _, set := range regionSets(t) {
		for _, iv := range set.ivs {
			b.ChromStart, b.ChromEnd = int(iv.Start), int(iv.End)
			if _, err := fmt.Fprintf(w.w, "%6s\t%s\n", &b, set.kind); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *regionBEDWriter) Flush() error { return w.w.Flush() }

type transcriptBEDWriter struct {
	bw *bufio.Writer
	w  *bed.Writer
}

func (w *transcriptBEDWriter) Write(t *genefeat.Transcript) error {
	blocks := t.Exons
	if len(blocks) == 0 {
		// CDS-only transcripts use the coding intervals as blocks.
		blocks = t.CDS
	}
	if len(blocks) == 0 {
		return fmt.Errorf("annotation: transcript %s has no exons or CDS to write as BED12", t.Name)
	}
	b := &bed.Bed12{
		Chrom:       t.Chrom,
		ChromStart:  int(blocks[0].Start),
		ChromEnd:    int(blocks[len(blocks)-1].End),
		FeatName:    t.Name,
		FeatStrand:  seqStrand(t.Strand),
		BlockCount:  len(blocks),
		BlockSizes:  make([]int, len(blocks)),
		BlockStarts: make([]int, len(blocks)),
	}
	b.ThickStart, b.ThickEnd = b.ChromStart, b.ChromStart
	if len(t.CDS) > 0 {
		b.ThickStart = int(t.CDS[0].Start)
		b.ThickEnd = int(t.CDS[len(t.CDS)-1].End)
	}
	for i, blk := range blocks {
		b.BlockSizes[i] = blk.Len()
		b.BlockStarts[i] = int(blk.Start) - b.ChromStart
	}
	_, err := w.w.Write(b)
	return err
}

func (w *transcriptBEDWriter) Flush() error { return w.bw.Flush() }

type gffWriter struct {
	bw *bufio.Writer
	w  *gff.Writer
}

func seqStrand(strand byte) seq.Strand {
	switch strand {
	case '+':
		return seq.Plus
	case '-':
		return seq.Minus
	}
	return seq.None
}

func (w *gffWriter) Write(t *genefeat.Transcript) error {
	for _, set := range regionSets(t) {
		for _, iv := range set.ivs {
			_, err := w.w.Write(&gff.Feature{
				SeqName:    t.Chrom,
				Source:     "genefeat",
				Feature:    set.kind,
				FeatStart:  int(iv.Start),
				FeatEnd:    int(iv.End),
				FeatStrand: seqStrand(t.Strand),
				FeatFrame:  gff.NoFrame,
				FeatAttributes: gff.Attributes{{
					Tag:   "transcript_id",
					Value: strconv.Quote(t.Name),
				}},
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *gffWriter) Flush() error { return w.bw.Flush() }
