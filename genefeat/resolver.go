package genefeat

import (
	"errors"
	"io"

	"github.com/grailbio/base/log"
	"github.com/grailbio/genefeat/interval"
)

// Resolver turns a record stream into one Transcript per group.
type Resolver struct {
	opts Opts
}

// NewResolver validates opts and returns a Resolver.  Zero-valued
// IntronPolicy and MaxPos take their DefaultOpts values.
func NewResolver(opts Opts) (*Resolver, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	return &Resolver{opts: opts}, nil
}

// Opts returns the options in effect, defaults filled in.
func (r *Resolver) Opts() Opts {
	return r.opts
}

// Resolve returns a Scanner over the transcripts described by src.  Each call
// starts from scratch and owns its groups; src is read to the end by the first
// call to Scanner.Scan, since any later record may extend any group.
func (r *Resolver) Resolve(src Source) *Scanner {
	return &Scanner{r: r, src: src}
}

// ResolveAll collects every transcript of src.
func (r *Resolver) ResolveAll(src Source) ([]Transcript, error) {
	var out []Transcript
	s := r.Resolve(src)
	for s.Scan() {
		out = append(out, s.Transcript())
	}
	return out, s.Err()
}

// Scanner yields the transcripts of one Resolve call in the order their keys
// first appeared in the input.  Callers may stop scanning at any point.
type Scanner struct {
	r      *Resolver
	src    Source
	loaded bool
	groups []*Group
	next   int

	cur     Transcript
	err     error
	skipped int
	// Keys of groups with a rejected record, when SkipInvalid is set.
	invalid map[string]bool
}

// Scan advances to the next transcript.  It returns false when the input is
// exhausted or an error occurred; Err distinguishes the two.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	if !s.loaded {
		s.loaded = true
		if s.err = s.load(); s.err != nil {
			return false
		}
	}
	for s.next < len(s.groups) {
		g := s.groups[s.next]
		// Release the raw intervals once the group has been finalized.
		s.groups[s.next] = nil
		s.next++
		if s.invalid[g.Key] {
			continue
		}
		t, err := s.r.finalize(g)
		if err == nil {
			s.cur = t
			return true
		}
		if !s.r.opts.SkipInvalid {
			s.err = err
			return false
		}
		log.Error.Printf("genefeat: skipping %s: %v", g.Key, err)
		s.skipped++
	}
	s.groups = nil
	return false
}

// Transcript returns the transcript found by the last successful Scan.
func (s *Scanner) Transcript() Transcript {
	return s.cur
}

// Err returns the error that stopped the scan, if any.
func (s *Scanner) Err() error {
	return s.err
}

// Skipped returns the number of groups dropped because Opts.SkipInvalid was
// set and they had an invalid record or could not be finalized.
func (s *Scanner) Skipped() int {
	return s.skipped
}

func (s *Scanner) load() error {
	opts := &s.r.opts
	agg := NewAggregator(opts.Mode, opts.MaxPos, opts.Strict)
	s.invalid = map[string]bool{}
	for {
		rec, err := s.src.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if err := agg.Add(rec); err != nil {
			var ge *Error
			if !opts.SkipInvalid || !errors.As(err, &ge) || ge.Group == "" {
				return err
			}
			if !s.invalid[rec.Key] {
				log.Error.Printf("genefeat: skipping %s: %v", rec.Key, err)
				s.invalid[rec.Key] = true
				s.skipped++
			}
		}
	}
	s.groups = agg.Groups()
	log.Debug.Printf("genefeat: %d record(s) in %d group(s), mode %v", agg.NumRecords(), agg.Len(), opts.Mode)
	return nil
}

// finalize merges, frame-corrects, and derives the interval sets of g.
func (r *Resolver) finalize(g *Group) (Transcript, error) {
	t := Transcript{Name: g.Key, Chrom: g.Chrom, Strand: g.Strand}
	var err error
	switch r.opts.Mode {
	case ExonMode:
		t.Exons, err = interval.Union(g.Exons, r.opts.MaxPos)
	case CDSMode:
		t.CDS, err = r.codingRegions(g)
	case FeatureMode:
		if t.CDS, err = r.codingRegions(g); err != nil {
			break
		}
		if t.Exons, err = interval.Union(g.Exons, r.opts.MaxPos); err != nil {
			break
		}
		t.Introns, err = r.introns(g, &t)
	}
	if err != nil {
		return Transcript{}, groupError(g.Key, err)
	}
	return t, nil
}

func (r *Resolver) codingRegions(g *Group) ([]interval.Interval, error) {
	cds, err := CorrectFrame(g.CDS, g.Strand)
	if err != nil {
		return nil, err
	}
	return interval.Union(cds, r.opts.MaxPos)
}

// introns derives the intron set of g, given its already merged exons and
// CDS.
func (r *Resolver) introns(g *Group, t *Transcript) ([]interval.Interval, error) {
	maxPos := r.opts.MaxPos
	if len(g.Introns) == 0 && r.opts.DeriveIntrons && len(t.Exons) > 0 {
		return interval.Complement(t.Exons, maxPos)
	}
	switch r.opts.IntronPolicy {
	case SubtractExons:
		return interval.Difference(g.Introns, t.Exons, maxPos)
	case SubtractCDS:
		return interval.Difference(g.Introns, t.CDS, maxPos)
	}
	return interval.Union(g.Introns, maxPos)
}
