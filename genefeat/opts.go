package genefeat

import (
	"github.com/grailbio/genefeat/interval"
)

// Mode selects which interval sets a Resolver produces.
type Mode int

const (
	// ExonMode yields merged exons only.
	ExonMode Mode = iota + 1
	// CDSMode yields frame-corrected, merged CDS only.
	CDSMode
	// FeatureMode yields CDS, introns, and exons.
	FeatureMode
)

var modeNames = map[Mode]string{
	ExonMode:    "exons",
	CDSMode:     "cds",
	FeatureMode: "features",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "unknown"
}

// ParseMode converts "exons", "cds", or "features" to a Mode.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if s == name {
			return m, nil
		}
	}
	return 0, configError("unknown mode %q; expected one of exons, cds, features", s)
}

// accepts returns whether records of kind k contribute to groups in mode m.
func (m Mode) accepts(k FeatureKind) bool {
	switch m {
	case ExonMode:
		return k == Exon
	case CDSMode:
		return k == CDS
	}
	return k == Exon || k == CDS || k == Intron
}

// IntronPolicy selects how FeatureMode derives introns from the explicit
// intron records of a group.
type IntronPolicy int

const (
	// SubtractNone reports the union of the intron records.
	SubtractNone IntronPolicy = iota + 1
	// SubtractExons reports the intron records minus the merged exons.
	SubtractExons
	// SubtractCDS reports the intron records minus the merged CDS.
	SubtractCDS
)

var intronPolicyNames = map[IntronPolicy]string{
	SubtractNone:  "none",
	SubtractExons: "exons",
	SubtractCDS:   "cds_exons",
}

func (p IntronPolicy) String() string {
	if s, ok := intronPolicyNames[p]; ok {
		return s
	}
	return "unknown"
}

// ParseIntronPolicy converts "none", "exons", or "cds_exons" to an
// IntronPolicy.  The empty string means SubtractNone.
func ParseIntronPolicy(s string) (IntronPolicy, error) {
	if s == "" {
		return SubtractNone, nil
	}
	for p, name := range intronPolicyNames {
		if s == name {
			return p, nil
		}
	}
	return 0, configError("unknown intron subtraction %q; expected one of none, exons, cds_exons", s)
}

// Opts controls a Resolver.
type Opts struct {
	// Mode selects the produced interval sets.
	Mode Mode
	// IntronPolicy selects intron derivation in FeatureMode.  Zero means
	// SubtractExons.
	IntronPolicy IntronPolicy
	// MaxPos bounds every coordinate: all intervals must lie within
	// [0, MaxPos).  Zero means interval.DefaultMaxPos.
	MaxPos interval.PosType
	// DeriveIntrons makes FeatureMode compute the introns of a group without
	// intron records as the complement of its exons within the exon span.
	// BED input, which has no intron records, needs this.
	DeriveIntrons bool
	// Strict rejects records whose chromosome or strand disagree with the
	// first record of their group.  Otherwise the first record wins.
	Strict bool
	// SkipInvalid logs and skips groups with an invalid record, or that
	// cannot be finalized, instead of stopping the scan.
	SkipInvalid bool
}

// DefaultOpts are the default Resolver options.
var DefaultOpts = Opts{
	Mode:         FeatureMode,
	IntronPolicy: SubtractExons,
	MaxPos:       interval.DefaultMaxPos,
}

// withDefaults fills in zero-valued fields and validates the rest.
func (o Opts) withDefaults() (Opts, error) {
	if o.IntronPolicy == 0 {
		o.IntronPolicy = SubtractExons
	}
	if o.MaxPos == 0 {
		o.MaxPos = interval.DefaultMaxPos
	}
	if _, ok := modeNames[o.Mode]; !ok {
		return o, configError("invalid mode %d", int(o.Mode))
	}
	if _, ok := intronPolicyNames[o.IntronPolicy]; !ok {
		return o, configError("invalid intron policy %d", int(o.IntronPolicy))
	}
	if o.MaxPos < 0 {
		return o, configError("negative MaxPos %d", o.MaxPos)
	}
	return o, nil
}

// Validate checks o for unrecognized values.
func (o Opts) Validate() error {
	_, err := o.withDefaults()
	return err
}
