// Package annotation reads gene annotation files (BED12, GFF, GTF) as
// genefeat record streams, and writes resolved transcripts back out as BED or
// GFF.
//
// GFF and GTF coordinates are converted from 1-based closed to 0-based
// half-open.  Feature types map to record kinds as follows: "exon" to Exon;
// "CDS", "start_codon", and "stop_codon" to CDS; "intron" to Intron.  Other
// feature types are skipped.
//
// Each BED12 line describes one transcript on its own: every block is an
// exon, and every block clipped to [thickStart, thickEnd) is a CDS interval.
// BED input has no intron lines, so resolvers reading it should set
// genefeat.Opts.DeriveIntrons (see Format.ResolverOpts).
package annotation
