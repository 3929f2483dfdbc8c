package main

import (
	"context"
	"fmt"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/genefeat/encoding/annotation"
	"github.com/grailbio/genefeat/featindex"
	"github.com/grailbio/genefeat/genefeat"
	"github.com/grailbio/genefeat/interval"
	"v.io/x/lib/cmdline"
)

type resolveFlags struct {
	mode           genefeat.Mode
	format         *string
	intronSubtract *string
	maxPos         *int
	keyAttr        *string
	strict         *bool
	skipInvalid    *bool
	out            *string
	// outFormat and region are nil for locate.
	outFormat *string
	region    *string
}

func addResolveFlags(cmd *cmdline.Command, mode genefeat.Mode) *resolveFlags {
	def := genefeat.DefaultOpts
	flags := &resolveFlags{
		mode:   mode,
		format: cmd.Flags.String("format", "", "Input format: bed, gff, or gtf. By default it is guessed from the path suffix"),
		intronSubtract: cmd.Flags.String("intron-subtract", def.IntronPolicy.String(),
			"Intervals subtracted from explicit intron records: none, exons, or cds_exons"),
		maxPos:      cmd.Flags.Int("max-pos", int(def.MaxPos), "Upper bound on any coordinate"),
		keyAttr:     cmd.Flags.String("key-attr", "transcript_id", "GTF/GFF attribute to group records by, e.g. gene_id. Lines without it are grouped by their first attribute. "+
			"This default differs from the annotation package, which groups GTF lines by their first semicolon-delimited attribute token "+
			`(e.g. transcript_id "T1") and GFF lines by the whole group column; pass -key-attr "" to use those`),
		strict:      cmd.Flags.Bool("strict", def.Strict, "Fail on records whose chromosome or strand disagree with the rest of their group"),
		skipInvalid: cmd.Flags.Bool("skip-invalid", def.SkipInvalid, "Log and skip transcripts that cannot be resolved instead of failing"),
		out:         cmd.Flags.String("out", "-", `Output path; "-" is stdout`),
	}
	if cmd.Name != "locate" {
		flags.outFormat = cmd.Flags.String("out-format", annotation.RegionBED.String(),
			"Output format: bed (one line per region), bed12 (one line per transcript), or gff")
		flags.region = cmd.Flags.String("region", "", "Only write transcripts overlapping this region. Format as <contig ID>:<1-based first pos>-<last pos>, <contig ID>:<1-based pos>, or just <contig ID>")
	}
	return flags
}

// opts converts the flags to reader and resolver options.
func (f *resolveFlags) opts(path string) (annotation.Opts, genefeat.Opts, error) {
	var (
		aopts annotation.Opts
		ropts = genefeat.DefaultOpts
		err   error
	)
	if *f.format != "" {
		if aopts.Format, err = annotation.ParseFormat(*f.format); err != nil {
			return aopts, ropts, err
		}
	} else if aopts.Format = annotation.GuessFormat(path); aopts.Format == 0 {
		return aopts, ropts, fmt.Errorf("cannot guess the format of %s; set -format", path)
	}
	if *f.keyAttr != "" {
		aopts.KeyFunc = annotation.AttributeKey(*f.keyAttr)
	}
	ropts.Mode = f.mode
	if ropts.IntronPolicy, err = genefeat.ParseIntronPolicy(*f.intronSubtract); err != nil {
		return aopts, ropts, err
	}
	if *f.maxPos <= 0 || *f.maxPos > int(interval.PosTypeMax) {
		return aopts, ropts, fmt.Errorf("-max-pos %d out of range (0, %d]", *f.maxPos, interval.PosTypeMax)
	}
	ropts.MaxPos = interval.PosType(*f.maxPos)
	ropts.Strict = *f.strict
	ropts.SkipInvalid = *f.skipInvalid
	ropts = aopts.Format.ResolverOpts(ropts)
	return aopts, ropts, ropts.Validate()
}

// loadTranscripts resolves every transcript of the annotation at path.  Path
// "-" reads stdin.
func loadTranscripts(ctx context.Context, stdin io.Reader, flags *resolveFlags, path string) ([]genefeat.Transcript, error) {
	aopts, ropts, err := flags.opts(path)
	if err != nil {
		return nil, err
	}
	r, err := genefeat.NewResolver(ropts)
	if err != nil {
		return nil, err
	}
	var (
		src     genefeat.Source
		closeIn = func() error { return nil }
	)
	if path == "-" {
		if src, err = annotation.NewSource(stdin, aopts); err != nil {
			return nil, err
		}
	} else {
		fs, err := annotation.Open(ctx, path, aopts)
		if err != nil {
			return nil, err
		}
		src = fs
		closeIn = func() error { return fs.Close(ctx) }
	}
	var (
		ts []genefeat.Transcript
		s  = r.Resolve(src)
	)
	for s.Scan() {
		ts = append(ts, s.Transcript())
	}
	once := errors.Once{}
	once.Set(s.Err())
	once.Set(closeIn())
	if err := once.Err(); err != nil {
		return nil, err
	}
	log.Printf("%s: resolved %d transcripts in %s mode, skipped %d", path, len(ts), ropts.Mode, s.Skipped())
	return ts, nil
}

// createOutput opens path for writing.  Path "-" is stdout.
func createOutput(ctx context.Context, stdout io.Writer, path string) (io.Writer, func() error, error) {
	if path == "-" || path == "" {
		return stdout, func() error { return nil }, nil
	}
	out, err := file.Create(ctx, path)
	if err != nil {
		return nil, nil, errors.E(err, "create", path)
	}
	return out.Writer(ctx), func() error { return out.Close(ctx) }, nil
}

func resolve(ctx context.Context, stdin io.Reader, stdout io.Writer, flags *resolveFlags, path string) error {
	outFormat, err := annotation.ParseOutFormat(*flags.outFormat)
	if err != nil {
		return err
	}
	var region interval.Region
	if *flags.region != "" {
		if region, err = interval.ParseRegionString(*flags.region); err != nil {
			return err
		}
	}
	ts, err := loadTranscripts(ctx, stdin, flags, path)
	if err != nil {
		return err
	}
	selected := make([]*genefeat.Transcript, len(ts))
	for i := range ts {
		selected[i] = &ts[i]
	}
	if region.ChrName != "" {
		idx, err := featindex.New(ts)
		if err != nil {
			return err
		}
		selected = idx.Overlapping(region.ChrName, region.Interval)
		log.Printf("%d of %d transcripts overlap %v", len(selected), len(ts), region)
	}

	out, closeOut, err := createOutput(ctx, stdout, *flags.out)
	if err != nil {
		return err
	}
	once := errors.Once{}
	w, err := annotation.NewWriter(out, outFormat)
	if err != nil {
		once.Set(err)
	} else {
		for _, t := range selected {
			if err := w.Write(t); err != nil {
				once.Set(err)
				break
			}
		}
		once.Set(w.Flush())
	}
	once.Set(closeOut())
	return once.Err()
}
