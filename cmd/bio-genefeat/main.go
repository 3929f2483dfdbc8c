// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// bio-genefeat derives per-transcript exon, CDS, and intron regions from BED12,
// GFF, or GTF gene annotations.
//
// Usage:
//
//   bio-genefeat features -out-format=bed12 genes.gtf.gz
//   bio-genefeat cds -region chr7:55019017-55211628 genes.gtf
//   bio-genefeat locate genes.bed chr1:1000 chr1:2000
package main

import (
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/genefeat/genefeat"
	"v.io/x/lib/cmdline"
)

func newCmdResolve(mode genefeat.Mode, short string) *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     mode.String(),
		Short:    short,
		ArgsName: "annotation",
		Long: `
The annotation path may be any path supported by grailbio/base/file, or "-"
for stdin.  Compressed input (.gz, .bz2, .zst) is decompressed.`,
	}
	flags := addResolveFlags(cmd, mode)
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("%s takes one annotation path, but got %v", mode, argv)
		}
		return resolve(vcontext.Background(), env.Stdin, env.Stdout, flags, argv[0])
	})
	return cmd
}

func newCmdLocate() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "locate",
		Short:    "Classify genomic positions as CDS, exon, or intron in each covering transcript",
		ArgsName: "annotation position...",
		ArgsLong: `
Each position has the form chr:pos with a 1-based pos.  Output has one line
per (position, transcript) pair, in argument order: chr, pos, transcript
name, class, and the 1-based chr:start-end of the containing region (the
transcript span for class "span").  Positions outside every transcript print
"." for the last three columns.`,
	}
	flags := addResolveFlags(cmd, genefeat.FeatureMode)
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) < 2 {
			return fmt.Errorf("locate takes an annotation path and at least one position, but got %v", argv)
		}
		return locate(vcontext.Background(), env.Stdin, env.Stdout, flags, argv[0], argv[1:])
	})
	return cmd
}

func newCmdRoot() *cmdline.Command {
	return &cmdline.Command{
		Name:     "bio-genefeat",
		Short:    "Derive exon, CDS, and intron regions of transcripts from gene annotations",
		LookPath: false,
		Children: []*cmdline.Command{
			newCmdResolve(genefeat.ExonMode, "Write the merged exons of each transcript"),
			newCmdResolve(genefeat.CDSMode, "Write the frame-corrected coding regions of each transcript"),
			newCmdResolve(genefeat.FeatureMode, "Write the coding regions, introns, and exons of each transcript"),
			newCmdLocate(),
		},
	}
}

func main() {
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(newCmdRoot())
}
