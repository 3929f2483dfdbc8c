package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/genefeat/genefeat"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"v.io/x/lib/cmdline"
)

const testGTF = `# test annotation
chr1	test	exon	1	10	.	+	.	transcript_id "T1"; gene_id "G1";
chr1	test	CDS	3	10	.	+	0	transcript_id "T1"; gene_id "G1";
chr1	test	intron	11	20	.	+	.	transcript_id "T1"; gene_id "G1";
chr1	test	exon	21	30	.	+	.	transcript_id "T1"; gene_id "G1";
chr1	test	CDS	21	27	.	+	0	transcript_id "T1"; gene_id "G1";
chr1	test	exon	101	150	.	-	.	transcript_id "T2"; gene_id "G2";
`

// run runs bio-genefeat with args and returns its stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	env := &cmdline.Env{
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
		Vars:   map[string]string{},
	}
	err := cmdline.ParseAndRun(newCmdRoot(), env, args)
	return stdout.String(), err
}

func writeGTF(t *testing.T) (string, func()) {
	dir, cleanup := testutil.TempDir(t, "", "genefeat")
	path := filepath.Join(dir, "genes.gtf")
	assert.NoError(t, os.WriteFile(path, []byte(testGTF), 0644))
	return path, cleanup
}

func TestFeatures(t *testing.T) {
	path, cleanup := writeGTF(t)
	defer cleanup()

	out, err := run(t, "", "features", path)
	assert.NoError(t, err)
	expect.EQ(t, out, ""+
		"chr1\t2\t10\tT1\t0\t+\tCDS\n"+
		"chr1\t20\t27\tT1\t0\t+\tCDS\n"+
		"chr1\t10\t20\tT1\t0\t+\tintron\n"+
		"chr1\t0\t10\tT1\t0\t+\texon\n"+
		"chr1\t20\t30\tT1\t0\t+\texon\n"+
		"chr1\t100\t150\tT2\t0\t-\texon\n")

	out, err = run(t, "", "exons", path)
	assert.NoError(t, err)
	expect.EQ(t, out, ""+
		"chr1\t0\t10\tT1\t0\t+\texon\n"+
		"chr1\t20\t30\tT1\t0\t+\texon\n"+
		"chr1\t100\t150\tT2\t0\t-\texon\n")

	out, err = run(t, "", "cds", path)
	assert.NoError(t, err)
	expect.EQ(t, out, ""+
		"chr1\t2\t10\tT1\t0\t+\tCDS\n"+
		"chr1\t20\t27\tT1\t0\t+\tCDS\n")
}

func TestRegionAndOutputFile(t *testing.T) {
	path, cleanup := writeGTF(t)
	defer cleanup()
	outPath := filepath.Join(filepath.Dir(path), "out.bed")

	out, err := run(t, "", "features", "-region", "chr1:1-5", "-out-format", "bed12", "-out", outPath, path)
	assert.NoError(t, err)
	expect.EQ(t, out, "")
	data, err := os.ReadFile(outPath)
	assert.NoError(t, err)
	expect.EQ(t, string(data), "chr1\t0\t30\tT1\t0\t+\t2\t27\t0\t2\t10,10\t0,20\n")

	out, err = run(t, "", "exons", "-region", "chr1:120", path)
	assert.NoError(t, err)
	expect.EQ(t, out, "chr1\t100\t150\tT2\t0\t-\texon\n")

	out, err = run(t, "", "exons", "-region", "chr2", path)
	assert.NoError(t, err)
	expect.EQ(t, out, "")
}

func TestStdinAndOptions(t *testing.T) {
	out, err := run(t, testGTF, "exons", "-format", "gtf", "-key-attr", "gene_id", "-")
	assert.NoError(t, err)
	expect.EQ(t, out, ""+
		"chr1\t0\t10\tG1\t0\t+\texon\n"+
		"chr1\t20\t30\tG1\t0\t+\texon\n"+
		"chr1\t100\t150\tG2\t0\t-\texon\n")

	out, err = run(t, testGTF, "exons", "-format", "gtf", "-key-attr", "", "-")
	assert.NoError(t, err)
	expect.True(t, strings.HasPrefix(out, "chr1\t0\t10\ttranscript_id \"T1\"\t0\t+\texon\n"), out)

	// Without exon subtraction the explicit intron is reported as is.
	out, err = run(t, testGTF, "features", "-format", "gtf", "-intron-subtract", "none", "-out-format", "bed", "-")
	assert.NoError(t, err)
	expect.True(t, strings.Contains(out, "chr1\t10\t20\tT1\t0\t+\tintron\n"), out)

	_, err = run(t, testGTF, "exons", "-")
	expect.True(t, err != nil && strings.Contains(err.Error(), "-format"))

	_, err = run(t, testGTF, "features", "-format", "gtf", "-intron-subtract", "introns", "-")
	expect.True(t, genefeat.IsKind(err, genefeat.ConfigurationError))

	_, err = run(t, testGTF, "features", "-format", "vcf", "-")
	expect.True(t, genefeat.IsKind(err, genefeat.ConfigurationError))

	_, err = run(t, testGTF, "features", "-format", "gtf", "-out-format", "sam", "-")
	expect.True(t, genefeat.IsKind(err, genefeat.ConfigurationError))

	_, err = run(t, testGTF, "features", "-format", "gtf", "-max-pos", "100", "-")
	expect.True(t, genefeat.IsKind(err, genefeat.CoordinateBound))

	out, err = run(t, testGTF, "features", "-format", "gtf", "-max-pos", "100", "-skip-invalid", "-")
	assert.NoError(t, err)
	expect.EQ(t, strings.Count(out, "\tT1\t"), 5)
	expect.EQ(t, strings.Count(out, "\tT2\t"), 0)
}

func TestLocate(t *testing.T) {
	path, cleanup := writeGTF(t)
	defer cleanup()

	// Output follows argument order, not position order.
	out, err := run(t, "", "locate", path, "chr1:101", "chr1:5", "chr2:1", "chr1:15", "chr1:50", "chr1:1", "chr1:5")
	assert.NoError(t, err)
	expect.EQ(t, out, ""+
		"chr1\t101\tT2\texon\tchr1:101-150\n"+
		"chr1\t5\tT1\tCDS\tchr1:3-10\n"+
		"chr2\t1\t.\t.\t.\n"+
		"chr1\t15\tT1\tintron\tchr1:11-20\n"+
		"chr1\t50\t.\t.\t.\n"+
		"chr1\t1\tT1\texon\tchr1:1-10\n"+
		"chr1\t5\tT1\tCDS\tchr1:3-10\n")

	_, err = run(t, "", "locate", path, "chr1:1-10")
	expect.True(t, err != nil)
	_, err = run(t, "", "locate", path)
	expect.True(t, err != nil)
}

func TestKeyAttrHelp(t *testing.T) {
	for _, cmd := range []*cmdline.Command{newCmdResolve(genefeat.FeatureMode, ""), newCmdLocate()} {
		f := cmd.Flags.Lookup("key-attr")
		expect.EQ(t, f.DefValue, "transcript_id")
		expect.True(t, strings.Contains(f.Usage, "first semicolon-delimited attribute token"), f.Usage)
	}
}
