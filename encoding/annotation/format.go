package annotation

import (
	"fmt"
	"strings"

	"github.com/grailbio/genefeat/genefeat"
)

// Format identifies an input annotation format.
type Format int

const (
	// GFF is GFF2: the whole 9th column is the group key.
	GFF Format = iota + 1
	// GTF is GFF2 with attribute-valued 9th column.
	GTF
	// BED is BED12.
	BED
)

var formatNames = map[Format]string{
	GFF: "gff",
	GTF: "gtf",
	BED: "bed",
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return "unknown"
}

// ParseFormat converts "bed", "gff", or "gtf" to a Format.  Any other value
// is a genefeat.ConfigurationError.
func ParseFormat(s string) (Format, error) {
	for f, name := range formatNames {
		if s == name {
			return f, nil
		}
	}
	return 0, &genefeat.Error{
		Kind: genefeat.ConfigurationError,
		Msg:  fmt.Sprintf("format %q not in %s", s, "gff,gtf,bed"),
	}
}

// ResolverOpts adjusts resolver options for input in format f.
func (f Format) ResolverOpts(opts genefeat.Opts) genefeat.Opts {
	if f == BED {
		opts.DeriveIntrons = true
	}
	return opts
}

// KeyFunc reduces the raw group column of a GFF/GTF line to a group key.
type KeyFunc func(rawGroup string) string

// FirstToken returns everything before the first semicolon of rawGroup.  It
// is the default KeyFunc for GTF, e.g. `gene_id "ENSG1"; transcript_id "T1";`
// yields `gene_id "ENSG1"`.
func FirstToken(rawGroup string) string {
	if i := strings.IndexByte(rawGroup, ';'); i >= 0 {
		return rawGroup[:i]
	}
	return rawGroup
}

// WholeField returns rawGroup unchanged.  It is the default KeyFunc for GFF.
func WholeField(rawGroup string) string {
	return rawGroup
}

// AttributeKey returns a KeyFunc that extracts the value of the given
// attribute, e.g. AttributeKey("gene_id") groups GTF lines by gene instead of
// by their first attribute.  Lines lacking the attribute fall back to
// FirstToken.
func AttributeKey(tag string) KeyFunc {
	return func(rawGroup string) string {
		if v, ok := attributeValue(rawGroup, tag); ok {
			return v
		}
		return FirstToken(rawGroup)
	}
}

// attributeValue scans a GTF (tag "value"; ...) or GFF3 (tag=value;...)
// attribute column for tag.
func attributeValue(attrs, tag string) (string, bool) {
	for _, field := range strings.Split(attrs, ";") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		sep := strings.IndexAny(field, " =")
		if sep < 0 || field[:sep] != tag {
			continue
		}
		return strings.Trim(strings.TrimSpace(field[sep+1:]), "\""), true
	}
	return "", false
}

// Opts controls how annotation files are read.
type Opts struct {
	Format Format
	// KeyFunc overrides the group key extraction of GFF/GTF input.  Nil
	// means FirstToken for GTF and WholeField for GFF.  It is not used for
	// BED, where the name column is the key.
	KeyFunc KeyFunc
}

func (o Opts) keyFunc() KeyFunc {
	switch {
	case o.KeyFunc != nil:
		return o.KeyFunc
	case o.Format == GTF:
		return FirstToken
	}
	return WholeField
}

// GuessFormat guesses the format of path from its suffix, ignoring a trailing
// compression suffix.  It returns 0 if the suffix is not recognized.
func GuessFormat(path string) Format {
	for _, ext := range []string{".gz", ".bz2", ".zst"} {
		path = strings.TrimSuffix(path, ext)
	}
	switch {
	case strings.HasSuffix(path, ".bed"):
		return BED
	case strings.HasSuffix(path, ".gtf"):
		return GTF
	case strings.HasSuffix(path, ".gff"), strings.HasSuffix(path, ".gff3"):
		return GFF
	}
	return 0
}
