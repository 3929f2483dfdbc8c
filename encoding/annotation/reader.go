package annotation

import (
	"bufio"
	"context"
	"io"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/genefeat/genefeat"
	"github.com/klauspost/compress/gzip"
)

// NewSource returns a record stream over r.  Gzip-compressed input is
// detected by its magic number and decompressed transparently.
func NewSource(r io.Reader, opts Opts) (genefeat.Source, error) {
	if _, ok := formatNames[opts.Format]; !ok {
		return nil, errors.E(errors.Invalid, "annotation.NewSource: unknown format", opts.Format.String())
	}
	r, err := maybeGunzip(r)
	if err != nil {
		return nil, err
	}
	if opts.Format == BED {
		return newBEDSource(r), nil
	}
	return newGFFSource(r, opts), nil
}

// maybeGunzip wraps r in a gzip reader if r starts with the gzip magic
// number.
func maybeGunzip(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, 64<<10)
	magic, err := br.Peek(2)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		return gzip.NewReader(br)
	}
	return br, nil
}

// FileSource is a record stream over an annotation file.  It must be closed
// after use.
type FileSource struct {
	genefeat.Source
	in file.File
}

// Open opens the annotation file at path, which may be any path supported by
// grailbio/base/file.  Files with a compression suffix (.gz, .bz2, .zst) are
// decompressed.
func Open(ctx context.Context, path string, opts Opts) (*FileSource, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "annotation.Open", path)
	}
	fs := &FileSource{in: in}
	var r io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(r, in.Name()); u != nil {
		r = u
	}
	if fs.Source, err = NewSource(r, opts); err != nil {
		_ = fs.Close(ctx)
		return nil, errors.E(err, "annotation.Open", path)
	}
	log.Debug.Printf("annotation: reading %s as %v", path, opts.Format)
	return fs, nil
}

// Close closes the underlying file.
func (fs *FileSource) Close(ctx context.Context) error {
	if err := fs.in.Close(ctx); err != nil {
		return errors.E(err, "annotation: close", fs.in.Name())
	}
	return nil
}
