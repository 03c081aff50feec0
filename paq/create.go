// Copyright 2025 The PAQMan Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

// Package paq packs file trees into single-block archives and lists or
// extracts them again. See the parent package's documentation for the
// format itself; the wire codecs live in paq/paqdata.
package paq

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/CEO-netizen/paqman/paq/paqdata"
)

// DefaultChunkSize is the buffer size used to stream payloads through the
// compression engine. It is a tuning knob, not a format parameter: the two
// sides of a round trip need not agree on it, since segment extent is
// framed per-chunk in the stream rather than assumed from buffer sizes.
const DefaultChunkSize = 1 << 20

type packOptionData struct {
	compression paqdata.CompressionScheme
	checksum    paqdata.ChecksumScheme
	chunkSize   int
}

// PackOption functions can be supplied to Pack.
type PackOption func(*packOptionData)

// WithCompression selects the codec backing the archive's block. Level 0
// overrides it with the store scheme.
func WithCompression(kind paqdata.CompressionScheme) PackOption {
	return func(o *packOptionData) {
		o.compression = kind
	}
}

// WithChecksum selects the scheme used for segment trailers.
func WithChecksum(kind paqdata.ChecksumScheme) PackOption {
	return func(o *packOptionData) {
		o.checksum = kind
	}
}

// WithChunkSize overrides DefaultChunkSize for this pack.
func WithChunkSize(n int) PackOption {
	return func(o *packOptionData) {
		o.chunkSize = n
	}
}

// Pack archives the file or directory tree rooted at root into out as
// a single block. level 0 stores, 1-5 compress with increasing effort;
// callers validate the range before handing it over.
//
// A directory root is walked in lexical order, making segment order
// reproducible for a given tree, and only regular files are archived:
// symlinks, devices, and other special files are skipped silently.
// Segment names are the files' forward-slash relative paths from root,
// regardless of platform. A regular-file root yields a single segment
// named after its base name.
//
// Pack streams each file through the engine in chunkSize pieces and never
// holds a whole file in memory. On error, whatever was written to out is
// not a valid archive and must be discarded by the caller; no partial
// success is defined.
func Pack(out io.Writer, root string, level int, options ...PackOption) error {
	opts := packOptionData{
		compression: paqdata.CompressionFlate,
		checksum:    paqdata.ChecksumSHA2_256,
		chunkSize:   DefaultChunkSize,
	}
	for _, o := range options {
		o(&opts)
	}
	if opts.chunkSize <= 0 {
		return errors.Errorf("invalid chunk size %d", opts.chunkSize)
	}

	info, err := os.Stat(root)
	if err != nil {
		return errors.Wrap(err, "statting root")
	}

	bw, err := paqdata.NewBlockWriter(out, opts.compression, opts.checksum, level)
	if err != nil {
		return err
	}

	buf := make([]byte, opts.chunkSize)
	switch {
	case info.IsDir():
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.Type().IsRegular() {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return errors.Wrapf(err, "relativizing %q", path)
			}
			return packFile(bw, filepath.ToSlash(rel), path, buf)
		})
	case info.Mode().IsRegular():
		err = packFile(bw, filepath.Base(root), root, buf)
	default:
		err = errors.Errorf("root %q is neither a directory nor a regular file", root)
	}
	if err != nil {
		return err
	}
	return bw.Close()
}

// packFile streams one file into a new segment.
func packFile(bw *paqdata.BlockWriter, name, path string, buf []byte) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening %q", path)
	}
	defer f.Close()

	sw, err := bw.OpenSegment(name)
	if err != nil {
		return errors.Wrapf(err, "opening segment %q", name)
	}
	if _, err := io.CopyBuffer(sw, f, buf); err != nil {
		return errors.Wrapf(err, "archiving %q", path)
	}
	return errors.Wrapf(sw.Close(), "closing segment %q", name)
}
