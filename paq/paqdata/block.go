// Copyright 2025 The PAQMan Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package paqdata

import (
	"io"

	"github.com/pkg/errors"
)

// BlockHeader is the fixed prefix of a block, directly after the magic
// bytes. It names the codec and checksum capabilities needed to traverse
// the block; Level is recorded for display only, decoders do not need it.
type BlockHeader struct {
	Compression CompressionScheme
	Checksum    ChecksumScheme
	Level       byte
}

func (b BlockHeader) Write(w io.Writer) error {
	_, err := w.Write([]byte{byte(b.Compression), byte(b.Checksum), b.Level})
	return err
}

func (b *BlockHeader) Read(r io.Reader) error {
	var buf [3]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return corruptf("short block header: %v", err)
	}
	b.Compression = CompressionScheme(buf[0])
	b.Checksum = ChecksumScheme(buf[1])
	b.Level = buf[2]
	if err := b.Compression.Valid(); err != nil {
		return errors.Wrap(ErrCorrupt, err.Error())
	}
	if err := b.Checksum.Valid(); err != nil {
		return errors.Wrap(ErrCorrupt, err.Error())
	}
	return nil
}

// BlockWriter writes the single block of an archive: magic, header, then
// one solid compressed stream of segment records. Segments are strictly
// sequential; at most one may be open at a time.
//
// Unlike formats that buffer a block to record its compressed length up
// front, the block is terminated in-stream, so writing never buffers more
// than the codec's own window.
type BlockWriter struct {
	cw     io.WriteCloser
	csum   ChecksumScheme
	seg    *segmentWriter
	closed bool
}

// NewBlockWriter writes the archive preamble to w and opens the block's
// compressed stream. level selects effort: 0 stores (forcing
// CompressionNone), 1-5 compress with increasing effort.
func NewBlockWriter(w io.Writer, compression CompressionScheme, checksum ChecksumScheme, level int) (*BlockWriter, error) {
	if level < MinLevel || level > MaxLevel {
		return nil, errors.Errorf("compression level %d out of range [%d,%d]",
			level, MinLevel, MaxLevel)
	}
	if level == 0 {
		compression = CompressionNone
	}
	if err := compression.Valid(); err != nil {
		return nil, err
	}
	if err := checksum.Valid(); err != nil {
		return nil, err
	}
	if err := WriteMagic(w); err != nil {
		return nil, errors.Wrap(err, "writing magic")
	}
	h := BlockHeader{compression, checksum, byte(level)}
	if err := h.Write(w); err != nil {
		return nil, errors.Wrap(err, "writing block header")
	}
	cw, err := compression.Writer(w, level)
	if err != nil {
		return nil, errors.Wrap(err, "opening compressed stream")
	}
	return &BlockWriter{cw: cw, csum: checksum}, nil
}

// OpenSegment starts a new named segment; the previous segment must have
// been closed. The returned WriteCloser streams the segment's payload, and
// closing it emits the checksum trailer.
func (b *BlockWriter) OpenSegment(name string) (io.WriteCloser, error) {
	if b.closed {
		return nil, errors.New("block already closed")
	}
	if b.seg != nil && !b.seg.closed {
		return nil, errors.New("previous segment still open")
	}
	if err := CheckName(name); err != nil {
		return nil, err
	}
	if _, err := io.WriteString(b.cw, name); err != nil {
		return nil, errors.Wrapf(err, "writing segment name %q", name)
	}
	if _, err := b.cw.Write([]byte{nameTerminator}); err != nil {
		return nil, errors.Wrapf(err, "terminating segment name %q", name)
	}
	b.seg = newSegmentWriter(b.cw, b.csum)
	return b.seg, nil
}

// Close writes the block terminator and flushes the compressed stream.
// Closing with a segment still open is an error: a partial segment is a
// caller bug, not a recoverable condition.
func (b *BlockWriter) Close() error {
	if b.closed {
		return nil
	}
	if b.seg != nil && !b.seg.closed {
		return errors.New("segment still open at block close")
	}
	b.closed = true
	if _, err := b.cw.Write([]byte{nameTerminator}); err != nil {
		return errors.Wrap(err, "writing block terminator")
	}
	return errors.Wrap(b.cw.Close(), "closing compressed stream")
}

// BlockReader traverses the single block of an archive strictly in order:
// Next, then the Payload reader until io.EOF, then Next again. Reaching the
// block terminator makes Next return io.EOF.
type BlockReader struct {
	cr     io.ReadCloser
	header BlockHeader
	seg    *segmentReader
}

// NewBlockReader locates the block in r and opens its compressed stream.
// Inputs that do not start with a valid block marker fail with ErrNoBlock.
func NewBlockReader(r io.Reader) (*BlockReader, error) {
	if err := ReadMagic(r); err != nil {
		return nil, err
	}
	b := &BlockReader{}
	if err := b.header.Read(r); err != nil {
		return nil, err
	}
	cr, err := b.header.Compression.Reader(r)
	if err != nil {
		return nil, errors.Wrap(err, "opening compressed stream")
	}
	b.cr = cr
	return b, nil
}

// Header returns the block header read by NewBlockReader.
func (b *BlockReader) Header() BlockHeader { return b.header }

// Next locates the next segment and returns its stored name. It returns
// io.EOF once the block terminator is reached. The previous segment's
// payload must have been consumed through io.EOF first.
func (b *BlockReader) Next() (string, error) {
	if b.seg != nil && !b.seg.done {
		return "", errors.New("previous segment not fully consumed")
	}
	name, err := readSegmentName(byteReader{Reader: b.cr})
	if err != nil {
		return "", err
	}
	b.seg = newSegmentReader(b.cr, b.header.Checksum)
	return name, nil
}

// Payload returns the reader for the current segment's decompressed bytes.
// It reports io.EOF only after the payload is exhausted and the segment's
// trailer has been consumed and verified.
func (b *BlockReader) Payload() io.Reader { return b.seg }

// Close releases the codec. It does not verify anything: integrity is
// checked per-segment as trailers are consumed.
func (b *BlockReader) Close() error {
	return b.cr.Close()
}
