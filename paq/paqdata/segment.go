// Copyright 2025 The PAQMan Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package paqdata

import (
	"bytes"
	"encoding/binary"
	"hash"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// nameTerminator ends a segment name. Valid names never contain it, and
// names are never empty, so a terminator in the first position doubles as
// the block terminator.
const nameTerminator = 0x00

// CheckName reports whether name may be stored as a segment name.
func CheckName(name string) error {
	if name == "" {
		return errors.New("empty segment name")
	}
	if len(name) > MaxNameLen {
		return errors.Wrapf(ErrNameTooLong, "%d bytes", len(name))
	}
	if strings.IndexByte(name, nameTerminator) >= 0 {
		return errors.Errorf("segment name %q contains a NUL byte", name)
	}
	return nil
}

// readSegmentName scans bytes up to the name terminator, one at a time so
// the scan never consumes past it. A terminator in the first position is
// the block terminator, reported as io.EOF.
func readSegmentName(br io.ByteReader) (string, error) {
	var buf []byte
	for {
		c, err := br.ReadByte()
		if err != nil {
			return "", corruptf("truncated segment name: %v", err)
		}
		if c == nameTerminator {
			if len(buf) == 0 {
				return "", io.EOF
			}
			return string(buf), nil
		}
		if len(buf) == MaxNameLen {
			return "", errors.Wrapf(ErrNameTooLong,
				"no terminator within %d bytes", MaxNameLen)
		}
		buf = append(buf, c)
	}
}

// segmentWriter frames a segment's payload as uvarint-length-prefixed
// chunks and accumulates the checksum trailer as bytes pass through.
type segmentWriter struct {
	w      io.Writer
	h      hash.Hash
	closed bool
	lenBuf [binary.MaxVarintLen64]byte
}

func newSegmentWriter(w io.Writer, c ChecksumScheme) *segmentWriter {
	return &segmentWriter{w: w, h: c.Hash()}
}

// Write emits one chunk per call; callers choose the chunk granularity.
// A zero-length Write emits nothing (the empty chunk is the payload
// terminator, written by Close).
func (s *segmentWriter) Write(p []byte) (int, error) {
	if s.closed {
		return 0, errors.New("segment already closed")
	}
	if len(p) == 0 {
		return 0, nil
	}
	n := binary.PutUvarint(s.lenBuf[:], uint64(len(p)))
	if _, err := s.w.Write(s.lenBuf[:n]); err != nil {
		return 0, errors.Wrap(err, "writing chunk length")
	}
	if _, err := s.w.Write(p); err != nil {
		return 0, errors.Wrap(err, "writing chunk")
	}
	s.h.Write(p)
	return len(p), nil
}

// Close ends the payload and writes the checksum trailer. The segment is
// only a complete record once Close returns nil.
func (s *segmentWriter) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if _, err := s.w.Write([]byte{0}); err != nil {
		return errors.Wrap(err, "ending payload")
	}
	if sum := s.h.Sum(nil); len(sum) > 0 {
		if _, err := s.w.Write(sum); err != nil {
			return errors.Wrap(err, "writing trailer")
		}
	}
	return nil
}

// segmentReader yields a segment's decompressed payload. When the payload
// is exhausted it consumes and verifies the fixed-size trailer, then
// reports io.EOF; only at that point is the stream positioned at the next
// segment record.
type segmentReader struct {
	r         io.Reader
	scheme    ChecksumScheme
	h         hash.Hash
	remaining uint64
	done      bool
}

func newSegmentReader(r io.Reader, c ChecksumScheme) *segmentReader {
	return &segmentReader{r: r, scheme: c, h: c.Hash()}
}

func (s *segmentReader) Read(p []byte) (int, error) {
	if s.done {
		return 0, io.EOF
	}
	for s.remaining == 0 {
		n, err := binary.ReadUvarint(byteReader{Reader: s.r})
		if err != nil {
			return 0, corruptf("reading chunk length: %v", err)
		}
		if n == 0 {
			return 0, s.finish()
		}
		s.remaining = n
	}
	if uint64(len(p)) > s.remaining {
		p = p[:s.remaining]
	}
	n, err := io.ReadFull(s.r, p)
	s.h.Write(p[:n])
	s.remaining -= uint64(n)
	if err != nil {
		return n, corruptf("truncated chunk: %v", err)
	}
	return n, nil
}

// finish consumes the trailer and verifies it against the streamed payload.
// On success it returns io.EOF, the segment's terminal state.
func (s *segmentReader) finish() error {
	s.done = true
	nominal := make([]byte, s.scheme.Size())
	if _, err := io.ReadFull(s.r, nominal); err != nil {
		return corruptf("truncated trailer: %v", err)
	}
	if actual := s.h.Sum(nil); !bytes.Equal(nominal, actual) {
		return &ErrMismatchedChecksum{Scheme: s.scheme, Nominal: nominal, Actual: actual}
	}
	return io.EOF
}
