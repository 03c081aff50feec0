// Copyright 2025 The PAQMan Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package paqdata

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"io"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// writeTestBlock packs the given name/payload pairs into a block.
func writeTestBlock(compression CompressionScheme, checksum ChecksumScheme, level int, segments ...[2]string) []byte {
	buf := &bytes.Buffer{}
	bw, err := NewBlockWriter(buf, compression, checksum, level)
	So(err, ShouldBeNil)
	for _, seg := range segments {
		sw, err := bw.OpenSegment(seg[0])
		So(err, ShouldBeNil)
		_, err = io.WriteString(sw, seg[1])
		So(err, ShouldBeNil)
		So(sw.Close(), ShouldBeNil)
	}
	So(bw.Close(), ShouldBeNil)
	return buf.Bytes()
}

// readTestBlock traverses a block, returning names and payloads in order.
func readTestBlock(arch []byte) (segments [][2]string, err error) {
	br, err := NewBlockReader(bytes.NewReader(arch))
	if err != nil {
		return nil, err
	}
	for {
		name, err := br.Next()
		if err == io.EOF {
			return segments, br.Close()
		}
		if err != nil {
			return segments, err
		}
		payload := &bytes.Buffer{}
		if _, err := io.Copy(payload, br.Payload()); err != nil {
			return segments, err
		}
		segments = append(segments, [2]string{name, payload.String()})
	}
}

func TestBlock(t *testing.T) {
	t.Parallel()

	Convey("Block", t, func() {
		Convey("stored block has the documented layout", func() {
			arch := writeTestBlock(CompressionFlate, ChecksumNULL, 0, [2]string{"a", "hi"})
			So(arch, ShouldResemble, []byte{
				'P', 'A', 'Q', 1, // magic
				1, 255, 0, // store (level 0 forces it), null checksum, level
				'a', 0, // segment name
				2, 'h', 'i', // one payload chunk
				0, // end of payload
				0, // block terminator
			})
		})

		Convey("round trip", func() {
			arch := writeTestBlock(CompressionFlate, ChecksumSHA2_256, 5,
				[2]string{"a.txt", "hello"}, [2]string{"sub/b.txt", "world"})
			segments, err := readTestBlock(arch)
			So(err, ShouldBeNil)
			So(segments, ShouldResemble, [][2]string{
				{"a.txt", "hello"}, {"sub/b.txt", "world"},
			})
		})

		Convey("empty block round trips", func() {
			segments, err := readTestBlock(writeTestBlock(CompressionFlate, ChecksumSHA2_256, 5))
			So(err, ShouldBeNil)
			So(segments, ShouldBeNil)
		})

		Convey("empty payload round trips", func() {
			segments, err := readTestBlock(writeTestBlock(CompressionZstd, ChecksumSHA2_256, 3,
				[2]string{"empty", ""}))
			So(err, ShouldBeNil)
			So(segments, ShouldResemble, [][2]string{{"empty", ""}})
		})

		Convey("writer state machine", func() {
			bw, err := NewBlockWriter(&bytes.Buffer{}, CompressionFlate, ChecksumSHA2_256, 1)
			So(err, ShouldBeNil)
			sw, err := bw.OpenSegment("a")
			So(err, ShouldBeNil)

			Convey("cannot open a segment over an open one", func() {
				_, err := bw.OpenSegment("b")
				So(err, ShouldNotBeNil)
			})

			Convey("cannot close the block around an open segment", func() {
				So(bw.Close(), ShouldNotBeNil)
			})

			Convey("cannot write to a closed segment", func() {
				So(sw.Close(), ShouldBeNil)
				_, err := sw.Write([]byte("x"))
				So(err, ShouldNotBeNil)
			})

			Convey("cannot open segments on a closed block", func() {
				So(sw.Close(), ShouldBeNil)
				So(bw.Close(), ShouldBeNil)
				_, err := bw.OpenSegment("b")
				So(err, ShouldNotBeNil)
			})
		})

		Convey("name validation", func() {
			bw, err := NewBlockWriter(&bytes.Buffer{}, CompressionFlate, ChecksumSHA2_256, 1)
			So(err, ShouldBeNil)

			_, err = bw.OpenSegment("")
			So(err, ShouldNotBeNil)
			_, err = bw.OpenSegment("bad\x00name")
			So(err, ShouldNotBeNil)
			_, err = bw.OpenSegment(strings.Repeat("a", MaxNameLen+1))
			So(errors.Is(err, ErrNameTooLong), ShouldBeTrue)

			// Exactly MaxNameLen is still fine.
			sw, err := bw.OpenSegment(strings.Repeat("a", MaxNameLen))
			So(err, ShouldBeNil)
			So(sw.Close(), ShouldBeNil)
		})

		Convey("reader rejects out-of-order traversal", func() {
			arch := writeTestBlock(CompressionFlate, ChecksumSHA2_256, 1, [2]string{"a", "hello"})
			br, err := NewBlockReader(bytes.NewReader(arch))
			So(err, ShouldBeNil)
			_, err = br.Next()
			So(err, ShouldBeNil)
			_, err = br.Next() // payload not consumed yet
			So(err, ShouldNotBeNil)
		})

		Convey("corruption", func() {
			// Stored archives make byte surgery deterministic.
			arch := writeTestBlock(CompressionFlate, ChecksumSHA2_256, 0,
				[2]string{"a", "hello"})

			Convey("not an archive", func() {
				_, err := readTestBlock([]byte("garbage that is long enough"))
				So(errors.Is(err, ErrNoBlock), ShouldBeTrue)
			})

			Convey("truncated header", func() {
				_, err := readTestBlock(arch[:5])
				So(errors.Is(err, ErrCorrupt), ShouldBeTrue)
			})

			Convey("unknown scheme bytes", func() {
				bad := append([]byte(nil), arch...)
				bad[4] = 0x77
				_, err := readTestBlock(bad)
				So(errors.Is(err, ErrCorrupt), ShouldBeTrue)
			})

			Convey("truncated mid-payload", func() {
				_, err := readTestBlock(arch[:11])
				So(errors.Is(err, ErrCorrupt), ShouldBeTrue)
			})

			Convey("flipped payload byte fails the trailer", func() {
				bad := append([]byte(nil), arch...)
				i := bytes.Index(bad, []byte("hello"))
				So(i, ShouldBeGreaterThan, 0)
				bad[i] ^= 0xff
				_, err := readTestBlock(bad)
				So(errors.Is(err, ErrCorrupt), ShouldBeTrue)
				mismatch := &ErrMismatchedChecksum{}
				So(errors.As(err, &mismatch), ShouldBeTrue)
				sum := sha256.Sum256([]byte("hello"))
				So(mismatch.Actual, ShouldNotResemble, sum[:])
			})

			Convey("unterminated name", func() {
				bad := append([]byte(nil), arch[:7]...)
				bad = append(bad, bytes.Repeat([]byte{'a'}, MaxNameLen+1)...)
				_, err := readTestBlock(bad)
				So(errors.Is(err, ErrNameTooLong), ShouldBeTrue)
			})
		})
	})
}
