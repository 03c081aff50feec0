// Copyright 2025 The PAQMan Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package paqdata

import (
	"compress/flate"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

// CompressionScheme indicates the codec used for a block's segment stream,
// as recorded in that block's header.
type CompressionScheme byte

// These are the currently supported compression schemes.
const (
	CompressionNone CompressionScheme = iota + 1
	CompressionFlate
	CompressionLZ4
	CompressionZstd
)

// MinLevel and MaxLevel bound the effort levels accepted when writing
// a block. Level 0 means store: the block is written with CompressionNone
// regardless of the configured scheme.
const (
	MinLevel = 0
	MaxLevel = 5
)

// Levels 1..5 map onto each codec's native effort range. Index 0 is unused:
// level 0 selects CompressionNone before these tables are consulted.
var (
	flateLevels = [...]int{0, 1, 3, 5, 7, flate.BestCompression}
	lz4Levels   = [...]lz4.CompressionLevel{
		lz4.Fast, lz4.Fast, lz4.Level2, lz4.Level4, lz4.Level6, lz4.Level9,
	}
	zstdLevels = [...]zstd.EncoderLevel{
		zstd.SpeedFastest, zstd.SpeedFastest, zstd.SpeedDefault, zstd.SpeedDefault,
		zstd.SpeedBetterCompression, zstd.SpeedBestCompression,
	}
)

// Writer returns a new compressing writer for the given scheme at the given
// effort level.
func (c CompressionScheme) Writer(w io.Writer, level int) (io.WriteCloser, error) {
	if level < MinLevel || level > MaxLevel {
		return nil, errors.Errorf("compression level %d out of range [%d,%d]",
			level, MinLevel, MaxLevel)
	}
	switch c {
	case CompressionNone:
		return writeCloseHook{w, nil}, nil
	case CompressionFlate:
		return flate.NewWriter(w, flateLevels[level])
	case CompressionLZ4:
		zw := lz4.NewWriter(w)
		if err := zw.Apply(lz4.CompressionLevelOption(lz4Levels[level])); err != nil {
			return nil, err
		}
		return zw, nil
	case CompressionZstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstdLevels[level]))
	}
	return nil, c.Valid()
}

// Reader returns a new decompressing reader for the given scheme.
func (c CompressionScheme) Reader(r io.Reader) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return readCloseHook{r, nil}, nil
	case CompressionFlate:
		// byteReader keeps flate from reading past the end of the stream.
		return flate.NewReader(byteReader{Reader: r}), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	}
	return nil, c.Valid()
}

// Valid returns a nil err iff this CompressionScheme is valid.
func (c CompressionScheme) Valid() error {
	switch c {
	case CompressionNone, CompressionFlate, CompressionLZ4, CompressionZstd:
		return nil
	}
	return errors.Errorf("unknown compression scheme 0x%x", byte(c))
}

func (c CompressionScheme) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionFlate:
		return "flate"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	}
	return "invalid"
}
