// Copyright 2025 The PAQMan Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package paqdata

import (
	"fmt"

	"github.com/pkg/errors"
)

// MaxNameLen bounds the byte length of a segment name. Readers give up with
// ErrNameTooLong if no terminator shows up within this many bytes, so a
// corrupt or adversarial archive cannot force unbounded buffering.
const MaxNameLen = 4096

var (
	// ErrNoBlock indicates the input does not begin with a valid block
	// marker: it is not a PAQMan archive (or its head is damaged).
	ErrNoBlock = errors.New("no block header found")

	// ErrNameTooLong indicates a segment name exceeded MaxNameLen, either
	// while packing or while scanning for a terminator during reads.
	ErrNameTooLong = errors.New("segment name too long")

	// ErrCorrupt indicates a decode failure mid-stream: truncated records,
	// an unknown scheme byte, a codec error, or a trailer mismatch.
	ErrCorrupt = errors.New("corrupt archive")
)

// corruptf reports a framing or decode failure as ErrCorrupt with context.
func corruptf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrCorrupt, format, args...)
}

// ErrMismatchedChecksum is returned while reading a segment whose trailer
// does not match the payload that was streamed.
type ErrMismatchedChecksum struct {
	Scheme  ChecksumScheme
	Nominal []byte
	Actual  []byte
}

func (e *ErrMismatchedChecksum) Error() string {
	return fmt.Sprintf("mismatched checksum (%s): %x expected %x", e.Scheme,
		e.Nominal, e.Actual)
}

func (e *ErrMismatchedChecksum) Unwrap() error { return ErrCorrupt }
