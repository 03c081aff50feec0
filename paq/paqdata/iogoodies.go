// Copyright 2025 The PAQMan Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package paqdata

import "io"

type writeCloseHook struct {
	io.Writer

	clsFn func() error
}

func (c writeCloseHook) Close() error {
	if c.clsFn != nil {
		return c.clsFn()
	}
	return nil
}

type readCloseHook struct {
	io.Reader

	clsFn func() error
}

func (c readCloseHook) Close() error {
	if c.clsFn != nil {
		return c.clsFn()
	}
	return nil
}

// byteReader adapts an io.Reader into an io.ByteReader that never reads
// ahead, which both uvarint decoding and the flate decompressor need to
// stay exactly positioned in the stream.
type byteReader struct {
	io.Reader
	buf [1]byte
}

func (b byteReader) ReadByte() (byte, error) {
	_, err := io.ReadFull(b.Reader, b.buf[:])
	return b.buf[0], err
}
