// Copyright 2025 The PAQMan Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package paqdata

import (
	"io"

	"github.com/pkg/errors"
)

// Magic is the magic bytes which appear at the beginning of an archive.
const Magic = "PAQ"

// Version is the version of the archive format.
const Version byte = 1

var magicVer = append([]byte(Magic), Version)

// WriteMagic writes PAQ+VERSION to the writer.
func WriteMagic(w io.Writer) error {
	_, err := w.Write(magicVer)
	return err
}

// ReadMagic consumes the magic bytes from the reader. A short read, a
// mismatched marker, or a version newer than this package writes are all
// reported as ErrNoBlock: the input is not an archive we can open.
func ReadMagic(r io.Reader) error {
	buf := make([]byte, len(magicVer))
	if _, err := io.ReadFull(r, buf); err != nil {
		return errors.Wrapf(ErrNoBlock, "reading magic: %v", err)
	}
	if string(buf[:len(Magic)]) != Magic {
		return errors.Wrapf(ErrNoBlock, "bad magic %q", buf[:len(Magic)])
	}
	if buf[len(Magic)] > Version {
		return errors.Wrapf(ErrNoBlock, "version %d > %d", buf[len(Magic)], Version)
	}
	return nil
}
