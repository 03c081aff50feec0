// Copyright 2025 The PAQMan Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

// Package paqman implements a simple 'solid' single-block archive format.
// A PAQMan archive packs one or more files (optionally an entire directory
// tree) into a single compressed block which can later be listed or fully
// extracted. All file data shares one compression stream, allowing better
// ratios for archives of similar files, at the cost of random access: an
// individual entry can only be reached by decoding everything before it.
//
// The format is deliberately basic:
//   - file magic header ("PAQ" + byte(VERSION)). VERSION currently == 1.
//   - block header: compression scheme, checksum scheme, effort level.
//   - one compressed stream holding the segment records.
//
// Inside the decompressed stream, each segment is:
//   - the entry's relative path (forward slashes), terminated by a 0x00
//     byte which never appears in a valid path;
//   - the entry's payload as uvarint-length-prefixed chunks, ended by a
//     zero-length chunk;
//   - a fixed-size checksum trailer covering the raw payload.
//
// A single 0x00 byte where the next segment's name would begin terminates
// the block; names are non-empty, so the two cannot be confused. There is
// no table of contents and no stored compressed lengths: segment boundaries
// are discovered only by decoding the stream, which is what lets both
// packing and extraction run fully streamed with bounded memory.
//
// The format does not record file ownership, modes, or timestamps, and does
// not archive symlinks or other special files. In this burgeoning age of
// cross-platform artifact shipping, porting user ids and mode flags between
// systems causes more problems than it solves.
package paqman
