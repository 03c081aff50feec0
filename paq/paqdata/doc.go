// Copyright 2025 The PAQMan Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

// Package paqdata implements IO routines for reading and writing the pieces
// of the PAQMan archive format: the 'magic' bytes, the block header, and the
// segment records (name, chunked payload, checksum trailer) carried inside
// a block's compressed stream.
package paqdata
