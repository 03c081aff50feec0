// Copyright 2025 The PAQMan Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package paqdata

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"

	"github.com/pkg/errors"
)

// ChecksumScheme selects the hash behind every segment trailer in a block,
// as recorded in that block's header. The trailer is a fixed-size record:
// its length is the hash's size, the same for every segment of the block.
type ChecksumScheme byte

// These are the available checksum algorithms for segment trailers.
const (
	ChecksumSHA2_256 ChecksumScheme = iota + 1
	ChecksumSHA2_512
	ChecksumBLAKE2s
	ChecksumBLAKE2b
	ChecksumSHA3_256
	ChecksumSHA3_512

	// Bypasses ALL checksum verification; trailers are zero bytes long.
	ChecksumNULL ChecksumScheme = 255
)

// Valid returns nil iff the ChecksumScheme is valid.
func (c ChecksumScheme) Valid() error {
	switch c {
	case ChecksumSHA2_256:
	case ChecksumSHA2_512:
	case ChecksumBLAKE2s:
	case ChecksumBLAKE2b:
	case ChecksumSHA3_256:
	case ChecksumSHA3_512:
	case ChecksumNULL:
	default:
		return errors.Errorf("unknown checksum scheme 0x%x", byte(c))
	}
	return nil
}

// nullHash is so that ChecksumScheme.Hash returns a valid hash.Hash for
// ChecksumNULL. Its sum is empty, so null trailers occupy no bytes.
type nullHash struct{}

var _ hash.Hash = nullHash{}

func (nullHash) Reset()                    {}
func (nullHash) BlockSize() int            { return 0 }
func (nullHash) Size() int                 { return 0 }
func (nullHash) Sum(buf []byte) []byte     { return buf }
func (nullHash) Write([]byte) (int, error) { return 0, nil }

// Hash gets the Hash interface associated with this scheme.
func (c ChecksumScheme) Hash() hash.Hash {
	var h hash.Hash
	switch c {
	case ChecksumSHA2_256:
		h = sha256.New()
	case ChecksumSHA2_512:
		h = sha512.New()
	case ChecksumBLAKE2s:
		h, _ = blake2s.New256(nil)
	case ChecksumBLAKE2b:
		h, _ = blake2b.New512(nil)
	case ChecksumSHA3_256:
		h = sha3.New256()
	case ChecksumSHA3_512:
		h = sha3.New512()
	case ChecksumNULL:
		h = nullHash{}
	}
	if h == nil {
		panic(c.Valid())
	}
	return h
}

// Size is the trailer length in bytes for this scheme.
func (c ChecksumScheme) Size() int { return c.Hash().Size() }

func (c ChecksumScheme) String() string {
	switch c {
	case ChecksumSHA2_256:
		return "sha256"
	case ChecksumSHA2_512:
		return "sha512"
	case ChecksumBLAKE2s:
		return "blake2s"
	case ChecksumBLAKE2b:
		return "blake2b"
	case ChecksumSHA3_256:
		return "sha3-256"
	case ChecksumSHA3_512:
		return "sha3-512"
	case ChecksumNULL:
		return "null"
	}
	return "invalid"
}
