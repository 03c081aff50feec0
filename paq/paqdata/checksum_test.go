// Copyright 2025 The PAQMan Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package paqdata

import (
	"crypto/sha256"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestChecksum(t *testing.T) {
	t.Parallel()

	Convey("ChecksumScheme", t, func() {
		Convey("trailer sizes", func() {
			So(ChecksumSHA2_256.Size(), ShouldEqual, 32)
			So(ChecksumSHA2_512.Size(), ShouldEqual, 64)
			So(ChecksumBLAKE2s.Size(), ShouldEqual, 32)
			So(ChecksumBLAKE2b.Size(), ShouldEqual, 64)
			So(ChecksumSHA3_256.Size(), ShouldEqual, 32)
			So(ChecksumSHA3_512.Size(), ShouldEqual, 64)
			So(ChecksumNULL.Size(), ShouldEqual, 0)
		})

		Convey("hash agrees with crypto/sha256", func() {
			h := ChecksumSHA2_256.Hash()
			h.Write([]byte("hello world!"))
			sum := sha256.Sum256([]byte("hello world!"))
			So(h.Sum(nil), ShouldResemble, sum[:])
		})

		Convey("null hash sums to nothing", func() {
			h := ChecksumNULL.Hash()
			h.Write([]byte("hello world!"))
			So(len(h.Sum(nil)), ShouldEqual, 0)
		})

		Convey("unknown scheme", func() {
			So(ChecksumScheme(7).Valid(), ShouldNotBeNil)
			So(func() { ChecksumScheme(7).Hash() }, ShouldPanic)
		})
	})
}
