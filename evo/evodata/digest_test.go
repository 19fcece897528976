// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package evodata

import (
	"crypto/sha256"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	. "go.chromium.org/luci/common/testing/assertions"
)

func TestDigestScheme(t *testing.T) {
	t.Parallel()

	Convey("DigestScheme", t, func() {
		Convey("parse", func() {
			d, err := ParseDigestScheme("SHA256")
			So(err, ShouldBeNil)
			So(d, ShouldEqual, DigestSHA2_256)

			d, err = ParseDigestScheme("blake2b")
			So(err, ShouldBeNil)
			So(d, ShouldEqual, DigestBLAKE2b)

			_, err = ParseDigestScheme("md5")
			So(err, ShouldErrLike, `unknown digest scheme "md5"`)
			So(IsConfigError(err), ShouldBeTrue)
		})

		Convey("every scheme has a hash", func() {
			for d := range digestNames {
				So(d.Valid(), ShouldBeNil)
				if d == DigestNone {
					So(d.Hash(), ShouldBeNil)
					continue
				}
				So(d.Hash(), ShouldNotBeNil)
			}
		})

		Convey("sha256", func() {
			h := DigestSHA2_256.Hash()
			h.Write([]byte("payload"))
			want := sha256.Sum256([]byte("payload"))
			So(h.Sum(nil), ShouldResemble, want[:])
		})

		Convey("invalid", func() {
			So(DigestScheme(99).Valid(), ShouldErrLike, "unknown digest scheme 0x63")
			So(DigestScheme(99).String(), ShouldEqual, "DigestScheme(0x63)")
		})
	})
}
