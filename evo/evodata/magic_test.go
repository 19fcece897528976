// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package evodata

import (
	"bytes"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	. "go.chromium.org/luci/common/testing/assertions"
)

func TestHeader(t *testing.T) {
	t.Parallel()

	Convey("Header", t, func() {
		h := Header{Version: Version, MetadataSize: 36272, DataSize: 0x0102030405}

		Convey("write", func() {
			buf := &bytes.Buffer{}
			So(h.Write(buf), ShouldBeNil)
			So(buf.Bytes(), ShouldResemble, []byte{
				'E', 'V', 'O', 'F', 'I', 'L', 'E', 0, // magic
				1, 0, 0, 0, // version
				0xb0, 0x8d, 0, 0, // metadata size
				5, 4, 3, 2, 1, 0, 0, 0, // data size
			})
		})

		Convey("read", func() {
			buf, err := h.MarshalBinary()
			So(err, ShouldBeNil)

			Convey("good", func() {
				got := Header{}
				So(got.Read(bytes.NewReader(buf)), ShouldBeNil)
				So(got, ShouldResemble, h)
			})

			Convey("any version is accepted", func() {
				buf[8] = 7
				got := Header{}
				So(got.Read(bytes.NewReader(buf)), ShouldBeNil)
				So(got.Version, ShouldEqual, 7)
			})

			Convey("bad magic", func() {
				copy(buf, "PK\x03\x04")
				err := (&Header{}).Read(bytes.NewReader(buf))
				So(err, ShouldErrLike, `bad magic: "PK\x03\x04ILE\x00"`)
				So(IsFormatError(err), ShouldBeTrue)
			})

			Convey("magic must be NUL terminated", func() {
				buf[7] = 'S'
				err := (&Header{}).Read(bytes.NewReader(buf))
				So(IsFormatError(err), ShouldBeTrue)
			})

			Convey("short read", func() {
				err := (&Header{}).Read(bytes.NewReader(buf[:10]))
				So(err, ShouldErrLike, "truncated header")
				So(IsFormatError(err), ShouldBeTrue)
				So(IsIOError(err), ShouldBeFalse)
			})

			Convey("empty", func() {
				err := (&Header{}).Read(bytes.NewReader(nil))
				So(IsFormatError(err), ShouldBeTrue)
			})
		})
	})
}
