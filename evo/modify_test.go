// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package evo

import (
	"bytes"
	"context"
	"encoding/binary"
	"strings"
	"testing"

	"go.chromium.org/luci/common/logging/memlogger"

	. "github.com/smartystreets/goconvey/convey"
	. "go.chromium.org/luci/common/testing/assertions"

	"github.com/EVO-OS/evo/evo/evodata"
	"github.com/EVO-OS/evo/evo/evodata/meta"
)

func directives(s string) []meta.Directive {
	ds, err := meta.ParseDirectives(strings.NewReader(s))
	if err != nil {
		panic(err)
	}
	return ds
}

// seal appends a footer for buf.
func seal(buf []byte) []byte {
	return binary.LittleEndian.AppendUint32(buf, evodata.ChecksumOf(buf))
}

func TestModify(t *testing.T) {
	t.Parallel()

	Convey("Modify", t, func() {
		ctx := memlogger.Use(context.Background())
		payload := []byte("some payload bytes")
		src := mkContainer(ctx, payload, WithOverrides(&meta.Overrides{
			Name:                   strp("orig"),
			Maintainer:             strp("someone"),
			Dependencies:           []string{"libc"},
			SupportedArchitectures: []string{"arm64-v8a"},
			MinOSVersion:           strp("9.0"),
		}))
		origSrc := append([]byte(nil), src...)

		modify := func(src []byte, changes string) (*ModifyResult, []byte) {
			out := &bytes.Buffer{}
			res, err := Modify(ctx, out, bytes.NewReader(src), directives(changes))
			So(err, ShouldBeNil)
			return res, out.Bytes()
		}

		Convey("changes only what it is told to", func() {
			res, out := modify(src, "name=renamed\ninstalled_size=2048\nbogus=1\n")
			So(res.Ignored, ShouldResemble, []string{"bogus"})
			So(hasWarning(ctx, "ignoring unknown keys: bogus"), ShouldBeTrue)
			So(src, ShouldResemble, origSrc)

			c, err := Open(bytes.NewReader(out))
			So(err, ShouldBeNil)
			So(c.Metadata.Name, ShouldEqual, "renamed")
			So(c.Metadata.InstalledSize, ShouldEqual, 2048)
			So(c.Metadata.Maintainer, ShouldEqual, "someone")
			So(c.Metadata.Dependencies.Items(), ShouldResemble, []string{"libc"})
			So(c.Metadata.SupportedArchitectures.Items(), ShouldResemble, []string{"arm64-v8a"})
			So(c.Metadata.MinOSVersion, ShouldEqual, "9.0")

			Convey("payload and header survive", func() {
				So(out[:evodata.HeaderSize], ShouldResemble, src[:evodata.HeaderSize])
				So(len(out), ShouldEqual, len(src))
				So(out[evodata.HeaderSize+meta.Size:len(out)-4], ShouldResemble, payload)
			})

			Convey("checksum is recomputed", func() {
				So(res.OldChecksum, ShouldEqual, binary.LittleEndian.Uint32(src[len(src)-4:]))
				So(res.Checksum, ShouldNotEqual, res.OldChecksum)
				report, err := Inspect(ctx, bytes.NewReader(out))
				So(err, ShouldBeNil)
				So(report.Status(), ShouldEqual, StatusPassed)
			})
		})

		Convey("no changes reproduces the input", func() {
			res, out := modify(src, "")
			So(out, ShouldResemble, src)
			So(res.Checksum, ShouldEqual, res.OldChecksum)
		})

		Convey("header is copied verbatim", func() {
			old := append([]byte(nil), src...)
			binary.LittleEndian.PutUint32(old[8:], 5)
			_, out := modify(old, "name=x\n")
			So(binary.LittleEndian.Uint32(out[8:]), ShouldEqual, 5)
		})

		Convey("metadata extension survives", func() {
			ext := []byte("future fields")
			grown := append([]byte(nil), src[:evodata.HeaderSize+meta.Size]...)
			grown = append(grown, ext...)
			grown = append(grown, payload...)
			binary.LittleEndian.PutUint32(grown[12:], uint32(meta.Size+len(ext)))
			grown = seal(grown)

			c, err := Open(bytes.NewReader(grown))
			So(err, ShouldBeNil)
			So(c.Extension, ShouldResemble, ext)
			So(c.PayloadSize(), ShouldEqual, len(payload))

			_, out := modify(grown, "version=3\n")
			start := evodata.HeaderSize + meta.Size
			So(out[start:start+len(ext)], ShouldResemble, ext)
			So(out[start+len(ext):len(out)-4], ShouldResemble, payload)
		})

		Convey("bad source", func() {
			bad := append([]byte(nil), src...)
			bad[0] = 'X'
			_, err := Modify(ctx, &bytes.Buffer{}, bytes.NewReader(bad), nil)
			So(err, ShouldErrLike, "bad magic")
			So(evodata.IsFormatError(err), ShouldBeTrue)
		})
	})
}
