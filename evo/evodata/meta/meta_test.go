// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package meta

import (
	"encoding/binary"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	. "go.chromium.org/luci/common/testing/assertions"

	"github.com/EVO-OS/evo/evo/evodata"
)

func TestLayout(t *testing.T) {
	t.Parallel()

	Convey("layout", t, func() {
		So(Size, ShouldEqual, 36272)
		So(offArchitecture, ShouldEqual, 1344)
		So(offInstalledSize, ShouldEqual, 1352)
		So(offMaintainer, ShouldEqual, 1360)
		So(offDependencies, ShouldEqual, 1616)
		So(offNumDependencies, ShouldEqual, 27216)
		So(offPackageType, ShouldEqual, 27220)
		So(offSupportedArchitectures, ShouldEqual, 27224)
		So(offNumArchitectures, ShouldEqual, 29784)
		So(offScreenWidth, ShouldEqual, 29788)
		So(offPermissions, ShouldEqual, 29796)
		So(offNumPermissions, ShouldEqual, 36196)
		So(offTargetSDKVersion, ShouldEqual, 36200)
		So(offMinOSVersion, ShouldEqual, 36204)
	})
}

func TestMetadata(t *testing.T) {
	t.Parallel()

	Convey("Metadata", t, func() {
		m := Default()
		m.Architecture = 64
		m.InstalledSize = 1 << 40
		m.PackageType = PackageMobile
		m.Dependencies.AddAll("libc", "libm")
		m.SupportedArchitectures.AddAll("arm64-v8a", "x86_64")
		m.RequiredPermissions.Add("CAMERA")
		m.MinScreen = ScreenSize{Width: 720, Height: 1280}
		m.TargetSDKVersion = 33
		m.MinOSVersion = "10.0"

		buf, err := m.MarshalBinary()
		So(err, ShouldBeNil)
		So(buf, ShouldHaveLength, Size)

		Convey("encoding", func() {
			le := binary.LittleEndian
			So(string(buf[:16]), ShouldEqual, "Default Package\x00")
			So(string(buf[offVersion:offVersion+6]), ShouldEqual, "1.0.0\x00")
			So(le.Uint32(buf[offArchitecture:]), ShouldEqual, 64)
			So(le.Uint32(buf[offArchitecture+4:]), ShouldEqual, 0)
			So(le.Uint64(buf[offInstalledSize:]), ShouldEqual, uint64(1<<40))
			So(le.Uint32(buf[offNumDependencies:]), ShouldEqual, 2)
			So(string(buf[offDependencies+DependencyLen:offDependencies+DependencyLen+5]), ShouldEqual, "libm\x00")
			So(le.Uint32(buf[offPackageType:]), ShouldEqual, 2)
			So(le.Uint32(buf[offNumArchitectures:]), ShouldEqual, 2)
			So(le.Uint32(buf[offScreenHeight:]), ShouldEqual, 1280)
			So(le.Uint32(buf[offNumPermissions:]), ShouldEqual, 1)
			So(le.Uint32(buf[offTargetSDKVersion:]), ShouldEqual, 33)
			So(buf[offEnd:], ShouldResemble, []byte{0, 0, 0, 0})
		})

		Convey("decoding", func() {
			got, err := Decode(buf)
			So(err, ShouldBeNil)
			So(got, ShouldResemble, m)
		})

		Convey("decoding ignores trailing bytes", func() {
			got, err := Decode(append(buf, 1, 2, 3))
			So(err, ShouldBeNil)
			So(got, ShouldResemble, m)
		})

		Convey("short record", func() {
			_, err := Decode(buf[:Size-1])
			So(err, ShouldErrLike, "truncated metadata")
			So(evodata.IsFormatError(err), ShouldBeTrue)
		})

		Convey("corrupt list count", func() {
			binary.LittleEndian.PutUint32(buf[offNumArchitectures:], 0xFFFFFFFF)
			binary.LittleEndian.PutUint32(buf[offNumPermissions:], MaxPermissions+1)
			got, err := Decode(buf)
			So(err, ShouldBeNil)
			So(got.SupportedArchitectures.Len(), ShouldEqual, MaxArchitectures)
			So(got.RequiredPermissions.Len(), ShouldEqual, MaxPermissions)
			So(got.RequiredPermissions.Dropped(), ShouldEqual, 1)
			So(got.Dropped(), ShouldBeGreaterThan, 1)
		})

		Convey("unterminated text", func() {
			for i := offName; i < offVersion; i++ {
				buf[i] = 'x'
			}
			got, err := Decode(buf)
			So(err, ShouldBeNil)
			So(got.Name, ShouldEqual, strings.Repeat("x", NameLen-1))
			So(got.Version, ShouldEqual, "1.0.0")
		})

		Convey("Clone is deep", func() {
			c := m.Clone()
			c.Dependencies.Add("libz")
			So(m.Dependencies.Len(), ShouldEqual, 2)
			So(c.Dependencies.Len(), ShouldEqual, 3)
		})
	})

	Convey("text truncation", t, func() {
		m := New()
		m.Name = strings.Repeat("n", 300)
		buf, err := m.MarshalBinary()
		So(err, ShouldBeNil)
		So(buf[offName+NameLen-1], ShouldEqual, 0)

		got, err := Decode(buf)
		So(err, ShouldBeNil)
		So(got.Name, ShouldHaveLength, NameLen-1)
	})

	Convey("PackageType", t, func() {
		So(PackageArchive.String(), ShouldEqual, "archive")
		So(PackageType(9).String(), ShouldEqual, "PackageType(9)")

		pt, err := ParsePackageType("mobile")
		So(err, ShouldBeNil)
		So(pt, ShouldEqual, PackageMobile)

		pt, err = ParsePackageType("42")
		So(err, ShouldBeNil)
		So(pt, ShouldEqual, PackageType(42))

		_, err = ParsePackageType("deb")
		So(err, ShouldErrLike, `bad package type "deb"`)
		So(evodata.IsConfigError(err), ShouldBeTrue)
	})
}
