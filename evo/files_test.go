// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package evo

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"go.chromium.org/luci/common/logging/memlogger"

	. "github.com/smartystreets/goconvey/convey"
	. "go.chromium.org/luci/common/testing/assertions"

	"github.com/EVO-OS/evo/evo/evodata"
	"github.com/EVO-OS/evo/evo/evodata/meta"
)

type closeFunc func() error

func (c closeFunc) Close() error { return c() }

func TestFiles(t *testing.T) {
	t.Parallel()

	Convey("file helpers", t, func() {
		ctx := memlogger.Use(context.Background())
		dir := t.TempDir()
		p := func(name string) string { return filepath.Join(dir, name) }
		write := func(name, content string) string {
			So(os.WriteFile(p(name), []byte(content), 0644), ShouldBeNil)
			return p(name)
		}
		read := func(path string) string {
			data, err := os.ReadFile(path)
			So(err, ShouldBeNil)
			return string(data)
		}

		in := write("payload.bin", "the payload")
		_, err := CreateFile(ctx, in, p("pkg.evo"), WithOverrides(&meta.Overrides{Name: strp("pkg")}))
		So(err, ShouldBeNil)

		Convey("create then inspect", func() {
			report, err := InspectFile(ctx, p("pkg.evo"))
			So(err, ShouldBeNil)
			So(report.Status(), ShouldEqual, StatusPassed)
			So(report.Metadata.Name, ShouldEqual, "pkg")

			fi, err := os.Stat(p("pkg.evo"))
			So(err, ShouldBeNil)
			So(fi.Mode().Perm(), ShouldEqual, os.FileMode(0644))
		})

		Convey("extract", func() {
			n, err := ExtractFile(ctx, p("pkg.evo"), p("out.bin"), true)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, len("the payload"))
			So(read(p("out.bin")), ShouldEqual, "the payload")
		})

		Convey("extract refuses a damaged container", func() {
			data := read(p("pkg.evo"))
			b := []byte(data)
			b[len(b)-10] ^= 0xFF
			bad := write("bad.evo", string(b))

			_, err := ExtractFile(ctx, bad, p("out.bin"), true)
			So(err, ShouldErrLike, "checksum verification FAILED")
			So(evodata.IsFormatError(err), ShouldBeTrue)
			_, err = os.Stat(p("out.bin"))
			So(os.IsNotExist(err), ShouldBeTrue)

			Convey("unless asked not to verify", func() {
				_, err := ExtractFile(ctx, bad, p("out.bin"), false)
				So(err, ShouldBeNil)
			})
		})

		Convey("modify in place", func() {
			changes := write("changes.txt", "name=renamed\nversion=9.9\n")
			res, err := ModifyFile(ctx, p("pkg.evo"), changes, p("pkg.evo"))
			So(err, ShouldBeNil)
			So(res.Metadata.Name, ShouldEqual, "renamed")

			report, err := InspectFile(ctx, p("pkg.evo"))
			So(err, ShouldBeNil)
			So(report.Status(), ShouldEqual, StatusPassed)
			So(report.Metadata.Version, ShouldEqual, "9.9")
		})

		Convey("failed output leaves the destination alone", func() {
			existing := write("existing.evo", "precious")
			err := writeFileAtomic(ctx, existing, func(w io.Writer) error {
				if _, err := w.Write([]byte("partial")); err != nil {
					return err
				}
				return errors.New("interrupted")
			})
			So(err, ShouldErrLike, "interrupted")
			So(read(existing), ShouldEqual, "precious")

			// No staging file is left behind.
			entries, err := os.ReadDir(dir)
			So(err, ShouldBeNil)
			So(entries, ShouldHaveLength, 3)
		})

		Convey("inputs are released before the output is replaced", func() {
			existing := write("existing.evo", "old")
			var seen string
			closer := closeFunc(func() error {
				seen = read(existing)
				return nil
			})
			err := writeFileAtomic(ctx, existing, func(w io.Writer) error {
				_, err := w.Write([]byte("new"))
				return err
			}, closer)
			So(err, ShouldBeNil)
			So(seen, ShouldEqual, "old")
			So(read(existing), ShouldEqual, "new")

			fi, err := os.Stat(existing)
			So(err, ShouldBeNil)
			So(fi.Mode().IsRegular(), ShouldBeTrue)
		})

		Convey("invalid magic is rejected everywhere", func() {
			notEVO := write("not.evo", string(make([]byte, 40000)))
			changes := write("changes.txt", "name=x\n")

			_, err := InspectFile(ctx, notEVO)
			So(evodata.IsFormatError(err), ShouldBeTrue)
			_, err = ModifyFile(ctx, notEVO, changes, p("mod.evo"))
			So(evodata.IsFormatError(err), ShouldBeTrue)
			_, err = ExtractFile(ctx, notEVO, p("x.bin"), true)
			So(evodata.IsFormatError(err), ShouldBeTrue)

			_, err = os.Stat(p("mod.evo"))
			So(os.IsNotExist(err), ShouldBeTrue)
		})

		Convey("missing paths are config errors", func() {
			_, err := CreateFile(ctx, "", p("x.evo"))
			So(err, ShouldErrLike, "no input file specified")
			So(evodata.IsConfigError(err), ShouldBeTrue)

			_, err = CreateFile(ctx, in, "")
			So(err, ShouldErrLike, "no output file specified")

			_, err = ModifyFile(ctx, p("pkg.evo"), "", p("x.evo"))
			So(err, ShouldErrLike, "no changes file specified")
			So(evodata.IsConfigError(err), ShouldBeTrue)

			_, err = InspectFile(ctx, "")
			So(evodata.IsConfigError(err), ShouldBeTrue)

			_, err = ExtractFile(ctx, p("pkg.evo"), "", false)
			So(evodata.IsConfigError(err), ShouldBeTrue)
		})

		Convey("missing input is an io error", func() {
			_, err := CreateFile(ctx, p("nope"), p("x.evo"))
			So(evodata.IsIOError(err), ShouldBeTrue)
			_, err = os.Stat(p("x.evo"))
			So(os.IsNotExist(err), ShouldBeTrue)
		})
	})
}
