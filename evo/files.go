// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package evo

import (
	"bufio"
	"context"
	"io"
	"os"

	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/logging"

	"github.com/EVO-OS/evo/evo/evodata"
)

// outputMode is the permission given to files written by the *File helpers.
const outputMode = 0644

// stagedFile is a temporary file which replaces its destination on commit.
// See staged_posix.go and staged_windows.go.
type stagedFile interface {
	io.Writer
	Name() string

	// commit closes the file and renames it over the destination.
	commit() error

	// cleanup removes the file if it was not committed. It is a no-op after
	// commit.
	cleanup() error
}

// writeFileAtomic stages everything fn writes in a temporary file next to
// path and renames it over path once fn succeeds. On any failure path is
// left untouched.
//
// inputs are closed after fn returns and before path is replaced, so path may
// name one of them.
func writeFileAtomic(ctx context.Context, path string, fn func(w io.Writer) error, inputs ...io.Closer) error {
	sf, err := newStagedFile(path)
	if err != nil {
		return errors.Annotate(err, "opening output %q", path).Tag(evodata.IOError).Err()
	}
	defer sf.cleanup()
	logging.Debugf(ctx, "staging %q in %q", path, sf.Name())

	bw := bufio.NewWriterSize(sf, copyBufferSize)
	if err := fn(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return errors.Annotate(err, "writing output %q", path).Tag(evodata.IOError).Err()
	}
	for _, in := range inputs {
		in.Close()
	}
	if err := sf.commit(); err != nil {
		return errors.Annotate(err, "replacing output %q", path).Tag(evodata.IOError).Err()
	}
	return nil
}

func openInput(path, what string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Annotate(err, "opening %s %q", what, path).Tag(evodata.IOError).Err()
	}
	return f, nil
}

func requirePaths(paths ...string) error {
	for i := 0; i+1 < len(paths); i += 2 {
		if paths[i+1] == "" {
			return errors.Reason("no %s specified", paths[i]).Tag(evodata.ConfigError).Err()
		}
	}
	return nil
}
