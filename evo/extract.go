// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package evo

import (
	"context"
	"io"

	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/logging"

	"github.com/EVO-OS/evo/evo/evodata"
)

// ExtractTo copies the payload of the container to w, byte for byte. It
// does not verify the checksum; use Verify for that.
func (c *Container) ExtractTo(ctx context.Context, w io.Writer) (int64, error) {
	payload, err := c.Payload()
	if err != nil {
		return 0, err
	}
	n, err := copyPayload(w, payload)
	if err != nil {
		return n, err
	}
	if n != c.PayloadSize() {
		return n, errors.Reason("short payload: read %d bytes, expected %d", n, c.PayloadSize()).
			Tag(evodata.IOError).Err()
	}
	logging.Debugf(ctx, "extracted %d payload bytes", n)
	return n, nil
}

// ExtractFile writes the payload of the container inPath to outPath, which
// is replaced atomically. If verify is true the checksum is checked first and
// a mismatch is returned as a FormatError.
func ExtractFile(ctx context.Context, inPath, outPath string, verify bool) (int64, error) {
	if err := requirePaths("input file", inPath, "output file", outPath); err != nil {
		return 0, err
	}
	in, err := openInput(inPath, "input")
	if err != nil {
		return 0, err
	}
	defer in.Close()

	if verify {
		integrity, err := Verify(ctx, in)
		if err != nil {
			return 0, err
		}
		if !integrity.Passed() {
			return 0, errors.Reason("checksum verification %s: stored 0x%08X, calculated 0x%08X",
				integrity.Status(), integrity.Stored, integrity.Computed).Tag(evodata.FormatError).Err()
		}
	}

	c, err := Open(in)
	if err != nil {
		return 0, err
	}
	var n int64
	err = writeFileAtomic(ctx, outPath, func(w io.Writer) (err error) {
		n, err = c.ExtractTo(ctx, w)
		return
	}, in)
	return n, err
}
