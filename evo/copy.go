// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package evo

import (
	"io"

	"go.chromium.org/luci/common/errors"

	"github.com/EVO-OS/evo/evo/evodata"
)

const copyBufferSize = 32 * 1024

// copyPayload copies src to dst verbatim until src is exhausted and returns
// the number of bytes copied. Unlike io.Copy it reports which side failed.
func copyPayload(dst io.Writer, src io.Reader) (n int64, err error) {
	buf := make([]byte, copyBufferSize)
	for {
		nr, rerr := src.Read(buf)
		if nr > 0 {
			nw, werr := dst.Write(buf[:nr])
			n += int64(nw)
			if werr == nil && nw != nr {
				werr = io.ErrShortWrite
			}
			if werr != nil {
				return n, errors.Annotate(werr, "writing payload").Tag(evodata.IOError).Err()
			}
		}
		if rerr == io.EOF {
			return n, nil
		}
		if rerr != nil {
			return n, errors.Annotate(rerr, "reading payload").Tag(evodata.IOError).Err()
		}
	}
}
