// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package evo

import (
	"context"
	"io"
	"strings"

	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/iotools"
	"go.chromium.org/luci/common/logging"

	"github.com/EVO-OS/evo/evo/evodata"
	"github.com/EVO-OS/evo/evo/evodata/meta"
)

// ModifyResult describes a container written by Modify.
type ModifyResult struct {
	Result

	// OldChecksum is the footer checksum of the source container. It is
	// reported only; the new footer is always recomputed.
	OldChecksum uint32

	// Ignored lists the directive keys which were not recognized.
	Ignored []string
}

// Modify writes to w a copy of the container src with directives applied to
// its metadata record.
//
// The header is copied unchanged (including its version and metadata size)
// and the payload is copied byte for byte. Only name, version, description,
// architecture, installed_size, maintainer and package_type can be changed;
// other keys are ignored and reported in the result.
//
// src is never written to.
func Modify(ctx context.Context, w io.Writer, src io.ReadSeeker, directives []meta.Directive) (*ModifyResult, error) {
	c, err := Open(src)
	if err != nil {
		return nil, errors.Annotate(err, "opening source").Err()
	}
	oldFooter, err := c.Footer()
	if err != nil {
		return nil, errors.Annotate(err, "reading old checksum").Err()
	}
	if c.MetadataSizeMismatch {
		logging.Warningf(ctx, "header metadata size %d is unusable; reading %d bytes",
			c.Header.MetadataSize, meta.Size)
	}
	if c.DataSizeMismatch() {
		logging.Warningf(ctx, "header data size %d disagrees with %d payload bytes present; copying what is present",
			c.Header.DataSize, c.PayloadSize())
	}

	m := c.Metadata.Clone()
	ignored := m.Apply(directives...)
	if len(ignored) > 0 {
		logging.Warningf(ctx, "ignoring unknown keys: %s", strings.Join(ignored, ", "))
	}
	metaBuf, err := m.MarshalBinary()
	if err != nil {
		return nil, errors.Annotate(err, "encoding metadata").Tag(evodata.FormatError).Err()
	}

	payload, err := c.Payload()
	if err != nil {
		return nil, err
	}

	cnt := &iotools.CountingWriter{Writer: w}
	cw := evodata.NewChecksumWriter(cnt)
	if err := c.Header.Write(cw); err != nil {
		return nil, err
	}
	if _, err := cw.Write(metaBuf); err != nil {
		return nil, errors.Annotate(err, "writing metadata").Tag(evodata.IOError).Err()
	}
	if _, err := cw.Write(c.Extension); err != nil {
		return nil, errors.Annotate(err, "writing metadata extension").Tag(evodata.IOError).Err()
	}
	copied, err := copyPayload(cw, payload)
	if err != nil {
		return nil, err
	}
	if copied != c.PayloadSize() {
		return nil, errors.Reason("source changed size while copying: read %d payload bytes, expected %d",
			copied, c.PayloadSize()).Tag(evodata.IOError).Err()
	}

	ret := &ModifyResult{
		Result: Result{
			Header:   c.Header,
			Metadata: m,
			Checksum: cw.Sum32(),
		},
		OldChecksum: oldFooter.Checksum,
		Ignored:     ignored,
	}
	if err := cw.Close(); err != nil {
		return nil, err
	}
	ret.Size = cnt.Count
	logging.Debugf(ctx, "old checksum 0x%08X, new checksum 0x%08X", ret.OldChecksum, ret.Checksum)
	return ret, nil
}

// ModifyFile applies the directives in the file changesPath to the container
// inPath and writes the result to outPath, which is replaced atomically.
// outPath may equal inPath.
func ModifyFile(ctx context.Context, inPath, changesPath, outPath string) (*ModifyResult, error) {
	err := requirePaths("input file", inPath, "changes file", changesPath, "output file", outPath)
	if err != nil {
		return nil, err
	}

	in, err := openInput(inPath, "input")
	if err != nil {
		return nil, err
	}
	defer in.Close()

	changes, err := openInput(changesPath, "changes")
	if err != nil {
		return nil, err
	}
	directives, err := meta.ParseDirectives(changes)
	changes.Close()
	if err != nil {
		return nil, errors.Annotate(err, "parsing %q", changesPath).Err()
	}

	var ret *ModifyResult
	err = writeFileAtomic(ctx, outPath, func(w io.Writer) (err error) {
		ret, err = Modify(ctx, w, in, directives)
		return
	}, in)
	if err != nil {
		return nil, err
	}
	logging.Infof(ctx, "modified %q", outPath)
	return ret, nil
}
