// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package evo

import (
	"context"
	"io"

	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/iotools"
	"go.chromium.org/luci/common/logging"

	"github.com/EVO-OS/evo/evo/evodata"
	"github.com/EVO-OS/evo/evo/evodata/meta"
)

type createOptionData struct {
	base      *meta.Metadata
	overrides []*meta.Overrides
}

// CreateOption functions can be supplied to Create.
type CreateOption func(*createOptionData)

// WithMetadata replaces the default record Create starts from. The record is
// copied.
func WithMetadata(m *meta.Metadata) CreateOption {
	return func(o *createOptionData) {
		o.base = m.Clone()
	}
}

// WithOverrides applies o to the record before it is written. It may be
// given more than once; overrides apply in order.
func WithOverrides(ov *meta.Overrides) CreateOption {
	return func(o *createOptionData) {
		o.overrides = append(o.overrides, ov)
	}
}

// Result describes a container written by Create or Modify.
type Result struct {
	Header   evodata.Header
	Metadata *meta.Metadata

	// Checksum is the value written to the footer.
	Checksum uint32

	// Size is the total number of bytes written, footer included.
	Size int64
}

// Create writes a new container to w holding all of payload.
//
// The header records the payload's length, measured by seeking, and the
// metadata record starts from meta.Default with options applied. The
// checksum is accumulated while header, metadata and payload are written in
// a single pass, and is appended as the footer.
//
// If w is a file, a failure part way through leaves it partially written;
// CreateFile does not have this problem.
func Create(ctx context.Context, w io.Writer, payload io.ReadSeeker, options ...CreateOption) (*Result, error) {
	opts := createOptionData{}
	for _, o := range options {
		o(&opts)
	}

	m := opts.base
	if m == nil {
		m = meta.Default()
	}
	for _, ov := range opts.overrides {
		ov.Apply(m)
	}
	warnDropped(ctx, m)

	size, err := evodata.Size(payload)
	if err != nil {
		return nil, errors.Annotate(err, "measuring input").Tag(evodata.IOError).Err()
	}
	if _, err := payload.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Annotate(err, "seeking input").Tag(evodata.IOError).Err()
	}
	logging.Debugf(ctx, "input size: %d bytes", size)

	metaBuf, err := m.MarshalBinary()
	if err != nil {
		return nil, errors.Annotate(err, "encoding metadata").Tag(evodata.ConfigError).Err()
	}

	ret := &Result{
		Header: evodata.Header{
			Version:      evodata.Version,
			MetadataSize: meta.Size,
			DataSize:     uint64(size),
		},
		Metadata: m,
	}

	cnt := &iotools.CountingWriter{Writer: w}
	cw := evodata.NewChecksumWriter(cnt)
	if err := ret.Header.Write(cw); err != nil {
		return nil, err
	}
	if _, err := cw.Write(metaBuf); err != nil {
		return nil, errors.Annotate(err, "writing metadata").Tag(evodata.IOError).Err()
	}
	copied, err := copyPayload(cw, payload)
	if err != nil {
		return nil, err
	}
	if copied != size {
		return nil, errors.Reason("input changed size while copying: read %d bytes, expected %d",
			copied, size).Tag(evodata.IOError).Err()
	}
	logging.Debugf(ctx, "checksummed %d bytes", cnt.Count)

	ret.Checksum = cw.Sum32()
	if err := cw.Close(); err != nil {
		return nil, err
	}
	ret.Size = cnt.Count
	logging.Debugf(ctx, "wrote footer with checksum 0x%08x; final size %d bytes", ret.Checksum, ret.Size)
	return ret, nil
}

// CreateFile creates the container outPath from the file inPath. outPath
// is replaced atomically, so it is left untouched if CreateFile fails.
func CreateFile(ctx context.Context, inPath, outPath string, options ...CreateOption) (*Result, error) {
	if err := requirePaths("input file", inPath, "output file", outPath); err != nil {
		return nil, err
	}

	in, err := openInput(inPath, "input")
	if err != nil {
		return nil, err
	}
	defer in.Close()

	var ret *Result
	err = writeFileAtomic(ctx, outPath, func(w io.Writer) (err error) {
		ret, err = Create(ctx, w, in, options...)
		return
	}, in)
	if err != nil {
		return nil, err
	}
	logging.Infof(ctx, "created %q", outPath)
	return ret, nil
}

func warnDropped(ctx context.Context, m *meta.Metadata) {
	for _, l := range []struct {
		name string
		list *meta.List
	}{
		{"dependencies", &m.Dependencies},
		{"supported architectures", &m.SupportedArchitectures},
		{"required permissions", &m.RequiredPermissions},
	} {
		if l.list.Truncated() {
			logging.Warningf(ctx, "dropped %d %s beyond the limit of %d",
				l.list.Dropped(), l.name, l.list.Cap())
		}
	}
}
