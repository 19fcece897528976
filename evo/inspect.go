// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package evo

import (
	"context"
	"encoding/hex"
	"io"

	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/logging"

	"github.com/EVO-OS/evo/evo/evodata"
	"github.com/EVO-OS/evo/evo/evodata/meta"
)

// Checksum verification outcomes.
const (
	StatusPassed = "PASSED"
	StatusFailed = "FAILED"
)

// Integrity is the outcome of recomputing a container's checksum.
type Integrity struct {
	// FileSize is the total size of the container.
	FileSize int64

	// Checksummed is the number of bytes covered by the checksum.
	Checksummed int64

	Stored   uint32
	Computed uint32
}

// Passed returns true iff the stored and computed checksums agree.
func (i Integrity) Passed() bool { return i.Stored == i.Computed }

// Status returns StatusPassed or StatusFailed.
func (i Integrity) Status() string {
	if i.Passed() {
		return StatusPassed
	}
	return StatusFailed
}

// Report is everything Inspect learns about a container.
type Report struct {
	Header   evodata.Header
	Metadata *meta.Metadata
	Integrity

	// Extension is the number of metadata bytes beyond meta.Size.
	Extension int

	// PayloadSize is the number of payload bytes actually present.
	PayloadSize int64

	DigestScheme  evodata.DigestScheme
	PayloadDigest []byte
}

type inspectOptionData struct {
	digest evodata.DigestScheme
}

// InspectOption functions can be supplied to Inspect.
type InspectOption func(*inspectOptionData)

// WithPayloadDigest makes Inspect also hash the payload with scheme. The
// digest is reported only; containers do not store one.
func WithPayloadDigest(scheme evodata.DigestScheme) InspectOption {
	return func(o *inspectOptionData) {
		o.digest = scheme
	}
}

// checkIntegrity recomputes the checksum over everything before the footer
// and reads the stored one. The footer width is taken from the file size at
// hand, never assumed from the header.
func checkIntegrity(ctx context.Context, r io.ReadSeeker) (ret Integrity, err error) {
	footer, footerStart, err := evodata.ReadFooter(r)
	if err != nil {
		return
	}
	ret.FileSize = footerStart + evodata.FooterSize
	ret.Checksummed = footerStart
	ret.Stored = footer.Checksum
	logging.Debugf(ctx, "total file size: %d; bytes to read for checksum: %d", ret.FileSize, ret.Checksummed)

	if ret.Computed, err = evodata.ChecksumRange(r, footerStart); err != nil {
		return
	}
	logging.Debugf(ctx, "calculated checksum 0x%08x, stored checksum 0x%08x", ret.Computed, ret.Stored)
	return
}

// Inspect decodes the header and metadata of the container r and verifies
// its checksum.
//
// A checksum mismatch is not an error: it is reported through the returned
// Report's Status. Errors are returned for I/O failures and for containers
// which cannot be parsed (FormatError).
func Inspect(ctx context.Context, r io.ReadSeeker, options ...InspectOption) (*Report, error) {
	opts := inspectOptionData{}
	for _, o := range options {
		o(&opts)
	}
	if err := opts.digest.Valid(); err != nil {
		return nil, err
	}

	c, err := Open(r)
	if err != nil {
		return nil, err
	}
	ret := &Report{
		Header:      c.Header,
		Metadata:    c.Metadata,
		Extension:   len(c.Extension),
		PayloadSize: c.PayloadSize(),
	}
	if c.MetadataSizeMismatch {
		logging.Warningf(ctx, "header metadata size %d is unusable; reading %d bytes",
			c.Header.MetadataSize, meta.Size)
	}
	if c.DataSizeMismatch() {
		logging.Warningf(ctx, "header data size %d disagrees with %d payload bytes present",
			c.Header.DataSize, c.PayloadSize())
	}

	if c.Metadata.Dropped() > 0 {
		logging.Warningf(ctx, "metadata list counts exceed their capacities by %d entries", c.Metadata.Dropped())
	}

	if ret.Integrity, err = checkIntegrity(ctx, r); err != nil {
		return nil, err
	}
	if !ret.Passed() {
		logging.Warningf(ctx, "checksum mismatch: stored 0x%08X, calculated 0x%08X", ret.Stored, ret.Computed)
	}

	if h := opts.digest.Hash(); h != nil {
		payload, err := c.Payload()
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(h, payload); err != nil {
			return nil, errors.Annotate(err, "digesting payload").Tag(evodata.IOError).Err()
		}
		ret.DigestScheme = opts.digest
		ret.PayloadDigest = h.Sum(nil)
		logging.Debugf(ctx, "payload %s: %s", opts.digest, hex.EncodeToString(ret.PayloadDigest))
	}
	return ret, nil
}

// Verify checks the magic of the container r and recomputes its checksum
// without decoding the metadata record.
func Verify(ctx context.Context, r io.ReadSeeker) (Integrity, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Integrity{}, errors.Annotate(err, "seeking to header").Tag(evodata.IOError).Err()
	}
	h := evodata.Header{}
	if err := h.Read(r); err != nil {
		return Integrity{}, err
	}
	return checkIntegrity(ctx, r)
}

// InspectFile is Inspect for the file at path.
func InspectFile(ctx context.Context, path string, options ...InspectOption) (*Report, error) {
	if err := requirePaths("input file", path); err != nil {
		return nil, err
	}
	f, err := openInput(path, "input")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Inspect(ctx, f, options...)
}
