// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package evodata

import (
	"hash"
	"hash/crc32"
	"io"

	"go.chromium.org/luci/common/errors"
)

// Checksum is the container's integrity code: standard CRC-32 (ISO-HDLC, as
// used by zlib and gzip) with the reflected polynomial 0xEDB88320.
//
// A Checksum accumulates across any number of Write calls; the result is
// identical to a single pass over the concatenated input. The zero value is
// ready to use.
type Checksum struct {
	crc uint32
}

var _ hash.Hash32 = (*Checksum)(nil)

// NewChecksum returns a new, empty Checksum.
func NewChecksum() *Checksum { return &Checksum{} }

// ChecksumOf returns the checksum of buf.
func ChecksumOf(buf []byte) uint32 {
	return crc32.ChecksumIEEE(buf)
}

// Write folds p into the running checksum. It never fails.
func (c *Checksum) Write(p []byte) (int, error) {
	c.crc = crc32.Update(c.crc, crc32.IEEETable, p)
	return len(p), nil
}

// Sum32 returns the checksum of everything written so far.
func (c *Checksum) Sum32() uint32 { return c.crc }

// Sum appends the big-endian checksum to b, per hash.Hash.
func (c *Checksum) Sum(b []byte) []byte {
	s := c.crc
	return append(b, byte(s>>24), byte(s>>16), byte(s>>8), byte(s))
}

// Reset discards everything written so far.
func (c *Checksum) Reset() { c.crc = 0 }

// Size returns the number of bytes Sum will append.
func (c *Checksum) Size() int { return crc32.Size }

// BlockSize returns the hash's underlying block size.
func (c *Checksum) BlockSize() int { return 1 }

// ChecksumWriter converts w into a WriteCloser which checksums everything
// written through it. When it is Close()'d a Footer carrying the checksum is
// written to w. It does not close w.
type ChecksumWriter struct {
	w   io.Writer
	sum Checksum

	closed bool
}

// NewChecksumWriter returns a ChecksumWriter wrapping w.
func NewChecksumWriter(w io.Writer) *ChecksumWriter {
	return &ChecksumWriter{w: w}
}

func (cw *ChecksumWriter) Write(p []byte) (int, error) {
	if cw.closed {
		return 0, errors.New("write to closed ChecksumWriter")
	}
	n, err := cw.w.Write(p)
	cw.sum.Write(p[:n])
	return n, err
}

// Sum32 returns the checksum of everything written so far.
func (cw *ChecksumWriter) Sum32() uint32 { return cw.sum.Sum32() }

// Close writes the footer. Calling Close more than once is a no-op.
func (cw *ChecksumWriter) Close() error {
	if cw.closed {
		return nil
	}
	cw.closed = true
	return Footer{Checksum: cw.sum.Sum32()}.Write(cw.w)
}

// ChecksumRange computes the checksum of the first n bytes of r, starting at
// offset 0. The position of r is left at n.
func ChecksumRange(r io.ReadSeeker, n int64) (uint32, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, errors.Annotate(err, "seeking to start for checksum").Tag(IOError).Err()
	}
	c := Checksum{}
	if _, err := io.CopyN(&c, r, n); err != nil {
		return 0, ReadErr(err, "checksummed range")
	}
	return c.Sum32(), nil
}
