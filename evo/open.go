// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package evo

import (
	"io"
	"math"

	"go.chromium.org/luci/common/errors"

	"github.com/EVO-OS/evo/evo/evodata"
	"github.com/EVO-OS/evo/evo/evodata/meta"
)

// Container represents an Open'd EVO file.
type Container struct {
	r io.ReadSeeker

	// Header is the header as stored in the file.
	Header evodata.Header

	// Metadata is the decoded metadata record.
	Metadata *meta.Metadata

	// Extension holds the bytes of the stored metadata record beyond
	// meta.Size, written by a newer layout. They are carried through Modify
	// unchanged.
	Extension []byte

	// Size is the total size of the file, footer included.
	Size int64

	// MetadataSizeMismatch is set when Header.MetadataSize is smaller than
	// meta.Size or larger than the file allows. The record is then read as
	// meta.Size bytes.
	MetadataSizeMismatch bool

	recordSize int64
}

// Open reads and validates the header and metadata record from r. It does
// not read the payload or verify the checksum.
//
// Open fails with a FormatError if the magic is wrong or the file is too
// short to hold a header, a metadata record and a footer.
func Open(r io.ReadSeeker) (*Container, error) {
	c := &Container{r: r}

	var err error
	if c.Size, err = evodata.Size(r); err != nil {
		return nil, errors.Annotate(err, "measuring container").Tag(evodata.IOError).Err()
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Annotate(err, "seeking to header").Tag(evodata.IOError).Err()
	}
	if err := c.Header.Read(r); err != nil {
		return nil, err
	}

	if minSize := int64(evodata.HeaderSize + meta.Size + evodata.FooterSize); c.Size < minSize {
		return nil, errors.Reason("truncated container: %d bytes, need at least %d",
			c.Size, minSize).Tag(evodata.FormatError).Err()
	}

	// A declared size which is too small or does not fit in the file is
	// ignored, and the record is read at its own width.
	c.recordSize = int64(c.Header.MetadataSize)
	if c.recordSize < meta.Size || c.PayloadOffset()+evodata.FooterSize > c.Size {
		c.recordSize = meta.Size
		c.MetadataSizeMismatch = true
	}

	buf := make([]byte, c.recordSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, evodata.ReadErr(err, "metadata")
	}
	if c.Metadata, err = meta.Decode(buf); err != nil {
		return nil, errors.Annotate(err, "decoding metadata").Err()
	}
	if len(buf) > meta.Size {
		c.Extension = buf[meta.Size:]
	}
	return c, nil
}

// PayloadOffset returns the offset of the first payload byte.
func (c *Container) PayloadOffset() int64 {
	return evodata.HeaderSize + c.recordSize
}

// PayloadSize returns the number of bytes between the metadata record and
// the footer. This is what Modify and Extract copy; it is computed from the
// file size, not from Header.DataSize.
func (c *Container) PayloadSize() int64 {
	return c.Size - c.PayloadOffset() - evodata.FooterSize
}

// DataSizeMismatch returns true iff the header's DataSize disagrees with the
// payload actually present.
func (c *Container) DataSizeMismatch() bool {
	return c.Header.DataSize > math.MaxInt64 || int64(c.Header.DataSize) != c.PayloadSize()
}

// Payload positions the underlying reader at the payload and returns a
// reader limited to it.
func (c *Container) Payload() (io.Reader, error) {
	if _, err := c.r.Seek(c.PayloadOffset(), io.SeekStart); err != nil {
		return nil, errors.Annotate(err, "seeking to payload").Tag(evodata.IOError).Err()
	}
	return io.LimitReader(c.r, c.PayloadSize()), nil
}

// Footer reads the stored footer.
func (c *Container) Footer() (evodata.Footer, error) {
	f, _, err := evodata.ReadFooter(c.r)
	return f, err
}
