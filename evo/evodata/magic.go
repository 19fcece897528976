// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package evodata

import (
	"bytes"
	"encoding/binary"
	"io"

	"go.chromium.org/luci/common/errors"
)

// Magic is the literal which appears at the beginning of every container,
// NUL padded to MagicSize bytes.
const Magic = "EVOFILE"

// MagicSize is the width of the magic field.
const MagicSize = 8

// Version is the format version written by Create.
const Version uint32 = 1

// HeaderSize is the encoded width of a Header, magic included.
const HeaderSize = MagicSize + 4 + 4 + 8

var magicBytes [MagicSize]byte

func init() {
	copy(magicBytes[:], Magic)
}

// Header is the fixed-size prefix of a container.
//
// Version and MetadataSize are carried verbatim from the file a Header was
// read from; they are not recomputed from the current metadata layout.
type Header struct {
	// Version is the format version.
	Version uint32

	// MetadataSize is the number of bytes occupied by the metadata record
	// which immediately follows the header.
	MetadataSize uint32

	// DataSize is the number of payload bytes following the metadata record.
	DataSize uint64
}

// MarshalBinary encodes h to exactly HeaderSize bytes.
func (h Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	copy(buf, magicBytes[:])
	binary.LittleEndian.PutUint32(buf[8:], h.Version)
	binary.LittleEndian.PutUint32(buf[12:], h.MetadataSize)
	binary.LittleEndian.PutUint64(buf[16:], h.DataSize)
	return buf, nil
}

// UnmarshalBinary decodes a header from buf. It fails with a FormatError if
// buf is short or does not start with the magic.
func (h *Header) UnmarshalBinary(buf []byte) error {
	if len(buf) < HeaderSize {
		return errors.Reason("truncated header: %d bytes, need %d", len(buf), HeaderSize).
			Tag(FormatError).Err()
	}
	if !bytes.Equal(buf[:MagicSize], magicBytes[:]) {
		return errors.Reason("bad magic: %q", buf[:MagicSize]).Tag(FormatError).Err()
	}
	h.Version = binary.LittleEndian.Uint32(buf[8:])
	h.MetadataSize = binary.LittleEndian.Uint32(buf[12:])
	h.DataSize = binary.LittleEndian.Uint64(buf[16:])
	return nil
}

// Write writes the encoded header to w.
func (h Header) Write(w io.Writer) error {
	buf, _ := h.MarshalBinary()
	_, err := w.Write(buf)
	return errors.Annotate(err, "writing header").Tag(IOError).Err()
}

// Read reads a header from r and checks its magic.
func (h *Header) Read(r io.Reader) error {
	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return ReadErr(err, "header")
	}
	return errors.Annotate(h.UnmarshalBinary(buf), "checking magic").Err()
}
