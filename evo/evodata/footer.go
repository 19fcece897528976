// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package evodata

import (
	"encoding/binary"
	"io"

	"go.chromium.org/luci/common/errors"
)

// FooterSize is the encoded width of a Footer.
const FooterSize = 4

// Footer is the fixed-size suffix of a container. Checksum covers every byte
// of the file which precedes the footer.
type Footer struct {
	Checksum uint32
}

// Write writes the encoded footer to w.
func (f Footer) Write(w io.Writer) error {
	var buf [FooterSize]byte
	binary.LittleEndian.PutUint32(buf[:], f.Checksum)
	_, err := w.Write(buf[:])
	return errors.Annotate(err, "writing footer").Tag(IOError).Err()
}

// Read reads an encoded footer from r.
func (f *Footer) Read(r io.Reader) error {
	var buf [FooterSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return ReadErr(err, "footer")
	}
	f.Checksum = binary.LittleEndian.Uint32(buf[:])
	return nil
}

// ReadFooter seeks to the end of r, reads the footer, and returns it along
// with the offset at which it starts (which is also the number of bytes it
// covers).
//
// The position of r is restored before returning.
func ReadFooter(r io.ReadSeeker) (f Footer, footerStart int64, err error) {
	curOffset, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		err = errors.Annotate(err, "seeking to footer").Tag(IOError).Err()
		return
	}
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		err = errors.Annotate(err, "seeking to footer").Tag(IOError).Err()
		return
	}
	if footerStart = size - FooterSize; footerStart < 0 {
		err = errors.Reason("truncated footer: file is %d bytes", size).Tag(FormatError).Err()
		return
	}
	if _, err = r.Seek(footerStart, io.SeekStart); err != nil {
		err = errors.Annotate(err, "seeking to footer").Tag(IOError).Err()
		return
	}
	if err = f.Read(r); err != nil {
		return
	}
	if _, err = r.Seek(curOffset, io.SeekStart); err != nil {
		err = errors.Annotate(err, "seeking back from footer").Tag(IOError).Err()
	}
	return
}
