// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package evofile documents the EVO container format, a single-file wrapper
// which pairs an opaque payload with a fixed-size record of package metadata
// and a whole-file checksum.
//
// It has a fairly basic format:
//   - header: magic ("EVOFILE\x00"), format version (uint32, currently 1),
//     metadata size (uint32) and payload size (uint64). 24 bytes.
//   - metadata: a fixed-width record of text fields, numbers and bounded
//     lists. See evo/evodata/meta for the layout.
//   - payload: the input file, verbatim.
//   - footer: CRC-32 (IEEE) of every preceding byte. 4 bytes.
//
// All integers are little endian. Text fields are NUL terminated within
// their fixed width; longer values are truncated.
//
// The evo package implements Create, Modify, Inspect and Extract on top of
// the wire-level types in evo/evodata. The evo command exposes them on the
// command line.
package evofile
