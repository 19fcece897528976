// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package evodata implements IO routines for reading and writing the fixed
// sections of the EVO container format: the header (with its magic), the
// footer, and the CRC-32 checksum that the footer carries.
//
// All multi-byte integers are little-endian.
package evodata
