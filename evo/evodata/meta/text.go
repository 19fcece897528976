// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package meta

import "bytes"

// truncate returns s cut to at most width-1 bytes, leaving room for the
// terminating NUL of a fixed text field.
func truncate(s string, width int) string {
	if len(s) > width-1 {
		return s[:width-1]
	}
	return s
}

// putText writes s into the fixed-width field dst. The field is always NUL
// terminated and zero filled after the text.
func putText(dst []byte, s string) {
	n := copy(dst[:len(dst)-1], s)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
}

// getText reads a NUL terminated text field. A field with no NUL in its
// first width-1 bytes is cut there, as if it had been truncated on write.
func getText(src []byte) string {
	src = src[:len(src)-1]
	if i := bytes.IndexByte(src, 0); i >= 0 {
		return string(src[:i])
	}
	return string(src)
}
