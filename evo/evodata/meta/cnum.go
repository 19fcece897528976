// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package meta

import "math"

// parseLeadingInt parses s the way C's strtoll does: leading white space, an
// optional sign, then as many decimal digits as are present. Anything else
// yields 0. The magnitude saturates at math.MaxUint64.
func parseLeadingInt(s string) (neg bool, mag uint64) {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		d := uint64(s[i] - '0')
		if mag > (math.MaxUint64-d)/10 {
			mag = math.MaxUint64
			continue
		}
		mag = mag*10 + d
	}
	return
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// atou32 parses s like atoi does on LP64: the value saturates at the range
// of int64 and the low 32 bits are kept, so "-1" becomes 0xFFFFFFFF and
// "3000000000" is kept as is.
func atou32(s string) uint32 {
	neg, mag := parseLeadingInt(s)
	var v int64
	switch {
	case neg && mag > math.MaxInt64:
		v = math.MinInt64
	case neg:
		v = -int64(mag)
	case mag > math.MaxInt64:
		v = math.MaxInt64
	default:
		v = int64(mag)
	}
	return uint32(v)
}

// atou64 parses s like strtoull: a negative value is negated as an unsigned
// number and overflow saturates at math.MaxUint64.
func atou64(s string) uint64 {
	neg, mag := parseLeadingInt(s)
	if neg && mag != math.MaxUint64 {
		return -mag
	}
	return mag
}
