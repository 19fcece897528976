// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package evodata

import (
	"io"

	"go.chromium.org/luci/common/errors"
)

// These tags classify every error returned by the evo packages.
var (
	// ConfigError marks missing or invalid required input. Operations tagged
	// with it abort before touching any file.
	ConfigError = errors.BoolTag{Key: errors.NewTagKey("evo: config error")}

	// IOError marks an open, read, write, seek or rename failure.
	IOError = errors.BoolTag{Key: errors.NewTagKey("evo: io error")}

	// FormatError marks a bad magic or a structurally truncated container.
	FormatError = errors.BoolTag{Key: errors.NewTagKey("evo: format error")}
)

// IsConfigError returns true iff err is tagged with ConfigError.
func IsConfigError(err error) bool { return ConfigError.In(err) }

// IsIOError returns true iff err is tagged with IOError.
func IsIOError(err error) bool { return IOError.In(err) }

// IsFormatError returns true iff err is tagged with FormatError.
func IsFormatError(err error) bool { return FormatError.In(err) }

// ReadErr annotates a failed section read. Running out of bytes means the
// container is truncated, which is a FormatError; anything else is an
// IOError.
func ReadErr(err error, section string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return errors.Annotate(err, "truncated %s", section).Tag(FormatError).Err()
	}
	return errors.Annotate(err, "reading %s", section).Tag(IOError).Err()
}
