// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package meta implements the fixed-size metadata record which follows the
// header of an EVO container, and the two ways of changing it: Overrides
// (used when creating a container) and Directives (used when modifying one).
package meta
