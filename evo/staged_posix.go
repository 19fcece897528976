// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

//go:build !windows

package evo

import (
	"github.com/google/renameio/v2"
)

type pendingFile struct {
	*renameio.PendingFile
}

func newStagedFile(path string) (stagedFile, error) {
	pf, err := renameio.NewPendingFile(path, renameio.WithPermissions(outputMode))
	if err != nil {
		return nil, err
	}
	return pendingFile{pf}, nil
}

func (p pendingFile) commit() error  { return p.CloseAtomicallyReplace() }
func (p pendingFile) cleanup() error { return p.Cleanup() }
