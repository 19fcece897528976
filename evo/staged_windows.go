// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

//go:build windows

package evo

import (
	"os"
	"path/filepath"
)

// tempFile stages output next to its destination. renameio has no Windows
// implementation; os.Rename replaces an existing destination there.
type tempFile struct {
	*os.File
	dest string
	done bool
}

func newStagedFile(path string) (stagedFile, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return nil, err
	}
	if err := f.Chmod(outputMode); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, err
	}
	return &tempFile{File: f, dest: path}, nil
}

func (t *tempFile) commit() error {
	if err := t.Sync(); err != nil {
		return err
	}
	if err := t.Close(); err != nil {
		return err
	}
	if err := os.Rename(t.Name(), t.dest); err != nil {
		return err
	}
	t.done = true
	return nil
}

func (t *tempFile) cleanup() error {
	if t.done {
		return nil
	}
	t.Close()
	return os.Remove(t.Name())
}
