// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/EVO-OS/evo/evo"
	"github.com/EVO-OS/evo/evo/evodata/meta"
)

type modifyFlags struct {
	input, changes, output string
}

func newModifyCommand() *cobra.Command {
	mf := &modifyFlags{}
	cmd := &cobra.Command{
		Use:   "modify --input <file.evo> --changes <file> --output <file.evo>",
		Short: "Rewrite a container with changed metadata",
		Long: fmt.Sprintf(`Apply the key=value lines of the changes file to the metadata of the input
container and write the result. Recognized keys are: %s.
Other keys are ignored with a warning. The payload is copied unchanged and
the checksum recomputed. The output may be the input file itself.`,
			strings.Join(meta.DirectiveKeys.ToSortedSlice(), ", ")),
		Args: cobra.NoArgs,
		RunE: mf.run,
	}
	f := cmd.Flags()
	f.StringVar(&mf.input, "input", "", "container to read")
	f.StringVar(&mf.changes, "changes", "", "file of key=value changes")
	f.StringVar(&mf.output, "output", "", "container to write")
	return cmd
}

func (mf *modifyFlags) run(cmd *cobra.Command, args []string) error {
	res, err := evo.ModifyFile(cmd.Context(), mf.input, mf.changes, mf.output)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Successfully modified %s\n", mf.output)
	fmt.Fprintf(out, "Old checksum: 0x%08X\n", res.OldChecksum)
	fmt.Fprintf(out, "New checksum: 0x%08X\n", res.Checksum)
	return nil
}
