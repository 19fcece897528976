// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EVO-OS/evo/evo"
)

type extractFlags struct {
	input, output string
	verify        bool
}

func newExtractCommand() *cobra.Command {
	ef := &extractFlags{}
	cmd := &cobra.Command{
		Use:   "extract --input <file.evo> --output <file>",
		Short: "Write a container's payload to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := evo.ExtractFile(cmd.Context(), ef.input, ef.output, ef.verify)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d bytes to %s\n", n, ef.output)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&ef.input, "input", "", "container to read")
	f.StringVar(&ef.output, "output", "", "file to write the payload to")
	f.BoolVar(&ef.verify, "verify", true, "refuse to extract if the checksum does not match")
	return cmd
}
