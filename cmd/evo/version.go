// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EVO-OS/evo/evo/evodata"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of evo and of the container format it writes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "evo %s (commit: %s)\n", Version, GitCommit)
			fmt.Fprintf(cmd.OutOrStdout(), "container format version %d\n", evodata.Version)
		},
	}
}
