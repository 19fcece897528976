// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"go.chromium.org/luci/common/errors"

	"github.com/EVO-OS/evo/evo"
	"github.com/EVO-OS/evo/evo/evodata"
)

type readFlags struct {
	input  string
	asJSON bool
	digest string
}

func newReadCommand() *cobra.Command {
	rf := &readFlags{}
	cmd := &cobra.Command{
		Use:     "read --input <file.evo>",
		Aliases: []string{"inspect"},
		Short:   "Print a container's header and metadata and verify its checksum",
		Long: `Print the header, the metadata record and the outcome of the checksum
verification. The command exits non-zero if verification FAILED.`,
		Args: cobra.NoArgs,
		RunE: rf.run,
	}
	f := cmd.Flags()
	f.StringVar(&rf.input, "input", "", "container to read")
	f.BoolVar(&rf.asJSON, "json", false, "print the report as JSON")
	f.StringVar(&rf.digest, "digest", "", "also hash the payload (sha256, sha512, blake2s, blake2b, sha3-256, sha3-512)")
	return cmd
}

func (rf *readFlags) run(cmd *cobra.Command, args []string) error {
	var opts []evo.InspectOption
	if rf.digest != "" {
		scheme, err := evodata.ParseDigestScheme(rf.digest)
		if err != nil {
			return errors.Annotate(err, "--digest").Err()
		}
		opts = append(opts, evo.WithPayloadDigest(scheme))
	}

	report, err := evo.InspectFile(cmd.Context(), rf.input, opts...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if rf.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errors.Annotate(err, "writing report").Tag(evodata.IOError).Err()
		}
	} else if err := report.Render(out); err != nil {
		return err
	}

	if !report.Passed() {
		return errChecksumFailed
	}
	return nil
}
