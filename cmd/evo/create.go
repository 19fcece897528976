// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.chromium.org/luci/common/errors"

	"github.com/EVO-OS/evo/evo"
	"github.com/EVO-OS/evo/evo/evodata"
	"github.com/EVO-OS/evo/evo/evodata/meta"
)

type createFlags struct {
	input, output string
	metadataFile  string

	architectures, permissions, dependencies string
	packageType                              string

	overrides meta.Overrides
}

func newCreateCommand() *cobra.Command {
	cf := &createFlags{}
	cmd := &cobra.Command{
		Use:   "create --input <file> --output <file.evo> [options]",
		Short: "Wrap a payload file in a new container",
		Long: `Create a new container holding the input file verbatim. The metadata record
starts from the defaults (name "Default Package", version "1.0.0") and is
updated from --metadata-file and then from the flags. List flags take
comma-separated values; entries beyond a list's capacity are dropped with a
warning.`,
		Args: cobra.NoArgs,
		RunE: cf.run,
	}

	f := cmd.Flags()
	f.StringVar(&cf.input, "input", "", "payload file to wrap")
	f.StringVar(&cf.output, "output", "", "container to write")
	f.StringVar(&cf.metadataFile, "metadata-file", "", "YAML file with metadata overrides")

	f.StringVar(&cf.architectures, "supported-architectures", "", "comma-separated list of supported mobile architectures")
	f.StringVar(&cf.permissions, "required-permissions", "", "comma-separated list of required permissions")
	f.StringVar(&cf.dependencies, "dependencies", "", "comma-separated list of dependencies")
	f.StringVar(&cf.packageType, "package-type", "", "package type (generic, archive, mobile or a number)")

	o := &cf.overrides
	o.Name = f.String("name", "", "package name")
	o.Version = f.String("package-version", "", "package version")
	o.Description = f.String("description", "", "package description")
	o.Maintainer = f.String("maintainer", "", "package maintainer")
	o.MinOSVersion = f.String("min-os-version", "", "minimum supported mobile OS version")
	o.Architecture = f.Uint32("architecture", 0, "architecture code")
	o.InstalledSize = f.Uint64("installed-size", 0, "installed size in bytes")
	o.MinScreen.Width = f.Uint32("min-screen-width", 0, "minimum screen width")
	o.MinScreen.Height = f.Uint32("min-screen-height", 0, "minimum screen height")
	o.TargetSDKVersion = f.Uint32("target-sdk-version", 0, "target SDK version for mobile platforms")

	return cmd
}

// flagOverrides returns the overrides for the flags which were actually
// given on the command line.
func (cf *createFlags) flagOverrides(f *pflag.FlagSet) (*meta.Overrides, error) {
	o := cf.overrides
	for name, field := range map[string]**string{
		"name":            &o.Name,
		"package-version": &o.Version,
		"description":     &o.Description,
		"maintainer":      &o.Maintainer,
		"min-os-version":  &o.MinOSVersion,
	} {
		if !f.Changed(name) {
			*field = nil
		}
	}
	for name, field := range map[string]**uint32{
		"architecture":       &o.Architecture,
		"min-screen-width":   &o.MinScreen.Width,
		"min-screen-height":  &o.MinScreen.Height,
		"target-sdk-version": &o.TargetSDKVersion,
	} {
		if !f.Changed(name) {
			*field = nil
		}
	}
	if !f.Changed("installed-size") {
		o.InstalledSize = nil
	}
	if f.Changed("package-type") {
		pt, err := meta.ParsePackageType(cf.packageType)
		if err != nil {
			return nil, errors.Annotate(err, "--package-type").Tag(evodata.ConfigError).Err()
		}
		o.PackageType = &pt
	}
	o.SupportedArchitectures = meta.SplitList(cf.architectures)
	o.RequiredPermissions = meta.SplitList(cf.permissions)
	o.Dependencies = meta.SplitList(cf.dependencies)
	return &o, nil
}

func (cf *createFlags) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var opts []evo.CreateOption
	if cf.metadataFile != "" {
		f, err := os.Open(cf.metadataFile)
		if err != nil {
			return errors.Annotate(err, "opening metadata file").Tag(evodata.IOError).Err()
		}
		fileOverrides, err := meta.LoadOverrides(f)
		f.Close()
		if err != nil {
			return errors.Annotate(err, "loading %q", cf.metadataFile).Err()
		}
		opts = append(opts, evo.WithOverrides(fileOverrides))
	}
	flags, err := cf.flagOverrides(cmd.Flags())
	if err != nil {
		return err
	}
	opts = append(opts, evo.WithOverrides(flags))

	res, err := evo.CreateFile(ctx, cf.input, cf.output, opts...)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Successfully created %s\n", cf.output)
	fmt.Fprintf(out, "Checksum: 0x%08X (%d)\n", res.Checksum, res.Checksum)
	return nil
}
