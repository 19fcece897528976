// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Command evo creates, modifies, inspects and extracts EVO containers.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/logging"
	"go.chromium.org/luci/common/logging/gologger"

	"github.com/EVO-OS/evo/evo/evodata"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
)

// errChecksumFailed is returned by commands which report a checksum
// mismatch after printing their output.
var errChecksumFailed = errors.New("checksum verification FAILED")

type logFlags struct {
	level   string
	verbose bool
	debug   bool
}

func newRootCommand() *cobra.Command {
	lf := &logFlags{}
	cmd := &cobra.Command{
		Use:   "evo",
		Short: "Create, modify and inspect .evo package containers",
		Long: `evo wraps a payload file in an EVO container: a fixed header, a fixed-size
metadata record describing the package, the payload itself and a trailing
CRC-32 checksum.`,
		Version:       fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := lf.startLogging(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			cmd.SetContext(ctx)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&lf.level, "log-level", "warning",
		"Set log level (debug, info, warning, error).")
	cmd.PersistentFlags().BoolVarP(&lf.verbose, "verbose", "v", false,
		"Alias for --log-level=info")
	cmd.PersistentFlags().BoolVarP(&lf.debug, "debug", "d", false,
		"Alias for --log-level=debug")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return errors.Annotate(err, "%s", c.CommandPath()).Tag(evodata.ConfigError).Err()
	})

	cmd.AddCommand(newCreateCommand())
	cmd.AddCommand(newModifyCommand())
	cmd.AddCommand(newReadCommand())
	cmd.AddCommand(newExtractCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func parseLevel(s string) (logging.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return logging.Debug, nil
	case "info":
		return logging.Info, nil
	case "warning", "warn":
		return logging.Warning, nil
	case "error":
		return logging.Error, nil
	}
	return logging.Warning, errors.Reason("unknown log level %q", s).Tag(evodata.ConfigError).Err()
}

func (lf *logFlags) startLogging(ctx context.Context, cmd *cobra.Command) (context.Context, error) {
	level, err := parseLevel(lf.level)
	if err != nil {
		return ctx, err
	}
	switch {
	case lf.debug:
		level = logging.Debug
	case lf.verbose:
		level = logging.Info
	}
	if logging.GetFactory(ctx) == nil {
		cfg := gologger.LoggerConfig{Out: cmd.ErrOrStderr()}
		ctx = cfg.Use(ctx)
	}
	ctx = logging.SetLevel(ctx, level)
	logging.Debugf(ctx, "started logging at level %s", level)
	return ctx, nil
}

// exitCode maps an error to the process exit status: 2 for configuration
// errors, 1 for everything else.
func exitCode(err error) int {
	if evodata.IsConfigError(err) {
		return 2
	}
	return 1
}

func execute(ctx context.Context, cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if err != errChecksumFailed {
			fmt.Fprintf(cmd.ErrOrStderr(), "evo: %s\n", err)
		}
		return exitCode(err)
	}
	return 0
}

func main() {
	os.Exit(execute(context.Background(), newRootCommand(), os.Args[1:]))
}
