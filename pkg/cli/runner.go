// Package cli defines the command line interface of linthound.
package cli

import (
	"context"

	"github.com/linthound/linthound/pkg/cli/check"
	"github.com/linthound/linthound/pkg/cli/flag"
	"github.com/linthound/linthound/pkg/cli/initcmd"
	"github.com/linthound/linthound/pkg/cli/list"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/go-stdutil"
	"github.com/urfave/cli/v3"
)

func Run(ctx context.Context, logE *logrus.Entry, ldFlags *stdutil.LDFlags, args ...string) error {
	gFlags := &flag.GlobalFlags{}
	cmd := &cli.Command{
		Name:                  "linthound",
		Usage:                 "Report style violations on the lines a change adds. https://github.com/linthound/linthound",
		Version:               ldFlags.Version + " (" + ldFlags.Commit + ")",
		Flags:                 gFlags.Flags(),
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			check.New(logE, gFlags, ldFlags.Version),
			initcmd.New(logE, gFlags),
			list.New(logE, gFlags),
			newVersionCommand(),
		},
	}
	return cmd.Run(ctx, args) //nolint:wrapcheck
}
