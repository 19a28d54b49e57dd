// Package check implements the 'linthound check' command.
package check

import (
	"context"
	"fmt"
	"os"

	"github.com/linthound/linthound/pkg/cli/flag"
	"github.com/linthound/linthound/pkg/controller/check"
	"github.com/linthound/linthound/pkg/di"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

func New(logE *logrus.Entry, gFlags *flag.GlobalFlags, version string) *cli.Command {
	r := &runner{
		logE:    logE,
		version: version,
		flags:   &di.Flags{GlobalFlags: gFlags},
	}
	return r.Command()
}

type runner struct {
	logE    *logrus.Entry
	version string
	flags   *di.Flags
}

func (r *runner) Command() *cli.Command {
	flags := r.flags
	return &cli.Command{
		Name:  "check",
		Usage: "Report style violations on the lines a change adds",
		Description: `Check the files a change modifies and report violations only on added lines.

Pass a unified diff. Files are read from the working tree.

$ git diff origin/main... | linthound check --diff -
$ linthound check --diff change.diff

Or check a GitHub pull request. Files are read at the head commit via GitHub API.
In GitHub Actions, the repository and the pull request are read from the event.

$ linthound check --repo-owner linthound --repo-name linthound --pr 1

With --review, a review comment is created per line violation.
linthound exits with code 1 if any violation is found.
`,
		Action: r.action,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "diff",
				Aliases:     []string{"d"},
				Usage:       "unified diff file path. '-' means stdin",
				Destination: &flags.DiffPath,
			},
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "output format. One of text, json, and sarif",
				Value:       check.FormatText,
				Destination: &flags.Format,
			},
			&cli.BoolFlag{
				Name:        "review",
				Usage:       "Create review comments on the pull request",
				Destination: &flags.Review,
			},
			&cli.StringFlag{
				Name:        "repo-owner",
				Usage:       "GitHub repository owner",
				Sources:     cli.EnvVars("GITHUB_REPOSITORY_OWNER"),
				Destination: &flags.RepoOwner,
			},
			&cli.StringFlag{
				Name:        "repo-name",
				Usage:       "GitHub repository name",
				Destination: &flags.RepoName,
			},
			&cli.StringFlag{
				Name:        "sha",
				Usage:       "head commit SHA of the pull request",
				Destination: &flags.SHA,
			},
			&cli.IntFlag{
				Name:        "pr",
				Usage:       "GitHub pull request number",
				Destination: &flags.PR,
			},
			&cli.IntFlag{
				Name:        "concurrency",
				Usage:       "the number of files analyzed at the same time. By default, the number of CPUs",
				Sources:     cli.EnvVars("LINTHOUND_CONCURRENCY"),
				Destination: &flags.Concurrency,
			},
			&cli.DurationFlag{
				Name:        "timeout",
				Usage:       "timeout of analyzing a file. e.g. 10s. By default, unlimited",
				Sources:     cli.EnvVars("LINTHOUND_FILE_TIMEOUT"),
				Destination: &flags.FileTimeout,
			},
		},
	}
}

func (r *runner) action(ctx context.Context, _ *cli.Command) error {
	pwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get the current directory: %w", err)
	}
	r.flags.PWD = pwd
	di.SetEnv(r.flags, os.Getenv)
	secrets := &di.Secrets{}
	secrets.SetFromEnv(os.Getenv)
	return di.Run(ctx, r.logE, r.flags, secrets, r.version) //nolint:wrapcheck
}
