// Package di wires the dependencies of 'linthound check'.
// It reads the configuration, identifies the pull request, creates the GitHub client
// and the review checker, and runs the check controller.
package di

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/linthound/linthound/pkg/config"
	"github.com/linthound/linthound/pkg/controller/check"
	"github.com/linthound/linthound/pkg/github"
	"github.com/linthound/linthound/pkg/log"
	"github.com/linthound/linthound/pkg/review"
	"github.com/linthound/linthound/pkg/rule"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Run executes 'linthound check'.
func Run(ctx context.Context, logE *logrus.Entry, flags *Flags, secrets *Secrets, version string) error {
	if flags.IsGitHubActions {
		color.NoColor = false
	}
	log.SetLevel(flags.LogLevel, logE)

	fs := afero.NewOsFs()
	cfg, err := readConfig(fs, flags.Config)
	if err != nil {
		return err
	}
	if err := cfg.CheckVersion(version); err != nil {
		return fmt.Errorf("check required_version: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		logValidationError(logE, err)
		return fmt.Errorf("validate the configuration file: %w", err)
	}

	gh, err := github.New(ctx, secrets.GitHubToken, flags.GetAPIURL())
	if err != nil {
		return fmt.Errorf("create a GitHub client: %w", err)
	}
	checker := review.New(rule.New(), buildCheckerOptions(flags, logE)...)
	param := buildParam(flags, setupPullRequest(fs, logE, flags), version)
	ctrl := check.New(fs, checker, cfg, gh.PullRequests, gh.Repositories, param)
	return ctrl.Run(ctx, logE) //nolint:wrapcheck
}

// readConfig returns the style guide of the configuration file merged onto the default.
func readConfig(fs afero.Fs, configFilePath string) (*config.StyleGuide, error) {
	cfgFinder := config.NewFinder(fs)
	cfgReader := config.NewReader(fs)
	configPath, err := cfgFinder.Find(configFilePath)
	if err != nil {
		return nil, fmt.Errorf("find configuration file: %w", err)
	}
	cfg := config.Default()
	if err := cfgReader.Read(cfg, configPath); err != nil {
		return nil, fmt.Errorf("read configuration file: %w", err)
	}
	return cfg, nil
}

func logValidationError(logE *logrus.Entry, err error) {
	var ve *config.ValidationError
	if !errors.As(err, &ve) {
		return
	}
	if s := ve.Annotate(); s != "" {
		logE.Error("the configuration file is invalid\n" + s)
	}
}

func buildCheckerOptions(flags *Flags, logE *logrus.Entry) []review.Option {
	return []review.Option{
		review.WithLogger(logE),
		review.WithConcurrency(flags.Concurrency),
		review.WithFileTimeout(flags.FileTimeout),
	}
}

func buildParam(flags *Flags, pr *check.PullRequest, version string) *check.ParamCheck {
	return &check.ParamCheck{
		DiffPath:    flags.DiffPath,
		PWD:         flags.PWD,
		Format:      flags.Format,
		PullRequest: pr,
		Review:      flags.Review,
		Version:     version,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	}
}
