package check

import (
	"context"
	"errors"
	"fmt"

	"github.com/linthound/linthound/pkg/review"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

var errNoSource = errors.New("either a diff or a pull request is required")

// Run reviews the change and reports violations.
// It returns ErrViolationsFound if any violation is reported.
func (c *Controller) Run(ctx context.Context, logE *logrus.Entry) error {
	files, failures, err := c.collect(ctx, logE)
	if err != nil {
		return err
	}
	logE.WithField("files", len(files)).Debug("collected modified files")

	result, err := c.checker.Check(ctx, files, c.cfg)
	if err != nil {
		return fmt.Errorf("check modified files: %w", err)
	}
	result.Failures = append(failures, result.Failures...)
	for _, f := range result.Failures {
		logerr.WithError(logE.WithField("file", f.Filename), f.Cause).Error("the file couldn't be analyzed")
	}
	for _, w := range result.Warnings {
		logE.WithFields(logrus.Fields{
			"file": w.Filename,
			"line": w.Line,
		}).Warn("drop violations of a line which has no diff position")
	}

	if err := c.output(result); err != nil {
		return err
	}

	if c.param.Review && len(result.Violations) > 0 {
		c.review(ctx, logE, result.Violations)
	}

	if len(result.Violations) > 0 {
		return ErrViolationsFound
	}
	return nil
}

func (c *Controller) review(ctx context.Context, logE *logrus.Entry, violations []*review.FileViolation) {
	if !c.param.PullRequest.Valid() {
		logE.Warn("skip creating reviews because the pull request information is invalid")
		return
	}
	if _, err := c.headSHA(ctx); err != nil {
		logerr.WithError(logE, err).Error("skip creating reviews because the head commit is unknown")
		return
	}
	posted := c.postComments(ctx, logE, violations)
	logE.WithField("comments", posted).Info("created review comments")
}

// collect returns the modified files and the files which couldn't be fetched.
func (c *Controller) collect(ctx context.Context, logE *logrus.Entry) ([]review.ModifiedFile, []*review.EngineFailure, error) {
	switch {
	case c.param.DiffPath != "":
		files, err := c.collectFromDiff(logE)
		if err != nil {
			return nil, nil, fmt.Errorf("collect modified files from a diff: %w", err)
		}
		return files, nil, nil
	case c.param.PullRequest.Valid():
		files, failures, err := c.collectFromPullRequest(ctx, logE)
		if err != nil {
			return nil, nil, fmt.Errorf("collect modified files from a pull request: %w", err)
		}
		return files, failures, nil
	default:
		return nil, nil, errNoSource
	}
}
