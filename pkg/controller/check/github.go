package check

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/linthound/linthound/pkg/github"
	"github.com/linthound/linthound/pkg/patch"
	"github.com/linthound/linthound/pkg/review"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

type PullRequestsService interface {
	Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error)
	ListFiles(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.CommitFile, *github.Response, error)
	CreateComment(ctx context.Context, owner, repo string, number int, comment *github.PullRequestComment) (*github.PullRequestComment, *github.Response, error)
}

type RepositoriesService interface {
	GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error)
}

const perPage = 100

// headSHA returns the head commit of the pull request, asking GitHub if it isn't known.
func (c *Controller) headSHA(ctx context.Context) (string, error) {
	pr := c.param.PullRequest
	if pr.SHA != "" {
		return pr.SHA, nil
	}
	p, _, err := c.pullRequestsService.Get(ctx, pr.RepoOwner, pr.RepoName, pr.Number)
	if err != nil {
		return "", fmt.Errorf("get a pull request: %w", err)
	}
	pr.SHA = p.GetHead().GetSHA()
	return pr.SHA, nil
}

func (c *Controller) listPullRequestFiles(ctx context.Context) ([]*github.CommitFile, error) {
	pr := c.param.PullRequest
	var files []*github.CommitFile
	opts := &github.ListOptions{PerPage: perPage}
	for {
		page, resp, err := c.pullRequestsService.ListFiles(ctx, pr.RepoOwner, pr.RepoName, pr.Number, opts)
		if err != nil {
			return nil, fmt.Errorf("list pull request files: %w", err)
		}
		files = append(files, page...)
		if resp == nil || resp.NextPage == 0 {
			return files, nil
		}
		opts.Page = resp.NextPage
	}
}

// collectFromPullRequest returns the target files of the pull request with their contents at the head commit.
// A file whose contents can't be fetched is returned as a failure and doesn't stop the others.
func (c *Controller) collectFromPullRequest(ctx context.Context, logE *logrus.Entry) ([]review.ModifiedFile, []*review.EngineFailure, error) {
	sha, err := c.headSHA(ctx)
	if err != nil {
		return nil, nil, err
	}
	commitFiles, err := c.listPullRequestFiles(ctx)
	if err != nil {
		return nil, nil, err
	}
	var (
		files    []review.ModifiedFile
		failures []*review.EngineFailure
	)
	for _, cf := range commitFiles {
		name := cf.GetFilename()
		logE := logE.WithField("file", name)
		if cf.GetStatus() == "removed" {
			continue
		}
		if !c.cfg.Target(name) {
			logE.Debug("skip a file which isn't a target")
			continue
		}
		if cf.GetPatch() == "" {
			logE.Debug("skip a file without a textual patch")
			continue
		}
		hunks, err := patch.ParseHunks(cf.GetPatch())
		if err != nil {
			return nil, nil, fmt.Errorf("parse the patch of %s: %w", name, err)
		}
		contents, err := c.getContents(ctx, name, sha)
		if err != nil {
			logerr.WithError(logE, err).Debug("couldn't get the file contents")
			failures = append(failures, &review.EngineFailure{Filename: name, Cause: err})
			continue
		}
		files = append(files, patch.NewFile(name, contents, hunks))
	}
	return files, failures, nil
}

var errNoContent = errors.New("the file has no content")

func (c *Controller) getContents(ctx context.Context, name, sha string) (string, error) {
	pr := c.param.PullRequest
	content, _, _, err := c.repositoriesService.GetContents(ctx, pr.RepoOwner, pr.RepoName, name, &github.RepositoryContentGetOptions{
		Ref: sha,
	})
	if err != nil {
		return "", fmt.Errorf("get the content of %s: %w", name, err)
	}
	if content == nil {
		return "", fmt.Errorf("get the content of %s: %w", name, errNoContent)
	}
	contents, err := content.GetContent()
	if err != nil {
		// e.g. files larger than 1 MB have the encoding "none"
		return "", fmt.Errorf("decode the content of %s: %w", name, err)
	}
	return contents, nil
}

// postComments posts one review comment per line violation.
// A failed comment is logged and doesn't stop the others.
func (c *Controller) postComments(ctx context.Context, logE *logrus.Entry, violations []*review.FileViolation) int {
	pr := c.param.PullRequest
	posted := 0
	for _, fv := range violations {
		for _, lv := range fv.LineViolations {
			cmt := &github.PullRequestComment{
				Body:     github.Ptr(strings.Join(lv.Messages, "\n")),
				Path:     github.Ptr(fv.Filename),
				Position: github.Ptr(lv.DiffPosition),
			}
			if pr.SHA != "" {
				cmt.CommitID = github.Ptr(pr.SHA)
			}
			_, resp, err := c.pullRequestsService.CreateComment(ctx, pr.RepoOwner, pr.RepoName, pr.Number, cmt)
			if err != nil {
				code := 0
				if resp != nil {
					code = resp.StatusCode
				}
				logerr.WithError(logE, err).WithFields(logrus.Fields{
					"file":        fv.Filename,
					"line":        lv.Line,
					"status_code": code,
				}).Error("create a review comment")
				continue
			}
			posted++
		}
	}
	return posted
}
