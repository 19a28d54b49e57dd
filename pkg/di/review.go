package di

import (
	"fmt"
	"strings"

	"github.com/linthound/linthound/pkg/controller/check"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

// populatePullRequestFromGitHubActionsEnv fills missing fields from GITHUB_REPOSITORY and the event payload.
func populatePullRequestFromGitHubActionsEnv(fs afero.Fs, pr *check.PullRequest, flags *Flags) error {
	if pr.RepoOwner == "" || pr.RepoName == "" {
		repo := flags.GitHubRepository
		owner, name, ok := strings.Cut(repo, "/")
		if !ok || owner == "" || name == "" {
			return fmt.Errorf("GITHUB_REPOSITORY is not set or invalid: %s", repo)
		}
		if pr.RepoOwner == "" {
			pr.RepoOwner = owner
		}
		if pr.RepoName == "" {
			pr.RepoName = name
		}
	}
	if flags.GitHubEventPath == "" || (pr.Number != 0 && pr.SHA != "") {
		return nil
	}
	ev, err := readEvent(fs, flags.GitHubEventPath)
	if err != nil {
		return err
	}
	if pr.Number == 0 {
		pr.Number = ev.PRNumber()
	}
	if pr.SHA == "" {
		pr.SHA = ev.SHA()
	}
	return nil
}

// setupPullRequest returns the pull request to check or review.
// It returns nil if a diff is checked without reviews or the pull request can't be identified.
func setupPullRequest(fs afero.Fs, logE *logrus.Entry, flags *Flags) *check.PullRequest {
	if flags.DiffPath != "" && !flags.Review {
		return nil
	}
	pr := &check.PullRequest{
		RepoOwner: flags.RepoOwner,
		RepoName:  flags.RepoName,
		Number:    flags.PR,
		SHA:       flags.SHA,
	}
	if flags.IsGitHubActions {
		if err := populatePullRequestFromGitHubActionsEnv(fs, pr, flags); err != nil {
			logerr.WithError(logE, err).Error("set pull request information")
		}
	}
	if !pr.Valid() {
		logE.WithFields(logrus.Fields{
			"repo_owner": pr.RepoOwner,
			"repo_name":  pr.RepoName,
			"pr":         pr.Number,
		}).Debug("the pull request information is invalid")
		return nil
	}
	return pr
}
