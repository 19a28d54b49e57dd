// Package github creates the GitHub API client linthound uses to read pull request files
// and to post review comments. GitHub Enterprise Server is supported through its API URL.
package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v74/github"
	"golang.org/x/oauth2"
)

type (
	Client                      = github.Client
	ListOptions                 = github.ListOptions
	Response                    = github.Response
	CommitFile                  = github.CommitFile
	PullRequest                 = github.PullRequest
	PullRequestBranch           = github.PullRequestBranch
	PullRequestComment          = github.PullRequestComment
	RepositoryContent           = github.RepositoryContent
	RepositoryContentGetOptions = github.RepositoryContentGetOptions
)

const defaultAPIURL = "https://api.github.com"

// New creates a GitHub API client.
// apiURL is the REST API endpoint of GitHub Enterprise Server. An empty apiURL means github.com.
// An empty token makes unauthenticated requests.
func New(ctx context.Context, token, apiURL string) (*Client, error) {
	client := github.NewClient(getHTTPClientForGitHub(ctx, token))
	if apiURL == "" || strings.TrimSuffix(apiURL, "/") == defaultAPIURL {
		return client, nil
	}
	c, err := client.WithEnterpriseURLs(apiURL, apiURL)
	if err != nil {
		return nil, fmt.Errorf("configure the GitHub Enterprise Server API URL %s: %w", apiURL, err)
	}
	return c, nil
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return github.Ptr(v)
}

func getHTTPClientForGitHub(ctx context.Context, token string) *http.Client {
	if token == "" {
		return http.DefaultClient
	}
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	))
}
