package di

import (
	"strings"
	"time"

	"github.com/linthound/linthound/pkg/cli/flag"
)

// Flags holds the command line flags and environment variables of 'linthound check'.
type Flags struct {
	*flag.GlobalFlags

	DiffPath    string
	Format      string
	Review      bool
	Concurrency int
	FileTimeout time.Duration

	RepoOwner string
	RepoName  string
	SHA       string
	PR        int

	IsGitHubActions  bool
	GitHubRepository string
	GitHubAPIURL     string
	GitHubEventPath  string
	GHESAPIURL       string

	PWD string
}

const defaultGitHubAPIURL = "https://api.github.com"

// GetAPIURL returns the API URL of GitHub Enterprise Server.
// It returns an empty string for github.com.
func (f *Flags) GetAPIURL() string {
	if f.GHESAPIURL != "" {
		return f.GHESAPIURL
	}
	if f.GitHubAPIURL == "" || strings.TrimSuffix(f.GitHubAPIURL, "/") == defaultGitHubAPIURL {
		return ""
	}
	return f.GitHubAPIURL
}
