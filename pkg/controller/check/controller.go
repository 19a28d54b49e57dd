// Package check implements 'linthound check'.
// It collects the files a change modifies, either from a unified diff or from a
// GitHub pull request, runs the review checker over them and reports the
// violations as text, JSON or SARIF and optionally as pull request review comments.
package check

import (
	"context"
	"errors"
	"io"

	"github.com/linthound/linthound/pkg/config"
	"github.com/linthound/linthound/pkg/review"
	"github.com/spf13/afero"
)

// ErrViolationsFound is returned when the change has style violations.
var ErrViolationsFound = errors.New("style violations are found")

// Checker reviews modified files.
type Checker interface {
	Check(ctx context.Context, files []review.ModifiedFile, cfg *config.StyleGuide) (*review.Result, error)
}

type Controller struct {
	fs                  afero.Fs
	checker             Checker
	cfg                 *config.StyleGuide
	param               *ParamCheck
	pullRequestsService PullRequestsService
	repositoriesService RepositoriesService
	logger              *Logger
}

const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatSARIF = "sarif"
)

type ParamCheck struct {
	// DiffPath is a unified diff file. "-" means stdin.
	DiffPath    string
	PWD         string
	Format      string
	PullRequest *PullRequest
	// Review posts a review comment per line violation to PullRequest.
	Review  bool
	Version string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// PullRequest identifies a GitHub pull request. SHA is the head commit and may be empty.
type PullRequest struct {
	RepoOwner string
	RepoName  string
	Number    int
	SHA       string
}

func (p *PullRequest) Valid() bool {
	return p != nil && p.RepoOwner != "" && p.RepoName != "" && p.Number > 0
}

func New(fs afero.Fs, checker Checker, cfg *config.StyleGuide, prService PullRequestsService, repoService RepositoriesService, param *ParamCheck) *Controller {
	return &Controller{
		fs:                  fs,
		checker:             checker,
		cfg:                 cfg,
		param:               param,
		pullRequestsService: prService,
		repositoriesService: repoService,
		logger:              NewLogger(param.Stdout),
	}
}
