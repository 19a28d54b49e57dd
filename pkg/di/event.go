package di

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
)

// Event is the part of a GitHub Actions event payload which identifies a pull request.
// pull_request and pull_request_target events carry pull_request,
// and issue_comment events on a pull request carry issue.
type Event struct {
	PullRequest *PullRequest `json:"pull_request"`
	Issue       *Issue       `json:"issue"`
	Repository  *Repository  `json:"repository"`
}

func (e *Event) RepoOwner() string {
	if e != nil && e.Repository != nil && e.Repository.Owner != nil {
		return e.Repository.Owner.Login
	}
	return ""
}

func (e *Event) RepoName() string {
	if e != nil && e.Repository != nil {
		return e.Repository.Name
	}
	return ""
}

// PRNumber returns the pull request number. A pull request takes precedence over an issue.
func (e *Event) PRNumber() int {
	if e == nil {
		return 0
	}
	if e.PullRequest != nil {
		return e.PullRequest.Number
	}
	if e.Issue != nil {
		return e.Issue.Number
	}
	return 0
}

// SHA returns the head commit of the pull request.
// Issue events don't have it, so the head commit is fetched from GitHub later.
func (e *Event) SHA() string {
	if e == nil {
		return ""
	}
	if e.PullRequest != nil && e.PullRequest.Head != nil {
		return e.PullRequest.Head.SHA
	}
	return ""
}

type Issue struct {
	Number int `json:"number"`
}

type PullRequest struct {
	Number int   `json:"number"`
	Head   *Head `json:"head"`
}

type Repository struct {
	Owner *Owner `json:"owner"`
	Name  string `json:"name"`
}

type Owner struct {
	Login string `json:"login"`
}

type Head struct {
	SHA string `json:"sha"`
}

func readEvent(fs afero.Fs, eventPath string) (*Event, error) {
	f, err := fs.Open(eventPath)
	if err != nil {
		return nil, fmt.Errorf("read GITHUB_EVENT_PATH: %w", err)
	}
	defer f.Close()
	ev := &Event{}
	if err := json.NewDecoder(f).Decode(ev); err != nil {
		return nil, fmt.Errorf("unmarshal GITHUB_EVENT_PATH: %w", err)
	}
	return ev, nil
}
