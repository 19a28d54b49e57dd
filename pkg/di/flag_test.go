package di_test

import (
	"testing"

	"github.com/linthound/linthound/pkg/di"
)

func TestFlags_GetAPIURL(t *testing.T) {
	t.Parallel()
	data := []struct {
		name         string
		ghesAPIURL   string
		githubAPIURL string
		exp          string
	}{
		{name: "empty"},
		{name: "ghes api url set", ghesAPIURL: "https://ghes.example.com/api/v3", exp: "https://ghes.example.com/api/v3"},
		{name: "github api url is default", githubAPIURL: "https://api.github.com", exp: ""},
		{name: "github api url with a trailing slash", githubAPIURL: "https://api.github.com/", exp: ""},
		{name: "github api url is custom", githubAPIURL: "https://custom.github.com/api/v3", exp: "https://custom.github.com/api/v3"},
		{name: "ghes api url takes precedence", ghesAPIURL: "https://ghes.example.com/api/v3", githubAPIURL: "https://custom.github.com/api/v3", exp: "https://ghes.example.com/api/v3"},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			flags := &di.Flags{GHESAPIURL: d.ghesAPIURL, GitHubAPIURL: d.githubAPIURL}
			if got := flags.GetAPIURL(); got != d.exp {
				t.Errorf("wanted %q, got %q", d.exp, got)
			}
		})
	}
}
