package di

// Secrets holds the token for the GitHub API.
type Secrets struct {
	GitHubToken string
}

// SetFromEnv reads LINTHOUND_GITHUB_TOKEN, falling back to GITHUB_TOKEN.
func (s *Secrets) SetFromEnv(getEnv func(string) string) {
	s.GitHubToken = getEnv("LINTHOUND_GITHUB_TOKEN")
	if s.GitHubToken == "" {
		s.GitHubToken = getEnv("GITHUB_TOKEN")
	}
}

// SetEnv populates flags from environment variables of GitHub Actions.
func SetEnv(flags *Flags, getEnv func(string) string) {
	flags.GitHubRepository = getEnv("GITHUB_REPOSITORY")
	flags.GitHubAPIURL = getEnv("GITHUB_API_URL")
	flags.GitHubEventPath = getEnv("GITHUB_EVENT_PATH")
	flags.GHESAPIURL = getEnv("GHES_API_URL")
	flags.IsGitHubActions = getEnv("GITHUB_ACTIONS") == "true"
}
