package github

import (
	"context"

	"github.com/thomas-vilte/prfuncs/internal/config"
	"github.com/thomas-vilte/prfuncs/internal/vcs"
)

// GitHubFetcherFactory creates authenticated GitHub fetchers from the
// process configuration.
type GitHubFetcherFactory struct{}

func NewGitHubFetcherFactory() *GitHubFetcherFactory {
	return &GitHubFetcherFactory{}
}

func (f *GitHubFetcherFactory) CreateFetcher(_ context.Context, cfg *config.Config) (vcs.PullRequestFetcher, error) {
	return NewGitHubClient(cfg.Token, cfg.APIURL)
}
