package vcs

import (
	"context"

	"github.com/thomas-vilte/prfuncs/internal/models"
)

// PullRequestFetcher retrieves a pull request and its changed files from a
// code-review service.
type PullRequestFetcher interface {
	// FetchPullRequest returns the pull request summary and every changed file,
	// with all pages already concatenated in the order the service returned them.
	FetchPullRequest(ctx context.Context, owner, repo string, number int) (models.PullRequestSummary, []models.ChangedFile, error)
}
