package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v80/github"
	domainErrors "github.com/thomas-vilte/prfuncs/internal/errors"
	"github.com/thomas-vilte/prfuncs/internal/logger"
	"github.com/thomas-vilte/prfuncs/internal/models"
	"github.com/thomas-vilte/prfuncs/internal/vcs"
	"golang.org/x/oauth2"
)

var _ vcs.PullRequestFetcher = (*GitHubClient)(nil)

const defaultPerPage = 100

type PullRequestsService interface {
	Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error)
	ListFiles(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.CommitFile, *github.Response, error)
}

type GitHubClient struct {
	prService PullRequestsService
	perPage   int
}

// NewGitHubClient builds a client authenticated with a personal access token.
// apiURL is optional and points the client at a GitHub Enterprise instance.
func NewGitHubClient(token, apiURL string) (*GitHubClient, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	if apiURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(apiURL, uploadURL(apiURL))
		if err != nil {
			return nil, domainErrors.ErrInvalidArguments.
				WithError(err).
				WithContext("flag", "api-url").
				WithSuggestion("Use the API root, for example: https://github.example.com/api/v3/")
		}
	}

	return NewGitHubClientWithServices(client.PullRequests), nil
}

func NewGitHubClientWithServices(prService PullRequestsService) *GitHubClient {
	return &GitHubClient{
		prService: prService,
		perPage:   defaultPerPage,
	}
}

func (ghc *GitHubClient) FetchPullRequest(ctx context.Context, owner, repo string, number int) (models.PullRequestSummary, []models.ChangedFile, error) {
	if owner == "" || repo == "" {
		return models.PullRequestSummary{}, nil, domainErrors.ErrInvalidArguments.
			WithContext("owner", owner).
			WithContext("repo", repo)
	}
	if number <= 0 {
		return models.PullRequestSummary{}, nil, domainErrors.ErrInvalidPRNumber.
			WithContext("pr_number", number)
	}

	summary, err := ghc.GetPullRequest(ctx, owner, repo, number)
	if err != nil {
		return models.PullRequestSummary{}, nil, err
	}

	files, err := ghc.ListChangedFiles(ctx, owner, repo, number)
	if err != nil {
		return models.PullRequestSummary{}, nil, err
	}

	return summary, files, nil
}

func (ghc *GitHubClient) GetPullRequest(ctx context.Context, owner, repo string, number int) (models.PullRequestSummary, error) {
	log := logger.FromContext(ctx)

	log.Debug("fetching github pull request",
		"owner", owner,
		"repo", repo,
		"pr_number", number)

	pr, resp, err := ghc.prService.Get(ctx, owner, repo, number)
	if err != nil {
		logger.Error(ctx, "failed to fetch github PR", err,
			"owner", owner,
			"repo", repo,
			"pr_number", number)
		return models.PullRequestSummary{}, classifyError(resp, err).
			WithContext("operation", "get PR").
			WithContext("pr_number", number).
			WithContext("repo", fmt.Sprintf("%s/%s", owner, repo))
	}

	return models.PullRequestSummary{
		Number: pr.GetNumber(),
		Title:  pr.GetTitle(),
	}, nil
}

// ListChangedFiles follows resp.NextPage until the last page and returns the
// concatenation of every page.
func (ghc *GitHubClient) ListChangedFiles(ctx context.Context, owner, repo string, number int) ([]models.ChangedFile, error) {
	log := logger.FromContext(ctx)

	opts := &github.ListOptions{PerPage: ghc.perPage}
	files := make([]models.ChangedFile, 0)
	pages := 0

	for {
		page, resp, err := ghc.prService.ListFiles(ctx, owner, repo, number, opts)
		if err != nil {
			logger.Error(ctx, "failed to list github PR files", err,
				"pr_number", number,
				"page", opts.Page)
			return nil, classifyError(resp, err).
				WithContext("operation", "list PR files").
				WithContext("pr_number", number).
				WithContext("page", opts.Page).
				WithContext("repo", fmt.Sprintf("%s/%s", owner, repo))
		}
		pages++

		for _, f := range page {
			files = append(files, models.ChangedFile{Path: f.GetFilename()})
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	log.Debug("github PR files fetched",
		"pr_number", number,
		"files_count", len(files),
		"pages", pages)

	return files, nil
}

func classifyError(resp *github.Response, err error) *domainErrors.AppError {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		appErr := domainErrors.ErrGitHubRateLimit.WithError(err)
		if rateErr != nil {
			appErr = appErr.WithContext("reset", rateErr.Rate.Reset.Time)
		}
		return appErr
	}

	if resp != nil && resp.Response != nil {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return domainErrors.ErrGitHubTokenInvalid.WithError(err)
		case http.StatusNotFound:
			return domainErrors.ErrPullRequestNotFound.WithError(err)
		case http.StatusTooManyRequests:
			return domainErrors.ErrGitHubRateLimit.
				WithError(err).
				WithContext("retry_after", resp.Header.Get("Retry-After"))
		default:
			return domainErrors.ErrNetwork.
				WithError(err).
				WithContext("status_code", resp.StatusCode)
		}
	}

	return domainErrors.ErrNetwork.WithError(err)
}

// uploadURL derives the enterprise upload endpoint from the API root:
// https://host/api/v3/ -> https://host/api/uploads/.
func uploadURL(apiURL string) string {
	if i := strings.Index(apiURL, "/api/v3"); i >= 0 {
		return apiURL[:i] + "/api/uploads/"
	}
	return apiURL
}
