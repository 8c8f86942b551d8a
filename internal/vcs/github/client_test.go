package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/prfuncs/internal/config"
	domainErrors "github.com/thomas-vilte/prfuncs/internal/errors"
	"github.com/thomas-vilte/prfuncs/internal/models"
)

func newTestClient(pr *MockPRService) *GitHubClient {
	return NewGitHubClientWithServices(pr)
}

func commitFiles(names ...string) []*github.CommitFile {
	files := make([]*github.CommitFile, len(names))
	for i, name := range names {
		files[i] = &github.CommitFile{Filename: github.Ptr(name)}
	}
	return files
}

func statusResponse(code int) *github.Response {
	return &github.Response{Response: &http.Response{StatusCode: code, Header: http.Header{}}}
}

func TestGitHubClient_FetchPullRequest(t *testing.T) {
	t.Run("should return summary and changed files", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := newTestClient(mockPR)

		mockPR.On("Get", mock.Anything, "test-owner", "test-repo", 42).
			Return(&github.PullRequest{Number: github.Ptr(42), Title: github.Ptr("Add parser")}, &github.Response{}, nil)
		mockPR.On("ListFiles", mock.Anything, "test-owner", "test-repo", 42, 0).
			Return(commitFiles("src/lib.go", "README.md", "src/util.go"), &github.Response{}, nil)

		summary, files, err := client.FetchPullRequest(context.Background(), "test-owner", "test-repo", 42)

		require.NoError(t, err)
		assert.Equal(t, models.PullRequestSummary{Number: 42, Title: "Add parser"}, summary)
		assert.Equal(t, []models.ChangedFile{
			{Path: "src/lib.go"},
			{Path: "README.md"},
			{Path: "src/util.go"},
		}, files)
		mockPR.AssertExpectations(t)
	})

	t.Run("should concatenate every page in order", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := newTestClient(mockPR)

		mockPR.On("Get", mock.Anything, "test-owner", "test-repo", 7).
			Return(&github.PullRequest{Number: github.Ptr(7), Title: github.Ptr("Big change")}, &github.Response{}, nil)
		mockPR.On("ListFiles", mock.Anything, "test-owner", "test-repo", 7, 0).
			Return(commitFiles("a.go", "b.go"), &github.Response{NextPage: 2}, nil).Once()
		mockPR.On("ListFiles", mock.Anything, "test-owner", "test-repo", 7, 2).
			Return(commitFiles("c.go", "d.md"), &github.Response{NextPage: 3}, nil).Once()
		mockPR.On("ListFiles", mock.Anything, "test-owner", "test-repo", 7, 3).
			Return(commitFiles("e.go"), &github.Response{}, nil).Once()

		_, files, err := client.FetchPullRequest(context.Background(), "test-owner", "test-repo", 7)

		require.NoError(t, err)
		assert.Equal(t, []models.ChangedFile{
			{Path: "a.go"}, {Path: "b.go"}, {Path: "c.go"}, {Path: "d.md"}, {Path: "e.go"},
		}, files)
		mockPR.AssertNumberOfCalls(t, "ListFiles", 3)
	})

	t.Run("should return an empty list for a PR without files", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := newTestClient(mockPR)

		mockPR.On("Get", mock.Anything, "o", "r", 1).
			Return(&github.PullRequest{Number: github.Ptr(1)}, &github.Response{}, nil)
		mockPR.On("ListFiles", mock.Anything, "o", "r", 1, 0).
			Return(nil, &github.Response{}, nil)

		_, files, err := client.FetchPullRequest(context.Background(), "o", "r", 1)

		require.NoError(t, err)
		assert.NotNil(t, files)
		assert.Empty(t, files)
	})

	t.Run("should reject invalid arguments without calling the API", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := newTestClient(mockPR)

		_, _, err := client.FetchPullRequest(context.Background(), "", "repo", 1)
		assert.ErrorIs(t, err, domainErrors.ErrInvalidArguments)

		_, _, err = client.FetchPullRequest(context.Background(), "owner", "repo", 0)
		assert.ErrorIs(t, err, domainErrors.ErrInvalidPRNumber)

		mockPR.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should not list files when the PR lookup fails", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := newTestClient(mockPR)

		mockPR.On("Get", mock.Anything, "o", "r", 9).
			Return(nil, statusResponse(http.StatusNotFound), errors.New("404 Not Found"))

		_, _, err := client.FetchPullRequest(context.Background(), "o", "r", 9)

		assert.ErrorIs(t, err, domainErrors.ErrPullRequestNotFound)
		mockPR.AssertNotCalled(t, "ListFiles", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should fail when a later page fails", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := newTestClient(mockPR)

		mockPR.On("Get", mock.Anything, "o", "r", 5).
			Return(&github.PullRequest{Number: github.Ptr(5)}, &github.Response{}, nil)
		mockPR.On("ListFiles", mock.Anything, "o", "r", 5, 0).
			Return(commitFiles("a.go"), &github.Response{NextPage: 2}, nil).Once()
		mockPR.On("ListFiles", mock.Anything, "o", "r", 5, 2).
			Return(nil, nil, errors.New("connection reset by peer")).Once()

		_, files, err := client.FetchPullRequest(context.Background(), "o", "r", 5)

		assert.Nil(t, files)
		var appErr *domainErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainErrors.TypeNetwork, appErr.Type)
		assert.Equal(t, 2, appErr.Context["page"])
	})
}

func rateLimitError() *github.RateLimitError {
	u, _ := url.Parse("https://api.github.com/repos/o/r/pulls/3")
	return &github.RateLimitError{
		Message: "API rate limit exceeded",
		Response: &http.Response{
			StatusCode: http.StatusForbidden,
			Request:    &http.Request{Method: http.MethodGet, URL: u},
		},
	}
}

func TestGitHubClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		resp     *github.Response
		err      error
		expected *domainErrors.AppError
		exitCode int
	}{
		{
			name:     "unauthorized maps to authentication error",
			resp:     statusResponse(http.StatusUnauthorized),
			err:      errors.New("401 Bad credentials"),
			expected: domainErrors.ErrGitHubTokenInvalid,
			exitCode: domainErrors.ExitAuth,
		},
		{
			name:     "not found maps to not found error",
			resp:     statusResponse(http.StatusNotFound),
			err:      errors.New("404 Not Found"),
			expected: domainErrors.ErrPullRequestNotFound,
			exitCode: domainErrors.ExitNotFound,
		},
		{
			name:     "too many requests maps to rate limit",
			resp:     statusResponse(http.StatusTooManyRequests),
			err:      errors.New("429"),
			expected: domainErrors.ErrGitHubRateLimit,
			exitCode: domainErrors.ExitNetwork,
		},
		{
			name:     "rate limit error type maps to rate limit",
			resp:     statusResponse(http.StatusForbidden),
			err:      fmt.Errorf("wrapped: %w", rateLimitError()),
			expected: domainErrors.ErrGitHubRateLimit,
			exitCode: domainErrors.ExitNetwork,
		},
		{
			name:     "server error maps to network error",
			resp:     statusResponse(http.StatusBadGateway),
			err:      errors.New("502 Bad Gateway"),
			expected: domainErrors.ErrNetwork,
			exitCode: domainErrors.ExitNetwork,
		},
		{
			name:     "transport failure without response maps to network error",
			resp:     nil,
			err:      errors.New("dial tcp: lookup api.github.com: no such host"),
			expected: domainErrors.ErrNetwork,
			exitCode: domainErrors.ExitNetwork,
		},
		{
			name:     "empty response wrapper maps to network error",
			resp:     &github.Response{},
			err:      errors.New("unexpected EOF"),
			expected: domainErrors.ErrNetwork,
			exitCode: domainErrors.ExitNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPR := &MockPRService{}
			client := newTestClient(mockPR)

			mockPR.On("Get", mock.Anything, "o", "r", 3).Return(nil, tt.resp, tt.err)

			_, err := client.GetPullRequest(context.Background(), "o", "r", 3)

			assert.ErrorIs(t, err, tt.expected)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.exitCode, domainErrors.ExitCode(err))
		})
	}
}

func TestNewGitHubClient(t *testing.T) {
	t.Run("should build a client for github.com", func(t *testing.T) {
		client, err := NewGitHubClient("token", "")

		require.NoError(t, err)
		assert.NotNil(t, client.prService)
		assert.Equal(t, defaultPerPage, client.perPage)
	})

	t.Run("should build a client for an enterprise host", func(t *testing.T) {
		client, err := NewGitHubClient("token", "https://ghe.example.com/api/v3/")

		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("should reject a malformed enterprise URL", func(t *testing.T) {
		_, err := NewGitHubClient("token", "://bad url")

		assert.ErrorIs(t, err, domainErrors.ErrInvalidArguments)
	})

	t.Run("factory builds a fetcher from config", func(t *testing.T) {
		fetcher, err := NewGitHubFetcherFactory().CreateFetcher(context.Background(), &config.Config{Token: "t"})

		require.NoError(t, err)
		assert.IsType(t, &GitHubClient{}, fetcher)
	})
}

func TestUploadURL(t *testing.T) {
	assert.Equal(t, "https://ghe.example.com/api/uploads/", uploadURL("https://ghe.example.com/api/v3/"))
	assert.Equal(t, "https://ghe.example.com/", uploadURL("https://ghe.example.com/"))
}
