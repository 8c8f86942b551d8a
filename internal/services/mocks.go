package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/prfuncs/internal/models"
)

type (
	MockFetcher struct {
		mock.Mock
	}

	MockLister struct {
		mock.Mock
	}
)

func (m *MockFetcher) FetchPullRequest(ctx context.Context, owner, repo string, number int) (models.PullRequestSummary, []models.ChangedFile, error) {
	args := m.Called(ctx, owner, repo, number)
	var files []models.ChangedFile
	if v := args.Get(1); v != nil {
		files = v.([]models.ChangedFile)
	}
	return args.Get(0).(models.PullRequestSummary), files, args.Error(2)
}

func (m *MockLister) ListFunctions(ctx context.Context, path string) ([]string, error) {
	args := m.Called(ctx, path)
	var names []string
	if v := args.Get(0); v != nil {
		names = v.([]string)
	}
	return names, args.Error(1)
}

func (m *MockLister) Extension() string {
	args := m.Called()
	return args.String(0)
}
