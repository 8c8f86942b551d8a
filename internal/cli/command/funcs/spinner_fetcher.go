package funcs

import (
	"context"
	"io"

	"github.com/thomas-vilte/prfuncs/internal/i18n"
	"github.com/thomas-vilte/prfuncs/internal/models"
	"github.com/thomas-vilte/prfuncs/internal/ui"
	"github.com/thomas-vilte/prfuncs/internal/vcs"
)

// spinnerFetcher shows a spinner on w while the wrapped fetcher runs.
type spinnerFetcher struct {
	next    vcs.PullRequestFetcher
	w       io.Writer
	enabled bool
	trans   *i18n.Translations
}

func (f *spinnerFetcher) FetchPullRequest(ctx context.Context, owner, repo string, number int) (models.PullRequestSummary, []models.ChangedFile, error) {
	var (
		pr    models.PullRequestSummary
		files []models.ChangedFile
	)

	msg := f.trans.GetMessage("spinner.fetching", 0, map[string]interface{}{
		"Owner":  owner,
		"Repo":   repo,
		"Number": number,
	})

	err := ui.WithSpinner(f.w, f.enabled, msg, func() error {
		var err error
		pr, files, err = f.next.FetchPullRequest(ctx, owner, repo, number)
		return err
	})

	return pr, files, err
}
