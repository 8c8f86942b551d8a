package models

type (
	// PullRequestSummary contains the pull request fields printed in the report header.
	PullRequestSummary struct {
		Number int
		Title  string
	}

	// ChangedFile is one entry of the pull request's changed-file list.
	ChangedFile struct {
		Path string
	}
)
