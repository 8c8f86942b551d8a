package models

// FileReport is the analysis result of a single changed source file.
type FileReport struct {
	Path      string
	Present   bool
	Functions []string
	ParseErr  error
}

// Report is everything produced by one run, in the order it is printed.
type Report struct {
	PullRequest PullRequestSummary
	Files       []FileReport
}

// ParseFailures counts the files that could not be parsed.
func (r *Report) ParseFailures() int {
	n := 0
	for _, f := range r.Files {
		if f.ParseErr != nil {
			n++
		}
	}
	return n
}
