package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/thomas-vilte/prfuncs/internal/analyzer"
	domainErrors "github.com/thomas-vilte/prfuncs/internal/errors"
	"github.com/thomas-vilte/prfuncs/internal/i18n"
	"github.com/thomas-vilte/prfuncs/internal/logger"
	"github.com/thomas-vilte/prfuncs/internal/models"
	"github.com/thomas-vilte/prfuncs/internal/vcs"
)

// ReportRequest identifies the pull request to analyze.
type ReportRequest struct {
	Owner  string
	Repo   string
	Number int
}

type FunctionReportService struct {
	fetcher   vcs.PullRequestFetcher
	lister    analyzer.FunctionLister
	trans     *i18n.Translations
	workDir   string
	keepGoing bool
}

type ReportOption func(*FunctionReportService)

func WithFetcher(f vcs.PullRequestFetcher) ReportOption {
	return func(s *FunctionReportService) {
		s.fetcher = f
	}
}

func WithLister(l analyzer.FunctionLister) ReportOption {
	return func(s *FunctionReportService) {
		s.lister = l
	}
}

func WithTranslations(t *i18n.Translations) ReportOption {
	return func(s *FunctionReportService) {
		s.trans = t
	}
}

// WithWorkDir sets the directory changed-file paths are resolved against.
func WithWorkDir(dir string) ReportOption {
	return func(s *FunctionReportService) {
		s.workDir = dir
	}
}

// WithKeepGoing turns parse failures into per-file notices. The run still
// fails at the end if any file could not be parsed.
func WithKeepGoing(keepGoing bool) ReportOption {
	return func(s *FunctionReportService) {
		s.keepGoing = keepGoing
	}
}

func NewFunctionReportService(opts ...ReportOption) *FunctionReportService {
	s := &FunctionReportService{workDir: "."}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run fetches the pull request, prints its header and the matching changed
// files, then analyzes each one in order. Output is written as it is
// produced, so a fatal error leaves everything printed up to that point.
func (s *FunctionReportService) Run(ctx context.Context, req ReportRequest, w io.Writer) (*models.Report, error) {
	if s.fetcher == nil || s.lister == nil || s.trans == nil {
		return nil, domainErrors.NewAppError(domainErrors.TypeInternal, "report service is not fully configured", nil)
	}

	ctx = logger.With(ctx,
		"owner", req.Owner,
		"repo", req.Repo,
		"pr_number", req.Number)
	log := logger.FromContext(ctx)

	log.Info("fetching pull request")

	pr, changed, err := s.fetcher.FetchPullRequest(ctx, req.Owner, req.Repo, req.Number)
	if err != nil {
		return nil, err
	}

	sources := s.filterSources(changed)
	log.Info("pull request fetched",
		"title", pr.Title,
		"files_count", len(changed),
		"count", len(sources))

	p := newReportPrinter(w, s.trans)
	report := &models.Report{
		PullRequest: pr,
		Files:       make([]models.FileReport, 0, len(sources)),
	}

	if err := p.header(pr, sources); err != nil {
		return nil, domainErrors.ErrWriteReport.WithError(err)
	}

	for _, file := range sources {
		fr, err := s.analyze(ctx, file)
		if err != nil {
			return report, err
		}
		report.Files = append(report.Files, fr)

		if err := p.file(fr); err != nil {
			return report, domainErrors.ErrWriteReport.WithError(err)
		}
	}

	if failed := report.ParseFailures(); failed > 0 {
		return report, domainErrors.ErrParse.
			WithContext("failed_files", failed).
			WithSuggestion("Fix the syntax errors reported above")
	}

	return report, nil
}

// filterSources keeps the changed files the lister understands, preserving
// service order and duplicates.
func (s *FunctionReportService) filterSources(changed []models.ChangedFile) []models.ChangedFile {
	ext := s.lister.Extension()
	out := make([]models.ChangedFile, 0, len(changed))
	for _, f := range changed {
		if strings.HasSuffix(f.Path, ext) {
			out = append(out, f)
		}
	}
	return out
}

func (s *FunctionReportService) analyze(ctx context.Context, file models.ChangedFile) (models.FileReport, error) {
	fr := models.FileReport{Path: file.Path}

	local := filepath.Join(s.workDir, filepath.FromSlash(file.Path))
	info, err := os.Stat(local)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Info(ctx, "changed file not present locally", "path", file.Path)
		return fr, nil
	case err != nil:
		return fr, domainErrors.ErrReadFile.WithError(err).WithContext("file", file.Path)
	case info.IsDir():
		logger.Warn(ctx, "changed path is a directory locally", "path", file.Path)
		return fr, nil
	}

	fr.Present = true
	names, err := s.lister.ListFunctions(ctx, local)
	if err != nil {
		if s.keepGoing && errors.Is(err, domainErrors.ErrParse) {
			logger.Warn(ctx, "skipping unparsable file", "path", file.Path, "error", err)
			fr.ParseErr = err
			return fr, nil
		}
		return fr, relabel(err, file.Path)
	}

	fr.Functions = names
	return fr, nil
}

// relabel reports errors with the path as the service listed it rather
// than the resolved local path.
func relabel(err error, path string) error {
	var appErr *domainErrors.AppError
	if errors.As(err, &appErr) {
		return appErr.WithContext("file", path)
	}
	return fmt.Errorf("%s: %w", path, err)
}
