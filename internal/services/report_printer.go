package services

import (
	"fmt"
	"io"

	"github.com/thomas-vilte/prfuncs/internal/i18n"
	"github.com/thomas-vilte/prfuncs/internal/models"
)

type reportPrinter struct {
	w     io.Writer
	trans *i18n.Translations
	err   error
}

func newReportPrinter(w io.Writer, t *i18n.Translations) *reportPrinter {
	return &reportPrinter{w: w, trans: t}
}

func (p *reportPrinter) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *reportPrinter) msg(id string, data map[string]interface{}) string {
	return p.trans.GetMessage(id, 0, data)
}

func (p *reportPrinter) header(pr models.PullRequestSummary, files []models.ChangedFile) error {
	p.line("%s", p.msg("report.pr_header", map[string]interface{}{
		"Number": pr.Number,
		"Title":  pr.Title,
	}))
	p.line("%s", p.msg("report.changed_files", nil))
	for _, f := range files {
		p.line("- %s", f.Path)
	}
	return p.err
}

func (p *reportPrinter) file(fr models.FileReport) error {
	data := map[string]interface{}{"Path": fr.Path}

	switch {
	case !fr.Present:
		p.line("%s", p.msg("report.not_present", data))
	case fr.ParseErr != nil:
		p.line("%s", p.msg("report.parse_failed", data))
	default:
		p.line("%s", p.msg("report.functions_header", data))
		for _, name := range fr.Functions {
			p.line("- %s", name)
		}
	}
	return p.err
}
