package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/thomas-vilte/prfuncs/internal/i18n"
	"github.com/thomas-vilte/prfuncs/internal/models"
)

// PrintReportStats writes a one-line summary of a finished run.
func PrintReportStats(w io.Writer, report *models.Report, elapsed time.Duration, t *i18n.Translations) {
	if report == nil {
		return
	}

	analyzed, absent, functions := 0, 0, 0
	for _, f := range report.Files {
		if !f.Present {
			absent++
			continue
		}
		if f.ParseErr == nil {
			analyzed++
			functions += len(f.Functions)
		}
	}

	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	_, _ = cyan.Fprint(w, "📊 ")
	_, _ = fmt.Fprintf(w, "%s %d | ", t.GetMessage("ui.files_analyzed", 0, nil), analyzed)
	_, _ = fmt.Fprintf(w, "%s %d | ", t.GetMessage("ui.files_absent", 0, nil), absent)
	_, _ = fmt.Fprintf(w, "%s %d", t.GetMessage("ui.functions_found", 0, nil), functions)
	if failed := report.ParseFailures(); failed > 0 {
		_, _ = yellow.Fprintf(w, " | %s %d", t.GetMessage("ui.files_unparsable", 0, nil), failed)
	}
	_, _ = fmt.Fprintf(w, " | ⏱️  %dms\n", elapsed.Milliseconds())
}
