package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	domainErrors "github.com/thomas-vilte/prfuncs/internal/errors"
	"github.com/thomas-vilte/prfuncs/internal/i18n"
)

var (
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Dim     = color.New(color.FgHiBlack)
)

// SmartSpinner animates a message while a blocking call runs.
type SmartSpinner struct {
	spinner *spinner.Spinner
}

// NewSmartSpinner creates a spinner that draws on f. The underlying library
// stays silent when f is not a terminal.
func NewSmartSpinner(f *os.File, message string) *SmartSpinner {
	s := spinner.New(
		spinner.CharSets[14],
		100*time.Millisecond,
		spinner.WithWriterFile(f),
		spinner.WithColor("cyan"),
		spinner.WithSuffix(" "+message),
	)
	return &SmartSpinner{spinner: s}
}

func (s *SmartSpinner) Start() {
	s.spinner.Start()
}

func (s *SmartSpinner) Stop() {
	s.spinner.Stop()
}

// WithSpinner runs fn while a spinner is shown on w. The spinner is only
// drawn when enabled and w is a file; otherwise fn runs without terminal output.
func WithSpinner(w io.Writer, enabled bool, message string, fn func() error) error {
	f, ok := w.(*os.File)
	if !enabled || !ok {
		return fn()
	}
	s := NewSmartSpinner(f, message)
	s.Start()
	defer s.Stop()
	return fn()
}

func PrintError(w io.Writer, msg string) {
	_, _ = Error.Fprintf(w, "❌ %s\n", msg)
}

func PrintWarning(w io.Writer, msg string) {
	_, _ = Warning.Fprintf(w, "⚠️  %s\n", msg)
}

// HandleAppError prints err on w. AppErrors get their type, details and
// suggestion; anything else is printed as a plain error line.
func HandleAppError(w io.Writer, err error, translations ...*i18n.Translations) {
	if err == nil {
		return
	}

	var t *i18n.Translations
	if len(translations) > 0 && translations[0] != nil {
		t = translations[0]
	}

	var appErr *domainErrors.AppError
	if !errors.As(err, &appErr) {
		PrintError(w, err.Error())
		return
	}

	suggestionColor := color.New(color.FgCyan)

	_, _ = Error.Fprintf(w, "❌ %s: %s\n", appErr.Type, appErr.Message)

	if file, ok := appErr.Context["file"].(string); ok && file != "" {
		_, _ = Dim.Fprintf(w, "   %s\n", file)
	}

	if appErr.Err != nil {
		details := "Details"
		if t != nil {
			details = t.GetMessage("ui_error.details", 0, nil)
		}
		_, _ = Dim.Fprintf(w, "   %s: %v\n", details, appErr.Err)
	}

	if appErr.Suggestion != "" {
		tryPrefix := "💡 Try: "
		if t != nil {
			tryPrefix = t.GetMessage("ui_error.try_suggestion", 0, nil)
		}
		_, _ = suggestionColor.Fprint(w, tryPrefix)
		lines := strings.Split(appErr.Suggestion, "\n")
		for i, line := range lines {
			if i == 0 {
				_, _ = fmt.Fprintln(w, line)
			} else {
				_, _ = fmt.Fprintf(w, "       %s\n", line)
			}
		}
	}
}
