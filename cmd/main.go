package main

import (
	"context"
	"fmt"
	"os"

	"github.com/thomas-vilte/prfuncs/internal/cli/command/funcs"
	"github.com/thomas-vilte/prfuncs/internal/config"
	domainErrors "github.com/thomas-vilte/prfuncs/internal/errors"
	"github.com/thomas-vilte/prfuncs/internal/i18n"
	"github.com/thomas-vilte/prfuncs/internal/ui"
	"github.com/thomas-vilte/prfuncs/internal/vcs/github"
	"github.com/thomas-vilte/prfuncs/internal/version"
)

func main() {
	os.Exit(run(context.Background(), os.Args))
}

func run(ctx context.Context, args []string) int {
	lang := os.Getenv(config.EnvLanguage)
	if lang == "" {
		lang = "en"
	}

	translations, err := i18n.NewTranslations(lang, "")
	if err != nil {
		// fall back to English so usage and errors can still be rendered
		translations, err = i18n.NewTranslations("en", "")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to load translations: %v\n", err)
			return domainErrors.ExitInternal
		}
	}

	app := funcs.NewFuncsCommand(github.NewGitHubFetcherFactory(), os.Stdout, os.Stderr).
		CreateCommand(translations, version.FullVersion())

	if err := funcs.Execute(ctx, app, args); err != nil {
		ui.HandleAppError(os.Stderr, err, translations)
		return domainErrors.ExitCode(err)
	}
	return domainErrors.ExitOK
}
