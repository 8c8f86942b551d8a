package funcs

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/thomas-vilte/prfuncs/internal/analyzer/golang"
	"github.com/thomas-vilte/prfuncs/internal/config"
	domainErrors "github.com/thomas-vilte/prfuncs/internal/errors"
	"github.com/thomas-vilte/prfuncs/internal/i18n"
	"github.com/thomas-vilte/prfuncs/internal/logger"
	"github.com/thomas-vilte/prfuncs/internal/services"
	"github.com/thomas-vilte/prfuncs/internal/ui"
	"github.com/thomas-vilte/prfuncs/internal/vcs"
	"github.com/urfave/cli/v3"
)

const (
	flagOwner     = "owner"
	flagRepo      = "repo"
	flagPR        = "pr"
	flagMethods   = "methods"
	flagKeepGoing = "keep-going"
	flagLang      = "lang"
	flagAPIURL    = "api-url"
	flagDir       = "dir"
	flagDebug     = "debug"
	flagVerbose   = "verbose"
	flagNoSpinner = "no-spinner"
)

// FetcherFactory creates the pull request fetcher once configuration is known.
type FetcherFactory interface {
	CreateFetcher(ctx context.Context, cfg *config.Config) (vcs.PullRequestFetcher, error)
}

type FuncsCommand struct {
	fetcherFactory FetcherFactory
	stdout         io.Writer
	stderr         io.Writer
}

func NewFuncsCommand(factory FetcherFactory, stdout, stderr io.Writer) *FuncsCommand {
	return &FuncsCommand{
		fetcherFactory: factory,
		stdout:         stdout,
		stderr:         stderr,
	}
}

func (c *FuncsCommand) CreateCommand(t *i18n.Translations, version string) *cli.Command {
	return &cli.Command{
		Name:        "prfuncs",
		Usage:       t.GetMessage("app_usage", 0, nil),
		Description: t.GetMessage("app_description", 0, nil),
		Version:     version,
		Writer:      c.stdout,
		ErrWriter:   c.stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     flagOwner,
				Aliases:  []string{"o"},
				Usage:    t.GetMessage("flag.owner_usage", 0, nil),
				Required: true,
			},
			&cli.StringFlag{
				Name:     flagRepo,
				Aliases:  []string{"r"},
				Usage:    t.GetMessage("flag.repo_usage", 0, nil),
				Required: true,
			},
			&cli.IntFlag{
				Name:     flagPR,
				Aliases:  []string{"n"},
				Usage:    t.GetMessage("flag.pr_usage", 0, nil),
				Required: true,
			},
			&cli.BoolFlag{
				Name:  flagMethods,
				Usage: t.GetMessage("flag.methods_usage", 0, nil),
			},
			&cli.BoolFlag{
				Name:  flagKeepGoing,
				Usage: t.GetMessage("flag.keep_going_usage", 0, nil),
			},
			&cli.StringFlag{
				Name:  flagLang,
				Usage: t.GetMessage("flag.lang_usage", 0, nil),
			},
			&cli.StringFlag{
				Name:  flagAPIURL,
				Usage: t.GetMessage("flag.api_url_usage", 0, nil),
			},
			&cli.StringFlag{
				Name:    flagDir,
				Aliases: []string{"C"},
				Value:   ".",
				Hidden:  true,
			},
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: t.GetMessage("flag.debug_usage", 0, nil),
			},
			&cli.BoolFlag{
				Name:  flagVerbose,
				Usage: t.GetMessage("flag.verbose_usage", 0, nil),
			},
			&cli.BoolFlag{
				Name:  flagNoSpinner,
				Usage: t.GetMessage("flag.no_spinner_usage", 0, nil),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			return categorize(c.run(ctx, command, t), domainErrors.ErrUnexpected)
		},
	}
}

// Execute runs cmd with args. The action only returns AppErrors, so anything
// else was raised by the framework while parsing flags and is a usage error.
func Execute(ctx context.Context, cmd *cli.Command, args []string) error {
	return categorize(cmd.Run(ctx, args), domainErrors.ErrInvalidArguments)
}

func categorize(err error, fallback *domainErrors.AppError) error {
	if err == nil {
		return nil
	}
	var appErr *domainErrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return fallback.WithError(err)
}

func (c *FuncsCommand) run(ctx context.Context, command *cli.Command, t *i18n.Translations) error {
	if command.Args().Len() > 0 {
		return domainErrors.ErrUnexpectedArguments.WithContext("args", command.Args().Slice())
	}

	cfg, err := config.Load(config.Flags{
		Owner:          command.String(flagOwner),
		Repo:           command.String(flagRepo),
		PRNumber:       int(command.Int(flagPR)),
		APIURL:         command.String(flagAPIURL),
		Language:       command.String(flagLang),
		WorkDir:        command.String(flagDir),
		IncludeMethods: command.Bool(flagMethods),
		KeepGoing:      command.Bool(flagKeepGoing),
		Debug:          command.Bool(flagDebug),
		Verbose:        command.Bool(flagVerbose),
		NoSpinner:      command.Bool(flagNoSpinner),
	})
	if err != nil {
		return err
	}

	if err := t.SetLanguage(cfg.Language); err != nil {
		return domainErrors.ErrUnsupportedLanguage.WithError(err).WithContext("lang", cfg.Language)
	}

	l := logger.Initialize(c.stderr, cfg.Debug, cfg.Verbose)
	ctx = logger.WithLogger(ctx, l)
	logger.Debug(ctx, "configuration loaded",
		"target", cfg.String(),
		"work_dir", cfg.WorkDir,
		"lang", cfg.Language)

	fetcher, err := c.fetcherFactory.CreateFetcher(ctx, cfg)
	if err != nil {
		return err
	}

	service := services.NewFunctionReportService(
		services.WithFetcher(&spinnerFetcher{
			next:    fetcher,
			w:       c.stderr,
			enabled: !cfg.NoSpinner && !cfg.Debug,
			trans:   t,
		}),
		services.WithLister(golang.NewLister(golang.Options{IncludeMethods: cfg.IncludeMethods})),
		services.WithTranslations(t),
		services.WithWorkDir(cfg.WorkDir),
		services.WithKeepGoing(cfg.KeepGoing),
	)

	start := time.Now()
	report, err := service.Run(ctx, services.ReportRequest{
		Owner:  cfg.Owner,
		Repo:   cfg.Repo,
		Number: cfg.PRNumber,
	}, c.stdout)

	if cfg.Verbose {
		ui.PrintReportStats(c.stderr, report, time.Since(start), t)
	}

	if report != nil && cfg.KeepGoing {
		if failed := report.ParseFailures(); failed > 0 {
			ui.PrintWarning(c.stderr, t.GetMessage("error.parse_failures", failed, map[string]interface{}{"Count": failed}))
		}
	}

	return err
}
