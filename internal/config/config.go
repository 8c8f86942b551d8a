package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	domainErrors "github.com/thomas-vilte/prfuncs/internal/errors"
)

const (
	EnvToken    = "GITHUB_TOKEN"
	EnvAPIURL   = "GITHUB_API_URL"
	EnvLanguage = "PRFUNCS_LANG"

	defaultLang    = "en"
	defaultWorkDir = "."
	dotEnvFile     = ".env"
)

type (
	// Config is the process-wide configuration, built once before any other
	// component runs and passed down explicitly.
	Config struct {
		Owner    string
		Repo     string
		PRNumber int
		Token    string
		APIURL   string
		Language string
		WorkDir  string

		IncludeMethods bool
		KeepGoing      bool

		Debug     bool
		Verbose   bool
		NoSpinner bool
	}

	// Flags holds the values given on the command line.
	Flags struct {
		Owner          string
		Repo           string
		PRNumber       int
		APIURL         string
		Language       string
		WorkDir        string
		IncludeMethods bool
		KeepGoing      bool
		Debug          bool
		Verbose        bool
		NoSpinner      bool
	}
)

// Load merges the flags with the environment. A .env file in the working
// directory is read first; variables already set in the environment win.
func Load(flags Flags) (*Config, error) {
	workDir := flags.WorkDir
	if workDir == "" {
		workDir = defaultWorkDir
	}

	if err := loadDotEnv(workDir); err != nil {
		return nil, err
	}

	cfg := &Config{
		Owner:          strings.TrimSpace(flags.Owner),
		Repo:           strings.TrimSpace(flags.Repo),
		PRNumber:       flags.PRNumber,
		Token:          strings.TrimSpace(os.Getenv(EnvToken)),
		APIURL:         firstNonEmpty(flags.APIURL, os.Getenv(EnvAPIURL)),
		Language:       firstNonEmpty(flags.Language, os.Getenv(EnvLanguage), defaultLang),
		WorkDir:        workDir,
		IncludeMethods: flags.IncludeMethods,
		KeepGoing:      flags.KeepGoing,
		Debug:          flags.Debug,
		Verbose:        flags.Verbose,
		NoSpinner:      flags.NoSpinner,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks arguments first and the credential last, so a bad
// invocation is reported as a usage error even without a token.
func (c *Config) Validate() error {
	if c.Owner == "" {
		return domainErrors.ErrInvalidArguments.WithContext("flag", "owner")
	}
	if c.Repo == "" {
		return domainErrors.ErrInvalidArguments.WithContext("flag", "repo")
	}
	if c.PRNumber <= 0 {
		return domainErrors.ErrInvalidPRNumber.WithContext("pr_number", c.PRNumber)
	}
	if c.Token == "" {
		return domainErrors.ErrTokenMissing.WithContext("env", EnvToken)
	}
	return nil
}

func loadDotEnv(workDir string) error {
	path := filepath.Join(workDir, dotEnvFile)
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return domainErrors.NewAppError(domainErrors.TypeConfiguration, "failed to load .env file", err).
			WithContext("file", path)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func (c *Config) String() string {
	return fmt.Sprintf("%s/%s#%d", c.Owner, c.Repo, c.PRNumber)
}
