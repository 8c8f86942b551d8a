package errors

import (
	"errors"
	"fmt"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeUsage         ErrorType = "USAGE"
	TypeAuth          ErrorType = "AUTH"
	TypeNotFound      ErrorType = "NOT_FOUND"
	TypeNetwork       ErrorType = "NETWORK"
	TypeParse         ErrorType = "PARSE"
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeInternal      ErrorType = "INTERNAL"
)

// Process exit codes, one per error category.
const (
	ExitOK       = 0
	ExitInternal = 1
	ExitUsage    = 2
	ExitAuth     = 3
	ExitNotFound = 4
	ExitNetwork  = 5
	ExitParse    = 6
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if file, ok := e.Context["file"].(string); ok && file != "" {
			msg += fmt.Sprintf(" - %s", file)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError derived from the same sentinel, regardless of
// attached context or wrapped error.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// ExitCode maps an error to the process exit code of its category.
// Errors that are not AppErrors are unexpected and count as internal.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		return ExitInternal
	}

	switch appErr.Type {
	case TypeUsage:
		return ExitUsage
	case TypeAuth, TypeConfiguration:
		return ExitAuth
	case TypeNotFound:
		return ExitNotFound
	case TypeNetwork:
		return ExitNetwork
	case TypeParse:
		return ExitParse
	default:
		return ExitInternal
	}
}

// ErrUnexpected wraps errors that reached the top without a category.
var ErrUnexpected = NewAppError(TypeInternal, "unexpected error", nil)

// Usage errors
var (
	ErrInvalidArguments = NewAppError(TypeUsage, "invalid arguments", nil).
				WithSuggestion("Usage: prfuncs --owner OWNER --repo REPO --pr PR_NUMBER")

	ErrUnexpectedArguments = NewAppError(TypeUsage, "unexpected positional arguments", nil).
				WithSuggestion("Pass everything as flags: prfuncs --owner OWNER --repo REPO --pr PR_NUMBER")

	ErrInvalidPRNumber = NewAppError(TypeUsage, "pull request number must be a positive integer", nil).
				WithSuggestion("Example: prfuncs --owner octocat --repo hello-world --pr 42")
)

// Configuration errors
var (
	ErrTokenMissing = NewAppError(TypeAuth, "GITHUB_TOKEN is not set", nil).
			WithSuggestion("Export a token: export GITHUB_TOKEN=<token>\nor put GITHUB_TOKEN=<token> in a .env file")

	ErrUnsupportedLanguage = NewAppError(TypeConfiguration, "language not supported", nil).
				WithSuggestion("Supported languages: en, es, ja")
)

// GitHub errors
var (
	ErrGitHubTokenInvalid = NewAppError(TypeAuth, "GitHub token is invalid or expired", nil).
				WithSuggestion("Generate a new token at: https://github.com/settings/tokens")

	ErrPullRequestNotFound = NewAppError(TypeNotFound, "pull request or repository not found", nil).
				WithSuggestion("Check owner, repo and PR number, and that the token can read the repository")

	ErrGitHubRateLimit = NewAppError(TypeNetwork, "GitHub API rate limit exceeded", nil).
				WithSuggestion("Wait a few minutes or use a personal access token for higher limits")

	ErrNetwork = NewAppError(TypeNetwork, "failed to reach the GitHub API", nil).
			WithSuggestion("Check your network connection or the --api-url value")
)

// Source analysis errors
var (
	ErrParse = NewAppError(TypeParse, "failed to parse source file", nil).
			WithSuggestion("Fix the syntax error or rerun with --keep-going to skip the file")

	ErrReadFile = NewAppError(TypeInternal, "failed to read source file", nil).
			WithSuggestion("Check the file is readable")

	ErrWriteReport = NewAppError(TypeInternal, "failed to write report", nil)
)
