package golang

import (
	"context"
	"errors"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"os"

	"github.com/thomas-vilte/prfuncs/internal/analyzer"
	domainErrors "github.com/thomas-vilte/prfuncs/internal/errors"
	"github.com/thomas-vilte/prfuncs/internal/logger"
)

var _ analyzer.FunctionLister = (*Lister)(nil)

const Extension = ".go"

type Options struct {
	// IncludeMethods also collects functions declared with a receiver.
	IncludeMethods bool
}

type Lister struct {
	opts Options
}

func NewLister(opts Options) *Lister {
	return &Lister{opts: opts}
}

func (l *Lister) Extension() string {
	return Extension
}

func (l *Lister) ListFunctions(ctx context.Context, path string) ([]string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, domainErrors.ErrReadFile.WithError(err).WithContext("file", path)
	}

	names, err := l.ListFunctionsInSource(path, src)
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx, "listed top-level functions",
		"path", path,
		"functions_count", len(names))

	return names, nil
}

// ListFunctionsInSource parses src and walks file.Decls only, so function
// literals and anything else below the file scope is never visited.
func (l *Lister) ListFunctionsInSource(filename string, src []byte) ([]string, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, parseError(filename, err)
	}

	names := make([]string, 0, len(file.Decls))
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv != nil && !l.opts.IncludeMethods {
				continue
			}
			names = append(names, d.Name.Name)
		}
	}

	return names, nil
}

func parseError(filename string, err error) *domainErrors.AppError {
	appErr := domainErrors.ErrParse.WithError(err).WithContext("file", filename)

	var list scanner.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		appErr = appErr.
			WithContext("line", list[0].Pos.Line).
			WithContext("column", list[0].Pos.Column).
			WithContext("errors_count", len(list))
	}
	return appErr
}
