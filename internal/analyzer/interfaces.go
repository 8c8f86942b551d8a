package analyzer

import "context"

// FunctionLister extracts the names of the functions declared at the top
// level of a single source file.
type FunctionLister interface {
	// ListFunctions returns the names in declaration order. A file without
	// top-level functions yields an empty, non-nil slice.
	ListFunctions(ctx context.Context, path string) ([]string, error)

	// Extension is the file suffix, including the dot, this lister understands.
	Extension() string
}
