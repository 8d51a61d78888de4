package linker

import "github.com/pkg/errors"

var (
	ErrMissingSymbolTable        = errors.New("missing symbol table")
	ErrPreconditionNotMet        = errors.New("merge requires a mergeable verdict for the same pair of files")
	ErrResolverInvariantViolated = errors.New("symbol resolution disagrees with mergeability check")
)
