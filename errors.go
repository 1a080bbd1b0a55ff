package hooks

import goerrors "github.com/goliatone/go-errors"

// Register and remove operations fail fast on nil callbacks rather than
// silently coercing them; unknown tags and non-matching removes stay silent
// no-ops.

func errNilCallback(kind string) error {
	return goerrors.New("go-hooks: "+kind+" callback required", goerrors.CategoryValidation).
		WithCode(goerrors.CodeBadRequest)
}

// IsValidation reports whether err is a validation error produced by this
// package, so hosts can distinguish caller mistakes from infrastructure
// failures without string matching.
func IsValidation(err error) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.Category == goerrors.CategoryValidation
}
