package tasks

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTitle   = ValidationError{Field: "title", Reason: "is required"}
	ErrBlankTag     = ValidationError{Field: "tag", Reason: "name must not be blank"}
	ErrDuplicateTag = errors.New("tag already exists")
)

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// ValidationError rejects user input. Surfaces report it and carry on.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsUserError reports whether err should be shown to the user as a
// non-fatal problem rather than treated as a storage failure.
func IsUserError(err error) bool {
	var ve ValidationError
	var nf NotFoundError
	return errors.As(err, &ve) || errors.As(err, &nf) || errors.Is(err, ErrDuplicateTag)
}
