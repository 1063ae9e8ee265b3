package content

import (
	"errors"
	"fmt"
)

// Common errors. InvalidArgument and NotFound always propagate to the
// caller; collaborator failures may degrade to an empty batch in
// multi-platform operations.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

// CollaboratorError reports a failed call against an external platform
// (network, auth, quota).
type CollaboratorError struct {
	Platform Platform
	Op       string
	Err      error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Platform, e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}
