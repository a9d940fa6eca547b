package collection

import (
	"errors"
	"fmt"
)

// ErrMissingExternalID is returned when a retained collection item has no external id.
// Relationships cannot be linked without a stable key, so the run is aborted.
var ErrMissingExternalID = errors.New("collection item has no external id")

// ConflictError reports two references to the same external entity id with different names.
type ConflictError struct {
	ExternalID   string
	ExistingName string
	IncomingName string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("entity %s is known as %q but was referenced as %q",
		e.ExternalID, e.ExistingName, e.IncomingName)
}

// IsConflict reports whether err is or wraps a *ConflictError.
func IsConflict(err error) bool {
	var conflict *ConflictError
	return errors.As(err, &conflict)
}
