package sites

import (
	"errors"
	"fmt"
)

var (
	ErrSiteRequired          = errors.New("sites: site model is required")
	ErrSiteInvalid           = errors.New("sites: site failed validation")
	ErrInternalIDExists      = errors.New("sites: internal id is already taken")
	ErrContentRequired       = errors.New("sites: content model is required")
	ErrContentSiteIDRequired = errors.New("sites: content requires a site id")
	ErrContentInvalid        = errors.New("sites: content failed validation")
)

// NotFoundError represents missing records from repository lookups. The
// service absorbs these on read paths and surfaces absence as a nil result.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// ValidationError wraps the rule violations reported for a model so callers
// can branch on ErrSiteInvalid / ErrContentInvalid while keeping the field
// detail.
type ValidationError struct {
	Kind   error
	Fields error
}

func (e *ValidationError) Error() string {
	if e.Fields == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %v", e.Kind.Error(), e.Fields)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func isNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
