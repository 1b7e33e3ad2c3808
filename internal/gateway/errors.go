package gateway

import (
	"errors"
	"fmt"
)

// BusinessError is a rule rejection from the service, such as deleting a
// category that still owns channels. It is not retryable.
type BusinessError struct {
	Message string
}

func (e *BusinessError) Error() string { return e.Message }

// NotFoundError reports that the referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// PermissionError reports that the caller may not act on the entity, e.g.
// editing another user's message.
type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string { return e.Message }

// IsBusiness reports whether err is a business-rule rejection.
func IsBusiness(err error) bool {
	var be *BusinessError
	return errors.As(err, &be)
}

// IsNotFound reports whether err is a missing-entity error.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

// IsPermission reports whether err is a permission rejection.
func IsPermission(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}
