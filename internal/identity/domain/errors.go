package domain

import (
	"errors"
	"fmt"
)

var ErrUserNotFound = errors.New("user not found")

// InvalidArgumentError reports a caller-supplied field that failed
// local validation. It is raised before any network attempt.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Reason)
}

// IsInvalidArgument reports whether err is a local validation failure.
func IsInvalidArgument(err error) bool {
	var ia *InvalidArgumentError
	return errors.As(err, &ia)
}

// CreateUserError means the upstream accepted the create request but
// the response carried no user id. The raw response is kept for
// diagnostics.
type CreateUserError struct {
	Response map[string]interface{}
}

func (e *CreateUserError) Error() string {
	return fmt.Sprintf("failed to create user: %v", e.Response)
}

// UpdateUserError is the update counterpart of CreateUserError.
type UpdateUserError struct {
	Response map[string]interface{}
}

func (e *UpdateUserError) Error() string {
	return fmt.Sprintf("failed to update user: %v", e.Response)
}

// SetCustomUserClaimsError means the claims update response did not
// echo the account uid back.
type SetCustomUserClaimsError struct {
	Response map[string]interface{}
}

func (e *SetCustomUserClaimsError) Error() string {
	return fmt.Sprintf("failed to set custom user claims: %v", e.Response)
}
