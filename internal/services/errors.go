package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/team-task-api/internal/authz"
)

var (
	ErrUnauthenticated = authz.ErrUnauthenticated
	ErrUnauthorized    = authz.ErrUnauthorized

	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation failed")
	ErrConflict      = errors.New("conflict")
	ErrTaskCompleted = errors.New("the task is already completed")

	ErrEmailTaken        = fmt.Errorf("%w: user with same email already exists", ErrConflict)
	ErrAlreadyTeamMember = fmt.Errorf("%w: user is already a member of this team", ErrConflict)
)

// NotFoundError reports a missing entity. It matches ErrNotFound.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

// ValidationError reports a malformed or missing field. It matches ErrValidation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
