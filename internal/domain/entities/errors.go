package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrMemberSealed is returned when a sealed member is mutated.
	ErrMemberSealed = errors.New("member is sealed")
	// ErrMemberNotSealed is returned when an unsealed member is exported.
	ErrMemberNotSealed = errors.New("member is not sealed")
	// ErrMissingField is wrapped by MissingFieldError.
	ErrMissingField = errors.New("missing required field")
	// ErrIdentifierCollision is returned when two different members map to the same ID.
	ErrIdentifierCollision = errors.New("member identifier collision")
	// ErrMemberNotFound is returned when a member ID is not registered.
	ErrMemberNotFound = errors.New("member not found")
)

// MissingFieldError reports a required key absent from a static record.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}
