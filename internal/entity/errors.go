package entity

import (
	"errors"
	"fmt"

	"github.com/hyperengineering/solace/internal/store"
	"github.com/hyperengineering/solace/internal/validation"
)

// ValidationError reports a payload the normalizer rejected.
// Its message is returned to the client verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalid builds a ValidationError from a format string.
func Invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// FromValidation converts a field check failure into a ValidationError.
// A nil input returns nil.
func FromValidation(v *validation.ValidationError) error {
	if v == nil {
		return nil
	}
	return Invalid("Invalid %s: %s", v.Field, v.Message)
}

// NotFoundError reports an update or delete that matched no row of the owner.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

// UnsupportedError reports an entity or operation the registry cannot handle.
type UnsupportedError struct {
	Message string
}

func (e *UnsupportedError) Error() string {
	return e.Message
}

// UnsupportedEntity builds the error for an unknown entity kind.
func UnsupportedEntity(raw string) error {
	return &UnsupportedError{Message: "Unsupported sync entity: " + raw}
}

// UnsupportedOperation builds the error for an operation kind with no handler.
func UnsupportedOperation(kind Kind, raw string) error {
	return &UnsupportedError{Message: fmt.Sprintf("Unsupported %s operation: %s", kind, raw)}
}

// MapNotFound converts store.ErrNotFound into a NotFoundError naming entityName.
// Other errors pass through unchanged.
func MapNotFound(err error, entityName string) error {
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Entity: entityName}
	}
	return err
}

// DeleteAck is returned for a successful delete instead of the full record.
type DeleteAck struct {
	ID        string `json:"id"`
	DeletedAt bool   `json:"deletedAt"`
}

// Deleted acknowledges the soft delete of id.
func Deleted(id string) DeleteAck {
	return DeleteAck{ID: id, DeletedAt: true}
}
