package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Sentinel errors for the fridge domain. Use errors.Is() to check these.
var (
	// ErrInvalidItemID indicates an item identifier that is not a well-formed UUID.
	ErrInvalidItemID = errors.New("invalid item id")

	// ErrItemValidation indicates one or more field constraints were violated on add.
	ErrItemValidation = errors.New("item validation failed")

	// ErrDuplicateItem indicates an item with the same id is already stored.
	ErrDuplicateItem = errors.New("item already exists")

	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrItemTypeNotFound indicates the requested item type does not exist.
	ErrItemTypeNotFound = errors.New("item type not found")
)

// InvalidIDError carries the raw identifier that failed to parse.
type InvalidIDError struct {
	ID  string
	Err error
}

// NewInvalidIDError wraps a parse failure for the given raw id.
func NewInvalidIDError(id string, err error) *InvalidIDError {
	return &InvalidIDError{ID: id, Err: err}
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid item id %q", e.ID)
}

func (e *InvalidIDError) Unwrap() error { return e.Err }

func (e *InvalidIDError) Is(target error) bool { return target == ErrInvalidItemID }

// ValidationError lists every violated field constraint of a rejected add.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "item validation failed: " + strings.Join(e.Violations, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrItemValidation }

// DuplicateItemError names the id that is already stored.
type DuplicateItemError struct {
	ID uuid.UUID
}

func (e *DuplicateItemError) Error() string {
	return fmt.Sprintf("item %s already exists", e.ID)
}

func (e *DuplicateItemError) Is(target error) bool { return target == ErrDuplicateItem }
