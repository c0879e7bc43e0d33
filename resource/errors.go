package resource

import (
	"errors"
	"fmt"
)

// ErrFinalized is returned when a builder is used after Finalize.
var ErrFinalized = errors.New("builder already finalized")

// DuplicateNameError means a declaration reused a name already registered
// on the same builder.
type DuplicateNameError struct {
	Name     string
	Existing Kind
}

func (e DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate resource name %q (already declared as %s)", e.Name, e.Existing)
}

// InvalidNameError means a declaration name does not follow the naming rules.
type InvalidNameError struct {
	Name   string
	Reason string
}

func (e InvalidNameError) Error() string {
	return fmt.Sprintf("invalid resource name %q: %s", e.Name, e.Reason)
}

type UnknownKindError struct {
	Kind string
}

func (e UnknownKindError) Error() string {
	return fmt.Sprintf("unknown resource kind %q", e.Kind)
}
