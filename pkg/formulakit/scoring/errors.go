package scoring

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors.
var (
	// ErrMissingInput indicates a declared variable has no value.
	ErrMissingInput = errors.New("missing input")

	// ErrInvalidDefinition indicates a definition that cannot be saved:
	// no name, or a variable key that is not a usable identifier.
	ErrInvalidDefinition = errors.New("invalid definition")
)

// MissingInputError lists the declared variables a score request left out.
type MissingInputError struct {
	DefinitionID string
	// Keys are the missing variable keys in declaration order.
	Keys []string
}

// Error implements the error interface.
func (e *MissingInputError) Error() string {
	return fmt.Sprintf("%v for %q: %s", ErrMissingInput, e.DefinitionID, strings.Join(e.Keys, ", "))
}

// Unwrap returns ErrMissingInput for errors.Is support.
func (e *MissingInputError) Unwrap() error {
	return ErrMissingInput
}
