package features

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every input validation failure.
var ErrValidation = errors.New("validation error")

// LengthMismatchError reports row labels that do not line up with the documents.
type LengthMismatchError struct {
	Documents int
	Labels    int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("index length must match number of docs: %d labels for %d docs", e.Labels, e.Documents)
}

func (e *LengthMismatchError) Is(target error) bool { return target == ErrValidation }
