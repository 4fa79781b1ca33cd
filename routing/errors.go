package routing

import (
	"errors"
	"fmt"
)

// ErrSearchBudgetExceeded is returned when a search pops more states than
// Options.MaxExplored allows.
var ErrSearchBudgetExceeded = errors.New("search budget exceeded")

// InputError describes a query or construction argument that cannot be
// routed on.
type InputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// IsInputError reports whether err wraps an *InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
