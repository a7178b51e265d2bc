package validation

import (
	"fmt"

	"github.com/hance08/kinko/internal/utils"
)

// ValidationError reports a submitted field that cannot be accepted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// MismatchError is returned when the counted cash does not add up to the
// declared amount. Both values are kept so the caller can show them.
type MismatchError struct {
	Expected int64
	Actual   int64
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("denomination total %s does not match amount %s (difference %s)",
		utils.FormatYen(e.Actual), utils.FormatYen(e.Expected), utils.FormatYen(e.Actual-e.Expected))
}
