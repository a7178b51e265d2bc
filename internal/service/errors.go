package service

import (
	"errors"
	"fmt"

	"github.com/hance08/kinko/internal/store"
	"github.com/hance08/kinko/internal/validation"
)

// PersistenceError wraps a storage failure. The SQL transaction has already
// been rolled back when it is returned.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

var ErrReplaceNotConfirmed = &validation.ValidationError{
	Field:   "confirm",
	Message: "replacing the whole ledger must be confirmed",
}

// storeErr passes domain errors through and wraps everything else.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var (
		verr     *validation.ValidationError
		mismatch *validation.MismatchError
	)
	if errors.Is(err, store.ErrRecordNotFound) || errors.As(err, &verr) || errors.As(err, &mismatch) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
