package validation

import (
	"math"
	"strings"

	"github.com/hance08/kinko/internal/constants"
	"github.com/hance08/kinko/internal/model"
)

// Reconcile checks that the counted notes and coins are worth exactly the
// declared amount. It has no side effects.
func Reconcile(amount int64, counts model.Counts) error {
	if amount < 0 {
		amount = -amount
	}
	actual := counts.Total()
	if actual != amount {
		return &MismatchError{Expected: amount, Actual: actual}
	}
	return nil
}

// ValidateCounts rejects negative counts and counts whose face value does
// not fit in an int64, so Total cannot wrap.
func ValidateCounts(counts model.Counts) error {
	var total int64
	for i, d := range constants.Denominations {
		n := counts[i]
		if n < 0 {
			return newError(d.Key, "count must not be negative (got %d)", n)
		}
		if n > (math.MaxInt64-total)/d.Value {
			return newError(d.Key, "count %d is too large", n)
		}
		total += n * d.Value
	}
	return nil
}

// ValidateTransaction checks the fields of a transaction without touching
// its counts.
func ValidateTransaction(tx model.Transaction) error {
	if tx.Date.IsZero() {
		return newError("TransactionDate", "date is required")
	}
	if !tx.Date.IsValid() {
		return newError("TransactionDate", "invalid date %s", tx.Date)
	}
	if !tx.Type.Valid() {
		return newError("TransactionType", "unknown type '%s'", tx.Type)
	}
	if tx.Amount < 0 {
		return newError("Amount", "amount must not be negative (got %d)", tx.Amount)
	}
	for field, v := range map[string]string{
		"Summary":   tx.Summary,
		"Recipient": tx.Recipient,
		"Memo":      tx.Memo,
	} {
		if len([]rune(v)) > constants.MaxTextLen {
			return newError(field, "too long (max %d characters)", constants.MaxTextLen)
		}
		if strings.ContainsRune(v, 0) {
			return newError(field, "contains a NUL character")
		}
	}
	return nil
}

// ValidateEntry runs every check a transaction and its counts must pass
// before they are stored.
func ValidateEntry(tx model.Transaction, counts model.Counts) error {
	if err := ValidateTransaction(tx); err != nil {
		return err
	}
	if err := ValidateCounts(counts); err != nil {
		return err
	}
	return Reconcile(tx.Amount, counts)
}
