package model

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/hance08/kinko/internal/constants"
)

type TransactionType string

const (
	Deposit    TransactionType = constants.TypeDeposit
	Withdrawal TransactionType = constants.TypeWithdrawal
)

// ParseTransactionType accepts the stored names and the ledger labels (入金/出金).
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case constants.TypeDeposit, constants.LabelDeposit, "in":
		return Deposit, nil
	case constants.TypeWithdrawal, constants.LabelWithdrawal, "out":
		return Withdrawal, nil
	default:
		return "", fmt.Errorf("unknown transaction type '%s' (must be deposit/入金 or withdrawal/出金)", s)
	}
}

func (t TransactionType) Valid() bool {
	return t == Deposit || t == Withdrawal
}

// Sign is +1 for money entering the box and -1 for money leaving it.
func (t TransactionType) Sign() int64 {
	if t == Withdrawal {
		return -1
	}
	return 1
}

func (t TransactionType) Label() string {
	switch t {
	case Deposit:
		return constants.LabelDeposit
	case Withdrawal:
		return constants.LabelWithdrawal
	default:
		return string(t)
	}
}

// Transaction is one cash movement. Amount is always a magnitude; the
// direction comes from Type.
type Transaction struct {
	ID        int64
	Date      civil.Date
	Type      TransactionType
	Amount    int64
	Summary   string
	Recipient string
	Memo      string
}

// SignedAmount is the effect of the transaction on the box balance.
func (t Transaction) SignedAmount() int64 {
	return t.Type.Sign() * t.Amount
}

// Entry is a transaction together with the notes and coins that moved.
type Entry struct {
	Transaction
	Counts Counts
}

// NormalizeAmount turns an amount as submitted by a client into a magnitude.
// Older clients sent withdrawals as negative numbers, so a negative value is
// accepted when it agrees with the type.
func NormalizeAmount(t TransactionType, amount int64) (int64, error) {
	if amount >= 0 {
		return amount, nil
	}
	if t == Withdrawal {
		return -amount, nil
	}
	return 0, fmt.Errorf("negative amount %d is only allowed for withdrawals", amount)
}
