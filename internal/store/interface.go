package store

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/hance08/kinko/internal/model"
)

// Range selects transactions by date. Both bounds are inclusive and a nil
// bound is open.
type Range struct {
	Start *civil.Date
	End   *civil.Date
}

// Before selects every transaction dated strictly before d.
func Before(d civil.Date) Range {
	end := d.AddDays(-1)
	return Range{End: &end}
}

type Repository interface {
	// Ledger writes
	InsertEntry(ctx context.Context, tx model.Transaction, counts model.Counts) (int64, error)
	UpdateTransaction(ctx context.Context, tx model.Transaction) error
	UpsertCounts(ctx context.Context, txID int64, counts model.Counts) (bool, error)
	DeleteTransaction(ctx context.Context, txID int64) error
	DeleteAll(ctx context.Context) error

	// Ledger reads
	GetEntry(ctx context.Context, txID int64) (*model.Entry, error)
	GetCounts(ctx context.Context, txID int64) (model.Counts, bool, error)
	QueryRange(ctx context.Context, r Range) ([]model.Entry, error)
	CountTransactions(ctx context.Context) (int64, error)

	ExecTx(ctx context.Context, fn func(Repository) error) error
	Close() error
}
