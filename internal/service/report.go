package service

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/hance08/kinko/internal/balance"
	"github.com/hance08/kinko/internal/model"
	"github.com/hance08/kinko/internal/store"
)

// ReportService answers the read side of the ledger: statements with running
// balances, carryover and the cash currently in the box.
type ReportService struct {
	repo store.Repository
}

func NewReportService(repo store.Repository) *ReportService {
	return &ReportService{repo: repo}
}

// Statement returns the ledger from start to end (inclusive, end optional)
// with the carryover brought into the period. A zero start covers the whole
// ledger.
func (rs *ReportService) Statement(ctx context.Context, start civil.Date, end *civil.Date) (*balance.Statement, error) {
	var (
		prior []model.Entry
		err   error
	)
	r := store.Range{End: end}
	if !start.IsZero() {
		prior, err = rs.repo.QueryRange(ctx, store.Before(start))
		if err != nil {
			return nil, storeErr("query carryover", err)
		}
		r.Start = &start
	}

	period, err := rs.repo.QueryRange(ctx, r)
	if err != nil {
		return nil, storeErr("query transactions", err)
	}

	var last civil.Date
	if end != nil {
		last = *end
	}
	st := balance.NewStatement(start, last, prior, period)
	return &st, nil
}

// Month returns the statement of one calendar month.
func (rs *ReportService) Month(ctx context.Context, year int, month time.Month) (*balance.Statement, error) {
	first, last := balance.MonthBounds(year, month)
	return rs.Statement(ctx, first, &last)
}

// Carryover returns the balance and cash on hand after the last transaction
// dated before start.
func (rs *ReportService) Carryover(ctx context.Context, start civil.Date) (balance.Snapshot, error) {
	prior, err := rs.repo.QueryRange(ctx, store.Before(start))
	if err != nil {
		return balance.Snapshot{}, storeErr("query carryover", err)
	}
	return balance.Carryover(prior, start), nil
}

// Inventory returns the balance and cash on hand over the whole ledger.
func (rs *ReportService) Inventory(ctx context.Context) (balance.Snapshot, error) {
	entries, err := rs.repo.QueryRange(ctx, store.Range{})
	if err != nil {
		return balance.Snapshot{}, storeErr("query inventory", err)
	}
	return balance.Total(entries), nil
}

// Count returns the number of stored transactions.
func (rs *ReportService) Count(ctx context.Context) (int64, error) {
	n, err := rs.repo.CountTransactions(ctx)
	if err != nil {
		return 0, storeErr("count transactions", err)
	}
	return n, nil
}
