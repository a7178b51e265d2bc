package service

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/civil"
	"github.com/hance08/kinko/internal/ledgercsv"
)

// SnapshotService moves the ledger in and out of the CSV snapshot format.
type SnapshotService struct {
	ledger *LedgerService
	report *ReportService
}

func NewSnapshotService(ledger *LedgerService, report *ReportService) *SnapshotService {
	return &SnapshotService{ledger: ledger, report: report}
}

type ImportOptions struct {
	Replace   bool // delete the current ledger first
	Confirmed bool // required when Replace is set
}

type ImportResult struct {
	Imported int  `json:"imported"`
	Skipped  int  `json:"skipped"`
	Replaced bool `json:"replaced"`
}

// Export writes the ledger as CSV and returns the number of transactions
// written. With a start date only the transactions from start on are
// written, preceded by a carryover row.
func (ss *SnapshotService) Export(ctx context.Context, w io.Writer, start *civil.Date) (int, error) {
	cw, err := ledgercsv.NewWriter(w)
	if err != nil {
		return 0, err
	}

	if start != nil {
		carry, err := ss.report.Carryover(ctx, *start)
		if err != nil {
			return 0, err
		}
		if err := cw.WriteCarryover(*start, carry.Balance, carry.Counts); err != nil {
			return 0, err
		}
	}

	entries, err := ss.ledger.QueryRange(ctx, start, nil)
	if err != nil {
		return 0, err
	}
	for _, e := range entries {
		if err := cw.Write(e); err != nil {
			return 0, err
		}
	}

	if err := cw.Flush(); err != nil {
		return 0, fmt.Errorf("failed to write CSV: %w", err)
	}
	return len(entries), nil
}

// Import reads a CSV snapshot and stores it in one SQL transaction. Either
// every row is stored or none is.
func (ss *SnapshotService) Import(ctx context.Context, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	if opts.Replace && !opts.Confirmed {
		return nil, ErrReplaceNotConfirmed
	}

	batch, err := ledgercsv.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var n int
	if opts.Replace {
		n, err = ss.ledger.ReplaceAll(ctx, batch.Entries)
	} else {
		n, err = ss.ledger.AppendAll(ctx, batch.Entries)
	}
	if err != nil {
		return nil, err
	}

	return &ImportResult{Imported: n, Skipped: batch.Skipped, Replaced: opts.Replace}, nil
}
