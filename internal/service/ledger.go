package service

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/hance08/kinko/internal/balance"
	"github.com/hance08/kinko/internal/config"
	"github.com/hance08/kinko/internal/constants"
	"github.com/hance08/kinko/internal/logger"
	"github.com/hance08/kinko/internal/model"
	"github.com/hance08/kinko/internal/store"
	"github.com/hance08/kinko/internal/utils"
	"github.com/hance08/kinko/internal/validation"
	"github.com/rs/zerolog"
)

type LedgerService struct {
	repo   store.Repository
	config *config.Config
	log    zerolog.Logger
}

func NewLedgerService(repo store.Repository, cfg *config.Config, log zerolog.Logger) *LedgerService {
	return &LedgerService{repo: repo, config: cfg, log: log}
}

// BasicUpdate holds the fields that can be edited without recounting the cash.
type BasicUpdate struct {
	Type      model.TransactionType
	Amount    int64
	Summary   string
	Recipient string
	Memo      string
}

// Create validates a transaction against its counts and stores both rows in
// one SQL transaction.
func (ls *LedgerService) Create(ctx context.Context, tx model.Transaction, counts model.Counts) (int64, error) {
	tx = normalize(tx)
	if err := validation.ValidateEntry(tx, counts); err != nil {
		return 0, err
	}

	var newID int64
	err := ls.repo.ExecTx(ctx, func(repo store.Repository) error {
		if err := ls.checkStock(ctx, repo, 0, tx, counts); err != nil {
			return err
		}
		id, err := repo.InsertEntry(ctx, tx, counts)
		if err != nil {
			return err
		}
		newID = id
		return nil
	})
	if err != nil {
		return 0, storeErr("create transaction", err)
	}

	ls.logger(ctx).Info().
		Int64("transaction_id", newID).
		Str("type", string(tx.Type)).
		Int64("amount", tx.Amount).
		Str("date", tx.Date.String()).
		Msg("transaction created")

	return newID, nil
}

// Update replaces a transaction and its counts. A transaction stored without
// a denomination row gets one.
func (ls *LedgerService) Update(ctx context.Context, id int64, tx model.Transaction, counts model.Counts) error {
	tx = normalize(tx)
	tx.ID = id
	if err := validation.ValidateEntry(tx, counts); err != nil {
		return err
	}

	var created bool
	err := ls.repo.ExecTx(ctx, func(repo store.Repository) error {
		if err := repo.UpdateTransaction(ctx, tx); err != nil {
			return err
		}
		if err := ls.checkStock(ctx, repo, id, tx, counts); err != nil {
			return err
		}
		var err error
		created, err = repo.UpsertCounts(ctx, id, counts)
		return err
	})
	if err != nil {
		return storeErr("update transaction", err)
	}

	ls.logger(ctx).Info().
		Int64("transaction_id", id).
		Int64("amount", tx.Amount).
		Bool("denominations_created", created).
		Msg("transaction updated")

	return nil
}

// UpdateBasic edits the transaction fields and keeps the stored counts. The
// new amount must still match them.
func (ls *LedgerService) UpdateBasic(ctx context.Context, id int64, in BasicUpdate) error {
	err := ls.repo.ExecTx(ctx, func(repo store.Repository) error {
		current, err := repo.GetEntry(ctx, id)
		if err != nil {
			return err
		}

		tx := current.Transaction
		tx.Type = in.Type
		tx.Amount = in.Amount
		tx.Summary = in.Summary
		tx.Recipient = in.Recipient
		tx.Memo = in.Memo
		tx = normalize(tx)

		if err := validation.ValidateEntry(tx, current.Counts); err != nil {
			return err
		}
		if err := ls.checkStock(ctx, repo, id, tx, current.Counts); err != nil {
			return err
		}
		return repo.UpdateTransaction(ctx, tx)
	})
	if err != nil {
		return storeErr("update transaction", err)
	}

	ls.logger(ctx).Info().Int64("transaction_id", id).Msg("transaction fields updated")
	return nil
}

func (ls *LedgerService) Delete(ctx context.Context, id int64) error {
	if err := ls.repo.DeleteTransaction(ctx, id); err != nil {
		return storeErr("delete transaction", err)
	}
	ls.logger(ctx).Info().Int64("transaction_id", id).Msg("transaction deleted")
	return nil
}

func (ls *LedgerService) Get(ctx context.Context, id int64) (*model.Entry, error) {
	entry, err := ls.repo.GetEntry(ctx, id)
	if err != nil {
		return nil, storeErr("get transaction", err)
	}
	return entry, nil
}

// QueryRange returns the entries between start and end, both inclusive and
// both optional, ordered by date then id.
func (ls *LedgerService) QueryRange(ctx context.Context, start, end *civil.Date) ([]model.Entry, error) {
	entries, err := ls.repo.QueryRange(ctx, store.Range{Start: start, End: end})
	if err != nil {
		return nil, storeErr("query transactions", err)
	}
	return entries, nil
}

// ReplaceAll empties the ledger and stores entries in its place. Nothing
// changes if any entry is rejected.
func (ls *LedgerService) ReplaceAll(ctx context.Context, entries []model.Entry) (int, error) {
	return ls.insertBatch(ctx, entries, true)
}

// AppendAll stores entries after the existing ones, all or nothing.
func (ls *LedgerService) AppendAll(ctx context.Context, entries []model.Entry) (int, error) {
	return ls.insertBatch(ctx, entries, false)
}

func (ls *LedgerService) insertBatch(ctx context.Context, entries []model.Entry, replace bool) (int, error) {
	for i, e := range entries {
		e.Transaction = normalize(e.Transaction)
		if err := validation.ValidateEntry(e.Transaction, e.Counts); err != nil {
			return 0, &validation.ValidationError{
				Field:   "entries",
				Message: fmt.Sprintf("entry #%d: %v", i+1, err),
			}
		}
		entries[i] = e
	}

	err := ls.repo.ExecTx(ctx, func(repo store.Repository) error {
		if replace {
			if err := repo.DeleteAll(ctx); err != nil {
				return err
			}
		}
		for _, e := range entries {
			if _, err := repo.InsertEntry(ctx, e.Transaction, e.Counts); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, storeErr("import transactions", err)
	}

	ls.logger(ctx).Info().
		Int("count", len(entries)).
		Bool("replace", replace).
		Msg("transactions imported")

	return len(entries), nil
}

// checkStock rejects a withdrawal that takes out more of a denomination than
// the box holds. The entry being edited, if any, is left out of the count.
func (ls *LedgerService) checkStock(ctx context.Context, repo store.Repository, excludeID int64,
	tx model.Transaction, counts model.Counts) error {
	if !ls.config.Ledger.EnforceStock || tx.Type != model.Withdrawal {
		return nil
	}

	entries, err := repo.QueryRange(ctx, store.Range{})
	if err != nil {
		return err
	}
	var others []model.Entry
	for _, e := range entries {
		if e.ID != excludeID {
			others = append(others, e)
		}
	}

	on := balance.Total(others).Counts
	for i, d := range constants.Denominations {
		if counts[i] > on[i] {
			return &validation.ValidationError{
				Field: d.Key,
				Message: fmt.Sprintf("not enough %s in the box: have %d, need %d",
					utils.FormatYen(d.Value), on[i], counts[i]),
			}
		}
	}
	return nil
}

func (ls *LedgerService) logger(ctx context.Context) *zerolog.Logger {
	l := logger.FromContextOr(ctx, ls.log)
	return &l
}

// normalize turns a legacy signed withdrawal amount into a magnitude.
// Anything it cannot fix is left for validation to report.
func normalize(tx model.Transaction) model.Transaction {
	if !tx.Type.Valid() {
		return tx
	}
	if amount, err := model.NormalizeAmount(tx.Type, tx.Amount); err == nil {
		tx.Amount = amount
	}
	return tx
}
