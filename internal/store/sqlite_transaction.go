package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/hance08/kinko/internal/model"
)

const denominationColumns = `ten_thousand_yen, five_thousand_yen, one_thousand_yen, five_hundred_yen,
        one_hundred_yen, fifty_yen, ten_yen, five_yen, one_yen`

const entrySelect = `
        SELECT t.id, t.transaction_date, t.transaction_type, t.amount,
               t.summary, t.recipient, t.memo,
               COALESCE(d.ten_thousand_yen, 0), COALESCE(d.five_thousand_yen, 0),
               COALESCE(d.one_thousand_yen, 0), COALESCE(d.five_hundred_yen, 0),
               COALESCE(d.one_hundred_yen, 0), COALESCE(d.fifty_yen, 0),
               COALESCE(d.ten_yen, 0), COALESCE(d.five_yen, 0), COALESCE(d.one_yen, 0)
        FROM transactions t
        LEFT JOIN denominations d ON d.transaction_id = t.id`

// InsertEntry inserts a transaction and its denomination row.
// It relies on the caller (Service layer) to wrap it in ExecTx for atomicity.
func (s *Store) InsertEntry(ctx context.Context, tx model.Transaction, counts model.Counts) (int64, error) {
	var newTxID int64
	err := s.db.QueryRowContext(ctx, `
        INSERT INTO transactions (transaction_date, transaction_type, amount, summary, recipient, memo)
        VALUES (?, ?, ?, ?, ?, ?)
        RETURNING id;
    `, tx.Date.String(), string(tx.Type), tx.Amount, tx.Summary, tx.Recipient, tx.Memo).Scan(&newTxID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert transaction: %w", classify(err))
	}

	if err := s.insertCounts(ctx, newTxID, counts); err != nil {
		return 0, err
	}

	return newTxID, nil
}

func (s *Store) insertCounts(ctx context.Context, txID int64, counts model.Counts) error {
	args := make([]any, 0, len(counts)+1)
	args = append(args, txID)
	for _, n := range counts {
		args = append(args, n)
	}

	_, err := s.db.ExecContext(ctx, `
        INSERT INTO denominations (transaction_id, `+denominationColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
    `, args...)
	if err != nil {
		return fmt.Errorf("failed to insert denominations (transaction_id: %d): %w", txID, classify(err))
	}
	return nil
}

// UpdateTransaction rewrites the transaction fields of tx.ID. Denominations
// are left untouched.
func (s *Store) UpdateTransaction(ctx context.Context, tx model.Transaction) error {
	result, err := s.db.ExecContext(ctx, `
        UPDATE transactions
        SET transaction_date = ?, transaction_type = ?, amount = ?,
            summary = ?, recipient = ?, memo = ?,
            updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
        WHERE id = ?;
    `, tx.Date.String(), string(tx.Type), tx.Amount, tx.Summary, tx.Recipient, tx.Memo, tx.ID)
	if err != nil {
		return fmt.Errorf("failed to update transaction %d: %w", tx.ID, classify(err))
	}
	return requireAffected(result, tx.ID)
}

// UpsertCounts replaces the denomination row of txID, creating it when the
// transaction has none. It reports whether a row was created.
func (s *Store) UpsertCounts(ctx context.Context, txID int64, counts model.Counts) (bool, error) {
	args := make([]any, 0, len(counts)+1)
	for _, n := range counts {
		args = append(args, n)
	}
	args = append(args, txID)

	result, err := s.db.ExecContext(ctx, `
        UPDATE denominations
        SET ten_thousand_yen = ?, five_thousand_yen = ?, one_thousand_yen = ?, five_hundred_yen = ?,
            one_hundred_yen = ?, fifty_yen = ?, ten_yen = ?, five_yen = ?, one_yen = ?
        WHERE transaction_id = ?;
    `, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update denominations (transaction_id: %d): %w", txID, classify(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows > 0 {
		return false, nil
	}

	if err := s.insertCounts(ctx, txID, counts); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteTransaction removes a transaction. The denomination row goes with it
// through ON DELETE CASCADE.
func (s *Store) DeleteTransaction(ctx context.Context, txID int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", txID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", txID, classify(err))
	}
	return requireAffected(result, txID)
}

// DeleteAll empties the ledger and restarts id assignment.
func (s *Store) DeleteAll(ctx context.Context) error {
	stmts := []string{
		"DELETE FROM denominations",
		"DELETE FROM transactions",
		"DELETE FROM sqlite_sequence WHERE name = 'transactions'",
	}
	for _, q := range stmts {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to clear ledger (%s): %w", q, err)
		}
	}
	return nil
}

func (s *Store) GetEntry(ctx context.Context, txID int64) (*model.Entry, error) {
	row := s.db.QueryRowContext(ctx, entrySelect+" WHERE t.id = ?;", txID)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %d: %w", txID, ErrRecordNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %d: %w", txID, err)
	}
	return entry, nil
}

// GetCounts returns the denomination row of txID and whether it exists.
func (s *Store) GetCounts(ctx context.Context, txID int64) (model.Counts, bool, error) {
	var c model.Counts
	err := s.db.QueryRowContext(ctx, `
        SELECT `+denominationColumns+`
        FROM denominations WHERE transaction_id = ?;
    `, txID).Scan(&c[0], &c[1], &c[2], &c[3], &c[4], &c[5], &c[6], &c[7], &c[8])
	if errors.Is(err, sql.ErrNoRows) {
		return c, false, nil
	}
	if err != nil {
		return c, false, fmt.Errorf("failed to get denominations (transaction_id: %d): %w", txID, err)
	}
	return c, true, nil
}

// QueryRange returns the entries within r, ordered by date and then id.
// A transaction without a denomination row reads as all zero counts.
func (s *Store) QueryRange(ctx context.Context, r Range) ([]model.Entry, error) {
	var (
		where []string
		args  []any
	)
	if r.Start != nil {
		where = append(where, "t.transaction_date >= ?")
		args = append(args, r.Start.String())
	}
	if r.End != nil {
		where = append(where, "t.transaction_date <= ?")
		args = append(args, r.End.String())
	}

	query := entrySelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY t.transaction_date ASC, t.id ASC;"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var entries []model.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, nil
}

func (s *Store) CountTransactions(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (*model.Entry, error) {
	var (
		e    model.Entry
		date string
		typ  string
	)
	c := &e.Counts
	err := sc.Scan(
		&e.ID, &date, &typ, &e.Amount,
		&e.Summary, &e.Recipient, &e.Memo,
		&c[0], &c[1], &c[2], &c[3], &c[4], &c[5], &c[6], &c[7], &c[8],
	)
	if err != nil {
		return nil, err
	}

	e.Date, err = civil.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("transaction %d has invalid date '%s': %w", e.ID, date, err)
	}
	e.Type = model.TransactionType(typ)

	return &e, nil
}

func requireAffected(result sql.Result, txID int64) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("transaction %d: %w", txID, ErrRecordNotFound)
	}
	return nil
}
