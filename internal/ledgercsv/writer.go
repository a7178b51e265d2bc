// Package ledgercsv reads and writes the ledger snapshot CSV: one row per
// transaction with its nine denomination counts, UTF-8 with a byte-order mark
// so spreadsheet applications pick the right encoding.
package ledgercsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
	"github.com/hance08/kinko/internal/constants"
	"github.com/hance08/kinko/internal/model"
)

const BOM = "\ufeff"

const (
	colID = iota
	colDate
	colType
	colAmount
	colSummary
	colRecipient
	colMemo
	colFirstCount
)

// Header returns the column names in file order.
func Header() []string {
	h := []string{
		"TransactionId", "TransactionDate", "TransactionType", "Amount",
		"Summary", "Recipient", "Memo",
	}
	for _, d := range constants.Denominations {
		h = append(h, d.Key)
	}
	return h
}

type Writer struct {
	csv *csv.Writer
}

// NewWriter writes the byte-order mark and the header row.
func NewWriter(w io.Writer) (*Writer, error) {
	if _, err := io.WriteString(w, BOM); err != nil {
		return nil, fmt.Errorf("failed to write BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	return &Writer{csv: cw}, nil
}

func (w *Writer) Write(e model.Entry) error {
	return w.writeRow(strconv.FormatInt(e.ID, 10), e.Date, e.Type.Label(), e.Amount,
		e.Summary, e.Recipient, e.Memo, e.Counts)
}

// WriteCarryover writes the marker row that opens a period export. It holds
// the balance and the cash on hand brought into the period and is skipped
// on import.
func (w *Writer) WriteCarryover(start civil.Date, balance int64, counts model.Counts) error {
	return w.writeRow(strconv.Itoa(constants.CarryoverMarkerID), start, constants.LabelCarryover,
		balance, constants.LabelCarryover, "", "", counts)
}

func (w *Writer) writeRow(id string, date civil.Date, typ string, amount int64,
	summary, recipient, memo string, counts model.Counts) error {
	row := make([]string, 0, colFirstCount+len(counts))
	row = append(row,
		id,
		formatDate(date),
		typ,
		strconv.FormatInt(amount, 10),
		summary,
		recipient,
		memo,
	)
	for _, n := range counts {
		row = append(row, strconv.FormatInt(n, 10))
	}
	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("failed to write row %s: %w", id, err)
	}
	return nil
}

// Flush writes any buffered rows and reports the first write error.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}

func formatDate(d civil.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.In(time.UTC).Format(constants.CSVDateFormat)
}
