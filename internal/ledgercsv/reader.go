package ledgercsv

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hance08/kinko/internal/model"
	"github.com/hance08/kinko/internal/utils"
	"github.com/hance08/kinko/internal/validation"
)

// Batch is the content of an imported file.
type Batch struct {
	Entries []model.Entry
	Skipped int // carryover marker rows
}

// ReadAll parses and validates a whole snapshot file. Ids in the file are
// not kept; the store assigns new ones. Any malformed row fails the batch
// with an *ImportFormatError.
func ReadAll(r io.Reader) (*Batch, error) {
	cr := csv.NewReader(skipBOM(r))
	cr.FieldsPerRecord = len(Header())
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ImportFormatError{Line: 1, Err: fmt.Errorf("%w: file is empty", ErrHeader)}
	}
	if err != nil {
		return nil, wrapParseError(err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	batch := &Batch{}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapParseError(err)
		}
		line, _ := cr.FieldPos(0)

		entry, skip, err := parseRecord(record, line)
		if err != nil {
			return nil, err
		}
		if skip {
			batch.Skipped++
			continue
		}
		batch.Entries = append(batch.Entries, entry)
	}

	return batch, nil
}

func checkHeader(header []string) error {
	want := Header()
	for i, name := range want {
		if !strings.EqualFold(strings.TrimSpace(header[i]), name) {
			return &ImportFormatError{
				Line:   1,
				Column: i + 1,
				Err:    fmt.Errorf("%w: got '%s', want '%s'", ErrHeader, header[i], name),
			}
		}
	}
	return nil
}

func parseRecord(record []string, line int) (model.Entry, bool, error) {
	var e model.Entry
	fail := func(col int, err error) (model.Entry, bool, error) {
		return e, false, &ImportFormatError{Line: line, Column: col + 1, Err: err}
	}

	// Carryover markers and other non-transaction rows carry a negative or
	// non-numeric id. An empty id is a transaction without one.
	if s := strings.TrimSpace(record[colID]); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id < 0 {
			return e, true, nil
		}
	}

	date, err := utils.ParseDate(record[colDate])
	if err != nil {
		return fail(colDate, err)
	}

	typ, err := model.ParseTransactionType(record[colType])
	if err != nil {
		return fail(colType, err)
	}

	var amount int64
	if s := strings.TrimSpace(record[colAmount]); s != "" {
		amount, err = utils.ParseYen(s)
		if err != nil {
			return fail(colAmount, err)
		}
	}
	amount, err = model.NormalizeAmount(typ, amount)
	if err != nil {
		return fail(colAmount, err)
	}

	e.Transaction = model.Transaction{
		Date:      date,
		Type:      typ,
		Amount:    amount,
		Summary:   strings.TrimSpace(record[colSummary]),
		Recipient: strings.TrimSpace(record[colRecipient]),
		Memo:      strings.TrimSpace(record[colMemo]),
	}

	for i := range e.Counts {
		s := strings.TrimSpace(record[colFirstCount+i])
		if s == "" {
			continue
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fail(colFirstCount+i, fmt.Errorf("invalid count '%s'", s))
		}
		e.Counts[i] = n
	}

	if err := validation.ValidateEntry(e.Transaction, e.Counts); err != nil {
		var mismatch *validation.MismatchError
		if errors.As(err, &mismatch) {
			return fail(colAmount, err)
		}
		return e, false, &ImportFormatError{Line: line, Err: err}
	}

	return e, false, nil
}

func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(BOM)); err == nil && string(b) == BOM {
		_, _ = br.Discard(len(BOM))
	}
	return br
}

func wrapParseError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ImportFormatError{Line: pe.Line, Column: pe.Column, Err: pe.Err}
	}
	return fmt.Errorf("failed to read CSV: %w", err)
}
