package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/hance08/kinko/internal/config"
	"github.com/hance08/kinko/internal/ledgercsv"
	"github.com/hance08/kinko/internal/logger"
	"github.com/hance08/kinko/internal/model"
	"github.com/hance08/kinko/internal/store"
	"github.com/hance08/kinko/internal/validation"
)

func newTestService(t *testing.T, enforceStock bool) (*Service, *store.Store) {
	t.Helper()
	repo, err := store.NewStore(filepath.Join(t.TempDir(), "kinko.db"), os.DirFS("../.."))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	cfg := config.NewDefault()
	cfg.Ledger.EnforceStock = enforceStock
	return NewService(repo, cfg, logger.Nop()), repo
}

func day(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

func tx(d civil.Date, typ model.TransactionType, amount int64) model.Transaction {
	return model.Transaction{Date: d, Type: typ, Amount: amount, Summary: "支払"}
}

func TestCreateRejectsMismatchWithoutWriting(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, false)

	_, err := svc.Ledger.Create(ctx, tx(day(2025, 4, 1), model.Deposit, 12500), model.Counts{1, 0, 2})
	var mismatch *validation.MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected MismatchError, got %v", err)
	}
	if mismatch.Expected != 12500 || mismatch.Actual != 12000 {
		t.Fatalf("unexpected mismatch: %+v", mismatch)
	}

	n, err := repo.CountTransactions(ctx)
	if err != nil || n != 0 {
		t.Fatalf("rejected entry was stored (n=%d, err=%v)", n, err)
	}
}

func TestCreateNormalisesSignedWithdrawal(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, false)

	id, err := svc.Ledger.Create(ctx, tx(day(2025, 4, 1), model.Withdrawal, -1000), model.Counts{0, 0, 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := svc.Ledger.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Amount != 1000 {
		t.Fatalf("stored amount = %d, want magnitude 1000", got.Amount)
	}

	if _, err := svc.Ledger.Create(ctx, tx(day(2025, 4, 1), model.Deposit, -1000), model.Counts{0, 0, 1}); err == nil {
		t.Fatalf("expected negative deposit to be rejected")
	}
}

func TestUpdateAndUpdateBasic(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, false)

	id, err := svc.Ledger.Create(ctx, tx(day(2025, 4, 1), model.Deposit, 1000), model.Counts{0, 0, 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated := tx(day(2025, 4, 2), model.Deposit, 1500)
	if err := svc.Ledger.Update(ctx, id, updated, model.Counts{0, 0, 1, 1}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	// The stored counts are worth 1500, so only a matching basic edit passes.
	err = svc.Ledger.UpdateBasic(ctx, id, BasicUpdate{Type: model.Deposit, Amount: 2000, Summary: "調整"})
	var mismatch *validation.MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected MismatchError, got %v", err)
	}
	if err := svc.Ledger.UpdateBasic(ctx, id, BasicUpdate{Type: model.Withdrawal, Amount: 1500, Summary: "両替", Memo: "m"}); err != nil {
		t.Fatalf("UpdateBasic: %v", err)
	}

	got, err := svc.Ledger.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Type != model.Withdrawal || got.Summary != "両替" || got.Memo != "m" {
		t.Fatalf("basic fields not updated: %+v", got.Transaction)
	}
	if got.Date != day(2025, 4, 2) {
		t.Fatalf("basic edit changed the date: %v", got.Date)
	}
	if got.Counts != (model.Counts{0, 0, 1, 1}) {
		t.Fatalf("basic edit changed the counts: %v", got.Counts)
	}
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, false)

	if _, err := svc.Ledger.Get(ctx, 5); !errors.Is(err, store.ErrRecordNotFound) {
		t.Errorf("Get: expected not found, got %v", err)
	}
	if err := svc.Ledger.Delete(ctx, 5); !errors.Is(err, store.ErrRecordNotFound) {
		t.Errorf("Delete: expected not found, got %v", err)
	}
	err := svc.Ledger.Update(ctx, 5, tx(day(2025, 4, 1), model.Deposit, 0), model.Counts{})
	if !errors.Is(err, store.ErrRecordNotFound) {
		t.Errorf("Update: expected not found, got %v", err)
	}
	if err := svc.Ledger.UpdateBasic(ctx, 5, BasicUpdate{Type: model.Deposit}); !errors.Is(err, store.ErrRecordNotFound) {
		t.Errorf("UpdateBasic: expected not found, got %v", err)
	}
}

func TestStockGuard(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, true)

	if _, err := svc.Ledger.Create(ctx, tx(day(2025, 4, 1), model.Deposit, 10000), model.Counts{1}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := svc.Ledger.Create(ctx, tx(day(2025, 4, 2), model.Withdrawal, 1000), model.Counts{0, 0, 1})
	var verr *validation.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "OneThousandYen" {
		t.Fatalf("field = %s, want OneThousandYen", verr.Field)
	}

	if _, err := svc.Ledger.Create(ctx, tx(day(2025, 4, 2), model.Withdrawal, 10000), model.Counts{1}); err != nil {
		t.Fatalf("withdrawal of held note rejected: %v", err)
	}
}

func TestStatementAndCarryover(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, false)

	entries := []struct {
		tx     model.Transaction
		counts model.Counts
	}{
		{tx(day(2025, 1, 10), model.Deposit, 20000), model.Counts{2}},
		{tx(day(2025, 1, 31), model.Withdrawal, 5000), model.Counts{0, 1}},
		{tx(day(2025, 2, 1), model.Withdrawal, 1000), model.Counts{0, 0, 1}},
	}
	for _, e := range entries {
		if _, err := svc.Ledger.Create(ctx, e.tx, e.counts); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	carry, err := svc.Report.Carryover(ctx, day(2025, 2, 1))
	if err != nil {
		t.Fatalf("Carryover: %v", err)
	}
	if carry.Balance != 15000 {
		t.Fatalf("carryover = %d, want 15000", carry.Balance)
	}
	if carry.Counts != (model.Counts{2, -1}) {
		t.Fatalf("carryover counts = %v", carry.Counts)
	}

	st, err := svc.Report.Month(ctx, 2025, time.February)
	if err != nil {
		t.Fatalf("Month: %v", err)
	}
	if st.Opening.Balance != carry.Balance {
		t.Fatalf("statement opening %d differs from carryover %d", st.Opening.Balance, carry.Balance)
	}
	if len(st.Rows) != 1 || st.Closing.Balance != 14000 {
		t.Fatalf("unexpected february statement: %d rows, closing %d", len(st.Rows), st.Closing.Balance)
	}

	inv, err := svc.Report.Inventory(ctx)
	if err != nil {
		t.Fatalf("Inventory: %v", err)
	}
	if inv.Balance != 14000 {
		t.Fatalf("inventory = %d, want 14000", inv.Balance)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src, _ := newTestService(t, false)

	want := map[string]bool{}
	for _, e := range []struct {
		tx     model.Transaction
		counts model.Counts
	}{
		{tx(day(2025, 3, 1), model.Deposit, 16666), model.Counts{1, 1, 1, 1, 1, 1, 1, 1, 1}},
		{tx(day(2025, 3, 2), model.Withdrawal, 550), model.Counts{0, 0, 0, 1, 0, 1}},
	} {
		if _, err := src.Ledger.Create(ctx, e.tx, e.counts); err != nil {
			t.Fatalf("Create: %v", err)
		}
		want[string(e.tx.Type)+e.counts.String()] = true
	}

	var buf bytes.Buffer
	if n, err := src.Snapshot.Export(ctx, &buf, nil); err != nil || n != 2 {
		t.Fatalf("Export: n=%d err=%v", n, err)
	}

	dst, _ := newTestService(t, false)
	res, err := dst.Snapshot.Import(ctx, &buf, ImportOptions{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Imported != 2 {
		t.Fatalf("imported %d, want 2", res.Imported)
	}

	got, err := dst.Ledger.QueryRange(ctx, nil, nil)
	if err != nil {
		t.Fatalf("QueryRange: %v", err)
	}
	for _, e := range got {
		if !want[string(e.Type)+e.Counts.String()] {
			t.Errorf("unexpected entry after round trip: %+v", e)
		}
	}
}

func TestExportWithStartWritesCarryover(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, false)

	if _, err := svc.Ledger.Create(ctx, tx(day(2025, 1, 31), model.Deposit, 10000), model.Counts{1}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Ledger.Create(ctx, tx(day(2025, 2, 1), model.Withdrawal, 5000), model.Counts{0, 1}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	var buf bytes.Buffer
	start := day(2025, 2, 1)
	n, err := svc.Snapshot.Export(ctx, &buf, &start)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if n != 1 {
		t.Fatalf("exported %d transactions, want 1", n)
	}
	if !strings.Contains(buf.String(), "\n-1,2025/02/01,繰越,10000,") {
		t.Fatalf("missing carryover row:\n%s", buf.String())
	}

	// The marker row is skipped when the file is read back.
	batch, err := ledgercsv.ReadAll(&buf)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if batch.Skipped != 1 || len(batch.Entries) != 1 {
		t.Fatalf("skipped=%d entries=%d", batch.Skipped, len(batch.Entries))
	}
}

func TestImportReplaceRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, false)

	if _, err := svc.Ledger.Create(ctx, tx(day(2025, 1, 1), model.Deposit, 1000), model.Counts{0, 0, 1}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	csv := strings.Join(ledgercsv.Header(), ",") + "\n" +
		"1,2025/05/01,入金,500,,,,0,0,0,1,0,0,0,0,0\n"

	_, err := svc.Snapshot.Import(ctx, strings.NewReader(csv), ImportOptions{Replace: true})
	if !errors.Is(err, ErrReplaceNotConfirmed) {
		t.Fatalf("expected ErrReplaceNotConfirmed, got %v", err)
	}

	res, err := svc.Snapshot.Import(ctx, strings.NewReader(csv), ImportOptions{Replace: true, Confirmed: true})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if !res.Replaced || res.Imported != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	n, _ := repo.CountTransactions(ctx)
	if n != 1 {
		t.Fatalf("ledger has %d rows after replace, want 1", n)
	}
	got, err := svc.Ledger.Get(ctx, 1)
	if err != nil {
		t.Fatalf("id sequence not restarted: %v", err)
	}
	if got.Amount != 500 {
		t.Fatalf("amount = %d, want 500", got.Amount)
	}
}

func TestImportIsAtomic(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, false)

	csv := strings.Join(ledgercsv.Header(), ",") + "\n" +
		"1,2025/05/01,入金,500,,,,0,0,0,1,0,0,0,0,0\n" +
		"2,2025/05/02,入金,700,,,,0,0,0,1,0,0,0,0,0\n"

	_, err := svc.Snapshot.Import(ctx, strings.NewReader(csv), ImportOptions{})
	var ferr *ledgercsv.ImportFormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected ImportFormatError, got %v", err)
	}
	if ferr.Line != 3 {
		t.Fatalf("line = %d, want 3", ferr.Line)
	}

	n, _ := repo.CountTransactions(ctx)
	if n != 0 {
		t.Fatalf("partial import left %d rows", n)
	}
}
