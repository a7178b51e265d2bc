// Package balance derives running balances, carryover and cash on hand from
// an ordered sequence of ledger entries. Every function here is pure.
package balance

import (
	"cmp"
	"slices"
	"time"

	"cloud.google.com/go/civil"
	"github.com/hance08/kinko/internal/model"
)

// Snapshot is the state of the box after some prefix of the ledger.
type Snapshot struct {
	Balance int64
	Counts  model.Counts
}

// CashTotal is the face value of the notes and coins in the snapshot. It
// equals Balance as long as every entry was reconciled.
func (s Snapshot) CashTotal() int64 {
	return s.Counts.Total()
}

// Row is one entry with the values derived for it.
type Row struct {
	Entry          model.Entry
	Delta          int64
	RunningBalance int64
	Inventory      model.Counts
}

func (r Row) CashTotal() int64 {
	return r.Inventory.Total()
}

// Apply adds one entry to a snapshot.
func Apply(s Snapshot, e model.Entry) Snapshot {
	sign := e.Type.Sign()
	s.Balance += sign * e.Amount
	s.Counts = s.Counts.Add(e.Counts.Scale(sign))
	return s
}

// Fold computes the derived row for every entry, starting from opening.
func Fold(opening Snapshot, entries []model.Entry) []Row {
	ordered := Ordered(entries)

	rows := make([]Row, 0, len(ordered))
	cur := opening
	for _, e := range ordered {
		cur = Apply(cur, e)
		rows = append(rows, Row{
			Entry:          e,
			Delta:          e.SignedAmount(),
			RunningBalance: cur.Balance,
			Inventory:      cur.Counts,
		})
	}
	return rows
}

// Carryover is the snapshot after the last entry dated strictly before start.
func Carryover(entries []model.Entry, start civil.Date) Snapshot {
	var s Snapshot
	for _, e := range Ordered(entries) {
		if !e.Date.Before(start) {
			break
		}
		s = Apply(s, e)
	}
	return s
}

// Total folds the whole sequence and returns the final snapshot.
func Total(entries []model.Entry) Snapshot {
	var s Snapshot
	for _, e := range entries {
		s = Apply(s, e)
	}
	return s
}

// Ordered returns entries sorted by (date, id). The input is returned as is
// when it is already in order.
func Ordered(entries []model.Entry) []model.Entry {
	if slices.IsSortedFunc(entries, compareEntries) {
		return entries
	}
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, compareEntries)
	return sorted
}

func compareEntries(a, b model.Entry) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// MonthBounds returns the first and last day of a calendar month.
func MonthBounds(year int, month time.Month) (civil.Date, civil.Date) {
	first := civil.Date{Year: year, Month: month, Day: 1}
	last := first.AddMonths(1).AddDays(-1)
	return first, last
}
