package balance

import (
	"cloud.google.com/go/civil"
	"github.com/hance08/kinko/internal/model"
)

// Statement is the ledger for a period together with the carryover brought
// into it.
type Statement struct {
	Start       civil.Date // zero when the period starts with the ledger
	End         civil.Date // zero when the period is open ended
	Opening     Snapshot
	Rows        []Row
	Closing     Snapshot
	Deposits    int64
	Withdrawals int64
}

// NewStatement builds a statement from the entries dated before start and
// the entries inside the period.
func NewStatement(start, end civil.Date, prior, period []model.Entry) Statement {
	opening := Total(Ordered(prior))
	if !start.IsZero() {
		opening = Carryover(prior, start)
	}

	st := Statement{
		Start:   start,
		End:     end,
		Opening: opening,
		Rows:    Fold(opening, period),
		Closing: opening,
	}
	for _, r := range st.Rows {
		if r.Delta >= 0 {
			st.Deposits += r.Delta
		} else {
			st.Withdrawals -= r.Delta
		}
		st.Closing = Snapshot{Balance: r.RunningBalance, Counts: r.Inventory}
	}
	return st
}
