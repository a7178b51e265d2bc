package views

import (
	"fmt"

	"github.com/hance08/kinko/internal/balance"
	"github.com/hance08/kinko/internal/constants"
	"github.com/hance08/kinko/internal/ui"
	"github.com/hance08/kinko/internal/utils"
	"github.com/pterm/pterm"
)

// StatementTable lays a statement out as the paper ledger does: a carryover
// line, then one line per transaction with its running balance.
func StatementTable(st *balance.Statement) pterm.TableData {
	tableData := pterm.TableData{
		{"ID", "Date", "Type", "Summary", "Recipient", "In", "Out", "Balance", "Memo"},
	}

	carryDate := "-"
	if !st.Start.IsZero() {
		carryDate = st.Start.String()
	}
	tableData = append(tableData, []string{
		"", carryDate, pterm.Gray(constants.LabelCarryover), "", "", "", "",
		utils.FormatYen(st.Opening.Balance), "",
	})

	for _, row := range st.Rows {
		e := row.Entry
		in, out := "", ""
		label := e.Type.Label()
		if row.Delta >= 0 {
			in = ui.Deposit(utils.FormatYen(e.Amount))
			label = ui.Deposit(label)
		} else {
			out = ui.Withdrawal(utils.FormatYen(e.Amount))
			label = ui.Withdrawal(label)
		}

		tableData = append(tableData, []string{
			fmt.Sprintf("%d", e.ID),
			e.Date.String(),
			label,
			e.Summary,
			e.Recipient,
			in,
			out,
			utils.FormatYen(row.RunningBalance),
			e.Memo,
		})
	}

	return tableData
}

func RenderStatement(title string, st *balance.Statement) error {
	ui.PrintL1Title("%s", title)
	pterm.Println()

	if len(st.Rows) == 0 {
		pterm.Warning.Println("No transactions found")
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(StatementTable(st)).Render(); err != nil {
		return err
	}

	pterm.Println()
	pterm.Info.Printf("Total: %d transactions\n", len(st.Rows))
	pterm.Info.Printf("Deposits %s / Withdrawals %s / Closing balance %s\n",
		ui.Deposit(utils.FormatYen(st.Deposits)),
		ui.Withdrawal(utils.FormatYen(st.Withdrawals)),
		utils.FormatYen(st.Closing.Balance))

	if st.Closing.CashTotal() != st.Closing.Balance {
		pterm.Warning.Printf("Cash on hand %s does not match the balance\n", utils.FormatYen(st.Closing.CashTotal()))
	}
	return nil
}
