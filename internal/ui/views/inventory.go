package views

import (
	"github.com/hance08/kinko/internal/balance"
	"github.com/hance08/kinko/internal/ui"
	"github.com/hance08/kinko/internal/utils"
	"github.com/pterm/pterm"
)

// RenderInventory shows a balance together with the notes and coins behind it.
func RenderInventory(title string, s balance.Snapshot) error {
	ui.PrintL1Title("%s", title)
	pterm.Println()

	if err := pterm.DefaultTable.WithHasHeader().WithData(DenominationTable(s.Counts)).Render(); err != nil {
		return err
	}

	pterm.Println()
	pterm.Info.Printf("Balance: %s\n", utils.FormatYen(s.Balance))

	if s.CashTotal() != s.Balance {
		pterm.Warning.Printf("Cash total %s does not match the balance\n", utils.FormatYen(s.CashTotal()))
	}
	if s.Counts.FirstNegative() >= 0 {
		pterm.Warning.Println("Some denominations are negative; the ledger records more paid out than was put in")
	}
	return nil
}
