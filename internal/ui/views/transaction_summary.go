package views

import (
	"github.com/hance08/kinko/internal/model"
	"github.com/hance08/kinko/internal/utils"
	"github.com/pterm/pterm"
)

func RenderTransactionSummary(e *model.Entry) error {
	pterm.DefaultSection.Println("Transaction Summary")

	if err := RenderTransactionDetail(e); err != nil {
		return err
	}

	if e.Counts.Total() == e.Amount {
		pterm.Success.Printf("✓ Counts reconcile (%s)\n", utils.FormatYen(e.Amount))
	} else {
		pterm.Warning.Printf("⚠ Counts total %s, amount is %s\n",
			utils.FormatYen(e.Counts.Total()), utils.FormatYen(e.Amount))
	}
	return nil
}
