package views

import (
	"fmt"

	"github.com/hance08/kinko/internal/model"
	"github.com/hance08/kinko/internal/ui"
	"github.com/hance08/kinko/internal/utils"
	"github.com/pterm/pterm"
)

func RenderTransactionDeletePreview(e *model.Entry) error {
	pterm.Warning.Printf("About to delete transaction #%d:\n", e.ID)

	deletionInfo := pterm.TableData{
		{"Date", e.Date.String()},
		{"Type", e.Type.Label()},
		{"Amount", utils.FormatYen(e.Amount)},
		{"Summary", e.Summary},
		{"Recipient", e.Recipient},
		{"Denominations", fmt.Sprint(e.Counts)},
	}

	if err := pterm.DefaultTable.WithData(deletionInfo).Render(); err != nil {
		return err
	}
	pterm.Warning.Println("This action cannot be undone!")
	return nil
}

func RenderTransactionDeleteSuccess(id int64) {
	pterm.Success.Printf("Transaction #%d deleted successfully\n", id)
	ui.Separator()
}
