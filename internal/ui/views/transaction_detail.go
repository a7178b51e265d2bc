package views

import (
	"fmt"

	"github.com/hance08/kinko/internal/constants"
	"github.com/hance08/kinko/internal/model"
	"github.com/hance08/kinko/internal/ui"
	"github.com/hance08/kinko/internal/utils"
	"github.com/pterm/pterm"
)

// DenominationTable lists every face value with its count and subtotal.
func DenominationTable(counts model.Counts) pterm.TableData {
	data := pterm.TableData{
		{"Denomination", "Count", "Subtotal"},
	}
	for i, d := range constants.Denominations {
		count := fmt.Sprintf("%d", counts[i])
		if counts[i] < 0 {
			count = pterm.Red(count)
		}
		data = append(data, []string{
			utils.FormatYen(d.Value),
			count,
			utils.FormatYen(counts[i] * d.Value),
		})
	}
	data = append(data, []string{"Total", "", utils.FormatYen(counts.Total())})
	return data
}

func RenderTransactionDetail(e *model.Entry) error {
	memo := e.Memo
	if memo == "" {
		memo = "-"
	}

	typeLabel := fmt.Sprintf("%s (%s)", e.Type.Label(), e.Type)
	if e.Type == model.Deposit {
		typeLabel = ui.Deposit(typeLabel)
	} else {
		typeLabel = ui.Withdrawal(typeLabel)
	}

	pterm.Println()
	ui.PrintL2Title("Transaction Info")
	infoData := pterm.TableData{
		{"Field", "Value"},
		{"ID", fmt.Sprintf("%d", e.ID)},
		{"Date", e.Date.String()},
		{"Type", typeLabel},
		{"Amount", utils.FormatYen(e.Amount)},
		{"Summary", e.Summary},
		{"Recipient", e.Recipient},
		{"Memo", memo},
	}
	if err := pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithData(infoData).
		Render(); err != nil {
		return err
	}

	pterm.Println()
	ui.PrintL2Title("Denominations")
	return pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithData(DenominationTable(e.Counts)).
		Render()
}
