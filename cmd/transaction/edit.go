package transaction

import (
	"github.com/hance08/kinko/internal/model"
	"github.com/hance08/kinko/internal/service"
	"github.com/hance08/kinko/internal/ui"
	"github.com/hance08/kinko/internal/ui/prompts"
	"github.com/hance08/kinko/internal/ui/views"
	"github.com/hance08/kinko/internal/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type editFlags struct {
	Date      string
	Type      string
	Amount    string
	Summary   string
	Recipient string
	Memo      string
	Counts    string
}

type EditCommandRunner struct {
	svc   *service.Service
	flags *editFlags
	cmd   *cobra.Command
}

func NewEditCmd(svc *service.Service) *cobra.Command {
	flags := &editFlags{}

	cmd := &cobra.Command{
		Use:   "edit <transaction-id>",
		Short: "Edit a transaction",
		Long: `Edit a transaction interactively, or change single fields with flags.

Changing only type, amount, summary, recipient or memo keeps the stored
denomination counts, so the new amount must still match them. Pass --counts
(and optionally --date) to recount the cash as well.

	Examples:
	kinko transaction edit 12
	kinko transaction edit 12 --summary 交通費 --memo "bus"
	kinko transaction edit 12 --amount 1500 --counts 1000=1,500=1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &EditCommandRunner{
				svc:   svc,
				flags: flags,
				cmd:   cmd,
			}
			return runner.Run(args)
		},
	}

	cmd.Flags().StringVar(&flags.Date, "date", "", "New date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&flags.Type, "type", "t", "", "New type: deposit/入金 or withdrawal/出金")
	cmd.Flags().StringVarP(&flags.Amount, "amount", "a", "", "New amount in whole yen")
	cmd.Flags().StringVarP(&flags.Summary, "summary", "s", "", "New summary")
	cmd.Flags().StringVarP(&flags.Recipient, "recipient", "r", "", "New recipient")
	cmd.Flags().StringVarP(&flags.Memo, "memo", "m", "", "New memo")
	cmd.Flags().StringVar(&flags.Counts, "counts", "", "New denomination counts, e.g. 1000=1,500=1")

	return cmd
}

func (r *EditCommandRunner) Run(args []string) error {
	txID, err := parseID(args[0])
	if err != nil {
		return err
	}

	current, err := r.svc.Ledger.Get(r.cmd.Context(), txID)
	if err != nil {
		return err
	}

	var updated model.Entry
	var full bool
	if r.hasFlags() {
		updated, full, err = r.flagsMode(*current)
	} else {
		updated, full, err = r.interactiveMode(*current)
	}
	if err != nil {
		return err
	}
	if updated.ID == 0 {
		pterm.Info.Println("Changes discarded")
		return nil
	}

	if full {
		err = r.svc.Ledger.Update(r.cmd.Context(), txID, updated.Transaction, updated.Counts)
	} else {
		err = r.svc.Ledger.UpdateBasic(r.cmd.Context(), txID, service.BasicUpdate{
			Type:      updated.Type,
			Amount:    updated.Amount,
			Summary:   updated.Summary,
			Recipient: updated.Recipient,
			Memo:      updated.Memo,
		})
	}
	if err != nil {
		return err
	}

	pterm.Success.Printf("Transaction #%d updated successfully\n", txID)

	saved, err := r.svc.Ledger.Get(r.cmd.Context(), txID)
	if err != nil {
		return err
	}
	if err := views.RenderTransactionDetail(saved); err != nil {
		return err
	}
	ui.Separator()
	return nil
}

func (r *EditCommandRunner) hasFlags() bool {
	for _, name := range []string{"date", "type", "amount", "summary", "recipient", "memo", "counts"} {
		if r.cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// flagsMode applies the changed flags to the current entry. The edit is a
// full one when the date or the counts change.
func (r *EditCommandRunner) flagsMode(current model.Entry) (model.Entry, bool, error) {
	e := current
	changed := r.cmd.Flags().Changed
	var err error

	if changed("type") {
		if e.Type, err = model.ParseTransactionType(r.flags.Type); err != nil {
			return model.Entry{}, false, err
		}
	}
	if changed("amount") {
		if e.Amount, err = utils.ParseYen(r.flags.Amount); err != nil {
			return model.Entry{}, false, err
		}
	}
	if changed("summary") {
		e.Summary = r.flags.Summary
	}
	if changed("recipient") {
		e.Recipient = r.flags.Recipient
	}
	if changed("memo") {
		e.Memo = r.flags.Memo
	}
	if changed("date") {
		if e.Date, err = utils.ParseDate(r.flags.Date); err != nil {
			return model.Entry{}, false, err
		}
	}
	if changed("counts") {
		if e.Counts, err = model.ParseCounts(r.flags.Counts); err != nil {
			return model.Entry{}, false, err
		}
	}

	return e, changed("date") || changed("counts"), nil
}

func (r *EditCommandRunner) interactiveMode(current model.Entry) (model.Entry, bool, error) {
	pterm.DefaultSection.Printf("Editing Transaction #%d", current.ID)
	if err := views.RenderTransactionDetail(&current); err != nil {
		return model.Entry{}, false, err
	}

	choice, err := prompts.PromptEditMode()
	if err != nil {
		return model.Entry{}, false, err
	}

	var e model.Entry
	switch choice {
	case prompts.EditBasic:
		e, err = prompts.PromptBasic("Edit transaction", current)
	case prompts.EditFull:
		e, err = prompts.PromptEntry("Edit transaction", current)
	default:
		return model.Entry{}, false, nil
	}
	if err != nil {
		return model.Entry{}, false, err
	}

	e.ID = current.ID
	return e, choice == prompts.EditFull, nil
}
