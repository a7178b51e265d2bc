package cmd

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/huh"
	"github.com/hance08/kinko/internal/app"
	"github.com/hance08/kinko/internal/model"
	"github.com/hance08/kinko/internal/ui/prompts"
	"github.com/hance08/kinko/internal/ui/views"
	"github.com/hance08/kinko/internal/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type addFlags struct {
	Date      string
	Type      string
	Amount    string
	Summary   string
	Recipient string
	Memo      string
	Counts    string
}

type addRunner struct {
	app   *app.App
	flags *addFlags
	cmd   *cobra.Command
}

func NewAddCmd(application *app.App) *cobra.Command {
	flags := &addFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a deposit or withdrawal",
		Long: `Record a deposit into or a withdrawal from the cash box.

Every transaction carries the notes and coins that moved. Their face value
must add up to the amount exactly, otherwise nothing is recorded.

	Examples:
	# Interactive mode
	kinko add

	# Quick mode with flags
	kinko add --type withdrawal --amount 1500 --summary 交通費 --recipient "Taxi" --counts 1000=1,500=1

	# Japanese labels work too
	kinko add --type 入金 --amount 10000 --summary 小口入金 --counts 10000=1 --date 2024-04-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &addRunner{
				app:   application,
				flags: flags,
				cmd:   cmd,
			}
			return runner.Run()
		},
	}
	cmd.Flags().StringVar(&flags.Date, "date", "", "Transaction date (YYYY-MM-DD), default is today")
	cmd.Flags().StringVarP(&flags.Type, "type", "t", "", "deposit/入金 or withdrawal/出金 (default from config)")
	cmd.Flags().StringVarP(&flags.Amount, "amount", "a", "", "Amount in whole yen")
	cmd.Flags().StringVarP(&flags.Summary, "summary", "s", "", "Summary, e.g. 交通費")
	cmd.Flags().StringVarP(&flags.Recipient, "recipient", "r", "", "Who paid or was paid")
	cmd.Flags().StringVarP(&flags.Memo, "memo", "m", "", "Optional memo")
	cmd.Flags().StringVar(&flags.Counts, "counts", "", "Notes and coins moved, e.g. 1000=1,500=1")

	return cmd
}

func (r *addRunner) Run() error {
	var entry model.Entry
	var err error

	// Check if using flag mode or interactive mode
	hasFlags := r.cmd.Flags().Changed("amount") || r.cmd.Flags().Changed("counts")

	if hasFlags {
		entry, err = r.flagsMode()
	} else {
		entry, err = r.interactiveMode()
	}
	if err != nil {
		return err
	}

	id, err := r.app.Service.Ledger.Create(r.cmd.Context(), entry.Transaction, entry.Counts)
	if err != nil {
		return err
	}

	pterm.Success.Printf("Transaction created successfully! (ID: %d)\n", id)

	created, err := r.app.Service.Ledger.Get(r.cmd.Context(), id)
	if err != nil {
		return err
	}
	return views.RenderTransactionSummary(created)
}

func (r *addRunner) flagsMode() (model.Entry, error) {
	if r.flags.Amount == "" {
		return model.Entry{}, fmt.Errorf("when using flags, --amount and --counts are both required")
	}

	typ, err := model.ParseTransactionType(firstNonEmpty(r.flags.Type, r.app.Config.Defaults.Type))
	if err != nil {
		return model.Entry{}, err
	}

	amount, err := utils.ParseYen(r.flags.Amount)
	if err != nil {
		return model.Entry{}, err
	}

	counts, err := model.ParseCounts(r.flags.Counts)
	if err != nil {
		return model.Entry{}, err
	}

	date := civil.DateOf(time.Now())
	if r.flags.Date != "" {
		date, err = utils.ParseDate(r.flags.Date)
		if err != nil {
			return model.Entry{}, err
		}
	}

	return model.Entry{
		Transaction: model.Transaction{
			Date:      date,
			Type:      typ,
			Amount:    amount,
			Summary:   firstNonEmpty(r.flags.Summary, r.app.Config.Defaults.Summary),
			Recipient: firstNonEmpty(r.flags.Recipient, r.app.Config.Defaults.Recipient),
			Memo:      r.flags.Memo,
		},
		Counts: counts,
	}, nil
}

func (r *addRunner) interactiveMode() (model.Entry, error) {
	def := model.Entry{
		Transaction: model.Transaction{
			Summary:   firstNonEmpty(r.flags.Summary, r.app.Config.Defaults.Summary),
			Recipient: firstNonEmpty(r.flags.Recipient, r.app.Config.Defaults.Recipient),
			Memo:      r.flags.Memo,
		},
	}
	if typ, err := model.ParseTransactionType(firstNonEmpty(r.flags.Type, r.app.Config.Defaults.Type)); err == nil {
		def.Type = typ
	}
	if r.flags.Date != "" {
		date, err := utils.ParseDate(r.flags.Date)
		if err != nil {
			return model.Entry{}, err
		}
		def.Date = date
	}

	entry, err := prompts.PromptEntry("New transaction", def)
	if err != nil {
		return model.Entry{}, err
	}

	ok, err := prompts.PromptConfirm(fmt.Sprintf("Record %s of %s on %s?",
		entry.Type.Label(), utils.FormatYen(entry.Amount), entry.Date), true)
	if err != nil {
		return model.Entry{}, err
	}
	if !ok {
		return model.Entry{}, huh.ErrUserAborted
	}
	return entry, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
