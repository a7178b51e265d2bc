package cmd

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/hance08/kinko/internal/service"
	"github.com/hance08/kinko/internal/ui/views"
	"github.com/spf13/cobra"
)

type listFlags struct {
	From  string
	To    string
	Month string
}

type listRunner struct {
	svc   *service.Service
	flags *listFlags
	cmd   *cobra.Command
}

func NewListCmd(svc *service.Service) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the ledger with running balances (alias: ls)",
		Long: `Show the ledger in date order with the running balance after every
transaction. When the period does not start at the beginning of the ledger,
the first line is the carryover (繰越) brought into the period.

	Examples:
	kinko list
	kinko list --month 2024-04
	kinko list --from 2024-04-01 --to 2024-06-30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &listRunner{
				svc:   svc,
				flags: flags,
				cmd:   cmd,
			}
			return runner.Run()
		},
	}

	cmd.Flags().StringVarP(&flags.From, "from", "f", "", "First date to show (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&flags.To, "to", "t", "", "Last date to show (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&flags.Month, "month", "m", "", "Show one month (YYYY-MM)")

	return cmd
}

func (r *listRunner) Run() error {
	start, end, err := parsePeriod(r.flags.From, r.flags.To, r.flags.Month)
	if err != nil {
		return err
	}

	st, err := r.svc.Report.Statement(r.cmd.Context(), start, end)
	if err != nil {
		return err
	}

	return views.RenderStatement(periodTitle(start, end), st)
}

func periodTitle(start civil.Date, end *civil.Date) string {
	switch {
	case start.IsZero() && end == nil:
		return "Ledger"
	case start.IsZero():
		return fmt.Sprintf("Ledger up to %s", end)
	case end == nil:
		return fmt.Sprintf("Ledger from %s", start)
	default:
		return fmt.Sprintf("Ledger %s to %s", start, end)
	}
}
