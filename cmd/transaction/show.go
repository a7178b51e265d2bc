package transaction

import (
	"github.com/hance08/kinko/internal/service"
	"github.com/hance08/kinko/internal/ui/views"
	"github.com/spf13/cobra"
)

type ShowCommandRunner struct {
	svc *service.Service
	cmd *cobra.Command
}

func NewShowCmd(svc *service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "show <transaction-id>",
		Short: "Show a transaction and its denominations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ShowCommandRunner{
				svc: svc,
				cmd: cmd,
			}
			return runner.Run(args)
		},
	}
}

func (r *ShowCommandRunner) Run(args []string) error {
	txID, err := parseID(args[0])
	if err != nil {
		return err
	}

	entry, err := r.svc.Ledger.Get(r.cmd.Context(), txID)
	if err != nil {
		return err
	}

	return views.RenderTransactionDetail(entry)
}
