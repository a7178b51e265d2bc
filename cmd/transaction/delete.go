package transaction

import (
	"github.com/hance08/kinko/internal/service"
	"github.com/hance08/kinko/internal/ui"
	"github.com/hance08/kinko/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type DeleteCommandRunner struct {
	svc *service.Service
	yes bool
	cmd *cobra.Command
}

func NewDeleteCmd(svc *service.Service) *cobra.Command {
	runner := &DeleteCommandRunner{svc: svc}

	cmd := &cobra.Command{
		Use:   "delete <transaction-id>",
		Short: "Delete a transaction",
		Long:  `Delete a transaction together with its denomination counts. This action cannot be undone.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner.cmd = cmd
			return runner.Run(args)
		},
	}
	cmd.Flags().BoolVarP(&runner.yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func (r *DeleteCommandRunner) Run(args []string) error {
	txID, err := parseID(args[0])
	if err != nil {
		return err
	}

	// Get transaction details first to show what will be deleted
	entry, err := r.svc.Ledger.Get(r.cmd.Context(), txID)
	if err != nil {
		return err
	}

	if !r.yes {
		if err := views.RenderTransactionDeletePreview(entry); err != nil {
			return err
		}

		confirmation, err := ui.ConfirmDestructive("Do you want to delete this transaction?")
		if err != nil {
			return err
		}
		if !confirmation {
			pterm.Info.Println("Deletion cancelled")
			return nil
		}
	}

	if err := r.svc.Ledger.Delete(r.cmd.Context(), txID); err != nil {
		return err
	}

	views.RenderTransactionDeleteSuccess(txID)
	return nil
}
