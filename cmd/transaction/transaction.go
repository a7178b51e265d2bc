package transaction

import (
	"fmt"
	"strconv"

	"github.com/hance08/kinko/internal/service"
	"github.com/spf13/cobra"
)

func NewTransactionCmd(svc *service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transaction",
		Aliases: []string{"tx"},
		Short:   "Manage transactions",
		Long:    "Manage transactions: view details, edit, or delete a single transaction.",
	}

	cmd.AddCommand(NewShowCmd(svc))
	cmd.AddCommand(NewEditCmd(svc))
	cmd.AddCommand(NewDeleteCmd(svc))

	return cmd
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid transaction ID: %s", arg)
	}
	return id, nil
}
