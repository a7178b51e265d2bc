package cmd

import (
	"fmt"
	"os"

	"cloud.google.com/go/civil"
	"github.com/hance08/kinko/internal/service"
	"github.com/hance08/kinko/internal/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type exportFlags struct {
	Output string
	From   string
}

type exportRunner struct {
	svc   *service.Service
	flags *exportFlags
	cmd   *cobra.Command
}

func NewExportCmd(svc *service.Service) *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the ledger as a CSV snapshot",
		Long: `Export the ledger as a UTF-8 CSV file with a byte order mark, one row
per transaction with its denomination counts. With --from only the
transactions from that date on are written, preceded by a carryover row.

	Examples:
	kinko export -o ledger.csv
	kinko export --from 2024-04-01 > april.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &exportRunner{
				svc:   svc,
				flags: flags,
				cmd:   cmd,
			}
			return runner.Run()
		},
	}

	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVarP(&flags.From, "from", "f", "", "Export from this date on (YYYY-MM-DD)")

	return cmd
}

func (r *exportRunner) Run() error {
	var start *civil.Date
	if r.flags.From != "" {
		d, err := utils.ParseDate(r.flags.From)
		if err != nil {
			return err
		}
		start = &d
	}

	if r.flags.Output == "" {
		_, err := r.svc.Snapshot.Export(r.cmd.Context(), r.cmd.OutOrStdout(), start)
		return err
	}

	f, err := os.Create(r.flags.Output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", r.flags.Output, err)
	}

	n, err := r.svc.Snapshot.Export(r.cmd.Context(), f, start)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to write %s: %w", r.flags.Output, cerr)
	}
	if err != nil {
		os.Remove(r.flags.Output)
		return err
	}

	pterm.Success.Printf("Exported %d transactions to %s\n", n, r.flags.Output)
	return nil
}
