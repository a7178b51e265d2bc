package cmd

import (
	"fmt"
	"os"

	"github.com/hance08/kinko/internal/service"
	"github.com/hance08/kinko/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type importFlags struct {
	Replace bool
	Yes     bool
}

type importRunner struct {
	svc   *service.Service
	flags *importFlags
	cmd   *cobra.Command
}

func NewImportCmd(svc *service.Service) *cobra.Command {
	flags := &importFlags{}

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import a CSV snapshot",
		Long: `Import a CSV snapshot written by export. Rows are validated first and
written in a single transaction; one bad row aborts the whole import.

By default rows are appended with fresh IDs. With --replace the current ledger
is deleted first, which asks for confirmation unless --yes is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &importRunner{
				svc:   svc,
				flags: flags,
				cmd:   cmd,
			}
			return runner.Run(args[0])
		},
	}

	cmd.Flags().BoolVar(&flags.Replace, "replace", false, "Delete the current ledger before importing")
	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Do not ask before replacing")

	return cmd
}

func (r *importRunner) Run(path string) error {
	confirmed := r.flags.Yes
	if r.flags.Replace && !confirmed {
		count, err := r.svc.Report.Count(r.cmd.Context())
		if err != nil {
			return err
		}
		pterm.Warning.Printf("This deletes all %d transactions currently in the ledger.\n", count)

		confirmed, err = ui.ConfirmDestructive(fmt.Sprintf("Replace the ledger with %s?", path))
		if err != nil {
			return err
		}
		if !confirmed {
			pterm.Info.Println("Import cancelled")
			return nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	res, err := r.svc.Snapshot.Import(r.cmd.Context(), f, service.ImportOptions{
		Replace:   r.flags.Replace,
		Confirmed: confirmed,
	})
	if err != nil {
		return err
	}

	if res.Replaced {
		pterm.Success.Printf("Ledger replaced with %d transactions\n", res.Imported)
	} else {
		pterm.Success.Printf("Imported %d transactions\n", res.Imported)
	}
	if res.Skipped > 0 {
		pterm.Info.Printf("Skipped %d carryover rows\n", res.Skipped)
	}
	ui.Separator()
	return nil
}
