package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hance08/kinko/internal/report"
	"github.com/hance08/kinko/internal/service"
	"github.com/hance08/kinko/internal/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type reportFlags struct {
	Year   string
	Month  string
	Output string
}

type reportRunner struct {
	svc   *service.Service
	flags *reportFlags
	cmd   *cobra.Command
}

func NewReportCmd(svc *service.Service) *cobra.Command {
	flags := &reportFlags{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the monthly cash book as an Excel workbook",
		Long: `Write one month of the ledger as an .xlsx workbook laid out like the
paper cash book: the carryover line, every transaction with its running
balance and denomination counts, and a totals line.

	Examples:
	kinko report
	kinko report --year 2024 --month 4 -o april.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &reportRunner{
				svc:   svc,
				flags: flags,
				cmd:   cmd,
			}
			return runner.Run()
		},
	}

	now := time.Now()
	cmd.Flags().StringVarP(&flags.Year, "year", "y", strconv.Itoa(now.Year()), "Year")
	cmd.Flags().StringVarP(&flags.Month, "month", "m", strconv.Itoa(int(now.Month())), "Month (1-12)")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Output file (default kinko-YYYY-MM.xlsx)")

	return cmd
}

func (r *reportRunner) Run() error {
	year, month, err := utils.ParseYearMonth(r.flags.Year, r.flags.Month)
	if err != nil {
		return err
	}

	st, err := r.svc.Report.Month(r.cmd.Context(), year, month)
	if err != nil {
		return err
	}

	output := r.flags.Output
	if output == "" {
		output = fmt.Sprintf("kinko-%04d-%02d.xlsx", year, int(month))
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}

	err = report.WriteMonthlyWorkbook(f, st)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to write %s: %w", output, cerr)
	}
	if err != nil {
		os.Remove(output)
		return err
	}

	pterm.Success.Printf("Wrote %s (%d transactions, closing balance %s)\n",
		output, len(st.Rows), utils.FormatYen(st.Closing.Balance))
	return nil
}
