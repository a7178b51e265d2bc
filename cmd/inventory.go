package cmd

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/hance08/kinko/internal/service"
	"github.com/hance08/kinko/internal/ui/views"
	"github.com/hance08/kinko/internal/utils"
	"github.com/spf13/cobra"
)

type inventoryRunner struct {
	svc *service.Service
	cmd *cobra.Command
}

func NewInventoryCmd(svc *service.Service) *cobra.Command {
	return &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"inv"},
		Short:   "Show the cash currently in the box by denomination",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &inventoryRunner{
				svc: svc,
				cmd: cmd,
			}
			return runner.Run()
		},
	}
}

func (r *inventoryRunner) Run() error {
	snap, err := r.svc.Report.Inventory(r.cmd.Context())
	if err != nil {
		return err
	}
	return views.RenderInventory("Current inventory", snap)
}

type carryoverRunner struct {
	svc  *service.Service
	date string
	cmd  *cobra.Command
}

func NewCarryoverCmd(svc *service.Service) *cobra.Command {
	runner := &carryoverRunner{svc: svc}

	cmd := &cobra.Command{
		Use:   "carryover",
		Short: "Show the balance brought forward into a date",
		Long: `Show the balance and the notes and coins on hand after the last
transaction dated strictly before the given date. Defaults to the first day
of the current month.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner.cmd = cmd
			return runner.Run()
		},
	}
	cmd.Flags().StringVarP(&runner.date, "date", "d", "", "Start date (YYYY-MM-DD)")

	return cmd
}

func (r *carryoverRunner) Run() error {
	now := time.Now()
	start := civil.Date{Year: now.Year(), Month: now.Month(), Day: 1}
	if r.date != "" {
		d, err := utils.ParseDate(r.date)
		if err != nil {
			return err
		}
		start = d
	}

	snap, err := r.svc.Report.Carryover(r.cmd.Context(), start)
	if err != nil {
		return err
	}
	return views.RenderInventory(fmt.Sprintf("Carryover into %s", start), snap)
}
