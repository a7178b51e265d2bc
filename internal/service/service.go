package service

import (
	"github.com/hance08/kinko/internal/config"
	"github.com/hance08/kinko/internal/store"
	"github.com/rs/zerolog"
)

type Service struct {
	Ledger   *LedgerService
	Report   *ReportService
	Snapshot *SnapshotService
}

func NewService(repo store.Repository, cfg *config.Config, log zerolog.Logger) *Service {
	ledger := NewLedgerService(repo, cfg, log)
	report := NewReportService(repo)
	return &Service{
		Ledger:   ledger,
		Report:   report,
		Snapshot: NewSnapshotService(ledger, report),
	}
}
