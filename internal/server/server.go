// Package server exposes the ledger over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hance08/kinko/internal/config"
	"github.com/hance08/kinko/internal/service"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	svc       *service.Service
	cfg       *config.Config
	log       zerolog.Logger
	engine    *gin.Engine
	uploadDir string
}

type Option func(*Server)

// WithUploadDir sets the directory that holds uploaded files while they are
// imported. It defaults to the system temp directory.
func WithUploadDir(dir string) Option {
	return func(s *Server) { s.uploadDir = dir }
}

func New(svc *service.Service, cfg *config.Config, log zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		svc:       svc,
		cfg:       cfg,
		log:       log,
		uploadDir: os.TempDir(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = s.cfg.MaxUploadBytes()
	r.Use(RequestID(), Logger(s.log), Recovery(s.log), CORS(s.cfg.Server.AllowedOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.GET("/transaction-history", s.transactionHistory)
	api.GET("/monthly-history", s.monthlyHistory)
	api.POST("/insert-transaction", s.insertTransaction)
	api.GET("/transactions/:id", s.getTransaction)
	api.PUT("/transactions/:id", s.updateTransactionBasic)
	api.DELETE("/transactions/:id", s.deleteTransaction)
	api.PUT("/update-transaction-and-denomination/:id", s.updateTransaction)

	api.GET("/current-inventory", s.currentInventory)
	api.GET("/calculate-carryover", s.calculateCarryover)

	api.GET("/export-denominations", s.exportCSV)
	api.GET("/monthly-report", s.monthlyReport)
	api.POST("/import-csv", s.importCSV)

	return r
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info().Str("address", srv.Addr).Msg("Starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
