package server

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"
	"github.com/hance08/kinko/internal/logger"
	"github.com/hance08/kinko/internal/report"
	"github.com/hance08/kinko/internal/service"
	"github.com/hance08/kinko/internal/utils"
)

func (s *Server) transactionHistory(c *gin.Context) {
	start, ok := requiredDate(c, "startDate")
	if !ok {
		return
	}
	var end *civil.Date
	if raw := c.Query("endDate"); raw != "" {
		d, err := utils.ParseDate(raw)
		if err != nil {
			badRequest(c, "endDate: "+err.Error())
			return
		}
		if d.Before(start) {
			badRequest(c, "endDate is before startDate")
			return
		}
		end = &d
	}

	st, err := s.svc.Report.Statement(c.Request.Context(), start, end)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", toHistoryResponse(st))
}

func (s *Server) monthlyHistory(c *gin.Context) {
	year, month, err := utils.ParseYearMonth(c.Query("year"), c.Query("month"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	st, err := s.svc.Report.Month(c.Request.Context(), year, month)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", toHistoryResponse(st))
}

func (s *Server) insertTransaction(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	tx, counts, err := req.toEntry()
	if err != nil {
		fail(c, err)
		return
	}

	id, err := s.svc.Ledger.Create(c.Request.Context(), tx, counts)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, idMessage("created", id), gin.H{"id": id})
}

func (s *Server) getTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	entry, err := s.svc.Ledger.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", toTransactionResponse(*entry))
}

func (s *Server) updateTransactionBasic(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req basicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	in, err := req.toUpdate()
	if err != nil {
		fail(c, err)
		return
	}

	if err := s.svc.Ledger.UpdateBasic(c.Request.Context(), id, in); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, idMessage("updated", id), nil)
}

func (s *Server) updateTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	tx, counts, err := req.toEntry()
	if err != nil {
		fail(c, err)
		return
	}

	if err := s.svc.Ledger.Update(c.Request.Context(), id, tx, counts); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, idMessage("updated", id), nil)
}

func (s *Server) deleteTransaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.svc.Ledger.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, idMessage("deleted", id), nil)
}

func (s *Server) currentInventory(c *gin.Context) {
	inv, err := s.svc.Report.Inventory(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", toSnapshotResponse(inv))
}

func (s *Server) calculateCarryover(c *gin.Context) {
	start, ok := requiredDate(c, "startDate")
	if !ok {
		return
	}
	carry, err := s.svc.Report.Carryover(c.Request.Context(), start)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", toSnapshotResponse(carry))
}

func (s *Server) exportCSV(c *gin.Context) {
	var start *civil.Date
	if raw := c.Query("startDate"); raw != "" {
		d, err := utils.ParseDate(raw)
		if err != nil {
			badRequest(c, "startDate: "+err.Error())
			return
		}
		start = &d
	}

	var buf bytes.Buffer
	if _, err := s.svc.Snapshot.Export(c.Request.Context(), &buf, start); err != nil {
		fail(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="denominations.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (s *Server) monthlyReport(c *gin.Context) {
	year, month, err := utils.ParseYearMonth(c.Query("year"), c.Query("month"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	st, err := s.svc.Report.Month(c.Request.Context(), year, month)
	if err != nil {
		fail(c, err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteMonthlyWorkbook(&buf, st); err != nil {
		fail(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="kinko_%s.xlsx"`, report.SheetName(st)))
	c.Data(http.StatusOK, report.ContentType, buf.Bytes())
}

// importCSV stores the upload in a temp file, imports it and removes the
// file whatever the outcome.
func (s *Server) importCSV(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes())

	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "a CSV file is required in the 'file' field")
		return
	}

	opts := service.ImportOptions{}
	switch mode := strings.ToLower(c.DefaultPostForm("mode", "append")); mode {
	case "append":
	case "replace":
		opts.Replace = true
	default:
		badRequest(c, fmt.Sprintf("unknown import mode '%s' (use append or replace)", mode))
		return
	}
	if raw := c.PostForm("confirm"); raw != "" {
		confirmed, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, "confirm must be true or false")
			return
		}
		opts.Confirmed = confirmed
	}

	tmp, err := os.CreateTemp(s.uploadDir, "kinko-import-*.csv")
	if err != nil {
		fail(c, fmt.Errorf("failed to create temp file: %w", err))
		return
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer func() {
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			log := logger.FromContextOr(c.Request.Context(), s.log)
			log.Warn().Err(err).
				Str("path", tmpPath).Msg("failed to remove uploaded file")
		}
	}()

	if err := c.SaveUploadedFile(fh, tmpPath); err != nil {
		fail(c, fmt.Errorf("failed to store upload: %w", err))
		return
	}

	f, err := os.Open(filepath.Clean(tmpPath))
	if err != nil {
		fail(c, fmt.Errorf("failed to open upload: %w", err))
		return
	}
	defer f.Close()

	res, err := s.svc.Snapshot.Import(c.Request.Context(), f, opts)
	if err != nil {
		fail(c, err)
		return
	}

	msg := fmt.Sprintf("imported %d transactions", res.Imported)
	if res.Replaced {
		msg += " (ledger replaced)"
	}
	respond(c, http.StatusOK, msg, res)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, fmt.Sprintf("invalid transaction id '%s'", c.Param("id")))
		return 0, false
	}
	return id, true
}

func requiredDate(c *gin.Context, name string) (civil.Date, bool) {
	raw := c.Query(name)
	if raw == "" {
		badRequest(c, name+" is required")
		return civil.Date{}, false
	}
	d, err := utils.ParseDate(raw)
	if err != nil {
		badRequest(c, name+": "+err.Error())
		return civil.Date{}, false
	}
	return d, true
}
