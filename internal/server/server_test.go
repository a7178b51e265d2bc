package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hance08/kinko/internal/config"
	"github.com/hance08/kinko/internal/ledgercsv"
	"github.com/hance08/kinko/internal/logger"
	"github.com/hance08/kinko/internal/report"
	"github.com/hance08/kinko/internal/service"
	"github.com/hance08/kinko/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	srv       *Server
	uploadDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	repo, err := store.NewStore(filepath.Join(t.TempDir(), "kinko.db"), os.DirFS("../.."))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	cfg := config.NewDefault()
	cfg.Server.AllowedOrigins = []string{"http://localhost:3000"}
	uploadDir := t.TempDir()
	svc := service.NewService(repo, cfg, logger.Nop())
	return &testServer{
		srv:       New(svc, cfg, logger.Nop(), WithUploadDir(uploadDir)),
		uploadDir: uploadDir,
	}
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON %q: %v", rr.Body.String(), err)
	}
	return out
}

const depositBody = `{
	"TransactionDate": "2025-04-01",
	"TransactionType": "入金",
	"Amount": 12000,
	"Summary": "小口入金",
	"Recipient": "本社",
	"TenThousandYen": 1,
	"OneThousandYen": 2
}`

func TestHealthAndRequestID(t *testing.T) {
	ts := newTestServer(t)
	rr := ts.do(t, http.MethodGet, "/healthz", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("healthz status=%d", rr.Code)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing X-Request-ID header")
	}
}

func TestHistoryRequiresStartDate(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{
		"/api/transaction-history",
		"/api/calculate-carryover",
		"/api/transaction-history?startDate=2025-13-01",
		"/api/monthly-history?year=2025&month=13",
		"/api/monthly-report?year=2025",
	} {
		rr := ts.do(t, http.MethodGet, path, "")
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, rr.Code)
			continue
		}
		if body := decode(t, rr); body["success"] != false || body["error"] == "" {
			t.Errorf("%s: unexpected body %v", path, body)
		}
	}
}

func TestTransactionLifecycle(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.do(t, http.MethodPost, "/api/insert-transaction", depositBody)
	if rr.Code != http.StatusCreated {
		t.Fatalf("insert: expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	id := decode(t, rr)["data"].(map[string]any)["id"].(float64)
	if id != 1 {
		t.Fatalf("id = %v, want 1", id)
	}

	rr = ts.do(t, http.MethodGet, "/api/transactions/1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rr.Code)
	}
	data := decode(t, rr)["data"].(map[string]any)
	if data["TransactionType"] != "入金" || data["Amount"].(float64) != 12000 || data["OneThousandYen"].(float64) != 2 {
		t.Fatalf("unexpected transaction: %v", data)
	}

	withdrawal := `{"TransactionDate":"2025-04-02","TransactionType":"出金","Amount":-1000,"Summary":"交通費","OneThousandYen":1}`
	rr = ts.do(t, http.MethodPost, "/api/insert-transaction", withdrawal)
	if rr.Code != http.StatusCreated {
		t.Fatalf("insert withdrawal: expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = ts.do(t, http.MethodGet, "/api/transaction-history?startDate=2025-04-02", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("history: expected 200, got %d", rr.Code)
	}
	hist := decode(t, rr)["data"].(map[string]any)
	if hist["carryover"].(map[string]any)["RunningBalance"].(float64) != 12000 {
		t.Fatalf("unexpected carryover: %v", hist["carryover"])
	}
	rows := hist["transactions"].([]any)
	if len(rows) != 1 || rows[0].(map[string]any)["RunningBalance"].(float64) != 11000 {
		t.Fatalf("unexpected rows: %v", rows)
	}

	rr = ts.do(t, http.MethodGet, "/api/current-inventory", "")
	inv := decode(t, rr)["data"].(map[string]any)
	if inv["RunningBalance"].(float64) != 11000 || inv["OneThousandYen"].(float64) != 1 {
		t.Fatalf("unexpected inventory: %v", inv)
	}

	update := `{"TransactionDate":"2025-04-02","TransactionType":"出金","Amount":1500,"Summary":"交通費","OneThousandYen":1,"FiveHundredYen":1}`
	rr = ts.do(t, http.MethodPut, "/api/update-transaction-and-denomination/2", update)
	if rr.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = ts.do(t, http.MethodPut, "/api/transactions/2", `{"TransactionType":"出金","Amount":1600,"Summary":"x"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("basic update with mismatching amount: expected 400, got %d", rr.Code)
	}
	rr = ts.do(t, http.MethodPut, "/api/transactions/2", `{"TransactionType":"出金","Amount":1500,"Summary":"支払"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("basic update: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = ts.do(t, http.MethodDelete, "/api/transactions/2", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rr.Code)
	}
	rr = ts.do(t, http.MethodDelete, "/api/transactions/2", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", rr.Code)
	}
}

func TestStatusMapping(t *testing.T) {
	ts := newTestServer(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"mismatch", http.MethodPost, "/api/insert-transaction", strings.Replace(depositBody, "12000", "12500", 1), http.StatusBadRequest},
		{"fractional amount", http.MethodPost, "/api/insert-transaction", strings.Replace(depositBody, "12000", "12000.5", 1), http.StatusBadRequest},
		{"unknown type", http.MethodPost, "/api/insert-transaction", strings.Replace(depositBody, "入金", "返金", 1), http.StatusBadRequest},
		{"missing date", http.MethodPost, "/api/insert-transaction", strings.Replace(depositBody, "2025-04-01", "", 1), http.StatusBadRequest},
		{"malformed body", http.MethodPost, "/api/insert-transaction", "{", http.StatusBadRequest},
		{"get missing", http.MethodGet, "/api/transactions/99", "", http.StatusNotFound},
		{"update missing", http.MethodPut, "/api/update-transaction-and-denomination/99", depositBody, http.StatusNotFound},
		{"bad id", http.MethodGet, "/api/transactions/abc", "", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := ts.do(t, tc.method, tc.path, tc.body)
			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestExportCSV(t *testing.T) {
	ts := newTestServer(t)
	if rr := ts.do(t, http.MethodPost, "/api/insert-transaction", depositBody); rr.Code != http.StatusCreated {
		t.Fatalf("insert: %d", rr.Code)
	}

	rr := ts.do(t, http.MethodGet, "/api/export-denominations", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("export: expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type = %s", ct)
	}
	body := rr.Body.String()
	if !strings.HasPrefix(body, ledgercsv.BOM+"TransactionId,TransactionDate") {
		t.Fatalf("missing BOM/header: %q", body)
	}
	if !strings.Contains(body, "1,2025/04/01,入金,12000,小口入金,本社,,1,0,2,0,0,0,0,0,0") {
		t.Fatalf("missing row: %q", body)
	}

	rr = ts.do(t, http.MethodGet, "/api/export-denominations?startDate=2025-05-01", "")
	if !strings.Contains(rr.Body.String(), "-1,2025/05/01,繰越,12000,") {
		t.Fatalf("missing carryover row: %q", rr.Body.String())
	}
}

func TestMonthlyReport(t *testing.T) {
	ts := newTestServer(t)
	rr := ts.do(t, http.MethodGet, "/api/monthly-report?year=2025&month=4", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != report.ContentType {
		t.Fatalf("content type = %s", ct)
	}
	if !bytes.HasPrefix(rr.Body.Bytes(), []byte("PK")) {
		t.Fatalf("body is not a zip container")
	}
}

func multipartImport(t *testing.T, content string, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "denominations.csv")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write: %v", err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/import-csv", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func (ts *testServer) assertUploadDirEmpty(t *testing.T) {
	t.Helper()
	left, err := os.ReadDir(ts.uploadDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(left) != 0 {
		t.Fatalf("uploaded files left behind: %v", left)
	}
}

func TestImportCSV(t *testing.T) {
	ts := newTestServer(t)
	header := strings.Join(ledgercsv.Header(), ",") + "\n"
	good := header + "1,2025/05/01,入金,500,,,,0,0,0,1,0,0,0,0,0\n"
	bad := header + "1,2025/05/01,入金,700,,,,0,0,0,1,0,0,0,0,0\n"

	rr := httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(rr, multipartImport(t, bad, nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad file: expected 400, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "line 2") {
		t.Fatalf("error should name the line: %s", rr.Body.String())
	}
	ts.assertUploadDirEmpty(t)

	rr = httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(rr, multipartImport(t, good, map[string]string{"mode": "replace"}))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unconfirmed replace: expected 400, got %d", rr.Code)
	}
	ts.assertUploadDirEmpty(t)

	rr = httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(rr, multipartImport(t, good, map[string]string{"mode": "replace", "confirm": "true"}))
	if rr.Code != http.StatusOK {
		t.Fatalf("confirmed replace: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	data := decode(t, rr)["data"].(map[string]any)
	if data["imported"].(float64) != 1 || data["replaced"] != true {
		t.Fatalf("unexpected result: %v", data)
	}
	ts.assertUploadDirEmpty(t)

	rr = httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(rr, multipartImport(t, good, map[string]string{"mode": "merge"}))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unknown mode: expected 400, got %d", rr.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/import-csv", strings.NewReader(""))
	rr = httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("missing file: expected 400, got %d", rr.Code)
	}
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/current-inventory", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("preflight: expected 204, got %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("allow origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://evil.example")
	rr = httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(rr, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow origin for foreign site: %q", got)
	}
}
