package server

import (
	"encoding/json"
	"fmt"

	"github.com/hance08/kinko/internal/balance"
	"github.com/hance08/kinko/internal/model"
	"github.com/hance08/kinko/internal/service"
	"github.com/hance08/kinko/internal/utils"
	"github.com/hance08/kinko/internal/validation"
)

// denominationFields carries the nine counts as top level JSON keys.
type denominationFields struct {
	TenThousandYen  int64 `json:"TenThousandYen"`
	FiveThousandYen int64 `json:"FiveThousandYen"`
	OneThousandYen  int64 `json:"OneThousandYen"`
	FiveHundredYen  int64 `json:"FiveHundredYen"`
	OneHundredYen   int64 `json:"OneHundredYen"`
	FiftyYen        int64 `json:"FiftyYen"`
	TenYen          int64 `json:"TenYen"`
	FiveYen         int64 `json:"FiveYen"`
	OneYen          int64 `json:"OneYen"`
}

func fromCounts(c model.Counts) denominationFields {
	return denominationFields{c[0], c[1], c[2], c[3], c[4], c[5], c[6], c[7], c[8]}
}

func (d denominationFields) counts() model.Counts {
	return model.Counts{
		d.TenThousandYen, d.FiveThousandYen, d.OneThousandYen,
		d.FiveHundredYen, d.OneHundredYen, d.FiftyYen,
		d.TenYen, d.FiveYen, d.OneYen,
	}
}

// basicRequest is the body of a field only edit.
type basicRequest struct {
	TransactionType string      `json:"TransactionType"`
	Amount          json.Number `json:"Amount"`
	Summary         string      `json:"Summary"`
	Recipient       string      `json:"Recipient"`
	Memo            string      `json:"Memo"`
}

func (r basicRequest) toUpdate() (service.BasicUpdate, error) {
	typ, err := model.ParseTransactionType(r.TransactionType)
	if err != nil {
		return service.BasicUpdate{}, &validation.ValidationError{Field: "TransactionType", Message: err.Error()}
	}
	amount, err := parseAmount(r.Amount)
	if err != nil {
		return service.BasicUpdate{}, err
	}
	return service.BasicUpdate{
		Type:      typ,
		Amount:    amount,
		Summary:   r.Summary,
		Recipient: r.Recipient,
		Memo:      r.Memo,
	}, nil
}

// transactionRequest is the body of create and full update.
type transactionRequest struct {
	TransactionDate string `json:"TransactionDate"`
	basicRequest
	denominationFields
}

func (r transactionRequest) toEntry() (model.Transaction, model.Counts, error) {
	date, err := utils.ParseDate(r.TransactionDate)
	if err != nil {
		return model.Transaction{}, model.Counts{}, &validation.ValidationError{Field: "TransactionDate", Message: err.Error()}
	}
	basic, err := r.basicRequest.toUpdate()
	if err != nil {
		return model.Transaction{}, model.Counts{}, err
	}
	tx := model.Transaction{
		Date:      date,
		Type:      basic.Type,
		Amount:    basic.Amount,
		Summary:   basic.Summary,
		Recipient: basic.Recipient,
		Memo:      basic.Memo,
	}
	return tx, r.denominationFields.counts(), nil
}

func parseAmount(n json.Number) (int64, error) {
	if n == "" {
		return 0, &validation.ValidationError{Field: "Amount", Message: "amount is required"}
	}
	amount, err := utils.ParseYen(n.String())
	if err != nil {
		return 0, &validation.ValidationError{Field: "Amount", Message: err.Error()}
	}
	return amount, nil
}

type transactionResponse struct {
	ID              int64  `json:"Id"`
	TransactionDate string `json:"TransactionDate"`
	TransactionType string `json:"TransactionType"`
	Direction       string `json:"Direction"`
	Amount          int64  `json:"Amount"`
	Summary         string `json:"Summary"`
	Recipient       string `json:"Recipient"`
	Memo            string `json:"Memo"`
	denominationFields
}

func toTransactionResponse(e model.Entry) transactionResponse {
	return transactionResponse{
		ID:                 e.ID,
		TransactionDate:    e.Date.String(),
		TransactionType:    e.Type.Label(),
		Direction:          string(e.Type),
		Amount:             e.Amount,
		Summary:            e.Summary,
		Recipient:          e.Recipient,
		Memo:               e.Memo,
		denominationFields: fromCounts(e.Counts),
	}
}

type rowResponse struct {
	transactionResponse
	Delta          int64              `json:"Delta"`
	RunningBalance int64              `json:"RunningBalance"`
	Inventory      denominationFields `json:"Inventory"`
}

type snapshotResponse struct {
	RunningBalance int64 `json:"RunningBalance"`
	CashTotal      int64 `json:"CashTotal"`
	denominationFields
}

func toSnapshotResponse(s balance.Snapshot) snapshotResponse {
	return snapshotResponse{
		RunningBalance:     s.Balance,
		CashTotal:          s.CashTotal(),
		denominationFields: fromCounts(s.Counts),
	}
}

type historyResponse struct {
	StartDate    string           `json:"startDate,omitempty"`
	EndDate      string           `json:"endDate,omitempty"`
	Carryover    snapshotResponse `json:"carryover"`
	Transactions []rowResponse    `json:"transactions"`
	Closing      snapshotResponse `json:"closing"`
	Deposits     int64            `json:"totalDeposits"`
	Withdrawals  int64            `json:"totalWithdrawals"`
}

func toHistoryResponse(st *balance.Statement) historyResponse {
	h := historyResponse{
		Carryover:    toSnapshotResponse(st.Opening),
		Transactions: make([]rowResponse, 0, len(st.Rows)),
		Closing:      toSnapshotResponse(st.Closing),
		Deposits:     st.Deposits,
		Withdrawals:  st.Withdrawals,
	}
	if !st.Start.IsZero() {
		h.StartDate = st.Start.String()
	}
	if !st.End.IsZero() {
		h.EndDate = st.End.String()
	}
	for _, r := range st.Rows {
		h.Transactions = append(h.Transactions, rowResponse{
			transactionResponse: toTransactionResponse(r.Entry),
			Delta:               r.Delta,
			RunningBalance:      r.RunningBalance,
			Inventory:           fromCounts(r.Inventory),
		})
	}
	return h
}

func idMessage(action string, id int64) string {
	return fmt.Sprintf("transaction %d %s", id, action)
}
