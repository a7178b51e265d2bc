package constants

const (
	// Transaction types as stored
	TypeDeposit    = "deposit"
	TypeWithdrawal = "withdrawal"

	// Labels used by the paper ledger and the CSV layout
	LabelDeposit    = "入金"
	LabelWithdrawal = "出金"
	LabelCarryover  = "繰越"

	// Date Layout
	DateFormat    = "2006-01-02"
	CSVDateFormat = "2006/01/02"
	MonthFormat   = "2006-01"

	CarryoverMarkerID = -1
)

const (
	MaxTextLen = 255
)

var Summaries = []string{
	"交通費",
	"支払",
	"その他",
	"立替",
	"仮払",
	"仮払清算",
	"小口入金",
	"両替",
	"調整",
}
