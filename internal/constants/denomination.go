package constants

// Face values of the yen notes and coins kept in the box, in descending order.
// The order is part of the CSV layout and must not change.
const (
	TenThousandYen  = 10000
	FiveThousandYen = 5000
	OneThousandYen  = 1000
	FiveHundredYen  = 500
	OneHundredYen   = 100
	FiftyYen        = 50
	TenYen          = 10
	FiveYen         = 5
	OneYen          = 1
)

const NumDenominations = 9

type Denomination struct {
	Value int64
	Key   string // JSON/CSV field name
	Label string // short label used on the printed ledger
}

var Denominations = [NumDenominations]Denomination{
	{TenThousandYen, "TenThousandYen", "万"},
	{FiveThousandYen, "FiveThousandYen", "5千"},
	{OneThousandYen, "OneThousandYen", "千"},
	{FiveHundredYen, "FiveHundredYen", "5百"},
	{OneHundredYen, "OneHundredYen", "百"},
	{FiftyYen, "FiftyYen", "5十"},
	{TenYen, "TenYen", "十"},
	{FiveYen, "FiveYen", "5"},
	{OneYen, "OneYen", "1"},
}

// DenominationIndex returns the slot of a face value or JSON key, or -1.
func DenominationIndex(s string) int {
	for i, d := range Denominations {
		if d.Key == s || d.Label == s {
			return i
		}
	}
	return -1
}

// DenominationIndexByValue returns the slot of a face value, or -1.
func DenominationIndexByValue(v int64) int {
	for i, d := range Denominations {
		if d.Value == v {
			return i
		}
	}
	return -1
}
