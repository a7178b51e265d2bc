package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var ErrFractionalAmount = errors.New("amount must be a whole number of yen")

func FormatYen(yen int64) string {
	return "¥" + humanize.Comma(yen)
}

// ParseYen parses an integer yen amount. Thousands separators and a leading
// '¥' are tolerated; anything with a fractional part is rejected.
func ParseYen(amountStr string) (int64, error) {
	s := strings.TrimSpace(amountStr)
	s = strings.TrimPrefix(s, "¥")
	s = strings.TrimPrefix(s, "￥")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("amount is empty")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount: %s", amountStr)
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("%w: %s", ErrFractionalAmount, amountStr)
	}
	if !d.Equal(decimal.NewFromInt(d.IntPart())) {
		return 0, fmt.Errorf("amount out of range: %s", amountStr)
	}

	return d.IntPart(), nil
}
