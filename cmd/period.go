package cmd

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/hance08/kinko/internal/balance"
	"github.com/hance08/kinko/internal/utils"
)

// parsePeriod turns the --from/--to/--month flags into a statement range.
// --month cannot be combined with the other two.
func parsePeriod(from, to, month string) (civil.Date, *civil.Date, error) {
	if month != "" {
		if from != "" || to != "" {
			return civil.Date{}, nil, fmt.Errorf("--month cannot be combined with --from or --to")
		}
		year, m, err := parseMonth(month)
		if err != nil {
			return civil.Date{}, nil, err
		}
		first, last := balance.MonthBounds(year, m)
		return first, &last, nil
	}

	var start civil.Date
	if from != "" {
		d, err := utils.ParseDate(from)
		if err != nil {
			return civil.Date{}, nil, fmt.Errorf("--from: %w", err)
		}
		start = d
	}

	var end *civil.Date
	if to != "" {
		d, err := utils.ParseDate(to)
		if err != nil {
			return civil.Date{}, nil, fmt.Errorf("--to: %w", err)
		}
		end = &d
	}

	if end != nil && !start.IsZero() && end.Before(start) {
		return civil.Date{}, nil, fmt.Errorf("--to %s is before --from %s", end, start)
	}
	return start, end, nil
}

// parseMonth reads YYYY-MM or YYYY/MM.
func parseMonth(s string) (int, time.Month, error) {
	year, month, ok := strings.Cut(strings.ReplaceAll(strings.TrimSpace(s), "/", "-"), "-")
	if !ok {
		return 0, 0, fmt.Errorf("invalid month '%s' (use YYYY-MM)", s)
	}
	return utils.ParseYearMonth(year, month)
}
