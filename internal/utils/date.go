package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// ParseDate reads a calendar date written as YYYY-MM-DD or YYYY/MM/DD, with
// or without zero padding. A trailing time of day ("2025-04-01T00:00:00Z")
// is ignored.
func ParseDate(s string) (civil.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return civil.Date{}, fmt.Errorf("date is required")
	}
	if i := strings.IndexAny(s, "T "); i > 0 {
		s = s[:i]
	}

	parts := strings.Split(strings.ReplaceAll(s, "/", "-"), "-")
	if len(parts) != 3 {
		return civil.Date{}, fmt.Errorf("invalid date '%s' (use YYYY-MM-DD)", s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return civil.Date{}, fmt.Errorf("invalid date '%s' (use YYYY-MM-DD)", s)
		}
		nums[i] = n
	}

	d := civil.Date{Year: nums[0], Month: time.Month(nums[1]), Day: nums[2]}
	if !d.IsValid() {
		return civil.Date{}, fmt.Errorf("invalid date '%s'", s)
	}
	return d, nil
}

// ParseYearMonth reads a year and month given as separate strings.
func ParseYearMonth(year, month string) (int, time.Month, error) {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil || y < 1 || y > 9999 {
		return 0, 0, fmt.Errorf("invalid year '%s'", year)
	}
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil || m < 1 || m > 12 {
		return 0, 0, fmt.Errorf("invalid month '%s'", month)
	}
	return y, time.Month(m), nil
}
