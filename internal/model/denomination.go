package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hance08/kinko/internal/constants"
)

// Counts holds one number per denomination, in constants.Denominations order.
type Counts [constants.NumDenominations]int64

// Total is the face value of the counted notes and coins.
func (c Counts) Total() int64 {
	var total int64
	for i, d := range constants.Denominations {
		total += c[i] * d.Value
	}
	return total
}

func (c Counts) Add(o Counts) Counts {
	for i := range c {
		c[i] += o[i]
	}
	return c
}

func (c Counts) Scale(k int64) Counts {
	for i := range c {
		c[i] *= k
	}
	return c
}

// FirstNegative returns the index of the first negative count, or -1.
func (c Counts) FirstNegative() int {
	for i, n := range c {
		if n < 0 {
			return i
		}
	}
	return -1
}

func (c Counts) IsZero() bool {
	return c == Counts{}
}

// ParseCounts reads a "10000=1,1000=2" style list. Keys may be face values
// or denomination names.
func ParseCounts(s string) (Counts, error) {
	var c Counts
	s = strings.TrimSpace(s)
	if s == "" {
		return c, nil
	}

	for _, part := range strings.Split(s, ",") {
		key, val, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return c, fmt.Errorf("invalid count '%s' (use value=count, e.g. 1000=2)", part)
		}
		key = strings.TrimSpace(key)

		idx := constants.DenominationIndex(key)
		if idx < 0 {
			v, err := strconv.ParseInt(key, 10, 64)
			if err != nil {
				return c, fmt.Errorf("unknown denomination '%s'", key)
			}
			idx = constants.DenominationIndexByValue(v)
			if idx < 0 {
				return c, fmt.Errorf("unknown denomination '%s'", key)
			}
		}

		n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return c, fmt.Errorf("invalid count for %s: %s", key, val)
		}
		c[idx] += n
	}

	return c, nil
}

func (c Counts) String() string {
	var parts []string
	for i, d := range constants.Denominations {
		if c[i] != 0 {
			parts = append(parts, fmt.Sprintf("%d=%d", d.Value, c[i]))
		}
	}
	return strings.Join(parts, ",")
}
