package utils

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
)

func TestParseDate(t *testing.T) {
	want := civil.Date{Year: 2025, Month: 4, Day: 1}
	for _, in := range []string{"2025-04-01", "2025/04/01", "2025/4/1", " 2025-4-01 ", "2025-04-01T00:00:00.000Z"} {
		got, err := ParseDate(in)
		if err != nil {
			t.Errorf("ParseDate(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}

	for _, in := range []string{"", "2025-04", "2025-02-30", "2025-13-01", "april 1"} {
		if _, err := ParseDate(in); err == nil {
			t.Errorf("ParseDate(%q): expected error", in)
		}
	}
}

func TestParseYearMonth(t *testing.T) {
	y, m, err := ParseYearMonth("2025", "02")
	if err != nil || y != 2025 || m != time.February {
		t.Fatalf("got %d %v %v", y, m, err)
	}
	for _, tc := range [][2]string{{"", "1"}, {"2025", "0"}, {"2025", "13"}, {"x", "1"}} {
		if _, _, err := ParseYearMonth(tc[0], tc[1]); err == nil {
			t.Errorf("ParseYearMonth(%q, %q): expected error", tc[0], tc[1])
		}
	}
}
