package utils

import (
	"errors"
	"testing"
)

func TestFormatYen(t *testing.T) {
	cases := map[int64]string{
		0:       "¥0",
		12000:   "¥12,000",
		-300:    "¥-300",
		1234567: "¥1,234,567",
	}
	for in, want := range cases {
		if got := FormatYen(in); got != want {
			t.Errorf("FormatYen(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestParseYen(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12000", 12000, true},
		{"12,000", 12000, true},
		{"¥1,500", 1500, true},
		{"-300", -300, true},
		{"1.0", 1, true},
		{"1.5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseYen(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("ParseYen(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Errorf("ParseYen(%q) expected error, got %d", tc.in, got)
		}
	}

	if _, err := ParseYen("10.25"); !errors.Is(err, ErrFractionalAmount) {
		t.Errorf("expected ErrFractionalAmount, got %v", err)
	}
}
