package cmd

import (
	"testing"

	"cloud.google.com/go/civil"
)

func TestParsePeriod(t *testing.T) {
	apr1 := civil.Date{Year: 2024, Month: 4, Day: 1}
	apr30 := civil.Date{Year: 2024, Month: 4, Day: 30}
	feb29 := civil.Date{Year: 2024, Month: 2, Day: 29}

	tests := []struct {
		name            string
		from, to, month string
		wantStart       civil.Date
		wantEnd         *civil.Date
		wantErr         bool
	}{
		{name: "whole ledger"},
		{name: "month", month: "2024-04", wantStart: apr1, wantEnd: &apr30},
		{name: "month with slash", month: "2024/02", wantStart: civil.Date{Year: 2024, Month: 2, Day: 1}, wantEnd: &feb29},
		{name: "from only", from: "2024-04-01", wantStart: apr1},
		{name: "to only", to: "2024/04/30", wantEnd: &apr30},
		{name: "range", from: "2024-04-01", to: "2024-04-30", wantStart: apr1, wantEnd: &apr30},
		{name: "reversed", from: "2024-04-30", to: "2024-04-01", wantErr: true},
		{name: "month and from", from: "2024-04-01", month: "2024-04", wantErr: true},
		{name: "bad month", month: "2024-13", wantErr: true},
		{name: "month without dash", month: "202404", wantErr: true},
		{name: "bad from", from: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := parsePeriod(tt.from, tt.to, tt.month)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if start != tt.wantStart {
				t.Errorf("start = %v, want %v", start, tt.wantStart)
			}
			if (end == nil) != (tt.wantEnd == nil) || (end != nil && *end != *tt.wantEnd) {
				t.Errorf("end = %v, want %v", end, tt.wantEnd)
			}
		})
	}
}

func TestPeriodTitle(t *testing.T) {
	apr1 := civil.Date{Year: 2024, Month: 4, Day: 1}
	apr30 := civil.Date{Year: 2024, Month: 4, Day: 30}

	cases := []struct {
		start civil.Date
		end   *civil.Date
		want  string
	}{
		{civil.Date{}, nil, "Ledger"},
		{civil.Date{}, &apr30, "Ledger up to 2024-04-30"},
		{apr1, nil, "Ledger from 2024-04-01"},
		{apr1, &apr30, "Ledger 2024-04-01 to 2024-04-30"},
	}
	for _, c := range cases {
		if got := periodTitle(c.start, c.end); got != c.want {
			t.Errorf("periodTitle = %q, want %q", got, c.want)
		}
	}
}
