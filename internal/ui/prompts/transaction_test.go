package prompts

import (
	"strings"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/hance08/kinko/internal/constants"
	"github.com/hance08/kinko/internal/model"
)

func TestEntryFormRoundTrip(t *testing.T) {
	var counts model.Counts
	counts[constants.DenominationIndexByValue(1000)] = 1
	counts[constants.DenominationIndexByValue(500)] = 1

	def := model.Entry{
		Transaction: model.Transaction{
			Date:      civil.Date{Year: 2024, Month: 4, Day: 30},
			Type:      model.Deposit,
			Amount:    1500,
			Summary:   "小口入金",
			Recipient: "本社",
			Memo:      " replenish ",
		},
		Counts: counts,
	}

	got, err := newEntryForm(def).entry()
	if err != nil {
		t.Fatalf("entry: %v", err)
	}

	if got.Date != def.Date || got.Type != def.Type || got.Amount != def.Amount {
		t.Errorf("got %+v, want %+v", got.Transaction, def.Transaction)
	}
	if got.Memo != "replenish" {
		t.Errorf("memo = %q, want trimmed", got.Memo)
	}
	if got.Counts != counts {
		t.Errorf("counts = %v, want %v", got.Counts, counts)
	}
}

func TestEntryFormDefaults(t *testing.T) {
	f := newEntryForm(model.Entry{})
	if f.Type != model.Withdrawal {
		t.Errorf("default type = %q, want withdrawal", f.Type)
	}
	if f.Date != "" || f.Amount != "" {
		t.Errorf("zero entry should leave date and amount blank, got %q %q", f.Date, f.Amount)
	}
}

func TestEntryFormErrors(t *testing.T) {
	tests := []struct {
		name    string
		form    entryForm
		wantErr string
	}{
		{"bad date", entryForm{Date: "2024-13-01", Amount: "100"}, "date"},
		{"fraction", entryForm{Date: "2024-04-01", Amount: "10.5"}, "whole number"},
		{"bad count", entryForm{Date: "2024-04-01", Amount: "100", Counts: [constants.NumDenominations]string{4: "x"}}, "¥100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.form.entry()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestSummaryOptions(t *testing.T) {
	if got := summaryOptions(""); len(got) != len(constants.Summaries) {
		t.Errorf("empty current: got %d options", len(got))
	}
	if got := summaryOptions("支払"); len(got) != len(constants.Summaries) {
		t.Errorf("known current should not be added, got %d options", len(got))
	}
	got := summaryOptions("文具")
	if len(got) != len(constants.Summaries)+1 || got[0] != "文具" {
		t.Errorf("custom current should lead the list, got %v", got)
	}
}
