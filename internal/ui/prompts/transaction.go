package prompts

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/huh"
	"github.com/hance08/kinko/internal/constants"
	"github.com/hance08/kinko/internal/model"
	"github.com/hance08/kinko/internal/utils"
	"github.com/hance08/kinko/internal/validation"
)

const (
	EditBasic = "Basic info (type, amount, summary, recipient, memo)"
	EditFull  = "Everything (date and denomination counts too)"
	EditAbort = "Cancel"
)

var timeNow = time.Now

// entryForm holds the raw text of the transaction form.
type entryForm struct {
	Date      string
	Type      model.TransactionType
	Amount    string
	Summary   string
	Recipient string
	Memo      string
	Counts    [constants.NumDenominations]string
}

func newEntryForm(def model.Entry) *entryForm {
	f := &entryForm{
		Type:      def.Type,
		Summary:   def.Summary,
		Recipient: def.Recipient,
		Memo:      def.Memo,
	}
	if f.Type == "" {
		f.Type = model.Withdrawal
	}
	if def.Date.IsValid() {
		f.Date = def.Date.String()
	}
	if def.Amount > 0 {
		f.Amount = strconv.FormatInt(def.Amount, 10)
	}
	for i, n := range def.Counts {
		if n != 0 {
			f.Counts[i] = strconv.FormatInt(n, 10)
		}
	}
	return f
}

func (f *entryForm) entry() (model.Entry, error) {
	var e model.Entry

	date, err := utils.ParseDate(f.Date)
	if err != nil {
		return e, err
	}
	amount, err := utils.ParseYen(f.Amount)
	if err != nil {
		return e, err
	}

	e.Date = date
	e.Type = f.Type
	e.Amount = amount
	e.Summary = strings.TrimSpace(f.Summary)
	e.Recipient = strings.TrimSpace(f.Recipient)
	e.Memo = strings.TrimSpace(f.Memo)

	for i, s := range f.Counts {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return e, fmt.Errorf("invalid count for %s: %s", utils.FormatYen(constants.Denominations[i].Value), s)
		}
		e.Counts[i] = n
	}

	return e, nil
}

// PromptEntry runs the full transaction form, prefilled from def. A zero def
// date is shown as today.
func PromptEntry(title string, def model.Entry) (model.Entry, error) {
	if !def.Date.IsValid() {
		def.Date = civil.DateOf(timeNow())
	}
	f := newEntryForm(def)

	basic := huh.NewGroup(append([]huh.Field{
		huh.NewNote().Title(title),
		huh.NewInput().
			Title("Date (YYYY-MM-DD)").
			Value(&f.Date).
			Validate(validation.ValidateDateInput),
	}, basicFields(f)...)...)

	countFields := []huh.Field{
		huh.NewNote().
			Title("Denomination counts").
			Description("Notes and coins that moved. The total must equal the amount."),
	}
	for i, d := range constants.Denominations {
		countFields = append(countFields, huh.NewInput().
			Title(utils.FormatYen(d.Value)).
			Inline(true).
			Placeholder("0").
			Value(&f.Counts[i]).
			Validate(validation.ValidateCountInput))
	}

	form := huh.NewForm(basic, huh.NewGroup(countFields...))
	if err := form.Run(); err != nil {
		return model.Entry{}, err
	}

	return f.entry()
}

// PromptBasic runs the form without the date and count fields. The returned
// entry keeps def's date and counts.
func PromptBasic(title string, def model.Entry) (model.Entry, error) {
	f := newEntryForm(def)

	fields := append([]huh.Field{huh.NewNote().Title(title)}, basicFields(f)...)
	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return model.Entry{}, err
	}

	e, err := f.entry()
	if err != nil {
		return model.Entry{}, err
	}
	e.Counts = def.Counts
	return e, nil
}

// PromptEditMode asks how much of a transaction to edit.
func PromptEditMode() (string, error) {
	return PromptSelect("What would you like to edit?", []string{EditBasic, EditFull, EditAbort}, EditBasic)
}

func basicFields(f *entryForm) []huh.Field {
	return []huh.Field{
		huh.NewSelect[model.TransactionType]().
			Title("Type").
			Options(
				huh.NewOption(constants.LabelDeposit+" (deposit)", model.Deposit),
				huh.NewOption(constants.LabelWithdrawal+" (withdrawal)", model.Withdrawal),
			).
			Value(&f.Type),
		huh.NewInput().
			Title("Amount").
			Description("Whole yen, no fractions (e.g. 1500 or 1,500)").
			Value(&f.Amount).
			Validate(validation.ValidateAmountInput),
		huh.NewSelect[string]().
			Title("Summary").
			Options(huh.NewOptions(summaryOptions(f.Summary)...)...).
			Value(&f.Summary),
		huh.NewInput().
			Title("Recipient").
			CharLimit(constants.MaxTextLen).
			Value(&f.Recipient),
		huh.NewText().
			Title("Memo (optional)").
			CharLimit(constants.MaxTextLen).
			Value(&f.Memo),
	}
}

// summaryOptions lists the fixed summaries, keeping a custom current value.
func summaryOptions(current string) []string {
	opts := append([]string(nil), constants.Summaries...)
	if current == "" {
		return opts
	}
	for _, s := range opts {
		if s == current {
			return opts
		}
	}
	return append([]string{current}, opts...)
}
