// Package report renders ledger statements as XLSX workbooks.
package report

import (
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/civil"
	"github.com/hance08/kinko/internal/balance"
	"github.com/hance08/kinko/internal/constants"
	"github.com/hance08/kinko/internal/model"
	"github.com/hance08/kinko/internal/utils"
	"github.com/xuri/excelize/v2"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	titleRow  = 1
	headerRow = 3
)

// Columns before the denomination counts.
var fixedColumns = []string{"日付", "区分", "入金", "出金", "残高", "摘要", "相手先", "備考"}

// Header returns the column titles of the statement sheet.
func Header() []string {
	h := append([]string(nil), fixedColumns...)
	for _, d := range constants.Denominations {
		h = append(h, utils.FormatYen(d.Value))
	}
	return h
}

// SheetName names the sheet after the statement period.
func SheetName(st *balance.Statement) string {
	if st.Start.IsZero() {
		return "Ledger"
	}
	return st.Start.In(time.UTC).Format(constants.MonthFormat)
}

// WriteMonthlyWorkbook writes a one sheet workbook: carryover row, one row
// per transaction and a closing total row.
func WriteMonthlyWorkbook(w io.Writer, st *balance.Statement) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(st)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		return err
	}

	sw := sheetWriter{f: f, sheet: sheet}
	sw.set(1, titleRow, "金庫出納帳 "+period(st))
	sw.style(1, titleRow, 1, titleRow, styles.title)

	header := Header()
	for i, h := range header {
		sw.set(i+1, headerRow, h)
	}
	sw.style(1, headerRow, len(header), headerRow, styles.header)

	row := headerRow + 1
	sw.row(row, st.Start, constants.LabelCarryover, 0, 0, st.Opening.Balance,
		[]string{constants.LabelCarryover, "", ""}, st.Opening.Counts)
	row++

	for _, r := range st.Rows {
		var in, out int64
		if r.Delta >= 0 {
			in = r.Delta
		} else {
			out = -r.Delta
		}
		e := r.Entry
		sw.row(row, e.Date, e.Type.Label(), in, out, r.RunningBalance,
			[]string{e.Summary, e.Recipient, e.Memo}, e.Counts)
		row++
	}

	sw.row(row, civil.Date{}, "合計", st.Deposits, st.Withdrawals, st.Closing.Balance,
		[]string{"", "", ""}, st.Closing.Counts)
	sw.style(1, row, len(header), row, styles.total)
	sw.style(3, headerRow+1, 5, row-1, styles.yen)

	if sw.err != nil {
		return fmt.Errorf("failed to fill sheet: %w", sw.err)
	}

	widths := map[string]float64{"A": 12, "B": 8, "C": 12, "D": 12, "E": 12, "F": 14, "G": 16, "H": 24}
	for col, width := range widths {
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}
	first, _ := excelize.ColumnNumberToName(len(fixedColumns) + 1)
	last, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetColWidth(sheet, first, last, 8); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: fmt.Sprintf("A%d", headerRow+1),
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func period(st *balance.Statement) string {
	switch {
	case st.Start.IsZero() && st.End.IsZero():
		return "全期間"
	case st.End.IsZero():
		return formatDate(st.Start) + " -"
	case st.Start.IsZero():
		return "- " + formatDate(st.End)
	default:
		return formatDate(st.Start) + " - " + formatDate(st.End)
	}
}

func formatDate(d civil.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.In(time.UTC).Format(constants.CSVDateFormat)
}

type styles struct {
	title, header, total, yen int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	yenFmt := "#,##0"
	defs := []struct {
		id    *int
		style *excelize.Style
	}{
		{&s.title, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}},
		{&s.header, &excelize.Style{
			Font:      &excelize.Font{Bold: true},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center"},
			Border:    []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
		}},
		{&s.total, &excelize.Style{
			Font:         &excelize.Font{Bold: true},
			Border:       []excelize.Border{{Type: "top", Color: "000000", Style: 1}},
			CustomNumFmt: &yenFmt,
		}},
		{&s.yen, &excelize.Style{CustomNumFmt: &yenFmt}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return s, fmt.Errorf("failed to create style: %w", err)
		}
		*d.id = id
	}
	return s, nil
}

// sheetWriter keeps the first error so the fill code stays linear.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (sw *sheetWriter) set(col, row int, value any) {
	if sw.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		sw.err = err
		return
	}
	sw.err = sw.f.SetCellValue(sw.sheet, cell, value)
}

func (sw *sheetWriter) style(c1, r1, c2, r2, id int) {
	if sw.err != nil {
		return
	}
	from, err := excelize.CoordinatesToCellName(c1, r1)
	if err != nil {
		sw.err = err
		return
	}
	to, err := excelize.CoordinatesToCellName(c2, r2)
	if err != nil {
		sw.err = err
		return
	}
	sw.err = sw.f.SetCellStyle(sw.sheet, from, to, id)
}

func (sw *sheetWriter) row(row int, date civil.Date, label string, in, out, bal int64, text []string, counts model.Counts) {
	sw.set(1, row, formatDate(date))
	sw.set(2, row, label)
	if in != 0 {
		sw.set(3, row, in)
	}
	if out != 0 {
		sw.set(4, row, out)
	}
	sw.set(5, row, bal)
	for i, s := range text {
		sw.set(6+i, row, s)
	}
	for i, n := range counts {
		sw.set(len(fixedColumns)+1+i, row, n)
	}
}
