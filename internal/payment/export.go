package payment

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	paymenterrors "go-mission/internal/payment/errors"

	"github.com/shopspring/decimal"
)

const (
	FormatPDF = "pdf"
	FormatCSV = "csv"
)

// ExportColumns is the fixed column order downstream spreadsheets rely on.
var ExportColumns = []string{"date", "transport", "breakfast", "lunch", "dinner", "accommodation", "total"}

const cumulativeLabel = "TOTAL"

type ExportFile struct {
	Name        string
	ContentType string
	Body        []byte
}

func ParseExportFormat(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatCSV, "excel", "xlsx":
		return FormatCSV, nil
	default:
		return "", paymenterrors.ErrInvalidExportFormat
	}
}

// ExportRows returns the header, one row per day, then the cumulative row,
// which carries the per-column sums.
func ExportRows(v PaymentView) [][]string {
	rows := make([][]string, 0, len(v.Lines)+2)
	rows = append(rows, append([]string(nil), ExportColumns...))

	sums := make([]decimal.Decimal, len(partOrder))
	for _, l := range v.Lines {
		row := []string{l.Date.Format(dateLayout)}
		for i, amount := range lineParts(l) {
			sums[i] = sums[i].Add(amount)
			row = append(row, amount.StringFixed(2))
		}
		row = append(row, l.Total.StringFixed(2))
		rows = append(rows, row)
	}

	last := []string{cumulativeLabel}
	for _, s := range sums {
		last = append(last, s.StringFixed(2))
	}
	last = append(last, v.Total.StringFixed(2))
	return append(rows, last)
}

func exportFileName(v PaymentView, format string) string {
	return fmt.Sprintf("payment-%s-%s.%s", v.Detail.MissionID, v.Detail.EmployeeID, format)
}

func Render(v PaymentView, format string) (ExportFile, error) {
	switch format {
	case FormatCSV:
		body, err := renderCSV(v)
		if err != nil {
			return ExportFile{}, err
		}
		return ExportFile{Name: exportFileName(v, FormatCSV), ContentType: "text/csv; charset=utf-8", Body: body}, nil
	case FormatPDF:
		body, err := renderPDF(v)
		if err != nil {
			return ExportFile{}, err
		}
		return ExportFile{Name: exportFileName(v, FormatPDF), ContentType: "application/pdf", Body: body}, nil
	default:
		return ExportFile{}, paymenterrors.ErrInvalidExportFormat
	}
}

// renderCSV writes a UTF-8 BOM so Excel detects the encoding of accented names.
func renderCSV(v PaymentView) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\ufeff")
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(ExportRows(v)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderPDF(v PaymentView) ([]byte, error) {
	d := v.Detail
	lines := []string{
		"Mission payment statement",
		fmt.Sprintf("Mission: %s (%s to %s)", d.MissionName, d.MissionStartDate.Format(dateLayout), d.MissionEndDate.Format(dateLayout)),
		fmt.Sprintf("Employee: %s", d.EmployeeName),
	}
	if d.TransportLabel != nil {
		lines = append(lines, fmt.Sprintf("Transport: %s", *d.TransportLabel))
	}
	lines = append(lines, "")
	for _, row := range ExportRows(v) {
		lines = append(lines, formatColumns(row))
	}
	return buildSimplePDF(lines)
}

func formatColumns(row []string) string {
	var b strings.Builder
	for i, cell := range row {
		if i == 0 {
			b.WriteString(fmt.Sprintf("%-12s", cell))
			continue
		}
		b.WriteString(fmt.Sprintf("%14s", cell))
	}
	return strings.TrimRight(b.String(), " ")
}
