package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/nurpe/moto-rental/internal/model"
	"github.com/nurpe/moto-rental/internal/pricing"
)

const fontName = "Helvetica"

type Generator struct {
	now func() time.Time
}

func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// Generate renders the cost statement of a rental returned on quote.ReturnDate.
func (g *Generator) Generate(rental model.Rental, quote pricing.Quote) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle("Rental cost statement", false)
	pdf.AddPage()

	pdf.SetFont(fontName, "B", 14)
	pdf.CellFormat(0, 10, "Rental cost statement", "", 1, "C", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Issued %s", g.now().UTC().Format("2006-01-02 15:04 MST")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, "Contract", "", 1, "L", false, 0, "")
	lines := [][2]string{
		{"Rental", rental.ID.String()},
		{"Moto", rental.MotoID.String()},
		{"Delivery person", rental.DeliveryPersonID.String()},
		{"Plan", fmt.Sprintf("%s (%d days)", rental.PlanType, rental.PlanType.Days())},
		{"Start date", formatDate(rental.StartDate)},
		{"End date", formatDate(rental.EndDate)},
		{"Return date", formatDate(quote.ReturnDate)},
		{"Return", timingLabel(quote.Timing)},
	}
	for _, line := range lines {
		labelValue(pdf, line[0], line[1])
	}
	pdf.Ln(4)

	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, "Charges", "", 1, "L", false, 0, "")

	colWidths := []float64{80, 30, 35, 35}
	drawTableRow(pdf, []string{"Item", "Days", "Rate", "Amount"}, colWidths, true)
	drawTableRow(pdf, []string{
		"Rented days",
		fmt.Sprintf("%d", quote.RentedDays),
		formatAmount(quote.DailyRate),
		formatAmount(quote.Base),
	}, colWidths, false)

	switch quote.Timing {
	case pricing.EarlyReturn:
		drawTableRow(pdf, []string{
			"Early return penalty",
			fmt.Sprintf("%d", quote.EarlyDays),
			formatAmount(perDay(quote.Surcharge, quote.EarlyDays)),
			formatAmount(quote.Surcharge),
		}, colWidths, false)
	case pricing.LateReturn:
		drawTableRow(pdf, []string{
			"Late return fee",
			fmt.Sprintf("%d", quote.LateDays),
			formatAmount(pricing.LateFeePerDay),
			formatAmount(quote.Surcharge),
		}, colWidths, false)
	}

	pdf.Ln(2)
	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Total: %s", formatAmount(quote.Total)), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func labelValue(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont(fontName, "B", 10)
	pdf.CellFormat(40, 6, label, "", 0, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func drawTableRow(pdf *gofpdf.Fpdf, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func timingLabel(timing pricing.ReturnTiming) string {
	switch timing {
	case pricing.EarlyReturn:
		return "early"
	case pricing.LateReturn:
		return "late"
	default:
		return "on time"
	}
}

func perDay(amount decimal.Decimal, days int) decimal.Decimal {
	if days == 0 {
		return decimal.Zero
	}
	return amount.Div(decimal.NewFromInt(int64(days)))
}

func formatAmount(value decimal.Decimal) string {
	return value.StringFixed(2)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
